package controller

import (
	"github.com/gin-gonic/gin"
)

type APIController struct {
	BaseController

	ticketController *TicketController
	drawController   *DrawController
	resultController *ResultController
	serverController *ServerController
}

func NewAPIController(g *gin.RouterGroup) *APIController {
	a := &APIController{}
	a.initRouter(g)
	return a
}

func (a *APIController) initRouter(g *gin.RouterGroup) {
	// Main API group
	api := g.Group("/panel/api")
	api.Use(a.checkLogin)

	a.ticketController = NewTicketController(api.Group("/tickets"))
	a.drawController = NewDrawController(api.Group("/draws"))
	a.resultController = NewResultController(api.Group("/results"))
	a.serverController = NewServerController(api.Group("/server"))
}
