package controller

import (
	"errors"
	"net/http"

	"lotto-ui/database/model"
	"lotto-ui/web/service"

	"github.com/gin-gonic/gin"
)

type DrawController struct {
	BaseController

	drawService service.DrawService
}

func NewDrawController(g *gin.RouterGroup) *DrawController {
	a := &DrawController{}
	a.initRouter(g)
	return a
}

func (a *DrawController) initRouter(g *gin.RouterGroup) {
	g.GET("", a.getDraws)
	g.GET("/:id", a.getDraw)
	g.POST("", a.checkAdmin, a.addDraw)
	g.POST("/:id/cancel", a.checkAdmin, a.cancelDraw)
}

func (a *DrawController) getDraws(c *gin.Context) {
	draws, err := a.drawService.GetDraws()
	if err != nil {
		jsonMsg(c, "get draws", err)
		return
	}
	jsonObj(c, draws, nil)
}

func (a *DrawController) getDraw(c *gin.Context) {
	id, err := paramInt64(c, "id")
	if err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid draw id")
		return
	}
	draw, err := a.drawService.GetDraw(id)
	if err != nil {
		if errors.Is(err, service.ErrDrawNotFound) {
			pureJsonMsg(c, http.StatusNotFound, false, err.Error())
			return
		}
		jsonMsg(c, "get draw", err)
		return
	}
	jsonObj(c, draw, nil)
}

func (a *DrawController) addDraw(c *gin.Context) {
	var draw model.Draw
	if err := c.ShouldBindJSON(&draw); err != nil {
		jsonMsg(c, "create draw", err)
		return
	}
	if err := a.drawService.AddDraw(&draw); err != nil {
		jsonMsg(c, "create draw", err)
		return
	}
	jsonObj(c, draw, nil)
}

func (a *DrawController) cancelDraw(c *gin.Context) {
	id, err := paramInt64(c, "id")
	if err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid draw id")
		return
	}
	err = a.drawService.CancelDraw(id)
	jsonMsg(c, "cancel draw", err)
}
