package controller

import (
	"errors"
	"net/http"

	"lotto-ui/database/model"
	"lotto-ui/web/service"

	"github.com/gin-gonic/gin"
)

type ResultController struct {
	BaseController

	resultService service.ResultService
}

func NewResultController(g *gin.RouterGroup) *ResultController {
	a := &ResultController{}
	a.initRouter(g)
	return a
}

func (a *ResultController) initRouter(g *gin.RouterGroup) {
	g.GET("", a.getResults)
	g.GET("/:drawId", a.getResult)
	// Publication triggers reconciliation of the draw's pending tickets, so
	// this stays behind the admin check and is never exposed publicly.
	g.POST("", a.checkAdmin, a.publishResult)
}

func (a *ResultController) getResults(c *gin.Context) {
	results, err := a.resultService.GetResults()
	if err != nil {
		jsonMsg(c, "get results", err)
		return
	}
	jsonObj(c, results, nil)
}

func (a *ResultController) getResult(c *gin.Context) {
	drawId, err := paramInt64(c, "drawId")
	if err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid draw id")
		return
	}
	result, err := a.resultService.GetResultByDraw(drawId)
	if err != nil {
		jsonMsg(c, "get result", err)
		return
	}
	if result == nil {
		pureJsonMsg(c, http.StatusNotFound, false, "no result published for this draw yet")
		return
	}
	jsonObj(c, result, nil)
}

func (a *ResultController) publishResult(c *gin.Context) {
	var result model.Result
	if err := c.ShouldBindJSON(&result); err != nil {
		jsonMsg(c, "publish result", err)
		return
	}
	summary, err := a.resultService.PublishResult(&result)
	if err != nil {
		if errors.Is(err, service.ErrDrawNotFound) {
			pureJsonMsg(c, http.StatusNotFound, false, err.Error())
			return
		}
		jsonMsg(c, "publish result", err)
		return
	}
	jsonObj(c, summary, nil)
}
