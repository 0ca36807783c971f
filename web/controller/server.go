package controller

import (
	"net/http"
	"strconv"
	"time"

	"lotto-ui/config"
	"lotto-ui/logger"
	"lotto-ui/web/global"
	"lotto-ui/web/service"

	"github.com/gin-gonic/gin"
)

type ServerController struct {
	BaseController

	serverService service.ServerService
	tgbotService  service.TgbotService

	lastStatus        *service.Status
	lastGetStatusTime time.Time
}

func NewServerController(g *gin.RouterGroup) *ServerController {
	a := &ServerController{
		lastGetStatusTime: time.Now(),
	}
	a.initRouter(g)
	a.startTask()
	return a
}

func (a *ServerController) initRouter(g *gin.RouterGroup) {
	g.GET("/status", a.status)
	g.POST("/logs/:count", a.checkAdmin, a.getLogs)
	g.GET("/getDb", a.checkAdmin, a.getDb)
	g.GET("/backuptotgbot", a.checkAdmin, a.backupToTgbot)
}

func (a *ServerController) getDb(c *gin.Context) {
	db, err := a.serverService.GetDb()
	if err != nil {
		jsonMsg(c, "get database", err)
		return
	}

	c.Header("Content-Type", "application/octet-stream")
	c.Header("Content-Disposition", "attachment; filename="+config.GetName()+".db")
	c.Data(http.StatusOK, "application/octet-stream", db)
}

func (a *ServerController) backupToTgbot(c *gin.Context) {
	if !a.tgbotService.IsRunning() {
		jsonMsg(c, "backup to telegram", service.ErrTgbotNotRunning)
		return
	}
	a.tgbotService.SendBackupToAdmin()
	jsonMsg(c, "backup to telegram", nil)
}

func (a *ServerController) getLogs(c *gin.Context) {
	count, err := strconv.Atoi(c.Param("count"))
	if err != nil || count <= 0 {
		count = 50
	}
	level := c.PostForm("level")
	if level == "" {
		level = "INFO"
	}
	jsonObj(c, logger.GetLogs(count, level), nil)
}

func (a *ServerController) refreshStatus() {
	a.lastStatus = a.serverService.GetStatus(a.lastStatus)
}

func (a *ServerController) startTask() {
	webServer := global.GetWebServer()
	c := webServer.GetCron()
	c.AddFunc("@every 5s", func() {
		now := time.Now()
		// stop refreshing once the dashboard goes quiet
		if now.Sub(a.lastGetStatusTime) > time.Minute*3 {
			return
		}
		a.refreshStatus()
	})
}

func (a *ServerController) status(c *gin.Context) {
	a.lastGetStatusTime = time.Now()
	if a.lastStatus == nil {
		a.refreshStatus()
	}
	jsonObj(c, a.lastStatus, nil)
}
