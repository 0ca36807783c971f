package controller

import (
	"net/http"
	"time"

	"lotto-ui/logger"
	"lotto-ui/web/service"
	"lotto-ui/web/session"

	"github.com/gin-gonic/gin"
)

type LoginForm struct {
	Username      string `json:"username" form:"username"`
	Password      string `json:"password" form:"password"`
	TwoFactorCode string `json:"twoFactorCode" form:"twoFactorCode"`
}

type IndexController struct {
	BaseController

	userService service.UserService
}

func NewIndexController(g *gin.RouterGroup) *IndexController {
	a := &IndexController{}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.POST("/login", a.login)
	g.GET("/logout", a.logout)
}

func (a *IndexController) login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid login request")
		return
	}
	if form.Username == "" || form.Password == "" {
		pureJsonMsg(c, http.StatusBadRequest, false, "username and password are required")
		return
	}

	user, err := a.userService.Login(form.Username, form.Password, form.TwoFactorCode)
	if err != nil {
		logger.Warningf("wrong login attempt for user %s from %s", form.Username, c.ClientIP())
		pureJsonMsg(c, http.StatusUnauthorized, false, err.Error())
		return
	}

	sessionMaxAge := int((time.Hour * 24 * 7).Seconds())
	session.SetMaxAge(c, sessionMaxAge)
	session.SetLoginUser(c, user)
	if err := session.Save(c); err != nil {
		jsonMsg(c, "login", err)
		return
	}
	logger.Infof("user %s logged in from %s", user.Username, c.ClientIP())
	jsonMsg(c, "login", nil)
}

func (a *IndexController) logout(c *gin.Context) {
	user := session.GetLoginUser(c)
	if user != nil {
		logger.Infof("user %s logged out", user.Username)
	}
	session.ClearSession(c)
	if err := session.Save(c); err != nil {
		jsonMsg(c, "logout", err)
		return
	}
	jsonMsg(c, "logout", nil)
}
