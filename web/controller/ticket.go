package controller

import (
	"errors"
	"net/http"

	"lotto-ui/database/model"
	"lotto-ui/web/service"
	"lotto-ui/web/session"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
)

type AddTicketForm struct {
	Draw    int64            `json:"draw"`
	Numbers []model.BetEntry `json:"numbers"`
	Amount  int64            `json:"amount"`
}

type TicketController struct {
	BaseController

	ticketService service.TicketService
}

func NewTicketController(g *gin.RouterGroup) *TicketController {
	a := &TicketController{}
	a.initRouter(g)
	return a
}

func (a *TicketController) initRouter(g *gin.RouterGroup) {
	g.POST("", a.addTicket)
	g.GET("", a.getTickets)
	g.GET("/:id/check", a.checkTicket)
	g.GET("/:id/qr", a.getQrCode)
	g.POST("/:id/cancel", a.cancelTicket)
}

func (a *TicketController) addTicket(c *gin.Context) {
	var form AddTicketForm
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonMsg(c, "buy ticket", err)
		return
	}
	user := session.GetLoginUser(c)
	ticket, err := a.ticketService.AddTicket(user.Id, form.Draw, form.Numbers, form.Amount)
	if err != nil {
		jsonMsg(c, "buy ticket", err)
		return
	}
	jsonObj(c, ticket, nil)
}

func (a *TicketController) getTickets(c *gin.Context) {
	user := session.GetLoginUser(c)
	var tickets []*model.Ticket
	var err error
	if user.IsAdmin {
		tickets, err = a.ticketService.GetAllTickets()
	} else {
		tickets, err = a.ticketService.GetUserTickets(user.Id)
	}
	if err != nil {
		jsonMsg(c, "get tickets", err)
		return
	}
	jsonObj(c, tickets, nil)
}

func (a *TicketController) checkTicket(c *gin.Context) {
	id, err := paramInt64(c, "id")
	if err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid ticket id")
		return
	}
	user := session.GetLoginUser(c)
	check, err := a.ticketService.CheckTicket(id, user)
	if err != nil {
		a.jsonTicketError(c, "check ticket", err)
		return
	}
	jsonObj(c, check, nil)
}

func (a *TicketController) getQrCode(c *gin.Context) {
	id, err := paramInt64(c, "id")
	if err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid ticket id")
		return
	}
	user := session.GetLoginUser(c)
	ticket, err := a.ticketService.GetTicket(id)
	if err != nil {
		a.jsonTicketError(c, "get ticket qr code", err)
		return
	}
	if !user.IsAdmin && ticket.UserId != user.Id {
		a.jsonTicketError(c, "get ticket qr code", service.ErrTicketForbidden)
		return
	}

	png, err := qrcode.Encode(ticket.TicketNumber, qrcode.Medium, 256)
	if err != nil {
		jsonMsg(c, "get ticket qr code", err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

func (a *TicketController) cancelTicket(c *gin.Context) {
	id, err := paramInt64(c, "id")
	if err != nil {
		pureJsonMsg(c, http.StatusBadRequest, false, "invalid ticket id")
		return
	}
	user := session.GetLoginUser(c)
	err = a.ticketService.CancelTicket(id, user)
	if err != nil {
		a.jsonTicketError(c, "cancel ticket", err)
		return
	}
	jsonMsg(c, "cancel ticket", nil)
}

func (a *TicketController) jsonTicketError(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, service.ErrTicketNotFound):
		pureJsonMsg(c, http.StatusNotFound, false, err.Error())
	case errors.Is(err, service.ErrTicketForbidden):
		pureJsonMsg(c, http.StatusForbidden, false, err.Error())
	default:
		jsonMsg(c, msg, err)
	}
}
