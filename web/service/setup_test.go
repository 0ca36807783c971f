package service_test

import (
	"path/filepath"
	"testing"
	"time"

	"lotto-ui/database"
	"lotto-ui/database/model"
	"lotto-ui/web/service"

	"github.com/stretchr/testify/require"
)

func setUpTestDB(t *testing.T) {
	t.Helper()
	err := database.InitDB(filepath.Join(t.TempDir(), "lotto-ui.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		database.CloseDB()
	})
}

// InitDB seeds an admin account, so user id 1 is always the admin.
func adminUser() *model.User {
	return &model.User{Id: 1, Username: "admin", IsAdmin: true}
}

func addTestDraw(t *testing.T, drawNumber string) *model.Draw {
	t.Helper()
	draw := &model.Draw{
		DrawNumber: drawNumber,
		DrawDate:   time.Now(),
		Round:      model.DrawRoundMorning,
	}
	drawService := &service.DrawService{}
	require.NoError(t, drawService.AddDraw(draw))
	return draw
}

func addTestTicket(t *testing.T, userId int64, drawId int64, amount int64, numbers ...model.BetEntry) *model.Ticket {
	t.Helper()
	ticketService := &service.TicketService{}
	ticket, err := ticketService.AddTicket(userId, drawId, numbers, amount)
	require.NoError(t, err)
	return ticket
}

// storeTestResult writes a result row directly, bypassing publication side
// effects, for tests that exercise reconciliation or checks in isolation.
func storeTestResult(t *testing.T, drawId int64) *model.Result {
	t.Helper()
	result := testResult()
	result.DrawId = drawId
	result.PublishedAt = time.Now()
	require.NoError(t, database.GetDB().Create(result).Error)
	return result
}

func reloadTicket(t *testing.T, id int64) *model.Ticket {
	t.Helper()
	ticketService := &service.TicketService{}
	ticket, err := ticketService.GetTicket(id)
	require.NoError(t, err)
	return ticket
}
