package service_test

import (
	"strings"
	"testing"

	"lotto-ui/database"
	"lotto-ui/database/model"
	"lotto-ui/web/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddTicket(t *testing.T) {
	setUpTestDB(t)
	draw := addTestDraw(t, "25690101")

	ticketService := &service.TicketService{}
	ticket, err := ticketService.AddTicket(1, draw.Id, []model.BetEntry{
		{Number: "007123", BetType: model.BetTypeStraight},
		{Number: "456789", BetType: model.BetTypeRunning},
	}, 80)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(ticket.TicketNumber, "TKT"))
	assert.Equal(t, model.TicketStatusPending, ticket.Status)
	assert.Equal(t, int64(80), ticket.Amount)

	stored := reloadTicket(t, ticket.Id)
	require.Len(t, stored.Numbers, 2)
	assert.Equal(t, "007123", stored.Numbers[0].Number)
}

func TestAddTicketValidation(t *testing.T) {
	setUpTestDB(t)
	draw := addTestDraw(t, "25690101")

	tooMany := make([]model.BetEntry, 11)
	for i := range tooMany {
		tooMany[i] = model.BetEntry{Number: "123456", BetType: model.BetTypeStraight}
	}

	ticketService := &service.TicketService{}
	tests := []struct {
		name    string
		drawId  int64
		numbers []model.BetEntry
		amount  int64
	}{
		{
			name:   "no bet entries",
			drawId: draw.Id,
			amount: 100,
		},
		{
			name:    "too many bet entries",
			drawId:  draw.Id,
			numbers: tooMany,
			amount:  100,
		},
		{
			name:    "number too short",
			drawId:  draw.Id,
			numbers: []model.BetEntry{{Number: "12345", BetType: model.BetTypeStraight}},
			amount:  100,
		},
		{
			name:    "number not digits",
			drawId:  draw.Id,
			numbers: []model.BetEntry{{Number: "12a456", BetType: model.BetTypeStraight}},
			amount:  100,
		},
		{
			name:    "unknown bet type",
			drawId:  draw.Id,
			numbers: []model.BetEntry{{Number: "123456", BetType: "reverse"}},
			amount:  100,
		},
		{
			name:    "zero amount",
			drawId:  draw.Id,
			numbers: []model.BetEntry{{Number: "123456", BetType: model.BetTypeStraight}},
			amount:  0,
		},
		{
			name:    "amount above cap",
			drawId:  draw.Id,
			numbers: []model.BetEntry{{Number: "123456", BetType: model.BetTypeStraight}},
			amount:  1_000_001,
		},
		{
			name:    "missing draw",
			drawId:  9999,
			numbers: []model.BetEntry{{Number: "123456", BetType: model.BetTypeStraight}},
			amount:  100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ticketService.AddTicket(1, tt.drawId, tt.numbers, tt.amount)
			assert.Error(t, err)
		})
	}
}

func TestAddTicketClosedDraw(t *testing.T) {
	setUpTestDB(t)
	draw := addTestDraw(t, "25690101")

	drawService := &service.DrawService{}
	require.NoError(t, drawService.CompleteDraw(nil, draw.Id))

	ticketService := &service.TicketService{}
	_, err := ticketService.AddTicket(1, draw.Id, []model.BetEntry{
		{Number: "123456", BetType: model.BetTypeStraight},
	}, 100)
	assert.Error(t, err)
}

func TestCheckTicketOwnership(t *testing.T) {
	setUpTestDB(t)
	draw := addTestDraw(t, "25690101")

	userService := &service.UserService{}
	owner, err := userService.AddUser("somchai", "secret", false)
	require.NoError(t, err)
	stranger, err := userService.AddUser("somsak", "secret", false)
	require.NoError(t, err)

	ticket := addTestTicket(t, owner.Id, draw.Id, 100,
		model.BetEntry{Number: "123456", BetType: model.BetTypeStraight})

	ticketService := &service.TicketService{}
	_, err = ticketService.CheckTicket(ticket.Id, stranger)
	assert.ErrorIs(t, err, service.ErrTicketForbidden)

	_, err = ticketService.CheckTicket(ticket.Id, owner)
	assert.NoError(t, err)

	_, err = ticketService.CheckTicket(ticket.Id, adminUser())
	assert.NoError(t, err)

	_, err = ticketService.CheckTicket(9999, adminUser())
	assert.ErrorIs(t, err, service.ErrTicketNotFound)
}

func TestCheckTicketBeforeResult(t *testing.T) {
	setUpTestDB(t)
	draw := addTestDraw(t, "25690101")
	ticket := addTestTicket(t, 1, draw.Id, 100,
		model.BetEntry{Number: "123456", BetType: model.BetTypeStraight})

	ticketService := &service.TicketService{}
	check, err := ticketService.CheckTicket(ticket.Id, adminUser())
	require.NoError(t, err)

	assert.True(t, check.Undetermined)
	assert.NotEmpty(t, check.Message)
	assert.Equal(t, model.TicketStatusPending, check.Status)
	assert.Equal(t, model.TicketStatusPending, reloadTicket(t, ticket.Id).Status)
}

// The on-demand check commits the verdict through the same guarded
// transition as the batch runner.
func TestCheckTicketPersistsVerdict(t *testing.T) {
	setUpTestDB(t)
	draw := addTestDraw(t, "25690101")
	ticket := addTestTicket(t, 1, draw.Id, 100,
		model.BetEntry{Number: "123456", BetType: model.BetTypeStraight})
	storeTestResult(t, draw.Id)

	ticketService := &service.TicketService{}
	check, err := ticketService.CheckTicket(ticket.Id, adminUser())
	require.NoError(t, err)

	assert.True(t, check.Won)
	assert.Equal(t, int64(600_000_000), check.TotalPrize)
	assert.Equal(t, model.TicketStatusWon, check.Status)

	stored := reloadTicket(t, ticket.Id)
	assert.Equal(t, model.TicketStatusWon, stored.Status)
	assert.Equal(t, int64(600_000_000), stored.PrizeAmount)

	// a repeat check re-reports the verdict without another transition
	again, err := ticketService.CheckTicket(ticket.Id, adminUser())
	require.NoError(t, err)
	assert.Equal(t, model.TicketStatusWon, again.Status)
	assert.Equal(t, int64(600_000_000), again.TotalPrize)
}

// When another writer settled the ticket first, the guarded update matches
// nothing: no mutation, no win counted.
func TestCommitVerdictSkipsSettledTicket(t *testing.T) {
	setUpTestDB(t)
	draw := addTestDraw(t, "25690101")
	ticket := addTestTicket(t, 1, draw.Id, 100,
		model.BetEntry{Number: "987654", BetType: model.BetTypeStraight})

	// settle the row behind the in-memory copy's back
	require.NoError(t, database.GetDB().Model(model.Ticket{}).
		Where("id = ?", ticket.Id).
		Updates(map[string]any{
			"status":       model.TicketStatusWon,
			"prize_amount": int64(600_000_000),
		}).Error)

	prizeService := &service.PrizeService{}
	verdict := prizeService.MatchTicket(ticket, testResult())
	require.False(t, verdict.Won)

	ticketService := &service.TicketService{}
	applied, err := ticketService.CommitVerdict(ticket, verdict)
	require.NoError(t, err)
	assert.False(t, applied)

	// in-memory copy untouched, stored verdict preserved
	assert.Equal(t, model.TicketStatusPending, ticket.Status)
	stored := reloadTicket(t, ticket.Id)
	assert.Equal(t, model.TicketStatusWon, stored.Status)
	assert.Equal(t, int64(600_000_000), stored.PrizeAmount)
}

func TestCancelTicket(t *testing.T) {
	setUpTestDB(t)
	draw := addTestDraw(t, "25690101")

	userService := &service.UserService{}
	owner, err := userService.AddUser("somchai", "secret", false)
	require.NoError(t, err)
	stranger, err := userService.AddUser("somsak", "secret", false)
	require.NoError(t, err)

	ticket := addTestTicket(t, owner.Id, draw.Id, 100,
		model.BetEntry{Number: "123456", BetType: model.BetTypeStraight})

	ticketService := &service.TicketService{}
	assert.ErrorIs(t, ticketService.CancelTicket(ticket.Id, stranger), service.ErrTicketForbidden)

	require.NoError(t, ticketService.CancelTicket(ticket.Id, owner))
	assert.Equal(t, model.TicketStatusCancelled, reloadTicket(t, ticket.Id).Status)

	// already terminal
	assert.Error(t, ticketService.CancelTicket(ticket.Id, owner))
}

func TestGetUserTickets(t *testing.T) {
	setUpTestDB(t)
	draw := addTestDraw(t, "25690101")

	userService := &service.UserService{}
	somchai, err := userService.AddUser("somchai", "secret", false)
	require.NoError(t, err)

	addTestTicket(t, somchai.Id, draw.Id, 100,
		model.BetEntry{Number: "123456", BetType: model.BetTypeStraight})
	addTestTicket(t, 1, draw.Id, 100,
		model.BetEntry{Number: "987654", BetType: model.BetTypeStraight})

	ticketService := &service.TicketService{}
	tickets, err := ticketService.GetUserTickets(somchai.Id)
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, somchai.Id, tickets[0].UserId)

	all, err := ticketService.GetAllTickets()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
