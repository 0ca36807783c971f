package service_test

import (
	"fmt"
	"testing"

	"lotto-ui/database"
	"lotto-ui/database/model"
	"lotto-ui/web/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileDraw(t *testing.T) {
	setUpTestDB(t)

	draw := addTestDraw(t, "25690101")
	winner := addTestTicket(t, 1, draw.Id, 100,
		model.BetEntry{Number: "123456", BetType: model.BetTypeStraight})
	loser := addTestTicket(t, 1, draw.Id, 100,
		model.BetEntry{Number: "987654", BetType: model.BetTypeStraight})
	storeTestResult(t, draw.Id)

	reconcileService := &service.ReconcileService{}
	summary, err := reconcileService.ReconcileDraw(draw.Id)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Checked)
	assert.Equal(t, 1, summary.Won)
	assert.Equal(t, int64(600_000_000), summary.TotalPrize)
	assert.Empty(t, summary.Failed)

	assert.Equal(t, model.TicketStatusWon, reloadTicket(t, winner.Id).Status)
	assert.Equal(t, int64(600_000_000), reloadTicket(t, winner.Id).PrizeAmount)
	assert.Equal(t, model.TicketStatusLost, reloadTicket(t, loser.Id).Status)
	assert.Zero(t, reloadTicket(t, loser.Id).PrizeAmount)
}

func TestReconcileDrawWithoutResult(t *testing.T) {
	setUpTestDB(t)

	draw := addTestDraw(t, "25690101")
	ticket := addTestTicket(t, 1, draw.Id, 100,
		model.BetEntry{Number: "123456", BetType: model.BetTypeStraight})

	reconcileService := &service.ReconcileService{}
	summary, err := reconcileService.ReconcileDraw(draw.Id)
	require.NoError(t, err)

	assert.Zero(t, summary.Checked)
	assert.Equal(t, model.TicketStatusPending, reloadTicket(t, ticket.Id).Status)
}

// A second run over the same draw finds no pending tickets and must not
// touch the verdicts again.
func TestReconcileDrawIdempotent(t *testing.T) {
	setUpTestDB(t)

	draw := addTestDraw(t, "25690101")
	winner := addTestTicket(t, 1, draw.Id, 100,
		model.BetEntry{Number: "123456", BetType: model.BetTypeStraight})
	storeTestResult(t, draw.Id)

	reconcileService := &service.ReconcileService{}
	first, err := reconcileService.ReconcileDraw(draw.Id)
	require.NoError(t, err)
	require.Equal(t, 1, first.Checked)

	second, err := reconcileService.ReconcileDraw(draw.Id)
	require.NoError(t, err)
	assert.Zero(t, second.Checked)
	assert.Zero(t, second.Won)

	assert.Equal(t, int64(600_000_000), reloadTicket(t, winner.Id).PrizeAmount)
}

func TestReconcileDrawSkipsTerminalTickets(t *testing.T) {
	setUpTestDB(t)

	draw := addTestDraw(t, "25690101")
	cancelled := addTestTicket(t, 1, draw.Id, 100,
		model.BetEntry{Number: "123456", BetType: model.BetTypeStraight})
	pending := addTestTicket(t, 1, draw.Id, 100,
		model.BetEntry{Number: "987654", BetType: model.BetTypeStraight})

	ticketService := &service.TicketService{}
	require.NoError(t, ticketService.CancelTicket(cancelled.Id, adminUser()))
	storeTestResult(t, draw.Id)

	reconcileService := &service.ReconcileService{}
	summary, err := reconcileService.ReconcileDraw(draw.Id)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Checked)
	assert.Equal(t, model.TicketStatusCancelled, reloadTicket(t, cancelled.Id).Status)
	assert.Equal(t, model.TicketStatusLost, reloadTicket(t, pending.Id).Status)
}

// A failing status update is reported in Failed and must not abort the rest
// of the batch. The failure is simulated with a trigger that rejects writes
// to one ticket row.
func TestReconcileDrawIsolatesFailingTicket(t *testing.T) {
	setUpTestDB(t)

	draw := addTestDraw(t, "25690101")
	broken := addTestTicket(t, 1, draw.Id, 100,
		model.BetEntry{Number: "123456", BetType: model.BetTypeStraight})
	healthy := addTestTicket(t, 1, draw.Id, 100,
		model.BetEntry{Number: "987654", BetType: model.BetTypeStraight})
	storeTestResult(t, draw.Id)

	db := database.GetDB()
	trigger := fmt.Sprintf(
		"create trigger reject_ticket_write before update on tickets when old.id = %d "+
			"begin select raise(abort, 'write rejected'); end", broken.Id)
	require.NoError(t, db.Exec(trigger).Error)

	reconcileService := &service.ReconcileService{}
	summary, err := reconcileService.ReconcileDraw(draw.Id)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Checked)
	assert.Zero(t, summary.Won)
	assert.Equal(t, []int64{broken.Id}, summary.Failed)
	assert.Equal(t, model.TicketStatusLost, reloadTicket(t, healthy.Id).Status)
	assert.Equal(t, model.TicketStatusPending, reloadTicket(t, broken.Id).Status)

	// once the fault clears, the sweep settles the leftover ticket
	require.NoError(t, db.Exec("drop trigger reject_ticket_write").Error)
	summary, err = reconcileService.ReconcileDraw(draw.Id)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Checked)
	assert.Equal(t, 1, summary.Won)
	assert.Equal(t, int64(600_000_000), summary.TotalPrize)
	assert.Empty(t, summary.Failed)
}

func TestFindUnreconciledDraws(t *testing.T) {
	setUpTestDB(t)

	// published result but never reconciled
	stale := addTestDraw(t, "25690101")
	addTestTicket(t, 1, stale.Id, 100,
		model.BetEntry{Number: "123456", BetType: model.BetTypeStraight})
	storeTestResult(t, stale.Id)

	// no result yet, must not be listed
	open := addTestDraw(t, "25690116")
	addTestTicket(t, 1, open.Id, 100,
		model.BetEntry{Number: "123456", BetType: model.BetTypeStraight})

	reconcileService := &service.ReconcileService{}
	drawIds, err := reconcileService.FindUnreconciledDraws()
	require.NoError(t, err)
	assert.Equal(t, []int64{stale.Id}, drawIds)

	_, err = reconcileService.ReconcileDraw(stale.Id)
	require.NoError(t, err)

	drawIds, err = reconcileService.FindUnreconciledDraws()
	require.NoError(t, err)
	assert.Empty(t, drawIds)
}
