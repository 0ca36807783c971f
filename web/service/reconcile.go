package service

import (
	"sync"

	"lotto-ui/database"
	"lotto-ui/database/model"
	"lotto-ui/logger"
	"lotto-ui/util/common"
)

// The batch runner loads at most this many pending tickets per run. Draws
// holding more get picked up again by the sweep job.
const reconcileBatchSize = 1000

var ErrReconcileInProgress = common.NewError("reconciliation already running for this draw")

// one reconciliation in flight per draw
var (
	reconcileMu     sync.Mutex
	reconcilingDraw = make(map[int64]bool)
)

// ReconcileSummary reports one batch run. Failed lists the tickets whose
// status update failed so operators can re-run just that subset.
type ReconcileSummary struct {
	Checked    int     `json:"checked"`
	Won        int     `json:"won"`
	TotalPrize int64   `json:"totalPrize"`
	Failed     []int64 `json:"failed,omitempty"`
}

type ReconcileService struct {
	prizeService  PrizeService
	ticketService TicketService
}

func lockDraw(drawId int64) bool {
	reconcileMu.Lock()
	defer reconcileMu.Unlock()
	if reconcilingDraw[drawId] {
		return false
	}
	reconcilingDraw[drawId] = true
	return true
}

func unlockDraw(drawId int64) {
	reconcileMu.Lock()
	defer reconcileMu.Unlock()
	delete(reconcilingDraw, drawId)
}

// ReconcileDraw scores every pending ticket of a draw against its published
// result and commits the won/lost transitions. Tickets already in a terminal
// state are never touched. A failing write is logged and counted but does
// not abort the rest of the batch.
func (s *ReconcileService) ReconcileDraw(drawId int64) (*ReconcileSummary, error) {
	if !lockDraw(drawId) {
		return nil, ErrReconcileInProgress
	}
	defer unlockDraw(drawId)

	summary := &ReconcileSummary{}

	var resultService ResultService
	result, err := resultService.GetResultByDraw(drawId)
	if err != nil {
		return nil, err
	}
	if result == nil {
		// reachable when invoked directly before publication
		logger.Warningf("reconcile requested for draw %d but no result exists", drawId)
		return summary, nil
	}

	tickets, err := s.ticketService.GetPendingTickets(drawId, reconcileBatchSize)
	if err != nil {
		return nil, err
	}

	for _, ticket := range tickets {
		summary.Checked++
		verdict := s.prizeService.MatchTicket(ticket, result)
		applied, err := s.ticketService.CommitVerdict(ticket, verdict)
		if err != nil {
			logger.Errorf("draw %d: failed to update ticket %d (%s): %v",
				drawId, ticket.Id, ticket.TicketNumber, err)
			summary.Failed = append(summary.Failed, ticket.Id)
			continue
		}
		if applied && verdict.Won {
			summary.Won++
			summary.TotalPrize += verdict.TotalPrize
		}
	}

	return summary, nil
}

// FindUnreconciledDraws lists draws that have a published result but still
// hold pending tickets, e.g. after a crash between publication and
// reconciliation or when a batch exceeded the page size.
func (s *ReconcileService) FindUnreconciledDraws() ([]int64, error) {
	db := database.GetDB()
	var drawIds []int64
	err := db.Model(model.Ticket{}).
		Distinct().
		Joins("join results on results.draw_id = tickets.draw_id").
		Where("tickets.status = ?", model.TicketStatusPending).
		Pluck("tickets.draw_id", &drawIds).Error
	if err != nil {
		return nil, err
	}
	return drawIds, nil
}
