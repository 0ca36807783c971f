package job

import (
	"lotto-ui/logger"
	"lotto-ui/util/common"
	"lotto-ui/web/service"

	"go.uber.org/atomic"
)

// ReconcileDrawsJob sweeps for draws that have a published result but still
// hold pending tickets and re-runs reconciliation for them. This covers a
// crash between result publication and the triggered run, and draws whose
// pending set exceeded one batch.
type ReconcileDrawsJob struct {
	reconcileService service.ReconcileService

	checking atomic.Bool
}

func NewReconcileDrawsJob() *ReconcileDrawsJob {
	return new(ReconcileDrawsJob)
}

func (j *ReconcileDrawsJob) Run() {
	if !j.checking.CompareAndSwap(false, true) {
		return
	}
	defer j.checking.Store(false)
	defer common.Recover("reconcile sweep")

	drawIds, err := j.reconcileService.FindUnreconciledDraws()
	if err != nil {
		logger.Warning("reconcile sweep failed:", err)
		return
	}

	for _, drawId := range drawIds {
		summary, err := j.reconcileService.ReconcileDraw(drawId)
		if err != nil {
			logger.Warningf("reconcile sweep for draw %d failed: %v", drawId, err)
			continue
		}
		logger.Infof("reconcile sweep draw %d: checked %d, won %d, total prize %d THB",
			drawId, summary.Checked, summary.Won, summary.TotalPrize)
	}
}
