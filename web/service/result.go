package service

import (
	"errors"
	"regexp"
	"time"

	"lotto-ui/database"
	"lotto-ui/database/model"
	"lotto-ui/logger"
	"lotto-ui/util/common"
)

var (
	sixDigitRegex   = regexp.MustCompile(`^\d{6}$`)
	threeDigitRegex = regexp.MustCompile(`^\d{3}$`)
	twoDigitRegex   = regexp.MustCompile(`^\d{2}$`)
)

type ResultService struct {
	drawService      DrawService
	reconcileService ReconcileService
	tgbotService     TgbotService
}

func validateTier(numbers model.NumberList, pattern *regexp.Regexp, label string) error {
	for _, n := range numbers {
		if !pattern.MatchString(n) {
			return common.NewErrorf("%s entry %q has the wrong format", label, n)
		}
	}
	return nil
}

func (s *ResultService) validateResult(result *model.Result) error {
	if !sixDigitRegex.MatchString(result.FirstPrize) {
		return common.NewErrorf("first prize %q must be exactly 6 digits", result.FirstPrize)
	}
	if len(result.SecondPrize) < 2 || len(result.SecondPrize) > 5 {
		return common.NewError("second prize needs 2 to 5 numbers")
	}
	if len(result.ThirdPrize) < 3 || len(result.ThirdPrize) > 10 {
		return common.NewError("third prize needs 3 to 10 numbers")
	}
	checks := []struct {
		numbers model.NumberList
		pattern *regexp.Regexp
		label   string
	}{
		{result.SecondPrize, sixDigitRegex, "second prize"},
		{result.ThirdPrize, sixDigitRegex, "third prize"},
		{result.FourthPrize, sixDigitRegex, "fourth prize"},
		{result.FifthPrize, sixDigitRegex, "fifth prize"},
		{result.FrontThreeDigits, threeDigitRegex, "front three digits"},
		{result.BackThreeDigits, threeDigitRegex, "back three digits"},
		{result.FrontTwoDigits, twoDigitRegex, "front two digits"},
		{result.BackTwoDigits, twoDigitRegex, "back two digits"},
	}
	for _, check := range checks {
		if err := validateTier(check.numbers, check.pattern, check.label); err != nil {
			return err
		}
	}
	return nil
}

// GetResultByDraw returns the result of a draw, or nil when none has been
// published yet. Missing results are a normal condition, not an error.
func (s *ResultService) GetResultByDraw(drawId int64) (*model.Result, error) {
	db := database.GetDB()
	result := &model.Result{}
	err := db.Model(model.Result{}).Where("draw_id = ?", drawId).First(result).Error
	if err != nil {
		if database.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return result, nil
}

func (s *ResultService) GetResults() ([]*model.Result, error) {
	db := database.GetDB()
	var results []*model.Result
	err := db.Model(model.Result{}).Order("published_at desc").Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// PublishResult stores (or replaces) the winning numbers of a draw, marks
// the draw completed and reconciles every pending ticket of that draw. The
// returned summary is what gets logged and reported to the admin channel.
func (s *ResultService) PublishResult(result *model.Result) (*ReconcileSummary, error) {
	if err := s.validateResult(result); err != nil {
		return nil, err
	}

	draw, err := s.drawService.GetDraw(result.DrawId)
	if err != nil {
		return nil, err
	}

	existing, err := s.GetResultByDraw(result.DrawId)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		result.Id = existing.Id
	}
	if result.PublishedAt.IsZero() {
		result.PublishedAt = time.Now()
	}

	db := database.GetDB()
	if err := db.Save(result).Error; err != nil {
		return nil, err
	}
	if err := s.drawService.CompleteDraw(nil, draw.Id); err != nil {
		return nil, err
	}

	summary, err := s.reconcileService.ReconcileDraw(result.DrawId)
	if err != nil {
		// The result is already stored and the draw completed; when another
		// run holds the draw lock the sweep job finishes the remainder, so
		// don't fail the publish.
		if errors.Is(err, ErrReconcileInProgress) {
			logger.Infof("draw %s: reconciliation already running, sweep will settle the remaining tickets",
				draw.DrawNumber)
			return &ReconcileSummary{}, nil
		}
		return nil, err
	}
	logger.Infof("draw %s: checked %d tickets, %d won, total prize %d THB",
		draw.DrawNumber, summary.Checked, summary.Won, summary.TotalPrize)
	s.tgbotService.NotifySummary(draw, summary)

	return summary, nil
}
