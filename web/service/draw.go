package service

import (
	"regexp"

	"lotto-ui/database"
	"lotto-ui/database/model"
	"lotto-ui/util/common"

	"gorm.io/gorm"
)

var (
	ErrDrawNotFound = common.NewError("draw not found")

	drawNumberRegex = regexp.MustCompile(`^\d{8}$`)
)

type DrawService struct{}

func (s *DrawService) AddDraw(draw *model.Draw) error {
	if !drawNumberRegex.MatchString(draw.DrawNumber) {
		return common.NewError("draw number must be 8 digits, e.g. 25670101")
	}
	if draw.Round == "" {
		draw.Round = model.DrawRoundMorning
	}
	switch draw.Round {
	case model.DrawRoundMorning, model.DrawRoundAfternoon, model.DrawRoundEvening:
	default:
		return common.NewErrorf("unknown draw round: %s", draw.Round)
	}
	draw.Status = model.DrawStatusPending

	db := database.GetDB()
	return db.Create(draw).Error
}

func (s *DrawService) GetDraw(id int64) (*model.Draw, error) {
	db := database.GetDB()
	draw := &model.Draw{}
	err := db.Model(model.Draw{}).First(draw, id).Error
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrDrawNotFound
		}
		return nil, err
	}
	return draw, nil
}

func (s *DrawService) GetDraws() ([]*model.Draw, error) {
	db := database.GetDB()
	var draws []*model.Draw
	err := db.Model(model.Draw{}).Order("draw_date desc").Find(&draws).Error
	if err != nil {
		return nil, err
	}
	return draws, nil
}

// CompleteDraw marks a draw as completed. Runs inside the result publication
// transaction when tx is not nil.
func (s *DrawService) CompleteDraw(tx *gorm.DB, id int64) error {
	if tx == nil {
		tx = database.GetDB()
	}
	return tx.Model(model.Draw{}).
		Where("id = ?", id).
		Update("status", model.DrawStatusCompleted).Error
}

func (s *DrawService) CancelDraw(id int64) error {
	db := database.GetDB()
	return db.Model(model.Draw{}).
		Where("id = ? and status = ?", id, model.DrawStatusPending).
		Update("status", model.DrawStatusCancelled).Error
}
