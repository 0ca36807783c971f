package service

import (
	"fmt"
	"regexp"
	"time"

	"lotto-ui/database"
	"lotto-ui/database/model"
	"lotto-ui/logger"
	"lotto-ui/util/common"
)

var (
	ErrTicketNotFound  = common.NewError("ticket not found")
	ErrTicketForbidden = common.NewError("you do not own this ticket")

	betNumberRegex = regexp.MustCompile(`^\d{6}$`)
)

const (
	maxBetEntries = 10
	// Per-bet stake cap in baht. Keeps amount * the largest multiplier far
	// below the int64 range.
	maxBetAmount = 1_000_000
)

type TicketService struct {
	prizeService PrizeService
	drawService  DrawService
}

// TicketCheck is the payload returned by the on-demand single ticket check.
type TicketCheck struct {
	TicketId     int64              `json:"ticket"`
	TicketNumber string             `json:"ticketNumber"`
	Status       model.TicketStatus `json:"status"`
	Message      string             `json:"message,omitempty"`
	TicketVerdict
}

func (s *TicketService) AddTicket(userId int64, drawId int64, numbers []model.BetEntry, amount int64) (*model.Ticket, error) {
	if len(numbers) == 0 || len(numbers) > maxBetEntries {
		return nil, common.NewErrorf("a ticket holds 1 to %d bet entries", maxBetEntries)
	}
	if amount <= 0 || amount > maxBetAmount {
		return nil, common.NewErrorf("amount must be between 1 and %d baht", maxBetAmount)
	}
	for _, bet := range numbers {
		if !betNumberRegex.MatchString(bet.Number) {
			return nil, common.NewErrorf("bet number %q must be exactly 6 digits", bet.Number)
		}
		switch bet.BetType {
		case model.BetTypeStraight, model.BetTypeRunning, model.BetTypeTod:
		default:
			return nil, common.NewErrorf("unknown bet type: %s", bet.BetType)
		}
	}

	draw, err := s.drawService.GetDraw(drawId)
	if err != nil {
		return nil, err
	}
	if draw.Status != model.DrawStatusPending {
		return nil, common.NewErrorf("draw %s is not open for bets", draw.DrawNumber)
	}

	ticket := &model.Ticket{
		TicketNumber: newTicketNumber(),
		UserId:       userId,
		DrawId:       drawId,
		Numbers:      numbers,
		Amount:       amount,
		Status:       model.TicketStatusPending,
	}

	db := database.GetDB()
	if err := db.Create(ticket).Error; err != nil {
		return nil, err
	}
	logger.Infof("ticket %s created for draw %s", ticket.TicketNumber, draw.DrawNumber)
	return ticket, nil
}

func newTicketNumber() string {
	return fmt.Sprintf("TKT%d%03d", time.Now().UnixMilli(), common.RandomInt(1000))
}

func (s *TicketService) GetTicket(id int64) (*model.Ticket, error) {
	db := database.GetDB()
	ticket := &model.Ticket{}
	err := db.Model(model.Ticket{}).First(ticket, id).Error
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return ticket, nil
}

func (s *TicketService) GetUserTickets(userId int64) ([]*model.Ticket, error) {
	db := database.GetDB()
	var tickets []*model.Ticket
	err := db.Model(model.Ticket{}).
		Where("user_id = ?", userId).
		Order("created_at desc").
		Find(&tickets).Error
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

func (s *TicketService) GetAllTickets() ([]*model.Ticket, error) {
	db := database.GetDB()
	var tickets []*model.Ticket
	err := db.Model(model.Ticket{}).Order("created_at desc").Find(&tickets).Error
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

func (s *TicketService) GetPendingTickets(drawId int64, limit int) ([]*model.Ticket, error) {
	db := database.GetDB()
	var tickets []*model.Ticket
	err := db.Model(model.Ticket{}).
		Where("draw_id = ? and status = ?", drawId, model.TicketStatusPending).
		Limit(limit).
		Find(&tickets).Error
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

// CheckTicket computes the verdict of one ticket for its owner (or an
// admin). When the ticket is still pending and a result exists, the verdict
// is committed through the same guarded transition the batch runner uses, so
// both paths share one persistence contract.
func (s *TicketService) CheckTicket(ticketId int64, user *model.User) (*TicketCheck, error) {
	ticket, err := s.GetTicket(ticketId)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin && ticket.UserId != user.Id {
		return nil, ErrTicketForbidden
	}

	var resultService ResultService
	result, err := resultService.GetResultByDraw(ticket.DrawId)
	if err != nil {
		return nil, err
	}

	check := &TicketCheck{
		TicketId:     ticket.Id,
		TicketNumber: ticket.TicketNumber,
		Status:       ticket.Status,
	}
	check.TicketVerdict = s.prizeService.MatchTicket(ticket, result)
	if check.Undetermined {
		check.Message = "no result published for this draw yet"
		return check, nil
	}

	if ticket.Status == model.TicketStatusPending {
		applied, err := s.CommitVerdict(ticket, check.TicketVerdict)
		if err != nil {
			return nil, err
		}
		if !applied {
			// a concurrent runner settled the ticket first
			fresh, err := s.GetTicket(ticket.Id)
			if err != nil {
				return nil, err
			}
			ticket = fresh
		}
		check.Status = ticket.Status
	}
	return check, nil
}

// CommitVerdict persists a scored verdict. The update is conditioned on the
// ticket still being pending, so a concurrent runner and an on-demand check
// can never double-apply; terminal states are left untouched. It reports
// whether the transition was applied: false means another writer already
// settled the ticket and both the row and the in-memory state were left
// alone.
func (s *TicketService) CommitVerdict(ticket *model.Ticket, verdict TicketVerdict) (bool, error) {
	if verdict.Undetermined {
		return false, nil
	}

	status := model.TicketStatusLost
	updates := map[string]any{"status": model.TicketStatusLost}
	if verdict.Won {
		status = model.TicketStatusWon
		updates["status"] = model.TicketStatusWon
		updates["prize_amount"] = verdict.TotalPrize
	}

	db := database.GetDB()
	result := db.Model(model.Ticket{}).
		Where("id = ? and status = ?", ticket.Id, model.TicketStatusPending).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	ticket.Status = status
	if verdict.Won {
		ticket.PrizeAmount = verdict.TotalPrize
	}
	return true, nil
}

// CancelTicket lets the owner withdraw a pending ticket before the draw.
func (s *TicketService) CancelTicket(ticketId int64, user *model.User) error {
	ticket, err := s.GetTicket(ticketId)
	if err != nil {
		return err
	}
	if !user.IsAdmin && ticket.UserId != user.Id {
		return ErrTicketForbidden
	}
	if ticket.Status != model.TicketStatusPending {
		return common.NewErrorf("ticket %s is already %s", ticket.TicketNumber, ticket.Status)
	}

	db := database.GetDB()
	return db.Model(model.Ticket{}).
		Where("id = ? and status = ?", ticket.Id, model.TicketStatusPending).
		Update("status", model.TicketStatusCancelled).Error
}
