package service

import (
	"lotto-ui/database/model"
)

// Government-style payout multipliers, in baht per 1 baht staked. The order
// of this table is the matching priority: a bet is paid on the first tier it
// hits and never stacks onto lower tiers.
type prizeRule struct {
	tier         model.PrizeTier
	multiplier   int64
	straightOnly bool
	cut          func(number string) string
	pool         func(result *model.Result) model.NumberList
}

func fullNumber(number string) string { return number }

var prizeTable = []prizeRule{
	{
		tier:         model.PrizeTierFirst,
		multiplier:   6_000_000,
		straightOnly: true,
		cut:          fullNumber,
		pool: func(r *model.Result) model.NumberList {
			return model.NumberList{r.FirstPrize}
		},
	},
	{
		tier:         model.PrizeTierSecond,
		multiplier:   200_000,
		straightOnly: true,
		cut:          fullNumber,
		pool:         func(r *model.Result) model.NumberList { return r.SecondPrize },
	},
	{
		tier:         model.PrizeTierThird,
		multiplier:   80_000,
		straightOnly: true,
		cut:          fullNumber,
		pool:         func(r *model.Result) model.NumberList { return r.ThirdPrize },
	},
	{
		tier:         model.PrizeTierFourth,
		multiplier:   40_000,
		straightOnly: true,
		cut:          fullNumber,
		pool:         func(r *model.Result) model.NumberList { return r.FourthPrize },
	},
	{
		tier:         model.PrizeTierFifth,
		multiplier:   20_000,
		straightOnly: true,
		cut:          fullNumber,
		pool:         func(r *model.Result) model.NumberList { return r.FifthPrize },
	},
	{
		tier:       model.PrizeTierFrontThree,
		multiplier: 4_000,
		cut:        func(number string) string { return number[0:3] },
		pool:       func(r *model.Result) model.NumberList { return r.FrontThreeDigits },
	},
	{
		tier:       model.PrizeTierBackThree,
		multiplier: 4_000,
		cut:        func(number string) string { return number[3:6] },
		pool:       func(r *model.Result) model.NumberList { return r.BackThreeDigits },
	},
	{
		tier:       model.PrizeTierFrontTwo,
		multiplier: 2_000,
		cut:        func(number string) string { return number[0:2] },
		pool:       func(r *model.Result) model.NumberList { return r.FrontTwoDigits },
	},
	{
		tier:       model.PrizeTierBackTwo,
		multiplier: 2_000,
		cut:        func(number string) string { return number[4:6] },
		pool:       func(r *model.Result) model.NumberList { return r.BackTwoDigits },
	},
}

// BetVerdict is the outcome of matching one bet entry against a result.
type BetVerdict struct {
	Number      string          `json:"number"`
	BetType     model.BetType   `json:"betType"`
	Won         bool            `json:"won"`
	PrizeAmount int64           `json:"prizeAmount"`
	PrizeTier   model.PrizeTier `json:"prizeTier,omitempty"`
}

// TicketVerdict is the aggregate outcome of one ticket. Undetermined is set
// when the draw has no published result yet, which must be distinguishable
// from a genuine loss.
type TicketVerdict struct {
	Won          bool         `json:"won"`
	TotalPrize   int64        `json:"totalPrize"`
	Undetermined bool         `json:"undetermined"`
	Numbers      []BetVerdict `json:"checkedNumbers"`
}

// PrizeService scores tickets against published results. It is pure: no
// I/O, no shared state, safe for concurrent use.
type PrizeService struct{}

// MatchBet scores a single bet entry. amount is the stake per bet in baht.
func (s *PrizeService) MatchBet(bet model.BetEntry, amount int64, result *model.Result) BetVerdict {
	verdict := BetVerdict{
		Number:  bet.Number,
		BetType: bet.BetType,
	}
	if bet.BetType == model.BetTypeTod {
		// tod bets are accepted at purchase time but have no payout rule
		// yet, so they always score zero. Pending product clarification.
		return verdict
	}
	for _, rule := range prizeTable {
		if rule.straightOnly && bet.BetType != model.BetTypeStraight {
			continue
		}
		if rule.pool(result).Contains(rule.cut(bet.Number)) {
			verdict.Won = true
			verdict.PrizeTier = rule.tier
			verdict.PrizeAmount = amount * rule.multiplier
			return verdict
		}
	}
	return verdict
}

// MatchTicket scores every bet entry of a ticket independently and sums the
// per-bet prizes. A nil result yields the undetermined verdict.
func (s *PrizeService) MatchTicket(ticket *model.Ticket, result *model.Result) TicketVerdict {
	if result == nil {
		return TicketVerdict{Undetermined: true}
	}

	verdict := TicketVerdict{
		Numbers: make([]BetVerdict, 0, len(ticket.Numbers)),
	}
	for _, bet := range ticket.Numbers {
		betVerdict := s.MatchBet(bet, ticket.Amount, result)
		verdict.Numbers = append(verdict.Numbers, betVerdict)
		verdict.TotalPrize += betVerdict.PrizeAmount
	}
	verdict.Won = verdict.TotalPrize > 0
	return verdict
}
