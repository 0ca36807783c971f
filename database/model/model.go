package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"lotto-ui/util/common"
)

type DrawRound string

const (
	DrawRoundMorning   DrawRound = "morning"
	DrawRoundAfternoon DrawRound = "afternoon"
	DrawRoundEvening   DrawRound = "evening"
)

type DrawStatus string

const (
	DrawStatusPending   DrawStatus = "pending"
	DrawStatusCompleted DrawStatus = "completed"
	DrawStatusCancelled DrawStatus = "cancelled"
)

type TicketStatus string

const (
	TicketStatusPending   TicketStatus = "pending"
	TicketStatusWon       TicketStatus = "won"
	TicketStatusLost      TicketStatus = "lost"
	TicketStatusCancelled TicketStatus = "cancelled"
)

type BetType string

const (
	BetTypeStraight BetType = "straight"
	BetTypeRunning  BetType = "running"
	BetTypeTod      BetType = "tod"
)

// PrizeTier identifies which prize a bet matched. Empty means no prize.
type PrizeTier string

const (
	PrizeTierFirst      PrizeTier = "firstPrize"
	PrizeTierSecond     PrizeTier = "secondPrize"
	PrizeTierThird      PrizeTier = "thirdPrize"
	PrizeTierFourth     PrizeTier = "fourthPrize"
	PrizeTierFifth      PrizeTier = "fifthPrize"
	PrizeTierFrontThree PrizeTier = "frontThreeDigits"
	PrizeTierBackThree  PrizeTier = "backThreeDigits"
	PrizeTierFrontTwo   PrizeTier = "frontTwoDigits"
	PrizeTierBackTwo    PrizeTier = "backTwoDigits"
	PrizeTierNone       PrizeTier = ""
)

type User struct {
	Id         int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Username   string `json:"username" gorm:"type:varchar(64);not null;uniqueIndex"`
	Password   string `json:"-" gorm:"type:varchar(255);not null"`
	TotpSecret string `json:"-" gorm:"type:varchar(64)"`
	IsAdmin    bool   `json:"isAdmin"`
}

type Draw struct {
	Id          int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	DrawNumber  string     `json:"drawNumber" gorm:"type:varchar(32);not null;uniqueIndex"`
	DrawDate    time.Time  `json:"drawDate" gorm:"index"`
	Round       DrawRound  `json:"round" gorm:"type:varchar(16);not null;default:'morning'"`
	Status      DrawStatus `json:"status" gorm:"type:varchar(16);not null;default:'pending'"`
	Description string     `json:"description" gorm:"type:varchar(255)"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// BetEntry is one purchased number inside a ticket. The number is kept as a
// digit string so leading zeros survive storage and the wire format.
type BetEntry struct {
	Number  string  `json:"number"`
	BetType BetType `json:"betType"`
}

// BetEntries is stored as a JSON text column.
type BetEntries []BetEntry

func (e BetEntries) Value() (driver.Value, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (e *BetEntries) Scan(value any) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, e)
	case string:
		return json.Unmarshal([]byte(v), e)
	case nil:
		*e = nil
		return nil
	default:
		return common.NewErrorf("unsupported bet entries column type %T", value)
	}
}

type Ticket struct {
	Id           int64        `json:"id" gorm:"primaryKey;autoIncrement"`
	TicketNumber string       `json:"ticketNumber" gorm:"type:varchar(32);not null;uniqueIndex"`
	UserId       int64        `json:"user" gorm:"index;not null"`
	DrawId       int64        `json:"draw" gorm:"index;not null"`
	Numbers      BetEntries   `json:"numbers" gorm:"type:text;not null"`
	Amount       int64        `json:"amount" gorm:"not null"`
	Status       TicketStatus `json:"status" gorm:"type:varchar(16);not null;default:'pending'"`
	PrizeAmount  int64        `json:"prizeAmount" gorm:"not null;default:0"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// NumberList is a set of winning numbers stored as a JSON text column.
type NumberList []string

func (l NumberList) Value() (driver.Value, error) {
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (l *NumberList) Scan(value any) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	case nil:
		*l = nil
		return nil
	default:
		return common.NewErrorf("unsupported number list column type %T", value)
	}
}

// Contains reports set membership. Numbers are opaque digit strings, so the
// comparison is exact, never numeric.
func (l NumberList) Contains(number string) bool {
	for _, n := range l {
		if n == number {
			return true
		}
	}
	return false
}

// Result holds the official winning numbers of one draw. At most one result
// exists per draw, enforced by the unique index on DrawId.
type Result struct {
	Id               int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	DrawId           int64      `json:"draw" gorm:"not null;uniqueIndex"`
	FirstPrize       string     `json:"firstPrize" gorm:"type:varchar(6);not null"`
	SecondPrize      NumberList `json:"secondPrize" gorm:"type:text"`
	ThirdPrize       NumberList `json:"thirdPrize" gorm:"type:text"`
	FourthPrize      NumberList `json:"fourthPrize" gorm:"type:text"`
	FifthPrize       NumberList `json:"fifthPrize" gorm:"type:text"`
	FrontThreeDigits NumberList `json:"frontThreeDigits" gorm:"type:text"`
	BackThreeDigits  NumberList `json:"backThreeDigits" gorm:"type:text"`
	FrontTwoDigits   NumberList `json:"frontTwoDigits" gorm:"type:text"`
	BackTwoDigits    NumberList `json:"backTwoDigits" gorm:"type:text"`
	PublishedAt      time.Time  `json:"publishedAt"`
}
