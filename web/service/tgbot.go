package service

import (
	"bytes"
	"fmt"
	"path"
	"time"

	"lotto-ui/config"
	"lotto-ui/database/model"
	"lotto-ui/logger"
	"lotto-ui/util/common"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var (
	bot         *tgbotapi.BotAPI
	adminChatId int64
)

var ErrTgbotNotRunning = common.NewError("telegram notifications are not configured")

// TgbotService pushes one-way notifications to the operators' chat. When no
// token is configured every send becomes a no-op.
type TgbotService struct{}

func (s *TgbotService) Start(token string, chatId int64) error {
	if token == "" || chatId == 0 {
		logger.Info("telegram notifications disabled")
		return nil
	}
	var err error
	bot, err = tgbotapi.NewBotAPI(token)
	if err != nil {
		return err
	}
	adminChatId = chatId
	logger.Infof("telegram notifications enabled on account %s", bot.Self.UserName)
	return nil
}

func (s *TgbotService) IsRunning() bool {
	return bot != nil
}

func (s *TgbotService) Stop() {
	if bot != nil {
		bot.StopReceivingUpdates()
		bot = nil
	}
}

func (s *TgbotService) SendMsgToAdmin(text string) {
	if bot == nil {
		return
	}
	msg := tgbotapi.NewMessage(adminChatId, text)
	if _, err := bot.Send(msg); err != nil {
		logger.Warning("failed to send telegram notification:", err)
	}
}

// SendBackupToAdmin uploads the checkpointed database file to the admin
// chat. The file content comes through ServerService.GetDb so the same
// validation guards both the panel download and the bot upload.
func (s *TgbotService) SendBackupToAdmin() {
	if bot == nil {
		return
	}

	var serverService ServerService
	dbData, err := serverService.GetDb()
	if err != nil {
		logger.Error("read db for backup failed:", err)
		return
	}

	s.SendMsgToAdmin(fmt.Sprintf("📦 Backup time: %s", time.Now().Format("2006-01-02 15:04:05")))
	document := tgbotapi.NewDocument(adminChatId, tgbotapi.FileReader{
		Name:   path.Base(config.GetDBPath()),
		Reader: bytes.NewReader(dbData),
	})
	if _, err := bot.Send(document); err != nil {
		logger.Error("upload backup failed:", err)
	}
}

// NotifySummary reports a finished reconciliation run to the admin chat.
func (s *TgbotService) NotifySummary(draw *model.Draw, summary *ReconcileSummary) {
	if bot == nil {
		return
	}
	text := fmt.Sprintf("🎰 Draw %s reconciled\nChecked: %d\nWon: %d\nTotal prize: %d THB",
		draw.DrawNumber, summary.Checked, summary.Won, summary.TotalPrize)
	if len(summary.Failed) > 0 {
		text += fmt.Sprintf("\n⚠️ Failed tickets: %v", summary.Failed)
	}
	s.SendMsgToAdmin(text)
}
