package service

import (
	"os"
	"strconv"
	"strings"
	"time"

	"lotto-ui/util/common"

	"github.com/google/uuid"
)

// SettingService resolves runtime settings from the environment. Values are
// read lazily so tests can override them per case.
type SettingService struct{}

func (s *SettingService) GetListen() (string, error) {
	return os.Getenv("LOTTO_LISTEN"), nil
}

func (s *SettingService) GetPort() (int, error) {
	portStr := os.Getenv("LOTTO_PORT")
	if portStr == "" {
		return 8080, nil
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 0, common.NewErrorf("invalid LOTTO_PORT %q", portStr)
	}
	return port, nil
}

func (s *SettingService) GetBasePath() (string, error) {
	basePath := os.Getenv("LOTTO_BASE_PATH")
	if basePath == "" {
		return "/", nil
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	if !strings.HasSuffix(basePath, "/") {
		basePath += "/"
	}
	return basePath, nil
}

// GetSecret returns the session cookie secret. Without an explicit secret
// a random one is generated, which invalidates sessions across restarts.
func (s *SettingService) GetSecret() ([]byte, error) {
	secret := os.Getenv("LOTTO_SESSION_SECRET")
	if secret == "" {
		secret = uuid.NewString()
	}
	return []byte(secret), nil
}

func (s *SettingService) GetTgBotToken() (string, error) {
	return os.Getenv("LOTTO_TG_TOKEN"), nil
}

func (s *SettingService) GetTgBotChatId() (int64, error) {
	chatIdStr := os.Getenv("LOTTO_TG_ADMIN_CHAT")
	if chatIdStr == "" {
		return 0, nil
	}
	chatId, err := strconv.ParseInt(chatIdStr, 10, 64)
	if err != nil {
		return 0, common.NewErrorf("invalid LOTTO_TG_ADMIN_CHAT %q", chatIdStr)
	}
	return chatId, nil
}

func (s *SettingService) GetTimeLocation() (*time.Location, error) {
	tz := os.Getenv("LOTTO_TIMEZONE")
	if tz == "" {
		tz = "Asia/Bangkok"
	}
	return time.LoadLocation(tz)
}
