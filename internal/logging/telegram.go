package logging

import (
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"

	"vtex-sankhya-sync/internal/config"
)

// NotifierService is the fire-and-forget side channel for terminal
// pipeline outcomes. Send errors are swallowed: a lost notification
// must never fail a sync.
type NotifierService interface {
	Notify(value string)
	NotifyError(value string)
	NotifySuccess(value string)
}

type telegramNotifier struct {
	creds  config.TelegramBotConfig
	client *resty.Client
}

type telegramRequest struct {
	ChatId string `json:"chat_id"`
	Text   string `json:"text"`
}

const (
	iconInfo    = "ℹ️"
	iconError   = "❌"
	iconSuccess = "✅"

	telegramBaseUrl = "https://api.telegram.org"
)

// NewNotifier returns nil when credentials are missing; the nil receiver
// is safe to call and does nothing.
func NewNotifier(creds config.TelegramBotConfig, client *resty.Client) NotifierService {
	if creds.ChatId == "" || creds.Token == "" {
		return (*telegramNotifier)(nil)
	}
	return &telegramNotifier{creds: creds, client: client}
}

func (n *telegramNotifier) Notify(value string) {
	if n == nil {
		return
	}
	_ = n.sendRequest(formatMessage(iconInfo, "INFO", value))
}

func (n *telegramNotifier) NotifyError(value string) {
	if n == nil {
		return
	}
	_ = n.sendRequest(formatMessage(iconError, "ERROR", value))
}

func (n *telegramNotifier) NotifySuccess(value string) {
	if n == nil {
		return
	}
	_ = n.sendRequest(formatMessage(iconSuccess, "SUCCESS", value))
}

func formatMessage(icon, level, value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		v = "-"
	}
	return fmt.Sprintf("%s %s: %s", icon, level, v)
}

func (n *telegramNotifier) sendRequest(value string) error {
	url := fmt.Sprintf("%s/bot%s/sendMessage", telegramBaseUrl, n.creds.Token)

	resp, err := n.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(telegramRequest{ChatId: n.creds.ChatId, Text: value}).
		Post(url)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("telegram send failed: %s", resp.Status())
	}
	return nil
}
