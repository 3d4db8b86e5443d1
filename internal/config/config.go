package config

import "time"

type Config struct {
	Vtex        VtexConfig
	Sankhya     SankhyaConfig
	TelegramBot TelegramBotConfig
	Log         LogConfig
}

type VtexConfig struct {
	Account  string
	BaseUrl  string // derived from Account when empty
	AppKey   string
	AppToken string
	Timeout  time.Duration
}

type SankhyaConfig struct {
	LoginUrl     string
	GatewayUrl   string
	Token        string
	AppKey       string
	Username     string
	Password     string
	Timeout      time.Duration
	Retries      int
	RetryBackoff time.Duration
}

type TelegramBotConfig struct {
	ChatId string
	Token  string
}

type LogConfig struct {
	Level string
}
