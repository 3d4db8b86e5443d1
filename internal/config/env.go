package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Load reads the full configuration from environment variables.
// Credentials have no defaults and must be present.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SANKHYA_LOGIN_URL", "https://api.sankhya.com.br/login")
	v.SetDefault("SANKHYA_GATEWAY_URL", "https://api.sankhya.com.br/gateway/v1/mge/service.sbr")
	v.SetDefault("SANKHYA_TIMEOUT", "60s")
	v.SetDefault("SANKHYA_RETRIES", 3)
	v.SetDefault("SANKHYA_RETRY_BACKOFF", "5s")
	v.SetDefault("VTEX_TIMEOUT", "60s")
	v.SetDefault("LOG_LEVEL", "info")

	cfg := &Config{
		Vtex: VtexConfig{
			BaseUrl: v.GetString("VTEX_BASE_URL"),
			Timeout: v.GetDuration("VTEX_TIMEOUT"),
		},
		Sankhya: SankhyaConfig{
			LoginUrl:     v.GetString("SANKHYA_LOGIN_URL"),
			GatewayUrl:   v.GetString("SANKHYA_GATEWAY_URL"),
			Timeout:      v.GetDuration("SANKHYA_TIMEOUT"),
			Retries:      v.GetInt("SANKHYA_RETRIES"),
			RetryBackoff: v.GetDuration("SANKHYA_RETRY_BACKOFF"),
		},
		TelegramBot: TelegramBotConfig{
			ChatId: v.GetString("TELEGRAM_CHAT_ID"),
			Token:  v.GetString("TELEGRAM_BOT_TOKEN"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
	}

	var err error
	if cfg.Vtex.Account, err = required(v, "VTEX_ACCOUNT"); err != nil {
		return nil, err
	}
	if cfg.Vtex.AppKey, err = required(v, "VTEX_APP_KEY"); err != nil {
		return nil, err
	}
	if cfg.Vtex.AppToken, err = required(v, "VTEX_APP_TOKEN"); err != nil {
		return nil, err
	}
	if cfg.Sankhya.Token, err = required(v, "SANKHYA_TOKEN"); err != nil {
		return nil, err
	}
	if cfg.Sankhya.AppKey, err = required(v, "SANKHYA_APPKEY"); err != nil {
		return nil, err
	}
	if cfg.Sankhya.Username, err = required(v, "SANKHYA_USERNAME"); err != nil {
		return nil, err
	}
	if cfg.Sankhya.Password, err = required(v, "SANKHYA_PASSWORD"); err != nil {
		return nil, err
	}

	if cfg.Sankhya.Retries < 1 {
		return nil, fmt.Errorf("SANKHYA_RETRIES must be at least 1, got %d", cfg.Sankhya.Retries)
	}
	if cfg.Sankhya.Timeout <= 0 || cfg.Vtex.Timeout <= 0 {
		return nil, fmt.Errorf("timeouts must be positive")
	}

	return cfg, nil
}

func required(v *viper.Viper, key string) (string, error) {
	value := v.GetString(key)
	if value == "" {
		return "", fmt.Errorf("missing required env var: %s", key)
	}
	return value, nil
}
