package sankhya

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-resty/resty/v2"

	"vtex-sankhya-sync/internal/config"
)

type auth struct {
	cfg    config.SankhyaConfig
	client *resty.Client
}

type loginResponse struct {
	BearerToken string `json:"bearerToken"`
}

// Authenticate exchanges the long-lived credentials for a short-lived
// bearer token. The gateway gives no expiry hint; validity lasts until
// the next 401.
func (a *auth) Authenticate(ctx context.Context) (string, error) {
	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("token", a.cfg.Token).
		SetHeader("appkey", a.cfg.AppKey).
		SetHeader("username", a.cfg.Username).
		SetHeader("password", a.cfg.Password).
		Post(a.cfg.LoginUrl)
	if err != nil {
		return "", &AuthError{Reason: "login request failed", Err: err}
	}
	if resp.StatusCode() != http.StatusOK {
		return "", &AuthError{Reason: "login rejected: " + resp.Status()}
	}

	var login loginResponse
	if err := json.Unmarshal(resp.Body(), &login); err != nil {
		return "", &AuthError{Reason: "login response is not json", Err: err}
	}
	if login.BearerToken == "" {
		return "", &AuthError{Reason: "login response carries no bearer token"}
	}
	return login.BearerToken, nil
}
