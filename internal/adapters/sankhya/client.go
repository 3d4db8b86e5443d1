package sankhya

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"vtex-sankhya-sync/internal/adapters/sankhya/dto"
	"vtex-sankhya-sync/internal/config"
	"vtex-sankhya-sync/internal/domain/address"
)

// Client executes service envelopes against the Sankhya gateway. It
// owns exactly one bearer token; renewal is serialized behind a mutex
// so concurrent callers never race re-authentication.
type Client struct {
	http    *resty.Client
	cfg     config.SankhyaConfig
	auth    *auth
	log     *zap.Logger
	backoff time.Duration
	aliases address.AliasTable

	mu    sync.Mutex
	token string
}

func NewClient(cfg config.SankhyaConfig, httpClient *resty.Client, log *zap.Logger) *Client {
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = 5 * time.Second
	}
	return &Client{
		http:    httpClient,
		cfg:     cfg,
		auth:    &auth{cfg: cfg, client: httpClient},
		log:     log,
		backoff: backoff,
		aliases: address.DefaultAliases(),
	}
}

// Execute sends one service request. Auth failures renew the token and
// retry without spending the retry budget; timeouts and connection
// errors back off and spend one slot each; any other non-200 status is
// terminal.
func (c *Client) Execute(ctx context.Context, serviceName string, requestBody any) (dto.ServiceResponse, error) {
	payload := dto.ServiceRequest{ServiceName: serviceName, RequestBody: requestBody}
	endpoint := fmt.Sprintf("%s?serviceName=%s&outputType=json", c.cfg.GatewayUrl, url.QueryEscape(serviceName))

	var lastErr error
	attempt := 0
	renewed := false

	for attempt < c.cfg.Retries {
		token, err := c.currentToken(ctx)
		if err != nil {
			return dto.ServiceResponse{}, err
		}

		resp, err := c.http.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/json").
			SetAuthToken(token).
			SetBody(payload).
			Post(endpoint)
		if err != nil {
			attempt++
			lastErr = err
			c.log.Warn("sankhya request failed",
				zap.String("service", serviceName),
				zap.Int("attempt", attempt),
				zap.Int("retries", c.cfg.Retries),
				zap.Error(err),
			)
			if attempt == c.cfg.Retries {
				break
			}
			if serr := sleepWithContext(ctx, c.backoff); serr != nil {
				return dto.ServiceResponse{}, &RequestError{Attempts: attempt, Err: serr}
			}
			continue
		}

		switch code := resp.StatusCode(); code {
		case http.StatusOK:
			var envelope dto.ServiceResponse
			if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
				return dto.ServiceResponse{}, &ResponseFormatError{Body: string(resp.Body())}
			}
			if envelope.Status == "" && envelope.ResponseBody == nil {
				return dto.ServiceResponse{}, &ResponseFormatError{Body: string(resp.Body())}
			}
			return envelope, nil

		case http.StatusUnauthorized, http.StatusForbidden:
			if renewed {
				return dto.ServiceResponse{}, &AuthError{Reason: "renewed token rejected by gateway"}
			}
			c.log.Warn("sankhya token expired, renewing", zap.String("service", serviceName))
			c.invalidate(token)
			renewed = true

		default:
			return dto.ServiceResponse{}, &HTTPStatusError{
				StatusCode: code,
				Status:     resp.Status(),
				Body:       string(resp.Body()),
			}
		}
	}

	if lastErr == nil {
		lastErr = errors.New("no attempt was made")
	}
	return dto.ServiceResponse{}, &RequestError{Attempts: c.cfg.Retries, Err: lastErr}
}

// currentToken returns the held token, authenticating on first use.
func (c *Client) currentToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token == "" {
		token, err := c.auth.Authenticate(ctx)
		if err != nil {
			return "", err
		}
		c.token = token
	}
	return c.token, nil
}

// invalidate drops the token only if it is still the stale one, so a
// renewal done by another caller in the meantime is not thrown away.
func (c *Client) invalidate(stale string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token == stale {
		c.token = ""
	}
}

func sleepWithContext(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
