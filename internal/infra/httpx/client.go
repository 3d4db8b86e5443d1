package httpx

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// NewClient builds an outbound HTTP client sized to one vendor's
// timeout. Each adapter layers its own retry policy on top.
func NewClient(timeout time.Duration) *resty.Client {
	return resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
}
