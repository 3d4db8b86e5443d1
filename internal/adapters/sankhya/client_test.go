package sankhya

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vtex-sankhya-sync/internal/adapters/sankhya/dto"
	"vtex-sankhya-sync/internal/config"
	"vtex-sankhya-sync/internal/infra/httpx"
)

type gatewayStub struct {
	loginCalls   atomic.Int32
	gatewayCalls atomic.Int32
	tokens       []string
	handle       func(call int32, w http.ResponseWriter, r *http.Request)
}

func newGatewayStub(t *testing.T, handle func(call int32, w http.ResponseWriter, r *http.Request)) (*gatewayStub, *httptest.Server) {
	stub := &gatewayStub{
		handle: handle,
		tokens: []string{"token-1", "token-2", "token-3", "token-4"},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		call := stub.loginCalls.Add(1)
		token := stub.tokens[(call-1)%int32(len(stub.tokens))]
		_ = json.NewEncoder(w).Encode(map[string]string{"bearerToken": token})
	})
	mux.HandleFunc("/gateway", func(w http.ResponseWriter, r *http.Request) {
		stub.handle(stub.gatewayCalls.Add(1), w, r)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return stub, srv
}

func testClient(t *testing.T, srvURL string, retries int, timeout time.Duration) *Client {
	cfg := config.SankhyaConfig{
		LoginUrl:     srvURL + "/login",
		GatewayUrl:   srvURL + "/gateway",
		Token:        "long-lived",
		AppKey:       "appkey",
		Username:     "user",
		Password:     "pass",
		Timeout:      timeout,
		Retries:      retries,
		RetryBackoff: time.Millisecond,
	}
	return NewClient(cfg, httpx.NewClient(timeout), zap.NewNop())
}

func writeEnvelope(w http.ResponseWriter, status, message string, body any) {
	raw, _ := json.Marshal(body)
	_ = json.NewEncoder(w).Encode(dto.ServiceResponse{
		Status:        status,
		StatusMessage: message,
		ResponseBody:  raw,
	})
}

func TestExecuteReauthenticatesOn401WithoutSpendingRetryBudget(t *testing.T) {
	stub, srv := newGatewayStub(t, func(call int32, w http.ResponseWriter, r *http.Request) {
		switch call {
		case 1:
			w.WriteHeader(http.StatusUnauthorized)
		default:
			assert.Equal(t, "Bearer token-2", r.Header.Get("Authorization"))
			writeEnvelope(w, "0", "", map[string]string{"ok": "yes"})
		}
	})

	// Retry budget of one: the 401 round must not consume it.
	client := testClient(t, srv.URL, 1, time.Second)

	resp, err := client.Execute(context.Background(), "DatasetSP.save", map[string]string{})
	require.NoError(t, err)
	assert.True(t, resp.Accepted())
	assert.EqualValues(t, 2, stub.loginCalls.Load(), "lazy auth plus exactly one renewal")
	assert.EqualValues(t, 2, stub.gatewayCalls.Load())
}

func TestExecuteConcurrentRenewalSharesOneLogin(t *testing.T) {
	// The first token is expired from the gateway's point of view; any
	// renewed token is accepted. Racing callers must converge on a
	// single renewal instead of each clearing the token for the others.
	stub, srv := newGatewayStub(t, func(call int32, w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Bearer token-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		writeEnvelope(w, "0", "", map[string]string{"ok": "yes"})
	})
	client := testClient(t, srv.URL, 3, time.Second)

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = client.Execute(context.Background(), "CRUDServiceProvider.loadRecords", nil)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "worker %d", i)
	}
	assert.EqualValues(t, 2, stub.loginCalls.Load(), "lazy auth plus one renewal shared by all workers")
}

func TestExecutePersistentAuthRejectionIsAuthError(t *testing.T) {
	stub, srv := newGatewayStub(t, func(call int32, w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	client := testClient(t, srv.URL, 3, time.Second)

	_, err := client.Execute(context.Background(), "DatasetSP.save", nil)
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.EqualValues(t, 2, stub.loginCalls.Load())
}

func TestExecuteRetriesTimeoutsThenFailsTerminal(t *testing.T) {
	stub, srv := newGatewayStub(t, func(call int32, w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	})
	client := testClient(t, srv.URL, 3, 50*time.Millisecond)

	_, err := client.Execute(context.Background(), "CRUDServiceProvider.loadRecords", nil)
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, 3, reqErr.Attempts)
	assert.EqualValues(t, 3, stub.gatewayCalls.Load(), "exactly retries attempts")
}

func TestExecuteOtherHTTPStatusIsTerminal(t *testing.T) {
	stub, srv := newGatewayStub(t, func(call int32, w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	})
	client := testClient(t, srv.URL, 3, time.Second)

	_, err := client.Execute(context.Background(), "CACSP.incluirNota", nil)
	var httpErr *HTTPStatusError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	assert.Contains(t, httpErr.Body, "boom")
	assert.EqualValues(t, 1, stub.gatewayCalls.Load(), "no retry on plain http errors")
}

func TestExecuteNonEnvelopeBodyIsFormatError(t *testing.T) {
	_, srv := newGatewayStub(t, func(call int32, w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"unexpected":"shape"}`))
	})
	client := testClient(t, srv.URL, 3, time.Second)

	_, err := client.Execute(context.Background(), "DatasetSP.save", nil)
	var fmtErr *ResponseFormatError
	require.ErrorAs(t, err, &fmtErr)
}

func TestExecuteBusinessRejectionIsNotAnError(t *testing.T) {
	_, srv := newGatewayStub(t, func(call int32, w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, "3", "Parceiro inválido", nil)
	})
	client := testClient(t, srv.URL, 3, time.Second)

	resp, err := client.Execute(context.Background(), "DatasetSP.save", nil)
	require.NoError(t, err)
	assert.False(t, resp.Accepted())
	assert.Equal(t, "Parceiro inválido", resp.StatusMessage)
}

func TestAuthenticateWithoutBearerTokenFails(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := testClient(t, srv.URL, 3, time.Second)
	_, err := client.Execute(context.Background(), "DatasetSP.save", nil)
	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
}
