package server

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todomaster/internal/service"
	"todomaster/internal/webhook"
)

const userCreatedBody = `{
	"type": "user.created",
	"data": {
		"id": "user_abc",
		"email_addresses": [{"id": "idn_1", "email_address": "jane@example.com"}],
		"primary_email_address_id": "idn_1"
	}
}`

// signPayload produces the three signature headers the provider would send,
// using the same HMAC scheme as the verifier.
func signPayload(t *testing.T, key []byte, msgID, body string) http.Header {
	t.Helper()
	timestamp := fmt.Sprint(time.Now().Unix())
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(msgID + "." + timestamp + "." + body))
	sig := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	h := http.Header{}
	h.Set(webhook.HeaderID, msgID)
	h.Set(webhook.HeaderTimestamp, timestamp)
	h.Set(webhook.HeaderSignature, "v1,"+sig)
	return h
}

func TestWebhook_MissingHeadersNeverReachStore(t *testing.T) {
	whSvc := &mockWebhookService{
		ProcessEventFn: func(ctx context.Context, evt service.WebhookEvent) error {
			t.Fatal("event must not be processed without signature headers")
			return nil
		},
	}

	headerSets := []http.Header{
		{},
		{webhook.HeaderID: {"msg_1"}, webhook.HeaderTimestamp: {"12345"}},
		{webhook.HeaderID: {"msg_1"}, webhook.HeaderSignature: {"v1,zzz"}},
		{webhook.HeaderTimestamp: {"12345"}, webhook.HeaderSignature: {"v1,zzz"}},
	}

	for i, headers := range headerSets {
		router := newTestServer(&Server{webhookService: whSvc})

		req := httptest.NewRequest(http.MethodPost, "/api/webhook/register", strings.NewReader(userCreatedBody))
		for k, vs := range headers {
			req.Header[http.CanonicalHeaderKey(k)] = vs
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, "header set %d", i)
	}
}

func TestWebhook_SignatureRoundTrip(t *testing.T) {
	key := []byte("0123456789abcdef0123456789abcdef")
	secret := "whsec_" + base64.StdEncoding.EncodeToString(key)
	verifier, err := webhook.NewSvixVerifier(secret)
	require.NoError(t, err)

	var processed *service.WebhookEvent
	whSvc := &mockWebhookService{
		ProcessEventFn: func(ctx context.Context, evt service.WebhookEvent) error {
			processed = &evt
			return nil
		},
	}
	router := newTestServer(&Server{webhookService: whSvc, verifier: verifier})

	req := httptest.NewRequest(http.MethodPost, "/api/webhook/register", strings.NewReader(userCreatedBody))
	req.Header = signPayload(t, key, "msg_1", userCreatedBody)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NotNil(t, processed)
	assert.Equal(t, "user.created", processed.Type)
	assert.Equal(t, "user_abc", processed.Data.ID)
}

func TestWebhook_TamperedBodyIsRejected(t *testing.T) {
	key := []byte("0123456789abcdef0123456789abcdef")
	secret := "whsec_" + base64.StdEncoding.EncodeToString(key)
	verifier, err := webhook.NewSvixVerifier(secret)
	require.NoError(t, err)

	whSvc := &mockWebhookService{
		ProcessEventFn: func(ctx context.Context, evt service.WebhookEvent) error {
			t.Fatal("tampered payload must not be processed")
			return nil
		},
	}
	router := newTestServer(&Server{webhookService: whSvc, verifier: verifier})

	tampered := strings.Replace(userCreatedBody, "jane@example.com", "eve@example.com", 1)
	req := httptest.NewRequest(http.MethodPost, "/api/webhook/register", strings.NewReader(tampered))
	req.Header = signPayload(t, key, "msg_1", userCreatedBody)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWebhook_PrimaryEmailMiss(t *testing.T) {
	whSvc := &mockWebhookService{
		ProcessEventFn: func(ctx context.Context, evt service.WebhookEvent) error {
			return service.ErrPrimaryEmailNotFound
		},
	}
	router := newTestServer(&Server{webhookService: whSvc})

	req := httptest.NewRequest(http.MethodPost, "/api/webhook/register", strings.NewReader(userCreatedBody))
	req.Header = signPayload(t, []byte("irrelevant"), "msg_1", userCreatedBody)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Primary email not found"}`, rec.Body.String())
}

func TestWebhook_CreateFailureIsRetryable(t *testing.T) {
	whSvc := &mockWebhookService{
		ProcessEventFn: func(ctx context.Context, evt service.WebhookEvent) error {
			return errors.New("connection reset")
		},
	}
	router := newTestServer(&Server{webhookService: whSvc})

	req := httptest.NewRequest(http.MethodPost, "/api/webhook/register", strings.NewReader(userCreatedBody))
	req.Header = signPayload(t, []byte("irrelevant"), "msg_1", userCreatedBody)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// 400, not 500: the provider retries failed deliveries.
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
