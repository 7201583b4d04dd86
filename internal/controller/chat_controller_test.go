package controller

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"doc-chat-be/internal/dto"
	"doc-chat-be/internal/pkg/apperror"
	"doc-chat-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

type stubChatService struct {
	reply      string
	sendErr    error
	clearErr   error
	lastSent   string
	clearCalls int
}

func (s *stubChatService) SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	s.lastSent = request.Message
	if s.sendErr != nil {
		return nil, s.sendErr
	}
	return &dto.SendChatResponse{Reply: s.reply}, nil
}

func (s *stubChatService) ClearConversation(ctx context.Context) error {
	s.clearCalls++
	return s.clearErr
}

func passthrough(c *fiber.Ctx) error { return c.Next() }

func newChatApp(svc *stubChatService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware(noopLogger{}))
	api := app.Group("/api")
	NewChatController(svc).RegisterRoutes(api, passthrough, passthrough)
	return app
}

func TestSendChatEndpoint(t *testing.T) {
	svc := &stubChatService{reply: "Paris."}
	app := newChatApp(svc)

	req := httptest.NewRequest("POST", "/api/chat/v1",
		strings.NewReader(`{"message":"What is the capital of France?"}`))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
	assert.Equal(t, "What is the capital of France?", svc.lastSent)

	var body serverutils.Response[dto.SendChatResponse]
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Equal(t, "Success send chat", body.Message)
	assert.Equal(t, "Paris.", body.Data.Reply)
}

func TestSendChatEndpointRejectsBadBodies(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		contentType string
		wantMessage string
	}{
		{name: "malformed json", body: `{"message":`, contentType: "application/json", wantMessage: "Invalid request body"},
		{name: "no content type", body: `{"message":"hi"}`, contentType: "", wantMessage: "Invalid request body"},
		{name: "missing message field", body: `{}`, contentType: "application/json", wantMessage: "Message is required"},
		{name: "empty message", body: `{"message":""}`, contentType: "application/json", wantMessage: "Message is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newChatApp(&stubChatService{reply: "unused"})

			req := httptest.NewRequest("POST", "/api/chat/v1", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}

			res, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)

			var body serverutils.Response[any]
			require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantMessage, body.Message)
		})
	}
}

func TestSendChatEndpointMapsServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "no documents", err: apperror.NoDocumentsIngested(), wantStatus: fiber.StatusNotFound},
		{name: "no relevant context", err: apperror.NoRelevantContext(), wantStatus: fiber.StatusNotFound},
		{name: "generation failed", err: apperror.Generation(assert.AnError), wantStatus: fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newChatApp(&stubChatService{sendErr: tt.err})

			req := httptest.NewRequest("POST", "/api/chat/v1",
				strings.NewReader(`{"message":"hello"}`))
			req.Header.Set("Content-Type", "application/json")

			res, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, res.StatusCode)
		})
	}
}

func TestClearEndpoint(t *testing.T) {
	svc := &stubChatService{}
	app := newChatApp(svc)

	res, err := app.Test(httptest.NewRequest("GET", "/api/chat/v1/clear", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)
	assert.Equal(t, 1, svc.clearCalls)

	var body serverutils.Response[any]
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Equal(t, "Memory cleared successfully", body.Message)
	assert.Nil(t, body.Data)
}

func TestClearEndpointMapsStoreError(t *testing.T) {
	app := newChatApp(&stubChatService{clearErr: apperror.Store(assert.AnError)})

	res, err := app.Test(httptest.NewRequest("GET", "/api/chat/v1/clear", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, res.StatusCode)
}
