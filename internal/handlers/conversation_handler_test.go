package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appforge-pipeline/internal/models"
	"appforge-pipeline/internal/pkg/logger"
)

type mockService struct {
	processFn func(ctx context.Context, conversationID, userID, text string) (*models.TurnResponse, error)
	statusFn  func(ctx context.Context, conversationID string) (*models.ConversationSnapshot, error)
	resetFn   func(ctx context.Context, conversationID string) error
	healthErr error
}

func (m *mockService) ProcessMessage(ctx context.Context, conversationID, userID, text string) (*models.TurnResponse, error) {
	return m.processFn(ctx, conversationID, userID, text)
}

func (m *mockService) GetStatus(ctx context.Context, conversationID string) (*models.ConversationSnapshot, error) {
	return m.statusFn(ctx, conversationID)
}

func (m *mockService) Reset(ctx context.Context, conversationID string) error {
	return m.resetFn(ctx, conversationID)
}

func (m *mockService) Stats() map[string]interface{} {
	return map[string]interface{}{"processed_turns": int64(3)}
}

func (m *mockService) HealthCheck(ctx context.Context) error {
	return m.healthErr
}

func newTestRouter(svc ConversationAPI) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewConversationHandler(svc, logger.NewNop()).RegisterRoutes(router)
	return router
}

func TestPostMessage(t *testing.T) {
	svc := &mockService{
		processFn: func(ctx context.Context, conversationID, userID, text string) (*models.TurnResponse, error) {
			assert.Equal(t, "conv-1", conversationID)
			assert.Equal(t, "user-1", userID)
			return &models.TurnResponse{
				ConversationID:       conversationID,
				Reply:                "What kind of app do you want to build?",
				Stage:                models.StageInitial,
				CompletionPercentage: 0,
			}, nil
		},
	}
	router := newTestRouter(svc)

	body, _ := json.Marshal(models.TurnRequest{UserID: "user-1", Text: "hello there"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/conversations/conv-1/messages", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.TurnResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "conv-1", resp.ConversationID)
	assert.NotEmpty(t, resp.Reply)
}

func TestPostMessageRejectsBadBody(t *testing.T) {
	router := newTestRouter(&mockService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/conversations/conv-1/messages",
		bytes.NewReader([]byte(`{"user_id": "u"}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostMessageMapsErrorKinds(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", models.NewValidationError("EMPTY_MESSAGE", "message text must not be empty"), http.StatusBadRequest},
		{"external", models.NewExternalError("STORE_UNAVAILABLE", "store unreachable"), http.StatusServiceUnavailable},
		{"internal", models.NewInternalError("BOOM", "unexpected"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{
				processFn: func(ctx context.Context, conversationID, userID, text string) (*models.TurnResponse, error) {
					return nil, tt.err
				},
			}
			router := newTestRouter(svc)

			body, _ := json.Marshal(models.TurnRequest{UserID: "u", Text: "hi there"})
			req := httptest.NewRequest(http.MethodPost, "/api/v1/conversations/conv-1/messages", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestGetStatus(t *testing.T) {
	svc := &mockService{
		statusFn: func(ctx context.Context, conversationID string) (*models.ConversationSnapshot, error) {
			return &models.ConversationSnapshot{
				Context: models.NewConversationContext(),
				State:   models.NewConversationState(),
			}, nil
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/conversations/conv-9", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "conv-9")
}

func TestResetNotFound(t *testing.T) {
	svc := &mockService{
		resetFn: func(ctx context.Context, conversationID string) error {
			return models.NewNotFoundError("CONVERSATION_NOT_FOUND", "conversation does not exist")
		},
	}
	router := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/conversations/nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	router := newTestRouter(&mockService{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	unhealthy := newTestRouter(&mockService{healthErr: models.NewExternalError("STORE_UNAVAILABLE", "down")})
	rec = httptest.NewRecorder()
	unhealthy.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestStats(t *testing.T) {
	router := newTestRouter(&mockService{})

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "processed_turns")
}
