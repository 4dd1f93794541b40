package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukenewport-prog/nptgpt/models"
	"github.com/lukenewport-prog/nptgpt/services"
)

type turnHandlerFunc func(ctx context.Context, conversationID, text, imageRef string) (services.TurnResult, error)

func (f turnHandlerFunc) HandleTurn(ctx context.Context, conversationID, text, imageRef string) (services.TurnResult, error) {
	return f(ctx, conversationID, text, imageRef)
}

func postChat(t *testing.T, handler TurnHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/api/chat", NewChatController(handler).HandleChat)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestChatController_HandleChat(t *testing.T) {
	t.Parallel()

	t.Run("returns reply and conversation id", func(t *testing.T) {
		t.Parallel()

		handler := turnHandlerFunc(func(ctx context.Context, conversationID, text, imageRef string) (services.TurnResult, error) {
			assert.Equal(t, "abc", conversationID)
			assert.Equal(t, "hi", text)
			assert.Equal(t, "/uploads/1.png", imageRef)
			return services.TurnResult{Reply: "hello", ConversationID: "abc"}, nil
		})

		w := postChat(t, handler, `{"message":"hi","imageUrl":"/uploads/1.png","conversationId":"abc"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "hello", body["reply"])
		assert.Equal(t, "abc", body["conversationId"])
	})

	t.Run("malformed JSON is a 400", func(t *testing.T) {
		t.Parallel()

		handler := turnHandlerFunc(func(ctx context.Context, conversationID, text, imageRef string) (services.TurnResult, error) {
			t.Fatal("handler should not be called")
			return services.TurnResult{}, nil
		})

		w := postChat(t, handler, `not json`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.NotEmpty(t, decodeBody(t, w)["error"])
	})

	t.Run("invalid request maps to 400", func(t *testing.T) {
		t.Parallel()

		handler := turnHandlerFunc(func(ctx context.Context, conversationID, text, imageRef string) (services.TurnResult, error) {
			return services.TurnResult{}, fmt.Errorf("%w: empty turn", models.ErrInvalidRequest)
		})

		w := postChat(t, handler, `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("content filter maps to 400 with provider details", func(t *testing.T) {
		t.Parallel()

		handler := turnHandlerFunc(func(ctx context.Context, conversationID, text, imageRef string) (services.TurnResult, error) {
			return services.TurnResult{}, &models.ContentFilteredError{Detail: "The image was flagged."}
		})

		w := postChat(t, handler, `{"message":"hi"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		body := decodeBody(t, w)
		assert.NotEmpty(t, body["error"])
		assert.Equal(t, "The image was flagged.", body["details"])
	})

	t.Run("unreadable image maps to 500", func(t *testing.T) {
		t.Parallel()

		handler := turnHandlerFunc(func(ctx context.Context, conversationID, text, imageRef string) (services.TurnResult, error) {
			return services.TurnResult{}, fmt.Errorf("%w: missing upload", models.ErrResourceUnavailable)
		})

		w := postChat(t, handler, `{"imageUrl":"/uploads/gone.png"}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("provider failure maps to 500 without detail", func(t *testing.T) {
		t.Parallel()

		handler := turnHandlerFunc(func(ctx context.Context, conversationID, text, imageRef string) (services.TurnResult, error) {
			return services.TurnResult{}, fmt.Errorf("%w: 429 from upstream with key sk-secret", models.ErrProvider)
		})

		w := postChat(t, handler, `{"message":"hi"}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		body := decodeBody(t, w)
		assert.NotContains(t, body["error"], "sk-secret")
		assert.Empty(t, body["details"])
	})
}
