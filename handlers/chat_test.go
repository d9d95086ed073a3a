package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripcraft/services"
)

// Without a GEMINI_API_KEY the chat endpoint serves the offline fallback;
// that path is fully testable.
func chatRouter(t *testing.T) *gin.Engine {
	t.Setenv("GEMINI_API_KEY", "")
	services.InitAI()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/chat", ChatHandler)
	return r
}

func TestChatHandler_FallbackReply(t *testing.T) {
	r := chatRouter(t)

	w := postJSON(t, r, "/api/chat", ChatRequest{Message: "I want a refund for TX5521"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var reply services.ChatReply
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reply))

	assert.Equal(t, services.IntentRefund, reply.Intent)
	assert.Equal(t, "TX5521", reply.Entities.BookingID)
	assert.NotEmpty(t, reply.Text)
}

func TestChatHandler_EscalationIntent(t *testing.T) {
	r := chatRouter(t)

	w := postJSON(t, r, "/api/chat", ChatRequest{
		Message: "This is useless, get me a human agent",
		History: []services.ChatMessage{
			{Role: "user", Text: "where is my booking"},
			{Role: "model", Text: "Your booking is confirmed."},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var reply services.ChatReply
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reply))
	assert.Equal(t, services.IntentTalkToHuman, reply.Intent)
}

func TestChatHandler_RequiresMessage(t *testing.T) {
	r := chatRouter(t)

	w := postJSON(t, r, "/api/chat", ChatRequest{Message: ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
