package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripcraft/services"
)

type ChatRequest struct {
	Message string                 `json:"message" binding:"required"`
	History []services.ChatMessage `json:"history"`
}

// ChatHandler forwards one support message to the chat producer and returns
// the reply with its classified intent and extracted entities. When the
// intent is Talk_To_Human the client is responsible for the follow-up
// "agent joining" message; the API only reports the intent.
func ChatHandler(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	ai := services.GetAIClient()
	if !ai.Enabled() {
		c.JSON(http.StatusOK, services.FallbackChatReply(req.Message))
		return
	}

	reply, err := ai.SupportChat(c.Request.Context(), req.History, req.Message)
	if err != nil {
		log.Printf("⚠️  Support chat failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "The assistant is unavailable right now. Please try again."})
		return
	}

	c.JSON(http.StatusOK, reply)
}
