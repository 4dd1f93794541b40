package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lukenewport-prog/nptgpt/models"
	"github.com/lukenewport-prog/nptgpt/services"
)

// TurnHandler runs one chat turn and reports the reply plus the
// conversation it belongs to.
type TurnHandler interface {
	HandleTurn(ctx context.Context, conversationID, text, imageRef string) (services.TurnResult, error)
}

type ChatController struct {
	chat TurnHandler
}

func NewChatController(chat TurnHandler) *ChatController {
	return &ChatController{chat: chat}
}

func (ct *ChatController) HandleChat(c *gin.Context) {
	var request struct {
		Message        string `json:"message"`
		ImageURL       string `json:"imageUrl"`
		ConversationID string `json:"conversationId"`
	}
	if err := c.BindJSON(&request); err != nil {
		log.Printf("Error binding JSON: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result, err := ct.chat.HandleTurn(c.Request.Context(), request.ConversationID, request.Message, request.ImageURL)
	if err != nil {
		log.Printf("Error handling chat turn: %v", err)
		respondChatError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reply":          result.Reply,
		"conversationId": result.ConversationID,
	})
}

// respondChatError maps a turn failure onto the HTTP error surface. The
// provider's content-filter detail is the only internal detail passed
// through to the client.
func respondChatError(c *gin.Context, err error) {
	var filtered *models.ContentFilteredError
	switch {
	case errors.As(err, &filtered):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "This request was filtered due to the provider's content management policy. Please try a different message or image.",
			"details": filtered.Detail,
		})
	case errors.Is(err, models.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": "A message or image is required"})
	case errors.Is(err, models.ErrResourceUnavailable):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read the referenced image"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while processing your request."})
	}
}
