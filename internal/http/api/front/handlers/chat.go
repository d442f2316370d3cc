package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/arkadasai/demo-api/internal/chat"
	"github.com/gin-gonic/gin"
)

// ChatHandler serves chat message sends.
type ChatHandler struct {
	replyDelay time.Duration
}

// NewChatHandler constructs a ChatHandler. replyDelay simulates model
// latency; zero answers immediately.
func NewChatHandler(replyDelay time.Duration) *ChatHandler {
	return &ChatHandler{replyDelay: replyDelay}
}

// chatRequest defines the request body for chat sends.
type chatRequest struct {
	Message string `json:"message"`
	Persona string `json:"persona"`
}

// Send fabricates an assistant reply. No state is mutated.
func (h *ChatHandler) Send(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	var body chatRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	reply, errReply := chat.Reply(body.Message, body.Persona, user.Plan)
	if errReply != nil {
		if errors.Is(errReply, chat.ErrEmptyMessage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing message"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reply failed"})
		return
	}

	if h.replyDelay > 0 {
		select {
		case <-time.After(h.replyDelay):
		case <-c.Request.Context().Done():
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"reply":     reply,
		"user_plan": user.Plan,
	})
}
