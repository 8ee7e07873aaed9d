package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shouni/go-storyboard-kit/pkg/chat"
	"github.com/shouni/go-storyboard-kit/pkg/domain"
)

const (
	msgSessionNotFound = "Chat session not found."
	msgEmptyMessage    = "Message cannot be empty."
	msgMessageTooLong  = "Message is too long."
	msgChatUnavailable = "Chat is currently unavailable."
)

type createChatResponse struct {
	ID       string               `json:"id"`
	Messages []domain.ChatMessage `json:"messages"`
}

type messagesResponse struct {
	Messages []domain.ChatMessage `json:"messages"`
}

type sendMessageRequest struct {
	Text string `json:"text"`
}

type sendMessageResponse struct {
	Reply    string               `json:"reply"`
	Messages []domain.ChatMessage `json:"messages"`
}

// handleCreateChat は訪問者ごとの会話を作成し、挨拶を含むログを返します。
func (s *Server) handleCreateChat(c *gin.Context) {
	responder, err := s.newChat()
	if err != nil {
		s.logger.ErrorContext(c.Request.Context(), "Failed to create chat responder", "error", err)
		c.JSON(http.StatusServiceUnavailable, errorResponse{Error: msgChatUnavailable})
		return
	}

	conv, err := chat.NewConversation(responder)
	if err != nil {
		s.logger.ErrorContext(c.Request.Context(), "Failed to create conversation", "error", err)
		c.JSON(http.StatusServiceUnavailable, errorResponse{Error: msgChatUnavailable})
		return
	}
	conv.Open()
	id := s.sessions.Add(conv)

	c.JSON(http.StatusCreated, createChatResponse{ID: id, Messages: conv.Messages()})
}

func (s *Server) handleListMessages(c *gin.Context) {
	conv, ok := s.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, errorResponse{Error: msgSessionNotFound})
		return
	}
	c.JSON(http.StatusOK, messagesResponse{Messages: conv.Messages()})
}

// handleSendMessage は発言を送信します。応答の失敗時もお詫びを reply として 200 で返します。
func (s *Server) handleSendMessage(c *gin.Context) {
	conv, ok := s.sessions.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, errorResponse{Error: msgSessionNotFound})
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: msgInvalidBody})
		return
	}
	if domain.IsBlank(req.Text) {
		c.JSON(http.StatusBadRequest, errorResponse{Error: msgEmptyMessage})
		return
	}
	if len(req.Text) > maxMessageBytes {
		c.JSON(http.StatusBadRequest, errorResponse{Error: msgMessageTooLong})
		return
	}

	reply, err := conv.Send(c.Request.Context(), req.Text)
	if err != nil {
		s.metrics.observeChat(resultFailure)
	} else {
		s.metrics.observeChat(resultSuccess)
	}

	c.JSON(http.StatusOK, sendMessageResponse{Reply: reply, Messages: conv.Messages()})
}
