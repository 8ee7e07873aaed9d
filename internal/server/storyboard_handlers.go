package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/pipeline"
)

const (
	msgEmptyScript      = "Script cannot be empty."
	msgGenerationFailed = "Failed to generate storyboard. Please check your script or API key and try again."
	msgInvalidBody      = "Invalid request body."
)

type generateRequest struct {
	Script string `json:"script"`
}

type generateResponse struct {
	Panels []domain.Panel `json:"panels"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleGenerate はストーリーボードを生成し、全パネルをまとめて返します。
func (s *Server) handleGenerate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: msgInvalidBody})
		return
	}

	panels, err := s.generator.Generate(c.Request.Context(), req.Script, nil)
	if err != nil {
		status, msg := s.generationFailure(c, err)
		c.JSON(status, errorResponse{Error: msg})
		return
	}

	s.metrics.observeRun(resultSuccess, len(panels))
	c.JSON(http.StatusOK, generateResponse{Panels: panels})
}

// handleGenerateStream は進捗を Server-Sent Events で送り、最後に result か error を1件送ります。
// 進捗は Generate を呼んだゴルーチン上で同期的に通知されるため、そのまま書き込めます。
func (s *Server) handleGenerateStream(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: msgInvalidBody})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)

	stream := func(ev domain.ProgressEvent) {
		c.SSEvent("progress", ev)
		c.Writer.Flush()
	}
	progress := pipeline.MultiProgress(stream, pipeline.LogProgress(s.logger))

	panels, err := s.generator.Generate(c.Request.Context(), req.Script, progress)
	if err != nil {
		_, msg := s.generationFailure(c, err)
		c.SSEvent("error", errorResponse{Error: msg})
		c.Writer.Flush()
		return
	}

	s.metrics.observeRun(resultSuccess, len(panels))
	c.SSEvent("result", generateResponse{Panels: panels})
	c.Writer.Flush()
}

// generationFailure は失敗を記録し、利用者向けのステータスと汎用メッセージを返します。
// モデルの生応答などの詳細はログにのみ残します。
func (s *Server) generationFailure(c *gin.Context, err error) (int, string) {
	if errors.Is(err, domain.ErrEmptyInput) {
		s.metrics.observeRun(resultRejected, 0)
		return http.StatusBadRequest, msgEmptyScript
	}

	s.metrics.observeRun(resultFailure, 0)
	attrs := []any{"error", err}
	if raw, ok := domain.RawResponse(err); ok {
		attrs = append(attrs, "raw_response", raw)
	}
	s.logger.ErrorContext(c.Request.Context(), "Storyboard generation failed", attrs...)
	return http.StatusBadGateway, msgGenerationFailed
}
