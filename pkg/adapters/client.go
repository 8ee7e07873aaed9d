package adapters

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"google.golang.org/genai"
)

const jsonMIMEType = "application/json"

// Config は GeminiClient の接続設定です。
type Config struct {
	APIKey string
	// Temperature は構造化テキスト生成にのみ適用します。nil ならモデル既定値です。
	Temperature *float32
}

// GeminiClient は genai SDK を包み、構造化テキスト・画像・会話の3つの操作を提供します。
type GeminiClient struct {
	models      modelsAPI
	newChat     chatFactory
	temperature *float32
}

// NewGeminiClient は Gemini API バックエンドの genai クライアントを作成します。
func NewGeminiClient(ctx context.Context, cfg Config) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("APIKey is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	newChat := func(ctx context.Context, model string, config *genai.GenerateContentConfig) (chatAPI, error) {
		chat, err := client.Chats.Create(ctx, model, config, nil)
		if err != nil {
			return nil, err
		}
		return chat, nil
	}

	return newGeminiClient(client.Models, newChat, cfg.Temperature)
}

func newGeminiClient(models modelsAPI, newChat chatFactory, temperature *float32) (*GeminiClient, error) {
	if models == nil {
		return nil, fmt.Errorf("models API is required")
	}
	if newChat == nil {
		return nil, fmt.Errorf("chat factory is required")
	}
	return &GeminiClient{
		models:      models,
		newChat:     newChat,
		temperature: temperature,
	}, nil
}

// GenerateJSON は responseSchema で出力を制約した上でテキストを生成し、その本文を返します。
// スキーマへの適合は保証されないため、解析と検証は呼び出し側で行います。
func (c *GeminiClient) GenerateJSON(ctx context.Context, model, prompt string, schema *genai.Schema) (string, error) {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: jsonMIMEType,
		ResponseSchema:   schema,
		Temperature:      c.temperature,
	}

	resp, err := c.models.GenerateContent(ctx, model, genai.Text(prompt), config)
	if err != nil {
		return "", err
	}
	return responseText(resp)
}

// GenerateImage は画像生成モデルを呼び出し、最初の有効な画像を返します。
func (c *GeminiClient) GenerateImage(ctx context.Context, model string, req domain.ImageGenerationRequest) (*domain.ImageResponse, error) {
	n := req.NumberOfImages
	if n <= 0 {
		n = 1
	}
	config := &genai.GenerateImagesConfig{
		NumberOfImages: n,
		OutputMIMEType: req.MimeType,
		AspectRatio:    req.AspectRatio,
	}

	resp, err := c.models.GenerateImages(ctx, model, req.Prompt, config)
	if err != nil {
		return nil, err
	}
	return parseImageResponse(resp, req.MimeType)
}

// StartChat はシステム指示を設定した会話セッションを作成します。
func (c *GeminiClient) StartChat(ctx context.Context, model, systemInstruction string) (ChatSession, error) {
	config := &genai.GenerateContentConfig{}
	if systemInstruction != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		}
	}

	chat, err := c.newChat(ctx, model, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat session: %w", err)
	}
	slog.DebugContext(ctx, "Chat session created", "model", model)
	return &geminiChatSession{chat: chat}, nil
}

type geminiChatSession struct {
	chat chatAPI
}

// SendMessage は1件のメッセージを送信して応答テキストを返します。
// 以前の発言はセッション側が保持しているため再送しません。
func (s *geminiChatSession) SendMessage(ctx context.Context, text string) (string, error) {
	resp, err := s.chat.SendMessage(ctx, genai.Part{Text: text})
	if err != nil {
		return "", err
	}
	return responseText(resp)
}
