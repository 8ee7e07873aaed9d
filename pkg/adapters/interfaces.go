package adapters

import (
	"context"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"google.golang.org/genai"
)

// TextGenerator はスキーマ制約付きで JSON テキストを生成します。
type TextGenerator interface {
	GenerateJSON(ctx context.Context, model, prompt string, schema *genai.Schema) (string, error)
}

// ImageGenerator はプロンプトから画像を1枚生成します。
type ImageGenerator interface {
	GenerateImage(ctx context.Context, model string, req domain.ImageGenerationRequest) (*domain.ImageResponse, error)
}

// ChatStarter はシステム指示付きの会話セッションを作成します。
type ChatStarter interface {
	StartChat(ctx context.Context, model, systemInstruction string) (ChatSession, error)
}

// ChatSession はプロバイダ側で文脈を保持する会話ハンドルです。
type ChatSession interface {
	SendMessage(ctx context.Context, text string) (string, error)
}

// modelsAPI は *genai.Models のうち本パッケージが利用する操作です。
type modelsAPI interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	GenerateImages(ctx context.Context, model, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error)
}

// chatAPI は *genai.Chat のうち本パッケージが利用する操作です。
type chatAPI interface {
	SendMessage(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

type chatFactory func(ctx context.Context, model string, config *genai.GenerateContentConfig) (chatAPI, error)
