package builder

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shouni/go-storyboard-kit/internal/runner"
	"github.com/shouni/go-storyboard-kit/internal/server"
	"github.com/shouni/go-storyboard-kit/pkg/adapters"
	"github.com/shouni/go-storyboard-kit/pkg/chat"
	"github.com/shouni/go-storyboard-kit/pkg/generator"
	"github.com/shouni/go-storyboard-kit/pkg/pipeline"
	"github.com/shouni/go-storyboard-kit/pkg/prompts"
	"github.com/shouni/go-storyboard-kit/pkg/publisher"
	"google.golang.org/genai"
)

const defaultGeminiTemperature = float32(0.2)

// InitializeAIClient は gemini クライアントを初期化します。
func InitializeAIClient(ctx context.Context, apiKey string) (*adapters.GeminiClient, error) {
	clientConfig := adapters.Config{
		APIKey:      apiKey,
		Temperature: genai.Ptr(defaultGeminiTemperature),
	}
	aiClient, err := adapters.NewGeminiClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}
	return aiClient, nil
}

// BuildStoryboardPipeline は場面抽出と画像生成をつないだパイプラインを構築します。
func BuildStoryboardPipeline(appCtx *AppContext) (*pipeline.StoryboardPipeline, error) {
	cfg := appCtx.Config

	pb, err := prompts.NewTextPromptBuilder()
	if err != nil {
		return nil, fmt.Errorf("プロンプトビルダーの初期化に失敗しました: %w", err)
	}
	extractor, err := generator.NewSceneExtractor(appCtx.aiClient, pb, cfg.GeminiModel)
	if err != nil {
		return nil, fmt.Errorf("SceneExtractorの初期化に失敗しました: %w", err)
	}
	renderer, err := generator.NewPanelRenderer(appCtx.aiClient, cfg.GeminiImageModel, cfg.ImageAspectRatio, cfg.ImageMimeType)
	if err != nil {
		return nil, fmt.Errorf("PanelRendererの初期化に失敗しました: %w", err)
	}
	return pipeline.NewStoryboardPipeline(extractor, renderer)
}

// BuildAssistant はチャットアシスタントを構築します。セッションは最初の送信時に作成されます。
func BuildAssistant(appCtx *AppContext) (*chat.Assistant, error) {
	return chat.NewAssistant(appCtx.aiClient, appCtx.Config.GeminiChatModel)
}

// BuildStoryboardRunner は台本の読み込みから保存までを担当する Runner を構築します。
func BuildStoryboardRunner(appCtx *AppContext, stdin io.Reader) (runner.StoryboardRunner, error) {
	p, err := BuildStoryboardPipeline(appCtx)
	if err != nil {
		return nil, err
	}
	pub, err := publisher.NewStoryboardPublisher(publisher.NewLocalWriter())
	if err != nil {
		return nil, err
	}

	opts := appCtx.Options
	return runner.NewDefaultStoryboardRunner(
		runner.ScriptSource{URL: opts.ScriptURL, File: opts.ScriptFile, Stdin: stdin},
		appCtx.httpClient,
		p,
		pub,
		publisher.Options{OutputDir: opts.OutputDir, Title: opts.Title},
		pipeline.LogProgress(slog.Default()),
	), nil
}

// BuildChatRunner は対話型チャットの Runner を構築します。
func BuildChatRunner(appCtx *AppContext, in io.Reader, out io.Writer) (runner.ChatRunner, error) {
	assistant, err := BuildAssistant(appCtx)
	if err != nil {
		return nil, fmt.Errorf("アシスタントの初期化に失敗しました: %w", err)
	}
	conv, err := chat.NewConversation(assistant)
	if err != nil {
		return nil, fmt.Errorf("会話の初期化に失敗しました: %w", err)
	}
	return runner.NewREPLChatRunner(conv, in, out), nil
}

// BuildServer は HTTP API サーバーを構築します。会話ごとに独立したアシスタントを割り当てます。
func BuildServer(appCtx *AppContext) (*server.Server, error) {
	p, err := BuildStoryboardPipeline(appCtx)
	if err != nil {
		return nil, err
	}

	return server.New(server.Config{
		Generator: p,
		NewResponder: func() (chat.Responder, error) {
			return BuildAssistant(appCtx)
		},
		SessionTTL: appCtx.Config.ChatSessionTTL,
		Registry:   prometheus.NewRegistry(),
		Logger:     slog.Default(),
	})
}
