package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-storyboard-kit/internal/builder"
	"github.com/shouni/go-storyboard-kit/internal/config"
)

// ExecuteGenerate は、台本を読み込んでストーリーボードを生成し、成果物を保存するのだ。
func ExecuteGenerate(ctx context.Context, cfg *config.Config, stdin io.Reader) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	storyboardRunner, err := builder.BuildStoryboardRunner(appCtx, stdin)
	if err != nil {
		return fmt.Errorf("StoryboardRunnerの構築に失敗したのだ: %w", err)
	}

	result, err := storyboardRunner.Run(ctx)
	if err != nil {
		return fmt.Errorf("ストーリーボードの生成に失敗したのだ: %w", err)
	}

	slog.Info("ストーリーボードが完成したのだ！",
		"panels", len(result.ImagePaths),
		"json", result.JSONPath,
		"markdown", result.MarkdownPath,
	)
	return nil
}

// ExecuteChat は、標準入出力で脚本アシスタントと対話するのだ。
func ExecuteChat(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	chatRunner, err := builder.BuildChatRunner(appCtx, in, out)
	if err != nil {
		return fmt.Errorf("ChatRunnerの構築に失敗したのだ: %w", err)
	}
	return chatRunner.Run(ctx)
}

// ExecuteServe は、HTTP API サーバーを起動して ctx が終わるまで待つのだ。
func ExecuteServe(ctx context.Context, cfg *config.Config, opts config.ServeOptions) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	srv, err := builder.BuildServer(appCtx)
	if err != nil {
		return fmt.Errorf("HTTPサーバーの構築に失敗したのだ: %w", err)
	}

	addr := opts.Addr
	if addr == "" {
		addr = cfg.HTTPAddr
	}
	return srv.Run(ctx, addr)
}

// setupAppContext は、設定から共有クライアントを初期化してアプリケーションコンテキストを返すのだ。
func setupAppContext(ctx context.Context, cfg *config.Config) (*builder.AppContext, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	timeout := cfg.Options.HTTPTimeout
	if timeout <= 0 {
		timeout = config.DefaultHTTPTimeout
	}
	httpClient := httpkit.New(timeout)

	aiClient, err := builder.InitializeAIClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create ai client: %w", err)
	}

	appCtx := builder.NewAppContext(cfg, httpClient, aiClient)
	return &appCtx, nil
}
