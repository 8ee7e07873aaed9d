package builder

import (
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-storyboard-kit/internal/config"
	"github.com/shouni/go-storyboard-kit/pkg/adapters"
)

// AIClient は Gemini との通信に必要な3つの操作をまとめたものです。
type AIClient interface {
	adapters.TextGenerator
	adapters.ImageGenerator
	adapters.ChatStarter
}

// AppContext は、アプリケーション実行に必要な共通コンテキストを保持する
// これを各Build関数に渡すことで、依存関係の注入を簡素化します。
type AppContext struct {
	Config     *config.Config          // Configは、環境変数から読み込まれたグローバルな設定です（APIキー、モデル名など）。
	Options    config.GenerateOptions  // Optionsは、コマンドラインから渡された実行時の設定です（入力元、出力先など）。
	aiClient   AIClient                // aiClient はGeminiの通信に使う共通クライアント
	httpClient httpkit.ClientInterface // httpClient は台本URLの取得に使う共通クライアント
}

// NewAppContext は AppContext の新しいインスタンスを生成する
func NewAppContext(cfg *config.Config, httpClient httpkit.ClientInterface, aiClient AIClient) AppContext {
	return AppContext{
		Config:     cfg,
		Options:    cfg.Options,
		aiClient:   aiClient,
		httpClient: httpClient,
	}
}
