package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/shouni/go-storyboard-kit/internal/config"

	"github.com/spf13/cobra"
)

// opts は全コマンドで共有する CLI フラグの値なのだ。
var opts config.GenerateOptions

var rootCmd = &cobra.Command{
	Use:   "storyboard",
	Short: "台本からAIでストーリーボードを作るツールなのだ。",
	Long: `台本を場面に分割し、場面ごとの画像を生成してストーリーボードにまとめるのだ。
脚本アシスタントとのチャットや HTTP API サーバーも使えるのだよ。`,
	SilenceUsage:      true,
	PersistentPreRunE: preRunAppE,
}

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags(rootCmd *cobra.Command) {
	// --- AIモデル・挙動設定 ---
	rootCmd.PersistentFlags().StringVar(&opts.AIModel, "model", "", "場面抽出に使う Gemini モデル名なのだ（既定: GEMINI_MODEL）。")
	rootCmd.PersistentFlags().StringVar(&opts.ImageModel, "image-model", "", "画像生成に使うモデル名なのだ（既定: IMAGE_GEMINI_MODEL）。")
	rootCmd.PersistentFlags().StringVar(&opts.ChatModel, "chat-model", "", "チャットに使う Gemini モデル名なのだ（既定: CHAT_GEMINI_MODEL）。")
	rootCmd.PersistentFlags().StringVar(&opts.AspectRatio, "aspect-ratio", "", "パネル画像のアスペクト比なのだ（既定: IMAGE_ASPECT_RATIO）。")
	rootCmd.PersistentFlags().DurationVar(&opts.HTTPTimeout, "http-timeout", config.DefaultHTTPTimeout, "台本URL取得のタイムアウトなのだ。")
}

// preRunAppE は、コマンド実行前に環境変数などの必須チェックを行うのだ。
func preRunAppE(cmd *cobra.Command, args []string) error {
	// Gemini APIを利用するため、APIキーの存在チェックは欠かせないのだ！
	if err := config.LoadConfig().Validate(); err != nil {
		return fmt.Errorf("エラー: %w。Gemini APIの利用には必須なのだ", err)
	}
	return nil
}

// loadConfig は環境設定を読み込み、CLI フラグで上書きするのだ。
func loadConfig() *config.Config {
	cfg := config.LoadConfig()
	cfg.ApplyOptions(opts)
	return cfg
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	addAppFlags(rootCmd)
	rootCmd.AddCommand(generateCmd, chatCmd, serveCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("コマンドの実行に失敗したのだ", "error", err)
		stop()
		os.Exit(1)
	}
}
