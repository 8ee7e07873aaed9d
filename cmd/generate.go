package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/shouni/go-storyboard-kit/internal/config"
	"github.com/shouni/go-storyboard-kit/internal/pipeline"
	"github.com/shouni/go-storyboard-kit/internal/runner"

	"github.com/spf13/cobra"
)

// generateCmd は、台本からストーリーボードを生成するのだ。
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "台本からストーリーボードを生成しますなのだ。",
	Long: `台本を解析して場面に分割し、場面ごとの画像を並列に生成するのだ。
出力は画像ファイル（パネル）と storyboard.json / storyboard.md になるのだよ。`,
	RunE: generateCommand,
}

func init() {
	generateCmd.Flags().StringVarP(&opts.ScriptURL, "script-url", "u", "", "台本を取得するURLなのだ。")
	generateCmd.Flags().StringVarP(&opts.ScriptFile, "script-file", "f", "", "台本ファイルのパス（'-'で標準入力なのだ）。")
	generateCmd.Flags().StringVarP(&opts.OutputDir, "output-dir", "o", config.DefaultOutputDir, "成果物を保存するディレクトリなのだ。")
	generateCmd.Flags().StringVarP(&opts.Title, "title", "t", "", "ストーリーボードのタイトルなのだ。")
}

func generateCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// 1. 必須チェック
	if opts.ScriptURL == "" && opts.ScriptFile == "" {
		if !isStdin() {
			return fmt.Errorf("ソース（--script-url または --script-file）を指定してほしいのだ")
		}
		opts.ScriptFile = runner.StdinPath
	}

	// 2. 環境変数等から基本設定をロードするのだ
	cfg := loadConfig()

	slog.Info("ストーリーボード生成パイプラインを起動するのだ！",
		"text_model", cfg.GeminiModel,
		"image_model", cfg.GeminiImageModel,
		"aspect_ratio", cfg.ImageAspectRatio,
		"output", opts.OutputDir)

	// 3. パイプラインを実行するのだ
	if err := pipeline.ExecuteGenerate(ctx, cfg, cmd.InOrStdin()); err != nil {
		return fmt.Errorf("パイプライン実行中にエラーが発生したのだ: %w", err)
	}

	slog.Info("すべての生成工程が完了したのだ！")
	return nil
}

func isStdin() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}
