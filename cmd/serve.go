package cmd

import (
	"github.com/shouni/go-storyboard-kit/internal/config"
	"github.com/shouni/go-storyboard-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

var serveOpts config.ServeOptions

// serveCmd は、ストーリーボード生成とチャットの HTTP API を起動するのだ。
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "HTTP API サーバーを起動するのだ。",
	RunE: func(cmd *cobra.Command, args []string) error {
		return pipeline.ExecuteServe(cmd.Context(), loadConfig(), serveOpts)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveOpts.Addr, "addr", "", "待ち受けアドレスなのだ（既定: HTTP_ADDR）。")
}
