package cmd

import (
	"github.com/shouni/go-storyboard-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// chatCmd は、脚本アシスタントと対話するのだ。
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "脚本アシスタントとチャットするのだ。",
	Long: `脚本、撮影、ストーリーテリングについて質問できるアシスタントと対話するのだ。
1行が1つの発言で、/exit か EOF で終了するのだよ。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return pipeline.ExecuteChat(cmd.Context(), loadConfig(), cmd.InOrStdin(), cmd.OutOrStdout())
	},
}
