package publisher

import (
	"fmt"
	"strings"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
)

const (
	defaultTitle = "Storyboard"
	placeholder  = "placeholder.jpg"
)

// resolveTitle は空白のみのタイトルを既定のタイトルに置き換えます。
func resolveTitle(title string) string {
	if t := strings.TrimSpace(title); t != "" {
		return t
	}
	return defaultTitle
}

// buildMarkdown はパネルごとに画像と場面説明を並べた Markdown を生成します。
func buildMarkdown(title string, panels []domain.Panel, imagePaths []string) string {

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)

	for i, panel := range panels {
		img := placeholder
		if i < len(imagePaths) {
			img = imagePaths[i]
		}

		fmt.Fprintf(&sb, "## Panel %d\n\n", i+1)
		fmt.Fprintf(&sb, "![Panel %d](%s)\n\n", i+1, img)
		fmt.Fprintf(&sb, "%s\n\n", strings.TrimSpace(panel.Description))
		fmt.Fprintf(&sb, "> %s\n\n", oneLine(panel.ImagePrompt))
	}
	return sb.String()
}

// oneLine は引用ブロックが崩れないように改行を空白に置き換えます。
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
