package asset

import (
	"mime"
	"path/filepath"
	"strings"

	"github.com/shouni/go-utils/urlpath"
)

const (
	// DefaultImageDir は生成された画像を格納するデフォルトのディレクトリ名です。
	DefaultImageDir = "images"
	// DefaultStoryboardJSON はストーリーボードのデフォルト JSON ファイル名です。
	DefaultStoryboardJSON = "storyboard.json"
	// DefaultStoryboardMarkdown はストーリーボードのデフォルト Markdown ファイル名です。
	DefaultStoryboardMarkdown = "storyboard.md"
	// DefaultPanelBaseName はパネル画像の共通のベースファイル名（拡張子なし）です。
	DefaultPanelBaseName = "panel"
)

// ResolveOutputPath は、ベースとなるディレクトリパスとファイル名から、
// GCS/ローカルを考慮した最終的な出力パスを生成します。
func ResolveOutputPath(baseDir, fileName string) (string, error) {
	return urlpath.ResolveOutputPath(baseDir, fileName)
}

// PanelFileName は MIME タイプに合う拡張子でパネル画像のファイル名を返します。
// index は1以上の整数である必要があります。
// 例: 1, "image/jpeg" -> "panel_1.jpg"
func PanelFileName(index int, mimeType string) (string, error) {
	return urlpath.GenerateIndexedPath(DefaultPanelBaseName+ExtensionFor(mimeType), index)
}

// ExtensionFor は画像の MIME タイプに対応する拡張子を返します。不明な場合は .jpg です。
func ExtensionFor(mimeType string) string {
	switch strings.ToLower(mimeType) {
	case "image/jpeg", "image/jpg", "":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	}
	if exts, err := mime.ExtensionsByType(mimeType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ".jpg"
}

// RelativeImagePath は Markdown や JSON から参照する画像の相対パスを返します。
func RelativeImagePath(fullPath string) string {
	return DefaultImageDir + "/" + filepath.Base(fullPath)
}
