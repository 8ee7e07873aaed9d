package domain

import (
	"encoding/base64"
	"strings"
	"unicode/utf8"
)

// SceneDescriptor は台本から抽出された1つの場面（ビート）です。
// ImagePrompt の JSON 名はモデルへのスキーマに合わせて image_prompt です。
type SceneDescriptor struct {
	Description string `json:"description"`
	ImagePrompt string `json:"image_prompt"`
}

// Panel は場面テキストと生成画像を統合したストーリーボードの1コマです。
// 生成後は変更しない値型として扱います。
type Panel struct {
	Description string `json:"description"`
	ImagePrompt string `json:"imagePrompt"`
	ImageData   string `json:"imageData"` // base64 エンコードされた画像
	MimeType    string `json:"mimeType"`
}

// NewPanel は場面記述子と画像バイト列から Panel を組み立てます。
func NewPanel(scene SceneDescriptor, image []byte, mimeType string) Panel {
	return Panel{
		Description: scene.Description,
		ImagePrompt: scene.ImagePrompt,
		ImageData:   base64.StdEncoding.EncodeToString(image),
		MimeType:    mimeType,
	}
}

// ImageBytes は base64 の画像データをデコードして返します。
func (p Panel) ImageBytes() ([]byte, error) {
	return base64.StdEncoding.DecodeString(p.ImageData)
}

// IsBlank は台本が空または空白文字のみかを判定します。
func IsBlank(script string) bool {
	return strings.TrimSpace(script) == ""
}

// Excerpt は s の先頭 maxRunes 文字を返します。マルチバイト文字の途中では切りません。
func Excerpt(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxRunes])
}
