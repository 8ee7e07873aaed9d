package prompts

import (
	_ "embed"
)

const (
	// ModeScenes は台本を場面リストに分割するプロンプトです。
	ModeScenes = "scenes"
)

// TemplateData はプロンプトテンプレートに渡すデータ構造です。
type TemplateData struct {
	Script string
}

var (
	//go:embed scene_analysis.md
	SceneAnalysisPrompt string
)

// allTemplates はモードとテンプレート文字列を紐づけるマップです。
var allTemplates = map[string]string{
	ModeScenes: SceneAnalysisPrompt,
}
