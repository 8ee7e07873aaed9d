package prompts

// ScriptPrompt は、AIプロンプトを構築する契約です。
type ScriptPrompt interface {
	// Build は、指定されたモードとデータに基づいてプロンプト文字列を生成します。
	Build(mode string, data TemplateData) (string, error)
}
