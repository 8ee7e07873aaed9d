package prompts

import (
	"fmt"
	"strings"
	"text/template"
)

// TextPromptBuilder は go:embed で埋め込んだテキストテンプレートを管理し、モードごとにプロンプトを組み立てます。
type TextPromptBuilder struct {
	templates map[string]*template.Template
}

// NewTextPromptBuilder は埋め込みテンプレートをすべて解析して TextPromptBuilder を初期化します。
func NewTextPromptBuilder() (*TextPromptBuilder, error) {
	parsed := make(map[string]*template.Template, len(allTemplates))
	for mode, content := range allTemplates {
		if strings.TrimSpace(content) == "" {
			return nil, fmt.Errorf("prompt template %q is empty (go:embed failed?)", mode)
		}

		tmpl, err := template.New(mode).Option("missingkey=error").Parse(content)
		if err != nil {
			return nil, fmt.Errorf("failed to parse prompt template %q: %w", mode, err)
		}
		parsed[mode] = tmpl
	}

	return &TextPromptBuilder{templates: parsed}, nil
}

// Build は要求されたモードのテンプレートを実行します。
func (b *TextPromptBuilder) Build(mode string, data TemplateData) (string, error) {
	tmpl, ok := b.templates[mode]
	if !ok {
		return "", fmt.Errorf("unknown prompt mode: %q", mode)
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template %q: %w", mode, err)
	}
	return sb.String(), nil
}
