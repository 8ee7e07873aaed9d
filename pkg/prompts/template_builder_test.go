package prompts

import (
	"strings"
	"testing"
)

func TestTextPromptBuilder_Build(t *testing.T) {
	b, err := NewTextPromptBuilder()
	if err != nil {
		t.Fatalf("NewTextPromptBuilder failed: %v", err)
	}

	t.Run("台本がプロンプト末尾に埋め込まれる", func(t *testing.T) {
		script := "INT. KITCHEN — Jane drinks coffee."
		got, err := b.Build(ModeScenes, TemplateData{Script: script})
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		if !strings.HasSuffix(strings.TrimSpace(got), script) {
			t.Errorf("script should be appended after the instructions, got %q", got)
		}
		for _, want := range []string{"'description'", "'image_prompt'", "camera angle", "JSON array"} {
			if !strings.Contains(got, want) {
				t.Errorf("prompt should mention %s", want)
			}
		}
	})

	t.Run("テンプレート記法を含む台本もそのまま渡る", func(t *testing.T) {
		script := "He types {{ .Secret }} on the keyboard."
		got, err := b.Build(ModeScenes, TemplateData{Script: script})
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		if !strings.Contains(got, script) {
			t.Errorf("script must not be re-evaluated as a template, got %q", got)
		}
	})

	t.Run("未知のモードはエラー", func(t *testing.T) {
		if _, err := b.Build("unknown", TemplateData{}); err == nil {
			t.Error("expected error for unknown mode")
		}
	})
}
