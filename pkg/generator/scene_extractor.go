package generator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shouni/go-storyboard-kit/pkg/adapters"
	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/prompts"
)

// SceneExtractor は台本を解析し、画像化できる場面のリストに分割します。
type SceneExtractor struct {
	ai      adapters.TextGenerator
	prompts prompts.ScriptPrompt
	model   string
}

// NewSceneExtractor は SceneExtractor を初期化します。
func NewSceneExtractor(ai adapters.TextGenerator, pb prompts.ScriptPrompt, model string) (*SceneExtractor, error) {
	if ai == nil {
		return nil, fmt.Errorf("text generator is required")
	}
	if pb == nil {
		return nil, fmt.Errorf("prompt builder is required")
	}
	if model == "" {
		return nil, fmt.Errorf("model is required")
	}
	return &SceneExtractor{ai: ai, prompts: pb, model: model}, nil
}

// Extract は台本から場面のリストを生成します。返されるリストは台本の順序を保ちます。
func (e *SceneExtractor) Extract(ctx context.Context, script string) ([]domain.SceneDescriptor, error) {
	prompt, err := e.prompts.Build(prompts.ModeScenes, prompts.TemplateData{Script: script})
	if err != nil {
		return nil, fmt.Errorf("failed to build scene analysis prompt: %w", err)
	}

	slog.InfoContext(ctx, "Extracting scenes from script", "model", e.model, "script_chars", len([]rune(script)))
	startTime := time.Now()

	raw, err := e.ai.GenerateJSON(ctx, e.model, prompt, SceneSchema())
	if err != nil {
		return nil, fmt.Errorf("%w: scene extraction request: %w", domain.ErrGeneration, err)
	}

	scenes, err := ParseScenes(raw)
	if err != nil {
		return nil, err
	}
	if len(scenes) == 0 {
		return nil, domain.ErrEmptyResult
	}

	slog.InfoContext(ctx, "Scenes extracted",
		"count", len(scenes),
		"duration", time.Since(startTime).Round(time.Millisecond),
	)
	return scenes, nil
}
