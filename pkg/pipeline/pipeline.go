package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
)

// AnalyzingMessage は場面解析の開始時に通知する文言です。
const AnalyzingMessage = "Analyzing script to identify key scenes..."

// StoryboardPipeline は場面抽出から画像生成までの全工程をオーケストレートします。
type StoryboardPipeline struct {
	extractor SceneExtractor
	renderer  PanelRenderer
}

// NewStoryboardPipeline は各コンポーネントを受け取り StoryboardPipeline を生成します。
func NewStoryboardPipeline(e SceneExtractor, r PanelRenderer) (*StoryboardPipeline, error) {
	if e == nil {
		return nil, fmt.Errorf("scene extractor is required")
	}
	if r == nil {
		return nil, fmt.Errorf("panel renderer is required")
	}
	return &StoryboardPipeline{extractor: e, renderer: r}, nil
}

// Generate は台本を解析し、場面と同じ順序のパネルを返します。
// 進捗は解析開始時に1回、各場面の画像要求前に1回ずつ通知します。
// 結果は全パネル成功か失敗のどちらかで、部分的な結果は返しません。
func (p *StoryboardPipeline) Generate(ctx context.Context, script string, progress domain.ProgressFunc) ([]domain.Panel, error) {
	if domain.IsBlank(script) {
		return nil, domain.ErrEmptyInput
	}

	startTime := time.Now()
	progress.Report(domain.ProgressEvent{Stage: domain.StageAnalyzing, Message: AnalyzingMessage})

	// 1. 場面抽出
	scenes, err := p.extractor.Extract(ctx, script)
	if err != nil {
		return nil, err
	}

	// 2. 画像生成
	panels, err := p.renderer.Render(ctx, scenes, progress)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Storyboard generated",
		"panels", len(panels),
		"duration", time.Since(startTime).Round(time.Millisecond),
	)
	return panels, nil
}
