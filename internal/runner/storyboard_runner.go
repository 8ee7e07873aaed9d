package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/pipeline"
	"github.com/shouni/go-storyboard-kit/pkg/publisher"
)

// StoryboardRunner は台本からストーリーボードを生成して保存する処理の契約なのだ。
type StoryboardRunner interface {
	Run(ctx context.Context) (publisher.PublishResult, error)
}

// Publisher は生成されたパネルを永続化するのだ。
type Publisher interface {
	Publish(ctx context.Context, panels []domain.Panel, opts publisher.Options) (publisher.PublishResult, error)
}

// DefaultStoryboardRunner は入力の読み込み、生成、保存を順に行うのだ。
type DefaultStoryboardRunner struct {
	source    ScriptSource
	fetcher   ScriptFetcher
	generator pipeline.Generator
	publisher Publisher
	options   publisher.Options
	progress  domain.ProgressFunc
}

// NewDefaultStoryboardRunner は、DefaultStoryboardRunner の新しいインスタンスを生成して返すのだ。
func NewDefaultStoryboardRunner(
	src ScriptSource,
	fetcher ScriptFetcher,
	gen pipeline.Generator,
	pub Publisher,
	opts publisher.Options,
	progress domain.ProgressFunc,
) *DefaultStoryboardRunner {
	return &DefaultStoryboardRunner{
		source:    src,
		fetcher:   fetcher,
		generator: gen,
		publisher: pub,
		options:   opts,
		progress:  progress,
	}
}

// Run は台本を読み込み、パネルを生成し、成果物を書き出すのだ。
func (r *DefaultStoryboardRunner) Run(ctx context.Context) (publisher.PublishResult, error) {
	// 1. 入力ソースから台本を読み込むのだ
	script, err := readScript(ctx, r.fetcher, r.source)
	if err != nil {
		return publisher.PublishResult{}, err
	}

	// 2. パイプラインでパネルを生成するのだ
	panels, err := r.generator.Generate(ctx, script, r.progress)
	if err != nil {
		logFailure(ctx, err)
		return publisher.PublishResult{}, err
	}

	// 3. 成果物を書き出すのだ
	result, err := r.publisher.Publish(ctx, panels, r.options)
	if err != nil {
		return publisher.PublishResult{}, fmt.Errorf("failed to publish storyboard: %w", err)
	}
	return result, nil
}

// logFailure はモデルの生応答を含む詳細を開発者向けにログへ残すのだ。
func logFailure(ctx context.Context, err error) {
	attrs := []any{"error", err}
	if raw, ok := domain.RawResponse(err); ok {
		attrs = append(attrs, "raw_response", raw)
	}
	slog.ErrorContext(ctx, "Storyboard generation failed", attrs...)
}
