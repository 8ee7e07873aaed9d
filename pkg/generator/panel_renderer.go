package generator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shouni/go-storyboard-kit/pkg/adapters"
	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultAspectRatio はパネル画像の既定アスペクト比です。
	DefaultAspectRatio = "16:9"
	// DefaultMimeType はパネル画像の既定出力形式です。
	DefaultMimeType = "image/jpeg"

	progressExcerptLen = 40
)

// PanelRenderer は場面ごとに1枚の画像を並列生成し、パネルに組み立てます。
type PanelRenderer struct {
	img         adapters.ImageGenerator
	model       string
	aspectRatio string
	mimeType    string
}

// NewPanelRenderer は PanelRenderer を初期化します。
// aspectRatio と mimeType が空の場合は既定値を使用します。
func NewPanelRenderer(img adapters.ImageGenerator, model, aspectRatio, mimeType string) (*PanelRenderer, error) {
	if img == nil {
		return nil, fmt.Errorf("image generator is required")
	}
	if model == "" {
		return nil, fmt.Errorf("model is required")
	}
	if aspectRatio == "" {
		aspectRatio = DefaultAspectRatio
	}
	if mimeType == "" {
		mimeType = DefaultMimeType
	}
	return &PanelRenderer{
		img:         img,
		model:       model,
		aspectRatio: aspectRatio,
		mimeType:    mimeType,
	}, nil
}

// Render は全場面の画像生成を同時に発行し、入力と同じ順序のパネルを返します。
// いずれかが失敗した時点で残りの要求は破棄され、部分的な結果は返しません。
func (r *PanelRenderer) Render(ctx context.Context, scenes []domain.SceneDescriptor, progress domain.ProgressFunc) ([]domain.Panel, error) {
	total := len(scenes)
	panels := make([]domain.Panel, total)
	eg, egCtx := errgroup.WithContext(ctx)

	for i, scene := range scenes {
		// 通知は発行前に同期的に行うため、順序は場面の順序と一致します。
		progress.Report(domain.ProgressEvent{
			Stage:   domain.StageRendering,
			Index:   i + 1,
			Total:   total,
			Message: fmt.Sprintf("Generating image %d of %d: %s...", i+1, total, domain.Excerpt(scene.Description, progressExcerptLen)),
		})

		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}

			logger := slog.With("panel_index", i+1, "total", total)
			logger.Info("Starting panel generation")
			startTime := time.Now()

			resp, err := r.img.GenerateImage(egCtx, r.model, domain.ImageGenerationRequest{
				Prompt:         scene.ImagePrompt,
				AspectRatio:    r.aspectRatio,
				MimeType:       r.mimeType,
				NumberOfImages: 1,
			})
			if err != nil {
				return fmt.Errorf("%w: scene %d: %w", domain.ErrImageGeneration, i+1, err)
			}
			if resp == nil || len(resp.Data) == 0 {
				return fmt.Errorf("%w: scene %d: empty image data", domain.ErrImageGeneration, i+1)
			}

			mimeType := resp.MimeType
			if mimeType == "" {
				mimeType = r.mimeType
			}
			panels[i] = domain.NewPanel(scene, resp.Data, mimeType)

			logger.Info("Panel generation completed", "duration", time.Since(startTime).Round(time.Millisecond))
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return panels, nil
}
