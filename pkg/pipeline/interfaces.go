package pipeline

import (
	"context"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
)

// SceneExtractor は台本を場面リストに分割するインターフェースです。
type SceneExtractor interface {
	Extract(ctx context.Context, script string) ([]domain.SceneDescriptor, error)
}

// PanelRenderer は場面リストから画像付きパネルを生成するインターフェースです。
type PanelRenderer interface {
	Render(ctx context.Context, scenes []domain.SceneDescriptor, progress domain.ProgressFunc) ([]domain.Panel, error)
}

// Generator はストーリーボード生成全体の契約です。
type Generator interface {
	Generate(ctx context.Context, script string, progress domain.ProgressFunc) ([]domain.Panel, error)
}
