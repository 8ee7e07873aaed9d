package generator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type mockImageGenerator struct {
	generateImageFunc func(ctx context.Context, model string, req domain.ImageGenerationRequest) (*domain.ImageResponse, error)

	mu       sync.Mutex
	requests []domain.ImageGenerationRequest
}

func (m *mockImageGenerator) GenerateImage(ctx context.Context, model string, req domain.ImageGenerationRequest) (*domain.ImageResponse, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	return m.generateImageFunc(ctx, model, req)
}

func testScenes(n int) []domain.SceneDescriptor {
	scenes := make([]domain.SceneDescriptor, n)
	for i := range scenes {
		scenes[i] = domain.SceneDescriptor{
			Description: fmt.Sprintf("Scene %d description", i+1),
			ImagePrompt: fmt.Sprintf("prompt-%d", i+1),
		}
	}
	return scenes
}

func recordProgress() (domain.ProgressFunc, func() []domain.ProgressEvent) {
	var mu sync.Mutex
	var events []domain.ProgressEvent
	fn := func(ev domain.ProgressEvent) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, ev)
	}
	return fn, func() []domain.ProgressEvent {
		mu.Lock()
		defer mu.Unlock()
		return append([]domain.ProgressEvent(nil), events...)
	}
}

// --- Tests ---

func TestNewPanelRenderer_Defaults(t *testing.T) {
	r, err := NewPanelRenderer(&mockImageGenerator{}, "imagen-4.0-generate-001", "", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultAspectRatio, r.aspectRatio)
	assert.Equal(t, DefaultMimeType, r.mimeType)

	_, err = NewPanelRenderer(nil, "m", "", "")
	assert.Error(t, err)
	_, err = NewPanelRenderer(&mockImageGenerator{}, "", "", "")
	assert.Error(t, err)
}

func TestPanelRenderer_Render_OrderPreservedUnderReversedCompletion(t *testing.T) {
	const n = 4
	scenes := testScenes(n)

	// 後の場面ほど早く完了させる
	img := &mockImageGenerator{
		generateImageFunc: func(ctx context.Context, model string, req domain.ImageGenerationRequest) (*domain.ImageResponse, error) {
			var idx int
			_, _ = fmt.Sscanf(req.Prompt, "prompt-%d", &idx)
			time.Sleep(time.Duration(n-idx) * 10 * time.Millisecond)
			return &domain.ImageResponse{Data: []byte(req.Prompt), MimeType: "image/jpeg"}, nil
		},
	}
	r, err := NewPanelRenderer(img, "imagen-4.0-generate-001", "16:9", "image/jpeg")
	require.NoError(t, err)

	progress, events := recordProgress()
	panels, err := r.Render(context.Background(), scenes, progress)
	require.NoError(t, err)
	require.Len(t, panels, n)

	for i, p := range panels {
		assert.Equal(t, scenes[i].Description, p.Description)
		assert.Equal(t, scenes[i].ImagePrompt, p.ImagePrompt)
		data, err := p.ImageBytes()
		require.NoError(t, err)
		assert.Equal(t, scenes[i].ImagePrompt, string(data))
	}

	got := events()
	require.Len(t, got, n)
	for i, ev := range got {
		assert.Equal(t, domain.StageRendering, ev.Stage)
		assert.Equal(t, i+1, ev.Index)
		assert.Equal(t, n, ev.Total)
		assert.Equal(t, fmt.Sprintf("Generating image %d of %d: Scene %d description...", i+1, n, i+1), ev.Message)
	}

	require.Len(t, img.requests, n)
	for _, req := range img.requests {
		assert.EqualValues(t, 1, req.NumberOfImages)
		assert.Equal(t, "16:9", req.AspectRatio)
		assert.Equal(t, "image/jpeg", req.MimeType)
	}
}

func TestPanelRenderer_Render_ProgressExcerpt(t *testing.T) {
	scene := domain.SceneDescriptor{
		Description: "The detective walks slowly through the rain-soaked alley, searching.",
		ImagePrompt: "noir",
	}
	img := &mockImageGenerator{
		generateImageFunc: func(ctx context.Context, model string, req domain.ImageGenerationRequest) (*domain.ImageResponse, error) {
			return &domain.ImageResponse{Data: []byte{0xFF}}, nil
		},
	}
	r, _ := NewPanelRenderer(img, "m", "", "")

	progress, events := recordProgress()
	panels, err := r.Render(context.Background(), []domain.SceneDescriptor{scene}, progress)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", panels[0].MimeType, "falls back to the requested type")

	got := events()
	require.Len(t, got, 1)
	assert.Equal(t, "Generating image 1 of 1: The detective walks slowly through the r...", got[0].Message)
}

func TestPanelRenderer_Render_Failures(t *testing.T) {
	tests := []struct {
		name string
		resp func(req domain.ImageGenerationRequest) (*domain.ImageResponse, error)
	}{
		{
			name: "プロバイダエラー",
			resp: func(req domain.ImageGenerationRequest) (*domain.ImageResponse, error) {
				if req.Prompt == "prompt-2" {
					return nil, errors.New("quota exceeded")
				}
				return &domain.ImageResponse{Data: []byte("ok")}, nil
			},
		},
		{
			name: "画像なし",
			resp: func(req domain.ImageGenerationRequest) (*domain.ImageResponse, error) {
				if req.Prompt == "prompt-2" {
					return nil, nil
				}
				return &domain.ImageResponse{Data: []byte("ok")}, nil
			},
		},
		{
			name: "空のバイト列",
			resp: func(req domain.ImageGenerationRequest) (*domain.ImageResponse, error) {
				if req.Prompt == "prompt-2" {
					return &domain.ImageResponse{}, nil
				}
				return &domain.ImageResponse{Data: []byte("ok")}, nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := &mockImageGenerator{
				generateImageFunc: func(ctx context.Context, model string, req domain.ImageGenerationRequest) (*domain.ImageResponse, error) {
					return tt.resp(req)
				},
			}
			r, _ := NewPanelRenderer(img, "m", "", "")

			panels, err := r.Render(context.Background(), testScenes(3), nil)
			assert.Nil(t, panels, "no partial list is returned")
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrImageGeneration)
			assert.Contains(t, err.Error(), "scene 2")
		})
	}
}

func TestPanelRenderer_Render_FailureCancelsOutstanding(t *testing.T) {
	canceled := make(chan struct{}, 3)
	img := &mockImageGenerator{
		generateImageFunc: func(ctx context.Context, model string, req domain.ImageGenerationRequest) (*domain.ImageResponse, error) {
			if req.Prompt == "prompt-1" {
				return nil, errors.New("boom")
			}
			select {
			case <-ctx.Done():
				canceled <- struct{}{}
				return nil, ctx.Err()
			case <-time.After(5 * time.Second):
				return &domain.ImageResponse{Data: []byte("late")}, nil
			}
		},
	}
	r, _ := NewPanelRenderer(img, "m", "", "")

	start := time.Now()
	_, err := r.Render(context.Background(), testScenes(3), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrImageGeneration)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestPanelRenderer_Render_ProgressPrecedesRequest(t *testing.T) {
	const n = 5
	var mu sync.Mutex
	seen := 0
	progress := func(ev domain.ProgressEvent) {
		mu.Lock()
		defer mu.Unlock()
		seen++
	}

	seenAtRequest := make(map[int]int, n)
	img := &mockImageGenerator{
		generateImageFunc: func(ctx context.Context, model string, req domain.ImageGenerationRequest) (*domain.ImageResponse, error) {
			var idx int
			_, _ = fmt.Sscanf(req.Prompt, "prompt-%d", &idx)
			mu.Lock()
			seenAtRequest[idx] = seen
			mu.Unlock()
			return &domain.ImageResponse{Data: []byte("ok")}, nil
		},
	}
	r, _ := NewPanelRenderer(img, "m", "", "")

	_, err := r.Render(context.Background(), testScenes(n), progress)
	require.NoError(t, err)

	require.Len(t, seenAtRequest, n)
	for i := 1; i <= n; i++ {
		assert.GreaterOrEqual(t, seenAtRequest[i], i, "scene %d was requested before its progress event", i)
	}
}
