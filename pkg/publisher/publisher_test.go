package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{ err error }

func (w *failingWriter) Write(ctx context.Context, path string, data []byte, contentType string) error {
	return w.err
}

func testPanels() []domain.Panel {
	return []domain.Panel{
		domain.NewPanel(domain.SceneDescriptor{Description: "Jane wakes up.", ImagePrompt: "Close-up,\ndawn light"}, []byte("jpeg-1"), "image/jpeg"),
		domain.NewPanel(domain.SceneDescriptor{Description: "Jane leaves.", ImagePrompt: "Wide street shot"}, []byte("png-2"), "image/png"),
	}
}

func TestNewStoryboardPublisher_RequiresWriter(t *testing.T) {
	_, err := NewStoryboardPublisher(nil)
	assert.Error(t, err)
}

func TestStoryboardPublisher_Publish(t *testing.T) {
	dir := t.TempDir()
	p, err := NewStoryboardPublisher(NewLocalWriter())
	require.NoError(t, err)

	result, err := p.Publish(context.Background(), testPanels(), Options{OutputDir: dir, Title: "Morning"})
	require.NoError(t, err)

	require.Len(t, result.ImagePaths, 2)
	assert.Equal(t, filepath.Join(dir, "images", "panel_1.jpg"), result.ImagePaths[0])
	assert.Equal(t, filepath.Join(dir, "images", "panel_2.png"), result.ImagePaths[1])

	img, err := os.ReadFile(result.ImagePaths[0])
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-1"), img)

	raw, err := os.ReadFile(result.JSONPath)
	require.NoError(t, err)
	var doc storyboardDocument
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "Morning", doc.Title)
	require.Len(t, doc.Panels, 2)
	assert.Equal(t, panelReference{
		Index:       2,
		Description: "Jane leaves.",
		ImagePrompt: "Wide street shot",
		Image:       "images/panel_2.png",
		MimeType:    "image/png",
	}, doc.Panels[1])

	md, err := os.ReadFile(result.MarkdownPath)
	require.NoError(t, err)
	assert.Contains(t, string(md), "# Morning")
	assert.Contains(t, string(md), "![Panel 1](images/panel_1.jpg)")
	assert.Contains(t, string(md), "> Close-up, dawn light")
}

func TestStoryboardPublisher_Publish_WriteFailure(t *testing.T) {
	boom := errors.New("disk full")
	p, _ := NewStoryboardPublisher(&failingWriter{err: boom})

	_, err := p.Publish(context.Background(), testPanels(), Options{OutputDir: t.TempDir()})
	assert.ErrorIs(t, err, boom)
}

func TestStoryboardPublisher_Publish_DefaultTitle(t *testing.T) {
	p, err := NewStoryboardPublisher(NewLocalWriter())
	require.NoError(t, err)

	result, err := p.Publish(context.Background(), testPanels(), Options{OutputDir: t.TempDir(), Title: "  "})
	require.NoError(t, err)

	raw, err := os.ReadFile(result.JSONPath)
	require.NoError(t, err)
	var doc storyboardDocument
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "Storyboard", doc.Title, "JSON and Markdown share the same title")

	md, err := os.ReadFile(result.MarkdownPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(md), "# Storyboard\n"))
}

func TestBuildMarkdown_Placeholder(t *testing.T) {
	md := buildMarkdown("Storyboard", testPanels(), nil)
	assert.Contains(t, md, "![Panel 2](placeholder.jpg)")
}
