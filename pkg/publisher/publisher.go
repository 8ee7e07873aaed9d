package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/shouni/go-storyboard-kit/pkg/asset"
	"github.com/shouni/go-storyboard-kit/pkg/domain"
)

// Options はパブリッシュ動作を制御する設定項目です。
type Options struct {
	OutputDir string
	Title     string
}

// PublishResult はパブリッシュ処理の結果として生成されたファイルの情報を保持します。
type PublishResult struct {
	JSONPath     string   // 生成された storyboard.json のパス
	MarkdownPath string   // 生成された storyboard.md のパス
	ImagePaths   []string // 保存された全画像のパスリスト
}

// storyboardDocument は storyboard.json の内容です。画像本体はファイル参照に置き換えます。
type storyboardDocument struct {
	Title  string           `json:"title"`
	Panels []panelReference `json:"panels"`
}

type panelReference struct {
	Index       int    `json:"index"`
	Description string `json:"description"`
	ImagePrompt string `json:"imagePrompt"`
	Image       string `json:"image"`
	MimeType    string `json:"mimeType"`
}

// StoryboardPublisher は生成されたパネルを画像・JSON・Markdown として保存します。
type StoryboardPublisher struct {
	writer OutputWriter
}

// NewStoryboardPublisher は StoryboardPublisher を初期化します。
func NewStoryboardPublisher(writer OutputWriter) (*StoryboardPublisher, error) {
	if writer == nil {
		return nil, fmt.Errorf("output writer is required")
	}
	return &StoryboardPublisher{writer: writer}, nil
}

// Publish は画像の保存、JSON と Markdown の書き出しを一括して実行します。
func (p *StoryboardPublisher) Publish(ctx context.Context, panels []domain.Panel, opts Options) (PublishResult, error) {
	result := PublishResult{}
	title := resolveTitle(opts.Title)

	jsonPath, err := asset.ResolveOutputPath(opts.OutputDir, asset.DefaultStoryboardJSON)
	if err != nil {
		return result, err
	}
	mdPath, err := asset.ResolveOutputPath(opts.OutputDir, asset.DefaultStoryboardMarkdown)
	if err != nil {
		return result, err
	}
	imgDir, err := asset.ResolveOutputPath(opts.OutputDir, asset.DefaultImageDir)
	if err != nil {
		return result, err
	}

	// 1. 画像の保存
	savedPaths, err := p.saveImages(ctx, panels, imgDir)
	if err != nil {
		return result, err
	}
	result.ImagePaths = savedPaths

	relativePaths := make([]string, len(savedPaths))
	for i, path := range savedPaths {
		relativePaths[i] = asset.RelativeImagePath(path)
	}

	// 2. JSON の書き出し
	doc := storyboardDocument{Title: title, Panels: make([]panelReference, len(panels))}
	for i, panel := range panels {
		doc.Panels[i] = panelReference{
			Index:       i + 1,
			Description: panel.Description,
			ImagePrompt: panel.ImagePrompt,
			Image:       relativePaths[i],
			MimeType:    panel.MimeType,
		}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return result, fmt.Errorf("failed to encode storyboard: %w", err)
	}
	if err := p.writer.Write(ctx, jsonPath, data, "application/json"); err != nil {
		return result, fmt.Errorf("failed to write storyboard JSON: %w", err)
	}
	result.JSONPath = jsonPath

	// 3. Markdown の書き出し
	content := buildMarkdown(title, panels, relativePaths)
	if err := p.writer.Write(ctx, mdPath, []byte(content), "text/markdown; charset=utf-8"); err != nil {
		return result, fmt.Errorf("failed to write storyboard markdown: %w", err)
	}
	result.MarkdownPath = mdPath

	slog.InfoContext(ctx, "Storyboard published",
		"panels", len(panels),
		"json", jsonPath,
		"markdown", mdPath,
	)
	return result, nil
}

// saveImages は各パネルの画像を images/panel_N.<ext> に保存し、そのパスを返します。
func (p *StoryboardPublisher) saveImages(ctx context.Context, panels []domain.Panel, baseDir string) ([]string, error) {
	paths := make([]string, 0, len(panels))
	for i, panel := range panels {
		data, err := panel.ImageBytes()
		if err != nil {
			return nil, fmt.Errorf("failed to decode image of panel %d: %w", i+1, err)
		}

		name, err := asset.PanelFileName(i+1, panel.MimeType)
		if err != nil {
			return nil, err
		}
		fullPath, err := asset.ResolveOutputPath(baseDir, name)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve output path: %w", err)
		}

		mimeType := panel.MimeType
		if mimeType == "" {
			mimeType = "image/jpeg"
		}
		if err := p.writer.Write(ctx, fullPath, data, mimeType); err != nil {
			return nil, fmt.Errorf("failed to write image %s: %w", fullPath, err)
		}
		paths = append(paths, fullPath)
	}
	return paths, nil
}
