package publisher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// OutputWriter はデータを外部ストレージに保存するためのインターフェースです。
type OutputWriter interface {
	Write(ctx context.Context, path string, data []byte, contentType string) error
}

// LocalWriter はローカルファイルシステムに書き込む OutputWriter です。
// 親ディレクトリが無ければ作成します。
type LocalWriter struct{}

// NewLocalWriter は LocalWriter を返します。
func NewLocalWriter() *LocalWriter {
	return &LocalWriter{}
}

func (w *LocalWriter) Write(ctx context.Context, path string, data []byte, _ string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
