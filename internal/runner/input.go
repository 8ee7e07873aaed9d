package runner

import (
	"context"
	"fmt"
	"io"
	"os"
)

// StdinPath は標準入力から台本を読むことを表す --script-file の値なのだ。
const StdinPath = "-"

// ScriptFetcher は URL から台本を取得するクライアントなのだ。httpkit.ClientInterface が満たすのだ。
type ScriptFetcher interface {
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}

// ScriptSource は台本の入力元なのだ。URL とファイルの両方が指定された場合は URL を優先するのだ。
type ScriptSource struct {
	URL   string
	File  string
	Stdin io.Reader
}

// readScript は URL、ファイル、標準入力のいずれかから台本を読み込むのだ。
func readScript(ctx context.Context, fetcher ScriptFetcher, src ScriptSource) (string, error) {
	switch {
	case src.URL != "":
		if fetcher == nil {
			return "", fmt.Errorf("no HTTP client configured to fetch %s", src.URL)
		}
		data, err := fetcher.FetchBytes(ctx, src.URL)
		if err != nil {
			return "", fmt.Errorf("failed to fetch script from %s: %w", src.URL, err)
		}
		return string(data), nil

	case src.File == StdinPath:
		stdin := src.Stdin
		if stdin == nil {
			stdin = os.Stdin
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read script from stdin: %w", err)
		}
		return string(data), nil

	case src.File != "":
		data, err := os.ReadFile(src.File)
		if err != nil {
			return "", fmt.Errorf("failed to read script file '%s': %w", src.File, err)
		}
		return string(data), nil

	default:
		return "", fmt.Errorf("either --script-file or --script-url must be specified")
	}
}
