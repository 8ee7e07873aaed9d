package pipeline

import (
	"log/slog"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
)

// MultiProgress は複数の通知先へ順に同じイベントを配信します。nil は無視します。
func MultiProgress(fns ...domain.ProgressFunc) domain.ProgressFunc {
	return func(ev domain.ProgressEvent) {
		for _, fn := range fns {
			fn.Report(ev)
		}
	}
}

// LogProgress は進捗イベントを slog に書き出す通知先を返します。
func LogProgress(logger *slog.Logger) domain.ProgressFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ev domain.ProgressEvent) {
		logger.Info(ev.Message, "stage", ev.Stage, "index", ev.Index, "total", ev.Total)
	}
}
