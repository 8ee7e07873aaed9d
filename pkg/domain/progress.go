package domain

// ProgressStage はパイプラインのどの工程の通知かを表します。
type ProgressStage string

const (
	StageAnalyzing ProgressStage = "analyzing"
	StageRendering ProgressStage = "rendering"
)

// ProgressEvent はパイプライン実行中の進捗通知です。
// Index は 1 始まりで、解析工程では 0 です。
type ProgressEvent struct {
	Stage   ProgressStage `json:"stage"`
	Index   int           `json:"index"`
	Total   int           `json:"total"`
	Message string        `json:"message"`
}

// ProgressFunc は進捗通知を受け取るコールバックです。同期的に呼び出されます。
type ProgressFunc func(ProgressEvent)

// Report は nil を許容して通知します。
func (f ProgressFunc) Report(ev ProgressEvent) {
	if f != nil {
		f(ev)
	}
}
