package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultSuccess  = "success"
	resultFailure  = "failure"
	resultRejected = "rejected"
)

// Metrics は HTTP API が公開するカウンター群です。
type Metrics struct {
	runsTotal            *prometheus.CounterVec
	panelsGeneratedTotal prometheus.Counter
	chatMessagesTotal    *prometheus.CounterVec
}

// NewMetrics は reg にカウンターを登録します。テストごとに独立したレジストリを渡せます。
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		runsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storyboard_runs_total",
				Help: "Total number of storyboard generation runs by result.",
			},
			[]string{"result"},
		),
		panelsGeneratedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "storyboard_panels_generated_total",
			Help: "Total number of panels returned by successful runs.",
		}),
		chatMessagesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storyboard_chat_messages_total",
				Help: "Total number of chat messages by result.",
			},
			[]string{"result"},
		),
	}
}

func (m *Metrics) observeRun(result string, panels int) {
	m.runsTotal.WithLabelValues(result).Inc()
	if panels > 0 {
		m.panelsGeneratedTotal.Add(float64(panels))
	}
}

func (m *Metrics) observeChat(result string) {
	m.chatMessagesTotal.WithLabelValues(result).Inc()
}
