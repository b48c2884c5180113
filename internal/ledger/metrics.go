package ledger

import "github.com/prometheus/client_golang/prometheus"

var (
	commandsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_commands_total",
			Help: "Number of ledger commands committed, by activity action.",
		},
		[]string{"action"},
	)

	undoTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_undo_total",
			Help: "Number of undo attempts, by result.",
		},
		[]string{"result"},
	)

	overdraftsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ledger_overdrafts_total",
			Help: "Number of overdrawn envelopes found when starting a new month.",
		},
	)
)

// Collectors returns the metrics of the ledger so that they can be registered.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{commandsTotal, undoTotal, overdraftsTotal}
}
