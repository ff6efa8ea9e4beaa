// Package observability translates editor hook events into Prometheus
// collectors. One Metrics set serves every session in the process; attach
// its Hooks to each editor and mount promhttp over the same registry.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/veldtlabs/breadboard/pkg/domain"
)

// Metrics holds the editor collectors.
type Metrics struct {
	transactionsCommitted prometheus.Counter
	transactionsAborted   prometheus.Counter
	commandsExecuted      prometheus.Counter
	undoTotal             prometheus.Counter
	redoTotal             prometheus.Counter
	placementsStarted     prometheus.Counter
	partsPlaced           prometheus.Counter
	stateTransitions      *prometheus.CounterVec
	historyDepth          prometheus.Gauge
	sessionsActive        prometheus.Gauge
}

// NewMetrics builds and registers the editor collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		transactionsCommitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "breadboard_transactions_committed_total",
			Help: "Total number of committed history transactions",
		}),
		transactionsAborted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "breadboard_transactions_aborted_total",
			Help: "Total number of aborted transactions",
		}),
		commandsExecuted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "breadboard_commands_executed_total",
			Help: "Total number of commands inside committed transactions",
		}),
		undoTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "breadboard_undo_total",
			Help: "Total number of undo operations",
		}),
		redoTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "breadboard_redo_total",
			Help: "Total number of redo operations",
		}),
		placementsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "breadboard_placements_started_total",
			Help: "Total number of interactive placements started",
		}),
		partsPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "breadboard_parts_placed_total",
			Help: "Total number of parts placed",
		}),
		stateTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "breadboard_tool_transitions_total",
			Help: "Tool state transitions by source and target state",
		}, []string{"from", "to"}),
		historyDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "breadboard_history_depth",
			Help: "Committed history length after the latest transaction",
		}),
		sessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "breadboard_sessions_active",
			Help: "Number of live editor sessions",
		}),
	}

	reg.MustRegister(
		m.transactionsCommitted,
		m.transactionsAborted,
		m.commandsExecuted,
		m.undoTotal,
		m.redoTotal,
		m.placementsStarted,
		m.partsPlaced,
		m.stateTransitions,
		m.historyDepth,
		m.sessionsActive,
	)
	return m
}

// Hooks returns the hook set that feeds the collectors. Merge it with any
// application hooks when building an editor.
func (m *Metrics) Hooks() domain.Hooks {
	return domain.Hooks{
		OnTransactionCommitted: func(e *domain.TransactionEvent) {
			m.transactionsCommitted.Inc()
			m.commandsExecuted.Add(float64(e.Commands))
			m.historyDepth.Set(float64(e.Depth))
		},
		OnTransactionAborted: func(e *domain.TransactionEvent) {
			m.transactionsAborted.Inc()
		},
		OnUndo: func(e *domain.HistoryEvent) {
			m.undoTotal.Inc()
			m.historyDepth.Set(float64(e.Depth))
		},
		OnRedo: func(e *domain.HistoryEvent) {
			m.redoTotal.Inc()
			m.historyDepth.Set(float64(e.Depth))
		},
		OnPlacementStarted: func(*domain.PlacementEvent) {
			m.placementsStarted.Inc()
		},
		OnPartPlaced: func(*domain.PartEvent) {
			m.partsPlaced.Inc()
		},
		OnStateChanged: func(e *domain.StateEvent) {
			m.stateTransitions.WithLabelValues(e.From, e.To).Inc()
		},
	}
}

// SessionOpened records a new live session.
func (m *Metrics) SessionOpened() { m.sessionsActive.Inc() }

// SessionClosed records a closed session.
func (m *Metrics) SessionClosed() { m.sessionsActive.Dec() }
