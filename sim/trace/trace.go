package trace

import "fmt"

// TraceLevel selects what the System records while it runs.
type TraceLevel string

const (
	// TraceLevelNone records nothing; the System skips building records.
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDeliveries records one DeliveryRecord per due message,
	// dead letters included.
	TraceLevelDeliveries TraceLevel = "deliveries"
)

// ParseTraceLevel maps a flag value to a TraceLevel. The empty string means
// none; matching is case-sensitive.
func ParseTraceLevel(level string) (TraceLevel, error) {
	switch TraceLevel(level) {
	case "", TraceLevelNone:
		return TraceLevelNone, nil
	case TraceLevelDeliveries:
		return TraceLevelDeliveries, nil
	default:
		return TraceLevelNone, fmt.Errorf("invalid trace level %q; valid: none, deliveries", level)
	}
}

// TraceConfig is passed to scenario runs to choose a level.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace accumulates the deliveries of one System, in delivery order.
type SimulationTrace struct {
	Config     TraceConfig
	Deliveries []DeliveryRecord
}

// NewSimulationTrace returns an empty trace for config.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:     config,
		Deliveries: make([]DeliveryRecord, 0),
	}
}

// Enabled reports whether records should be collected. Safe on a nil trace.
func (st *SimulationTrace) Enabled() bool {
	return st != nil && st.Config.Level == TraceLevelDeliveries
}

// RecordDelivery appends record. Callers check Enabled first.
func (st *SimulationTrace) RecordDelivery(record DeliveryRecord) {
	st.Deliveries = append(st.Deliveries, record)
}
