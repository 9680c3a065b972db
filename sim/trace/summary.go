package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDeliveries  int
	DeadLetters      int
	UniqueSessions   int
	KindDistribution map[string]int // message kind → count of deliveries
	BusiestTarget    int64          // actor with the most deliveries (lowest id on ties)
	LastClock        int64
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		KindDistribution: make(map[string]int),
	}
	if st == nil {
		return summary
	}

	perTarget := make(map[int64]int)
	sessions := make(map[int64]struct{})
	for _, d := range st.Deliveries {
		if d.DeadLetter {
			summary.DeadLetters++
			continue
		}
		summary.TotalDeliveries++
		summary.KindDistribution[d.Kind]++
		perTarget[d.Target]++
		if d.HasSession {
			sessions[d.CommunicationID] = struct{}{}
		}
		if d.Clock > summary.LastClock {
			summary.LastClock = d.Clock
		}
	}

	best := 0
	for target, n := range perTarget {
		if n > best || (n == best && target < summary.BusiestTarget) {
			best = n
			summary.BusiestTarget = target
		}
	}
	summary.UniqueSessions = len(sessions)

	return summary
}
