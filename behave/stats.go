package behave

import "time"

// SchedulerStats is a snapshot of scheduler execution counters.
type SchedulerStats struct {
	SystemCount      int
	TotalInvocations int64
	Systems          []SystemStats
}

// SystemStats holds the counters for a single registered system.
type SystemStats struct {
	Name              string
	Phase             Tick
	ScheduledEntities int
	Invocations       int64
	HookFailures      int64
	MinDuration       time.Duration
	MaxDuration       time.Duration
	AvgDuration       time.Duration
	LastDuration      time.Duration
	TotalDuration     time.Duration
}

type systemStats struct {
	invocations int64
	failures    int64
	min         time.Duration
	max         time.Duration
	total       time.Duration
	last        time.Duration
}

func (st *systemStats) observe(d time.Duration) {
	if st.invocations == 0 || d < st.min {
		st.min = d
	}
	if d > st.max {
		st.max = d
	}
	st.invocations++
	st.last = d
	st.total += d
}

// Stats returns a snapshot of per-system execution statistics, in
// registration order.
func (s *Scheduler) Stats() SchedulerStats {
	out := SchedulerStats{
		SystemCount: len(s.order),
		Systems:     make([]SystemStats, len(s.order)),
	}
	for i, st := range s.order {
		avg := time.Duration(0)
		if st.stats.invocations > 0 {
			avg = st.stats.total / time.Duration(st.stats.invocations)
		}
		out.Systems[i] = SystemStats{
			Name:              st.sys.Name,
			Phase:             st.sys.Phase,
			ScheduledEntities: st.due.Len(),
			Invocations:       st.stats.invocations,
			HookFailures:      st.stats.failures,
			MinDuration:       st.stats.min,
			MaxDuration:       st.stats.max,
			AvgDuration:       avg,
			LastDuration:      st.stats.last,
			TotalDuration:     st.stats.total,
		}
		out.TotalInvocations += st.stats.invocations
	}
	return out
}
