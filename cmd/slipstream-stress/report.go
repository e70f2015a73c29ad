package main

import (
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/slipstream/behave"
)

type Report struct {
	RunID  string
	Config Config

	TotalTime     time.Duration
	StepTime      Stats
	Scheduler     behave.SchedulerStats
	PeakClaims    int
	FinalClaims   int
	FinalEntities int
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}
	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]
	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Slipstream Stress Report ({{.RunID}})

## Scenario
- **Ticks:** {{.Config.Ticks}}
- **Movers:** {{.Config.Movers}}
- **Spawners:** {{.Config.Spawners}}
- **Seed:** {{.Config.Seed}}

## Step Timings
- **Total:** {{.TotalTime}}
- **Avg:** {{.StepTime.Avg}}
- **Min:** {{.StepTime.Min}}
- **Max:** {{.StepTime.Max}}

## Systems
{{range .Scheduler.Systems -}}
- **{{.Name}}** (phase {{.Phase}}): {{.Invocations}} invocations over {{.ScheduledEntities}} scheduled entities, avg {{.AvgDuration}}, max {{.MaxDuration}}, failures {{.HookFailures}}
{{end}}
- **Total invocations:** {{.Scheduler.TotalInvocations}}

## Arbitration
- **Peak concurrent claims:** {{.PeakClaims}}
- **Claims at shutdown:** {{.FinalClaims}}
- **Entities at shutdown:** {{.FinalEntities}}

## Memory (Raw Bytes)
- Heap Alloc:  {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc: {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:      {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, r)
}
