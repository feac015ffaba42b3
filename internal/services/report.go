package services

import (
	"fmt"
	"slices"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"gonum.org/v1/gonum/stat"
)

// Report collects the outcomes of one batch in job order.
type Report struct {
	Outcomes []Outcome
	Elapsed  time.Duration
}

func (r *Report) Succeeded() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err == nil {
			n++
		}
	}
	return n
}

func (r *Report) Failed() int {
	return len(r.Outcomes) - r.Succeeded()
}

// Total sums the object counts of every job that produced a result.
func (r *Report) Total() int {
	total := 0
	for _, o := range r.Outcomes {
		if o.Result != nil {
			total += o.Result.Count
		}
	}
	return total
}

// Stats summarizes the per-image counts of the jobs that produced a result.
type Stats struct {
	Images int
	Mean   float64
	StdDev float64
	Median float64
	Min    float64
	Max    float64
}

func (r *Report) Stats() Stats {
	var counts []float64
	for _, o := range r.Outcomes {
		if o.Result != nil {
			counts = append(counts, float64(o.Result.Count))
		}
	}

	s := Stats{Images: len(counts)}
	if len(counts) == 0 {
		return s
	}

	slices.Sort(counts)
	s.Mean, s.StdDev = stat.MeanStdDev(counts, nil)
	if len(counts) < 2 {
		s.StdDev = 0
	}
	s.Median = stat.Quantile(0.5, stat.Empirical, counts, nil)
	s.Min = counts[0]
	s.Max = counts[len(counts)-1]
	return s
}

// Table renders one row per job plus a footer with the totals.
func (r *Report) Table() string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Input", "Objects", "Seeds", "Rejected", "Time", "Status"})

	for i, o := range r.Outcomes {
		row := table.Row{i + 1, o.Job.Input, "", "", "", "", "ok"}
		if o.Result != nil {
			row[2] = o.Result.Count
			row[3] = o.Result.Seeds
			row[4] = o.Result.Rejected
			row[5] = o.Result.ProcessTime.Round(time.Millisecond).String()
		}
		if o.Err != nil {
			row[6] = o.Err.Error()
		}
		t.AppendRow(row)
	}

	s := r.Stats()
	t.AppendFooter(table.Row{"", "total", r.Total(), "", "", r.Elapsed.Round(time.Millisecond).String(),
		fmt.Sprintf("%d ok, %d failed, mean %.1f ± %.1f", r.Succeeded(), r.Failed(), s.Mean, s.StdDev)})

	return t.Render()
}
