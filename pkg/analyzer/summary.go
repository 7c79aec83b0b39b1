package analyzer

import (
	"fmt"
	"sort"

	"github.com/montanaflynn/stats"
)

// TotalName names the positional sum series in summaries.
const TotalName = "total"

// Summary describes the distribution of one series.
type Summary struct {
	Metric     string  `json:"metric"`
	Iterations int     `json:"iterations"`
	Samples    int     `json:"samples"`
	Total      float64 `json:"total"`
	Mean       float64 `json:"mean"`
	Median     float64 `json:"median"`
	P95        float64 `json:"p95"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	StdDev     float64 `json:"stddev"`

	// Slowest is the iteration with the largest time; nil for the total series.
	Slowest *Sample `json:"slowest,omitempty"`

	// Stragglers counts how often each rank supplied an iteration's maximum.
	Stragglers []RankCount `json:"stragglers,omitempty"`
}

// RankCount pairs a rank with the number of iterations it was slowest in.
type RankCount struct {
	Rank       int `json:"rank"`
	Iterations int `json:"iterations"`
}

// Summarize computes statistics for a series. Empty series give a zeroed summary.
func Summarize(s *Series) (*Summary, error) {
	sum, err := summarizeValues(s.Name, s.Values())
	if err != nil {
		return nil, err
	}
	if s.Len() == 0 {
		return sum, nil
	}

	counts := make(map[int]int)
	var slowest *Sample
	for _, sample := range s.Samples() {
		sample := sample
		sum.Samples += sample.Count
		if slowest == nil || sample.Seconds > slowest.Seconds {
			slowest = &sample
		}
		if sample.Rank >= 0 {
			counts[sample.Rank]++
		}
	}
	sum.Slowest = slowest
	sum.Stragglers = rankCounts(counts)

	return sum, nil
}

// SummarizeResult summarizes every series of r and, when there is more than
// one, their positional sum under TotalName.
func SummarizeResult(r *Result) ([]*Summary, error) {
	out := make([]*Summary, 0, len(r.Series)+1)
	for _, s := range r.Series {
		sum, err := Summarize(s)
		if err != nil {
			return nil, fmt.Errorf("summarizing %s: %w", s.Name, err)
		}
		out = append(out, sum)
	}

	if len(r.Series) > 1 {
		total, err := summarizeValues(TotalName, r.Sum())
		if err != nil {
			return nil, fmt.Errorf("summarizing %s: %w", TotalName, err)
		}
		out = append(out, total)
	}

	return out, nil
}

func summarizeValues(name string, values []float64) (*Summary, error) {
	sum := &Summary{Metric: name, Iterations: len(values)}
	if len(values) == 0 {
		return sum, nil
	}

	data := stats.Float64Data(values)
	var err error

	if sum.Total, err = stats.Sum(data); err != nil {
		return nil, err
	}
	if sum.Mean, err = stats.Mean(data); err != nil {
		return nil, err
	}
	if sum.Median, err = stats.Median(data); err != nil {
		return nil, err
	}
	if sum.P95, err = stats.PercentileNearestRank(data, 95); err != nil {
		return nil, err
	}
	if sum.Min, err = stats.Min(data); err != nil {
		return nil, err
	}
	if sum.Max, err = stats.Max(data); err != nil {
		return nil, err
	}
	if sum.StdDev, err = stats.StandardDeviation(data); err != nil {
		return nil, err
	}

	return sum, nil
}

func rankCounts(counts map[int]int) []RankCount {
	out := make([]RankCount, 0, len(counts))
	for rank, n := range counts {
		out = append(out, RankCount{Rank: rank, Iterations: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Iterations != out[j].Iterations {
			return out[i].Iterations > out[j].Iterations
		}
		return out[i].Rank < out[j].Rank
	})
	return out
}
