package analyzer

// Series maps iteration index to its maximum time, remembering the order in
// which iterations were first seen. That order, not the numeric index, is
// the output order.
type Series struct {
	Name  string
	Label string

	order   []int
	samples map[int]*Sample
}

// NewSeries creates an empty series.
func NewSeries(name, label string) *Series {
	return &Series{
		Name:    name,
		Label:   label,
		samples: make(map[int]*Sample),
	}
}

// Observe folds one measurement into the series and reports whether the
// iteration was new. An unseen iteration starts at zero before taking the max.
func (s *Series) Observe(iteration int, seconds float64, rank, line int) bool {
	sample, ok := s.samples[iteration]
	if !ok {
		sample = &Sample{Iteration: iteration, Rank: rank, Line: line}
		s.samples[iteration] = sample
		s.order = append(s.order, iteration)
	}

	sample.Count++
	if seconds > sample.Seconds {
		sample.Seconds = seconds
		sample.Rank = rank
		sample.Line = line
	}

	return !ok
}

// Len returns the number of distinct iterations.
func (s *Series) Len() int {
	return len(s.order)
}

// Get returns the sample for an iteration.
func (s *Series) Get(iteration int) (Sample, bool) {
	sample, ok := s.samples[iteration]
	if !ok {
		return Sample{}, false
	}
	return *sample, true
}

// Iterations returns iteration indexes in first-seen order.
func (s *Series) Iterations() []int {
	out := make([]int, len(s.order))
	copy(out, s.order)
	return out
}

// Values returns the maximum times in first-seen order.
func (s *Series) Values() []float64 {
	out := make([]float64, len(s.order))
	for i, it := range s.order {
		out[i] = s.samples[it].Seconds
	}
	return out
}

// Samples returns copies of all samples in first-seen order.
func (s *Series) Samples() []Sample {
	out := make([]Sample, len(s.order))
	for i, it := range s.order {
		out[i] = *s.samples[it]
	}
	return out
}

// SumSeries adds series position by position. Shorter series count as zero
// past their end, so the result is as long as the longest input.
func SumSeries(series ...*Series) []float64 {
	n := 0
	for _, s := range series {
		if s.Len() > n {
			n = s.Len()
		}
	}

	sums := make([]float64, n)
	for _, s := range series {
		for i, v := range s.Values() {
			sums[i] += v
		}
	}
	return sums
}
