package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeries_ObserveKeepsMaximum(t *testing.T) {
	s := NewSeries("computation", "Computation time for iteration")

	assert.True(t, s.Observe(5, 2.0, 0, 1))
	assert.False(t, s.Observe(5, 3.5, 1, 2))
	assert.False(t, s.Observe(5, 1.0, 2, 3))

	sample, ok := s.Get(5)
	require.True(t, ok)
	assert.Equal(t, 3.5, sample.Seconds)
	assert.Equal(t, 1, sample.Rank)
	assert.Equal(t, 2, sample.Line)
	assert.Equal(t, 3, sample.Count)
	assert.Equal(t, []float64{3.5}, s.Values())
}

func TestSeries_FirstSeenOrder(t *testing.T) {
	s := NewSeries("computation", "")
	s.Observe(2, 1.0, 0, 1)
	s.Observe(0, 2.0, 0, 2)
	s.Observe(1, 3.0, 0, 3)
	s.Observe(0, 0.5, 1, 4)

	assert.Equal(t, []int{2, 0, 1}, s.Iterations())
	assert.Equal(t, []float64{1.0, 2.0, 3.0}, s.Values())
}

func TestSeries_ZeroInitialized(t *testing.T) {
	s := NewSeries("computation", "")
	s.Observe(0, 0, 3, 7)

	sample, ok := s.Get(0)
	require.True(t, ok)
	assert.Equal(t, 0.0, sample.Seconds)
	assert.Equal(t, 3, sample.Rank)

	// Equal values do not move the straggler.
	s.Observe(0, 0, 4, 8)
	sample, _ = s.Get(0)
	assert.Equal(t, 3, sample.Rank)
}

func TestSeries_Empty(t *testing.T) {
	s := NewSeries("communication", "")

	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Values())
	assert.Empty(t, s.Samples())

	_, ok := s.Get(0)
	assert.False(t, ok)
}

func TestSeries_IterationsReturnsCopy(t *testing.T) {
	s := NewSeries("computation", "")
	s.Observe(1, 1.0, 0, 1)

	its := s.Iterations()
	its[0] = 99

	assert.Equal(t, []int{1}, s.Iterations())
}

func TestSumSeries(t *testing.T) {
	series := func(values ...float64) *Series {
		s := NewSeries("x", "")
		for i, v := range values {
			s.Observe(i, v, 0, i+1)
		}
		return s
	}

	tests := []struct {
		name   string
		series []*Series
		want   []float64
	}{
		{
			name:   "equal length",
			series: []*Series{series(1.5), series(0.25)},
			want:   []float64{1.75},
		},
		{
			name:   "pads shorter with zero",
			series: []*Series{series(1, 2, 3), series(10, 20)},
			want:   []float64{11, 22, 3},
		},
		{
			name:   "first shorter",
			series: []*Series{series(1), series(10, 20)},
			want:   []float64{11, 20},
		},
		{
			name:   "both empty",
			series: []*Series{series(), series()},
			want:   []float64{},
		},
		{
			name:   "no series",
			series: nil,
			want:   []float64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SumSeries(tt.series...))
		})
	}
}

func TestSumSeries_ByPositionNotIteration(t *testing.T) {
	a := NewSeries("computation", "")
	a.Observe(7, 1.0, 0, 1)
	a.Observe(3, 2.0, 0, 2)

	b := NewSeries("communication", "")
	b.Observe(3, 0.5, 0, 3)
	b.Observe(7, 0.25, 0, 4)

	assert.Equal(t, []float64{1.5, 2.25}, SumSeries(a, b))
}
