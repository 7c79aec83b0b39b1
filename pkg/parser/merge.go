package parser

import (
	"container/heap"
	"context"
	"io"
	"strings"
)

// MergedSource combines multiple LineSources into a single stream ordered
// by envelope timestamp (oldest first), so per-rank logs can be read as one
// run. Equal timestamps keep argument order, then line order. Lines whose
// stamp did not parse have a zero timestamp and sort first.
type MergedSource struct {
	sources     []LineSource
	heap        *lineHeap
	initialized bool
}

// NewMergedSource creates a LineSource that merges sources by timestamp.
func NewMergedSource(sources ...LineSource) *MergedSource {
	return &MergedSource{
		sources: sources,
		heap:    &lineHeap{},
	}
}

// Next returns the next envelope line in timestamp order across all sources.
// Returns io.EOF when all sources are exhausted. An error from any source
// ends the merge.
func (m *MergedSource) Next(ctx context.Context) (*Line, error) {
	if !m.initialized {
		if err := m.initHeap(ctx); err != nil {
			return nil, err
		}
		m.initialized = true
	}

	if m.heap.Len() == 0 {
		return nil, io.EOF
	}

	// Pop the oldest line
	item := heap.Pop(m.heap).(*heapItem)

	// Refill from the same source
	next, err := m.sources[item.sourceIdx].Next(ctx)
	switch {
	case err == nil:
		heap.Push(m.heap, &heapItem{line: next, sourceIdx: item.sourceIdx})
	case err != io.EOF:
		return nil, err
	}

	return item.line, nil
}

// initHeap reads the first line from each source to initialize the heap.
func (m *MergedSource) initHeap(ctx context.Context) error {
	heap.Init(m.heap)

	for i, src := range m.sources {
		line, err := src.Next(ctx)
		if err == io.EOF {
			continue // Empty source
		}
		if err != nil {
			return err
		}

		heap.Push(m.heap, &heapItem{line: line, sourceIdx: i})
	}

	return nil
}

// Name joins the names of the merged sources.
func (m *MergedSource) Name() string {
	names := make([]string, len(m.sources))
	for i, src := range m.sources {
		names[i] = src.Name()
	}
	return strings.Join(names, "+")
}

// Close releases all source resources.
func (m *MergedSource) Close() error {
	var firstErr error
	for _, src := range m.sources {
		if err := src.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// heapItem wraps a Line with its source index for the priority queue.
type heapItem struct {
	line      *Line
	sourceIdx int
}

// lineHeap implements heap.Interface for timestamp-ordered merging.
type lineHeap []*heapItem

func (h lineHeap) Len() int { return len(h) }

func (h lineHeap) Less(i, j int) bool {
	a, b := h[i], h[j]
	if !a.line.Timestamp.Equal(b.line.Timestamp) {
		return a.line.Timestamp.Before(b.line.Timestamp)
	}
	if a.sourceIdx != b.sourceIdx {
		return a.sourceIdx < b.sourceIdx
	}
	return a.line.Num < b.line.Num
}

func (h lineHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *lineHeap) Push(x interface{}) {
	*h = append(*h, x.(*heapItem))
}

func (h *lineHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[0 : n-1]
	return item
}
