package midi

import (
	"sort"
	"sync"
)

// EventQueue holds events ordered by sample offset. Producers may add
// events from any goroutine; the audio thread reads them per block.
type EventQueue struct {
	events []Event
	mu     sync.Mutex
	sorted bool
}

func NewEventQueue() *EventQueue {
	return &EventQueue{
		events: make([]Event, 0, 128),
		sorted: true,
	}
}

func (q *EventQueue) Add(event Event) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.events = append(q.events, event)
	q.sorted = false
}

func (q *EventQueue) AddMultiple(events []Event) {
	if len(events) == 0 {
		return
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	q.events = append(q.events, events...)
	q.sorted = false
}

// AppendRange appends the events with offsets in [startSample, endSample)
// to dst and returns it. Passing a dst with spare capacity avoids
// allocation.
func (q *EventQueue) AppendRange(dst []Event, startSample, endSample int32) []Event {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.sorted {
		q.sortEvents()
	}

	startIdx := sort.Search(len(q.events), func(i int) bool {
		return q.events[i].SampleOffset() >= startSample
	})
	for i := startIdx; i < len(q.events) && q.events[i].SampleOffset() < endSample; i++ {
		dst = append(dst, q.events[i])
	}
	return dst
}

// All returns a sorted copy of every queued event.
func (q *EventQueue) All() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.sorted {
		q.sortEvents()
	}
	result := make([]Event, len(q.events))
	copy(result, q.events)
	return result
}

// RemoveBefore drops every event with an offset before sample.
func (q *EventQueue) RemoveBefore(sample int32) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.sorted {
		q.sortEvents()
	}
	keepIdx := sort.Search(len(q.events), func(i int) bool {
		return q.events[i].SampleOffset() >= sample
	})
	if keepIdx > 0 {
		n := copy(q.events, q.events[keepIdx:])
		q.events = q.events[:n]
	}
}

// Shift moves every queued event by delta samples.
func (q *EventQueue) Shift(delta int32) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i := range q.events {
		q.events[i] = withOffset(q.events[i], delta)
	}
}

func (q *EventQueue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.events = q.events[:0]
	q.sorted = true
}

func (q *EventQueue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

func (q *EventQueue) IsEmpty() bool {
	return q.Size() == 0
}

func (q *EventQueue) sortEvents() {
	sort.SliceStable(q.events, func(i, j int) bool {
		return q.events[i].SampleOffset() < q.events[j].SampleOffset()
	})
	q.sorted = true
}
