// Package eventqueue implements the simulator's discrete-event queue: a
// min-heap over container/heap keyed by (time, -priority), so that at
// equal timestamps RequestJob events are delivered before StartScheduling.
package eventqueue

import (
	"container/heap"

	"github.com/fabric-sim/fabric-sim/sim/job"
)

// Kind distinguishes the two event kinds the simulator drives on.
type Kind int

const (
	KindRequestJob Kind = iota
	KindStartScheduling
)

func (k Kind) String() string {
	switch k {
	case KindRequestJob:
		return "RequestJob"
	case KindStartScheduling:
		return "StartScheduling"
	default:
		return "unknown"
	}
}

// kindPriority mirrors the ordering key in spec: StartScheduling = -1,
// RequestJob = 1; higher priority value wins a tie at equal Time.
var kindPriority = map[Kind]int32{
	KindRequestJob:      1,
	KindStartScheduling: -1,
}

// Event is one entry in the queue: a timestamp plus a kind, with JobID
// meaningful only for KindRequestJob.
type Event struct {
	Time  uint64
	Kind  Kind
	JobID job.ID
}

// NewRequestJob builds a RequestJob event for id at time t.
func NewRequestJob(t uint64, id job.ID) Event {
	return Event{Time: t, Kind: KindRequestJob, JobID: id}
}

// NewStartScheduling builds a StartScheduling event at time t.
func NewStartScheduling(t uint64) Event {
	return Event{Time: t, Kind: KindStartScheduling}
}

// Priority returns the event's ordering priority.
func (e Event) Priority() int32 { return kindPriority[e.Kind] }

// Queue is a min-heap of Events ordered by (Time, -Priority).
type Queue struct {
	events []Event
}

// New returns an empty Queue.
func New() *Queue {
	q := &Queue{events: make([]Event, 0)}
	heap.Init(q)
	return q
}

// Len implements heap.Interface.
func (q *Queue) Len() int { return len(q.events) }

// Less implements heap.Interface: primary key Time (ascending), secondary
// key Priority (descending, so higher priority pops first at equal Time).
func (q *Queue) Less(i, j int) bool {
	ei, ej := q.events[i], q.events[j]
	if ei.Time != ej.Time {
		return ei.Time < ej.Time
	}
	return ei.Priority() > ej.Priority()
}

// Swap implements heap.Interface.
func (q *Queue) Swap(i, j int) { q.events[i], q.events[j] = q.events[j], q.events[i] }

// Push implements heap.Interface. Use Queue.Push (not this directly) to add events.
func (q *Queue) Push(x any) { q.events = append(q.events, x.(Event)) }

// Pop implements heap.Interface. Use Queue.PopNext (not this directly) to remove events.
func (q *Queue) Pop() any {
	old := q.events
	n := len(old)
	item := old[n-1]
	q.events = old[:n-1]
	return item
}

// PushEvent adds an event to the queue.
func (q *Queue) PushEvent(e Event) { heap.Push(q, e) }

// PopNext removes and returns the next event in order. The second return
// value is false if the queue is empty.
func (q *Queue) PopNext() (Event, bool) {
	if q.Len() == 0 {
		return Event{}, false
	}
	return heap.Pop(q).(Event), true
}

// Peek returns the next event without removing it.
func (q *Queue) Peek() (Event, bool) {
	if q.Len() == 0 {
		return Event{}, false
	}
	return q.events[0], true
}

// NextTime returns the timestamp of the next event, or false if empty.
func (q *Queue) NextTime() (uint64, bool) {
	e, ok := q.Peek()
	if !ok {
		return 0, false
	}
	return e.Time, true
}

// IsEmpty reports whether the queue has no pending events.
func (q *Queue) IsEmpty() bool { return q.Len() == 0 }
