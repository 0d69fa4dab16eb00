// Package series provides the bounded rolling buffers that back every chart.
package series

// Capacities used by the two views.
const (
	DashboardCapacity = 20
	DetailCapacity    = 100
)

// Buffer is a bounded FIFO that keeps the most recent values in insertion order.
// When full, each Append evicts exactly one value from the head.
//
// Buffer is not safe for concurrent use; callers serialize access.
type Buffer[T any] struct {
	data     []T
	head     int
	count    int
	capacity int
}

// New creates a buffer holding at most capacity values.
// A capacity of 0 or less falls back to DashboardCapacity.
func New[T any](capacity int) *Buffer[T] {
	if capacity <= 0 {
		capacity = DashboardCapacity
	}
	return &Buffer[T]{
		data:     make([]T, capacity),
		capacity: capacity,
	}
}

// Append adds v at the tail, evicting the oldest value if the buffer is full.
func (b *Buffer[T]) Append(v T) {
	b.data[(b.head+b.count)%b.capacity] = v
	if b.count < b.capacity {
		b.count++
		return
	}
	b.head = (b.head + 1) % b.capacity
}

// Snapshot returns the buffered values, oldest first, as a new slice.
func (b *Buffer[T]) Snapshot() []T {
	out := make([]T, b.count)
	for i := 0; i < b.count; i++ {
		out[i] = b.data[(b.head+i)%b.capacity]
	}
	return out
}

// Latest returns the most recently appended value.
func (b *Buffer[T]) Latest() (T, bool) {
	if b.count == 0 {
		var zero T
		return zero, false
	}
	return b.data[(b.head+b.count-1)%b.capacity], true
}

// Len returns the number of buffered values.
func (b *Buffer[T]) Len() int {
	return b.count
}

// Cap returns the fixed capacity.
func (b *Buffer[T]) Cap() int {
	return b.capacity
}
