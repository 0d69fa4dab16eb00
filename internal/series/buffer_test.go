package series

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		want     int
	}{
		{name: "explicit capacity", capacity: 7, want: 7},
		{name: "detail capacity", capacity: DetailCapacity, want: 100},
		{name: "zero uses default", capacity: 0, want: DashboardCapacity},
		{name: "negative uses default", capacity: -3, want: DashboardCapacity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New[int](tt.capacity)
			assert.Equal(t, tt.want, b.Cap())
			assert.Zero(t, b.Len())
			assert.Empty(t, b.Snapshot())
		})
	}
}

func TestBuffer_KeepsLastCapacityValuesInOrder(t *testing.T) {
	for _, capacity := range []int{1, 2, 5, DashboardCapacity} {
		for n := 0; n <= 3*capacity+1; n++ {
			b := New[int](capacity)
			for i := 0; i < n; i++ {
				b.Append(i)
			}

			want := min(n, capacity)
			snap := b.Snapshot()
			require.Len(t, snap, want, "capacity=%d appends=%d", capacity, n)
			for i, v := range snap {
				assert.Equal(t, n-want+i, v, "capacity=%d appends=%d index=%d", capacity, n, i)
			}
		}
	}
}

func TestBuffer_EvictsOnePerAppend(t *testing.T) {
	b := New[string](3)
	b.Append("a")
	b.Append("b")
	b.Append("c")
	assert.Equal(t, []string{"a", "b", "c"}, b.Snapshot())

	b.Append("d")
	assert.Equal(t, []string{"b", "c", "d"}, b.Snapshot())
	assert.Equal(t, 3, b.Len())
}

func TestBuffer_SnapshotIsACopy(t *testing.T) {
	b := New[int](3)
	b.Append(1)
	b.Append(2)

	snap := b.Snapshot()
	snap[0] = 99

	assert.Equal(t, []int{1, 2}, b.Snapshot())
}

func TestBuffer_Latest(t *testing.T) {
	b := New[int](2)

	_, ok := b.Latest()
	assert.False(t, ok)

	b.Append(1)
	b.Append(2)
	b.Append(3)

	v, ok := b.Latest()
	require.True(t, ok)
	assert.Equal(t, 3, v)
}
