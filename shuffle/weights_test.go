package shuffle

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotWeight(t *testing.T) {
	assert.InDelta(t, 1, SlotWeight(0, 5), 1e-9)
	assert.InDelta(t, 2.618034, SlotWeight(2, 5), 1e-6)
	assert.InDelta(t, 6.854102, SlotWeight(4, 5), 1e-6)
	assert.InDelta(t, Phi, SlotWeight(4, 20), 1e-9)
	for i := 2; i < 5; i++ {
		assert.InDelta(t, SlotWeight(i-1, 5)+SlotWeight(i-2, 5), SlotWeight(i, 5), 1e-6, "slot %d", i)
	}
}

func TestSlotProbabilities(t *testing.T) {
	tests := []struct {
		name   string
		counts map[int]int
		n      int
	}{
		{"single slot", map[int]int{3: 7}, 5},
		{"all rating slots", map[int]int{0: 1, 1: 2, 2: 3, 3: 4, 4: 5}, 5},
		{"sparse score slots", map[int]int{0: 100, 7: 1, 19: 3}, 20},
		{"huge counts", map[int]int{1: 1_000_000, 18: 999_999}, 20},
		{"out of range slots are ignored", map[int]int{2: 1, 9: 5, -1: 3}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := SlotProbabilities(tt.counts, tt.n)
			require.Len(t, p, tt.n)
			sum := 0.0
			for i, v := range p {
				assert.GreaterOrEqual(t, v, 0.0)
				if tt.counts[i] == 0 {
					assert.Zero(t, v, "slot %d has no tracks", i)
				}
				sum += v
			}
			assert.InDelta(t, 1, sum, 1e-9)
		})
	}

	assert.Nil(t, SlotProbabilities(nil, 5))
	assert.Nil(t, SlotProbabilities(map[int]int{1: 0}, 5))
}

func TestSlotProbabilities_Monotonic(t *testing.T) {
	for _, n := range []int{5, 20} {
		counts := make(map[int]int, n)
		for i := range n {
			counts[i] = 4
		}
		p := SlotProbabilities(counts, n)
		for i := 1; i < n; i++ {
			assert.Greater(t, p[i], p[i-1], "n=%d slot %d", n, i)
		}
	}
}

func TestSlotProbabilities_Ratings(t *testing.T) {
	// ratings [0, 0, 3, 5, 5]: unrated tracks count as rating 3
	p := SlotProbabilities(map[int]int{2: 3, 4: 2}, 5)
	assert.InDelta(t, 13.708/21.562, p[4], 1e-3)
	assert.InDelta(t, 0.636, p[4], 1e-3)
	assert.InDelta(t, 1-p[4], p[2], 1e-9)
}

func TestPickSlot(t *testing.T) {
	p := []float64{0, 0.25, 0, 0.75, 0}
	tests := []struct {
		name string
		r    float64
		want int
	}{
		{"zero never picks an empty slot", 0, 1},
		{"inside first slot", 0.1, 1},
		{"boundary belongs to the lower slot", 0.25, 1},
		{"inside second slot", 0.26, 3},
		{"almost one", math.Nextafter(1, 0), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pickSlot(p, tt.r))
		})
	}
	assert.Equal(t, -1, pickSlot([]float64{0, 0}, 0.5))
}
