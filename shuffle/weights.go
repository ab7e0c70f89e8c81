package shuffle

import "math"

// Phi is the golden ratio. With 5 slots, slot i is picked as often as the
// slots i-1 and i-2 combined.
const Phi = 1.618033989

// SlotWeight returns the weight of slot i out of n slots: Phi^(i*5/n).
func SlotWeight(i, n int) float64 {
	return math.Pow(Phi, float64(i)*5/float64(n))
}

// SlotProbabilities returns the probability of each of the n slots given the
// number of eligible tracks per slot. It returns nil if there is no eligible track.
func SlotProbabilities(counts map[int]int, n int) []float64 {
	weighted := make([]float64, n)
	total := 0.0
	for slot, count := range counts {
		if slot < 0 || slot >= n || count <= 0 {
			continue
		}
		weighted[slot] = float64(count) * SlotWeight(slot, n)
		total += weighted[slot]
	}
	if total == 0 {
		return nil
	}
	for i := range weighted {
		weighted[i] /= total
	}
	return weighted
}

// pickSlot walks probabilities in ascending slot order, subtracting each from r
// until the remainder is <= 0. Slots with probability 0 are never picked.
func pickSlot(probabilities []float64, r float64) int {
	last := -1
	for i, p := range probabilities {
		if p <= 0 {
			continue
		}
		last = i
		r -= p
		if r <= 0 {
			return i
		}
	}
	// rounding
	return last
}
