package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapKeys(t *testing.T) {
	tests := []struct {
		name string
		m    map[int]struct{}
		want []int
	}{
		{"nil map", nil, []int{}},
		{"empty map", map[int]struct{}{}, []int{}},
		{"ranks", map[int]struct{}{4: {}, 0: {}, 2: {}}, []int{0, 2, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keys := MapKeys(tt.m)
			assert.NotNil(t, keys)
			assert.ElementsMatch(t, tt.want, keys)
		})
	}
}
