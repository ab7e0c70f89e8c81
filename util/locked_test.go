package util

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocked(t *testing.T) {
	t.Run("concurrent increments are not lost", func(t *testing.T) {
		l := NewLocked(0)
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = l.Do(func(v *int) error {
					*v++
					return nil
				})
			}()
		}
		wg.Wait()
		assert.Equal(t, 50, Get(l, func(v *int) int { return *v }))
	})

	t.Run("Do returns the error of fn", func(t *testing.T) {
		l := NewLocked("a")
		want := errors.New("fail")
		assert.ErrorIs(t, l.Do(func(v *string) error { return want }), want)
	})
}
