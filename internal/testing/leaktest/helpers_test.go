package leaktest

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// recordingTB captures failures instead of failing the real test
type recordingTB struct {
	testing.TB
	failed bool
}

func (r *recordingTB) Helper() {}

func (r *recordingTB) Errorf(format string, args ...any) { r.failed = true }

func TestCheckNoGoroutineLeak_JoinedGoroutine(t *testing.T) {
	CheckNoGoroutineLeak(t, func() {
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			time.Sleep(time.Millisecond)
		}()
		wg.Wait()
	})
}

func TestGoroutineChecker_SlowExitIsTolerated(t *testing.T) {
	checker := NewGoroutineChecker(t)

	go func() { time.Sleep(50 * time.Millisecond) }()

	checker.Check(0)
}

func TestGoroutineChecker_DetectsLeak(t *testing.T) {
	rec := &recordingTB{TB: t}
	checker := NewGoroutineChecker(rec)

	done := make(chan struct{})
	defer close(done)
	go func() { <-done }()

	checker.Check(0)
	assert.True(t, rec.failed)
}

func TestGoroutineChecker_WithinTolerance(t *testing.T) {
	rec := &recordingTB{TB: t}
	checker := NewGoroutineChecker(rec)

	done := make(chan struct{})
	defer close(done)
	go func() { <-done }()

	checker.Check(1)
	assert.False(t, rec.failed)
}
