package stack

import "errors"

// ErrAllocFailed is returned by an allocator that refuses to provide storage.
var ErrAllocFailed = errors.New("allocation failed")

// Allocator controls how a Stack grows its backing storage. Grow returns a
// buffer with the same contents as buf and capacity for at least need
// elements, or an error when storage cannot be provided.
type Allocator interface {
	Grow(buf []int, need int) ([]int, error)
}

// heapAllocator is the default Allocator. It doubles capacity and never fails.
type heapAllocator struct{}

func (heapAllocator) Grow(buf []int, need int) ([]int, error) {
	if cap(buf) >= need {
		return buf, nil
	}
	newCap := 2 * cap(buf)
	if newCap < need {
		newCap = need
	}
	if newCap < 8 {
		newCap = 8
	}
	out := make([]int, len(buf), newCap)
	copy(out, buf)
	return out, nil
}

// FaultAllocator injects deterministic allocation failures: the first
// FailAfter calls to Grow succeed, every later call returns ErrAllocFailed.
// It exists so tests and the self-test suite can exercise the
// allocation-failure path of Push without depending on memory pressure.
type FaultAllocator struct {
	// Inner performs the real allocation; nil means the default heap allocator.
	Inner Allocator

	// FailAfter is the number of Grow calls that succeed before failures begin.
	// Zero makes every call fail.
	FailAfter int

	grows int
}

// Grow delegates to Inner until FailAfter successful calls have been made,
// then returns ErrAllocFailed for every subsequent call.
func (f *FaultAllocator) Grow(buf []int, need int) ([]int, error) {
	if f.grows >= f.FailAfter {
		return nil, ErrAllocFailed
	}
	f.grows++
	inner := f.Inner
	if inner == nil {
		inner = heapAllocator{}
	}
	return inner.Grow(buf, need)
}

// Reset restores the failure counter so the next FailAfter calls succeed again.
func (f *FaultAllocator) Reset() {
	f.grows = 0
}
