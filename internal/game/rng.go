package game

import (
	"fmt"
	mathrand "math/rand"
	"sync"
	"time"
)

// RNG supplies the uniform draws the simulation needs. Implementations must
// be safe for concurrent use; a fixed seed makes every draw sequence
// reproducible for tests.
type RNG interface {
	// IntBetween returns a uniform int in [min, maxInclusive].
	IntBetween(min, maxInclusive int) (int, error)
	// Int64Between returns a uniform int64 in [min, maxExclusive).
	Int64Between(min, maxExclusive int64) (int64, error)
	// Pick returns an index drawn with the given relative weights.
	Pick(weights []int) (int, error)
}

type lockedRand struct {
	mu sync.Mutex
	r  *mathrand.Rand
}

// NewRand returns a seeded RNG. All draws share one source behind a mutex,
// same as sharing a service-level rand across request handlers.
func NewRand(seed int64) RNG {
	return &lockedRand{r: mathrand.New(mathrand.NewSource(seed))}
}

// NewTimeRand returns an RNG seeded from the wall clock.
func NewTimeRand() RNG {
	return NewRand(time.Now().UnixNano())
}

func (l *lockedRand) IntBetween(min, maxInclusive int) (int, error) {
	if min > maxInclusive {
		return 0, fmt.Errorf("%w: min %d > max %d", ErrInvalidRange, min, maxInclusive)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return min + l.r.Intn(maxInclusive-min+1), nil
}

func (l *lockedRand) Int64Between(min, maxExclusive int64) (int64, error) {
	if min >= maxExclusive {
		return 0, fmt.Errorf("%w: min %d >= max %d", ErrInvalidRange, min, maxExclusive)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return min + l.r.Int63n(maxExclusive-min), nil
}

func (l *lockedRand) Pick(weights []int) (int, error) {
	if len(weights) == 0 {
		return 0, fmt.Errorf("%w: empty weight list", ErrInvalidRange)
	}
	total := 0
	for i, w := range weights {
		if w <= 0 {
			return 0, fmt.Errorf("%w: non-positive weight %d at index %d", ErrInvalidRange, w, i)
		}
		total += w
	}
	l.mu.Lock()
	draw := 1 + l.r.Intn(total)
	l.mu.Unlock()
	for i, w := range weights {
		draw -= w
		if draw <= 0 {
			return i, nil
		}
	}
	// Unreachable: draw is at most the sum of weights.
	return len(weights) - 1, nil
}
