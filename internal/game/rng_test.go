package game

import (
	"errors"
	"testing"
)

func TestIntBetweenStaysInBounds(t *testing.T) {
	rng := NewRand(1)
	for i := 0; i < 1000; i++ {
		v, err := rng.IntBetween(5, 9)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v < 5 || v > 9 {
			t.Fatalf("draw %d out of [5,9]", v)
		}
	}
}

func TestIntBetweenDegenerateRange(t *testing.T) {
	rng := NewRand(1)
	v, err := rng.IntBetween(7, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 7 {
		t.Fatalf("got %d want 7", v)
	}
}

func TestIntBetweenInvalidRange(t *testing.T) {
	rng := NewRand(1)
	if _, err := rng.IntBetween(10, 9); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestInt64BetweenStaysInBounds(t *testing.T) {
	rng := NewRand(2)
	for i := 0; i < 1000; i++ {
		v, err := rng.Int64Between(600, 900)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v < 600 || v >= 900 {
			t.Fatalf("draw %d out of [600,900)", v)
		}
	}
	if _, err := rng.Int64Between(5, 5); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange for empty range, got %v", err)
	}
}

func TestPickValidation(t *testing.T) {
	rng := NewRand(3)
	if _, err := rng.Pick(nil); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange for empty weights, got %v", err)
	}
	if _, err := rng.Pick([]int{10, 0, 5}); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange for zero weight, got %v", err)
	}
}

func TestPickCoversAllIndices(t *testing.T) {
	rng := NewRand(4)
	seen := map[int]int{}
	for i := 0; i < 5000; i++ {
		idx, err := rng.Pick([]int{50, 30, 20})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if idx < 0 || idx > 2 {
			t.Fatalf("index %d out of range", idx)
		}
		seen[idx]++
	}
	// 50/30/20 weights should roughly order the counts.
	if seen[0] <= seen[1] || seen[1] <= seen[2] {
		t.Fatalf("weight ordering not reflected in counts: %v", seen)
	}
}

func TestSeededSequencesMatch(t *testing.T) {
	a := NewRand(42)
	b := NewRand(42)
	for i := 0; i < 100; i++ {
		av, err := a.IntBetween(1, 1000)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		bv, err := b.IntBetween(1, 1000)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if av != bv {
			t.Fatalf("draw %d diverged: %d vs %d", i, av, bv)
		}
	}
}
