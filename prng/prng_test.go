package prng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeterminism(t *testing.T) {
	a := New("abc")
	b := New("abc")
	for i := 0; i < 1000; i++ {
		assert.Equal(t, a.NextU32(), b.NextU32(), "draw %d diverged", i)
	}
}

func TestSeedsDiverge(t *testing.T) {
	a := New("abc")
	b := New("abd")
	same := 0
	for i := 0; i < 100; i++ {
		if a.NextU32() == b.NextU32() {
			same++
		}
	}
	assert.Less(t, same, 5)
}

func TestNextFloatRange(t *testing.T) {
	r := New("float-range")
	for i := 0; i < 10000; i++ {
		f := r.NextFloat()
		assert.GreaterOrEqual(t, f, 0.0)
		assert.Less(t, f, 1.0)
	}
}

func TestFork(t *testing.T) {
	parent := New("base")
	forkA := parent.Fork("label")
	forkB := New("base").Fork("label")
	for i := 0; i < 100; i++ {
		assert.Equal(t, forkA.NextU32(), forkB.NextU32())
	}

	// Forking is independent of parent consumption.
	consumed := New("base")
	for i := 0; i < 37; i++ {
		consumed.NextU32()
	}
	forkC := consumed.Fork("label")
	forkD := New("base").Fork("label")
	for i := 0; i < 100; i++ {
		assert.Equal(t, forkD.NextU32(), forkC.NextU32())
	}

	// Fork equals a stream seeded with the concatenated label.
	forkE := New("base").Fork("x")
	direct := New("base:x")
	assert.Equal(t, direct.NextU32(), forkE.NextU32())
}

func TestPick(t *testing.T) {
	r := New("pick")
	xs := []string{"a", "b", "c"}
	for i := 0; i < 100; i++ {
		v, err := Pick(r, xs)
		assert.Nil(t, err)
		assert.Contains(t, xs, v)
	}

	_, err := Pick(r, []string{})
	assert.ErrorIs(t, err, ErrEmptySequence)
}

func TestWeightedPick(t *testing.T) {
	r := New("weighted")
	xs := []string{"never", "always"}
	for i := 0; i < 100; i++ {
		v, err := WeightedPick(r, xs, []float64{0, 1})
		assert.Nil(t, err)
		assert.Equal(t, "always", v)
	}

	_, err := WeightedPick(r, xs, []float64{0, 0})
	assert.ErrorIs(t, err, ErrNoWeight)

	_, err = WeightedPick(r, []string{}, nil)
	assert.ErrorIs(t, err, ErrEmptySequence)
}

func TestShuffle(t *testing.T) {
	r := New("shuffle")
	original := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	shuffled := Shuffle(r, original)

	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, original, "input must stay untouched")
	assert.ElementsMatch(t, original, shuffled)

	again := Shuffle(New("shuffle"), original)
	assert.Equal(t, shuffled, again, "same seed, same permutation")
}

func TestIntNBounds(t *testing.T) {
	r := New("intn")
	for i := 0; i < 1000; i++ {
		v := r.IntN(7)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 7)
	}
}
