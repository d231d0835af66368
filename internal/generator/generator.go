// Package generator builds randomized key pools.
package generator

import (
	"math/rand"
	"time"
)

// Generator produces shuffled key orderings.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Generator with a fixed seed.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Shuffle returns a uniformly random permutation of labels. The input slice
// is left untouched.
func (g *Generator) Shuffle(labels []string) []string {
	out := make([]string, len(labels))
	copy(out, labels)
	shuffleInPlace(g.rnd, out)
	return out
}

// ShuffleWeakFirst shuffles labels and then moves the labels found in weakSet
// to the front. Both groups keep a uniform order among themselves.
func (g *Generator) ShuffleWeakFirst(labels []string, weakSet map[string]struct{}) []string {
	if len(weakSet) == 0 {
		return g.Shuffle(labels)
	}
	weak := make([]string, 0, len(weakSet))
	rest := make([]string, 0, len(labels))
	for _, label := range labels {
		if _, ok := weakSet[label]; ok {
			weak = append(weak, label)
			continue
		}
		rest = append(rest, label)
	}
	shuffleInPlace(g.rnd, weak)
	shuffleInPlace(g.rnd, rest)
	return append(weak, rest...)
}

func shuffleInPlace(rnd *rand.Rand, s []string) {
	for i := len(s) - 1; i > 0; i-- {
		j := rnd.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

// WeakFirst shuffles with ShuffleWeakFirst using a weak set that can be
// swapped between rounds.
type WeakFirst struct {
	Gen  *Generator
	Weak map[string]struct{}
}

// Shuffle implements game.Shuffler.
func (w *WeakFirst) Shuffle(labels []string) []string {
	return w.Gen.ShuffleWeakFirst(labels, w.Weak)
}
