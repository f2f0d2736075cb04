package typemaster

import (
	"math/rand"

	"github.com/mattn/go-runewidth"
)

// WordSupply hands out words from a shuffled pool.
// Words are never removed; when the cursor runs off the end it wraps to the
// start, so the same permutation repeats unless reshuffling is enabled.
type WordSupply struct {
	words     []string
	cursor    int
	rng       *rand.Rand
	reshuffle bool
}

// NewWordSupply shuffles a copy of words once using rng.
// An empty list is a configuration error.
func NewWordSupply(words []string, rng *rand.Rand, reshuffle bool) (*WordSupply, error) {
	if len(words) == 0 {
		return nil, ErrEmptyWordList
	}
	for _, w := range words {
		if w == "" {
			return nil, ErrEmptyWord
		}
	}

	pool := make([]string, len(words))
	copy(pool, words)

	s := &WordSupply{
		words:     pool,
		rng:       rng,
		reshuffle: reshuffle,
	}
	s.shuffle()
	return s, nil
}

func (s *WordSupply) shuffle() {
	s.rng.Shuffle(len(s.words), func(i, j int) {
		s.words[i], s.words[j] = s.words[j], s.words[i]
	})
}

// Next returns the next word in shuffle order and advances the cursor.
func (s *WordSupply) Next() string {
	w := s.words[s.cursor]
	s.cursor++
	if s.cursor >= len(s.words) {
		s.cursor = 0
		if s.reshuffle {
			s.shuffle()
		}
	}
	return w
}

// Widest returns the word with the largest display width in the pool.
func (s *WordSupply) Widest() string {
	widest, width := "", 0
	for _, w := range s.words {
		if n := runewidth.StringWidth(w); n > width {
			widest, width = w, n
		}
	}
	return widest
}
