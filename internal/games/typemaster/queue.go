package typemaster

import (
	"math/rand"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// SpawnRow is the row every new word starts on (row 0 is the top border).
const SpawnRow = 1

// Word is an active word on the play field.
type Word struct {
	Text string // Remaining untyped characters
	X    int    // Column of the first remaining character
	Y    int    // Row
}

// Leading returns the next character the player has to type.
func (w Word) Leading() (rune, bool) {
	if w.Text == "" {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(w.Text)
	return r, true
}

// ActiveQueue holds in-flight words in spawn order.
// Only the head (index 0) is matched against keystrokes.
type ActiveQueue struct {
	words  []Word
	rng    *rand.Rand
	width  int
	margin int
}

// NewActiveQueue creates an empty queue for a field of the given width.
func NewActiveQueue(rng *rand.Rand, fieldWidth, margin int) *ActiveQueue {
	return &ActiveQueue{
		words:  make([]Word, 0, 8),
		rng:    rng,
		width:  fieldWidth,
		margin: margin,
	}
}

// Fits reports whether a word of the given text can be placed inside the margins.
func (q *ActiveQueue) Fits(text string) bool {
	return q.maxColumn(text) >= q.margin
}

func (q *ActiveQueue) maxColumn(text string) int {
	return q.width - runewidth.StringWidth(text) - q.margin
}

// Spawn appends a word at a uniformly random column in [margin, width-len-margin].
// Words too wide for the field are clamped to the left margin; callers reject
// such word lists before a session starts.
func (q *ActiveQueue) Spawn(text string) Word {
	x := q.margin
	if maxX := q.maxColumn(text); maxX > q.margin {
		x = q.margin + q.rng.Intn(maxX-q.margin+1)
	}

	w := Word{Text: text, X: x, Y: SpawnRow}
	q.words = append(q.words, w)
	return w
}

// Advance moves every active word down one row.
func (q *ActiveQueue) Advance() {
	for i := range q.words {
		q.words[i].Y++
	}
}

// Consume removes the head word's leading character if it equals typed.
// Returns whether a character was consumed and whether that emptied the head,
// in which case the head has been removed from the queue.
func (q *ActiveQueue) Consume(typed rune) (consumed, depleted bool) {
	if len(q.words) == 0 {
		return false, false
	}

	head := &q.words[0]
	r, size := utf8.DecodeRuneInString(head.Text)
	if r != typed {
		return false, false
	}

	head.Text = head.Text[size:]
	// Keep the remaining text anchored where it was drawn
	head.X += runewidth.RuneWidth(r)

	if head.Text == "" {
		q.words = q.words[1:]
		return true, true
	}
	return true, false
}

// Head returns the word eligible for matching.
func (q *ActiveQueue) Head() (Word, bool) {
	if len(q.words) == 0 {
		return Word{}, false
	}
	return q.words[0], true
}

// HeadPastFloor reports whether the head word has reached floorRow.
func (q *ActiveQueue) HeadPastFloor(floorRow int) bool {
	head, ok := q.Head()
	return ok && head.Y >= floorRow
}

// Words returns a copy of the active words in spawn order.
func (q *ActiveQueue) Words() []Word {
	out := make([]Word, len(q.words))
	copy(out, q.words)
	return out
}
