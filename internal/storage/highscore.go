package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// HighscoreAppName is the file name used under the user config directory.
const HighscoreAppName = "TypeMaster"

// highscoreRecordLen is the on-disk size: two counts, two bytes each.
const highscoreRecordLen = 4

// MaxHighscoreValue is the largest count the base-255 record can hold.
const MaxHighscoreValue = 255*255 + 254

// ErrMalformedHighscore is returned by DecodeHighscore for a record of the wrong size.
var ErrMalformedHighscore = errors.New("storage: malformed highscore record")

// Highscore is the best (typed chars, cpm) pair across sessions.
type Highscore struct {
	TypedChars uint32
	CPM        uint32
}

// Merge returns the component-wise maximum of two highscores.
func (h Highscore) Merge(other Highscore) Highscore {
	return Highscore{
		TypedChars: max(h.TypedChars, other.TypedChars),
		CPM:        max(h.CPM, other.CPM),
	}
}

// Encode packs the highscore into the legacy 4-byte record.
// Each value is split as value/255, value%255; counts above
// MaxHighscoreValue are clamped.
func (h Highscore) Encode() []byte {
	tc := min(h.TypedChars, MaxHighscoreValue)
	cpm := min(h.CPM, MaxHighscoreValue)
	return []byte{
		byte(tc / 255), byte(tc % 255),
		byte(cpm / 255), byte(cpm % 255),
	}
}

// DecodeHighscore unpacks a record written by Encode.
func DecodeHighscore(data []byte) (Highscore, error) {
	if len(data) != highscoreRecordLen {
		return Highscore{}, fmt.Errorf("%w: %d bytes", ErrMalformedHighscore, len(data))
	}
	// Encode never writes 255 as a low digit
	if data[1] == 255 || data[3] == 255 {
		return Highscore{}, fmt.Errorf("%w: digit out of range in %v", ErrMalformedHighscore, data)
	}
	return Highscore{
		TypedChars: uint32(data[0])*255 + uint32(data[1]),
		CPM:        uint32(data[2])*255 + uint32(data[3]),
	}, nil
}

// HighscoreStore is the persistence port the session shell saves through.
type HighscoreStore interface {
	LoadHighscore() Highscore
	SaveHighscore(Highscore) error
}

// HighscoreFile persists a single highscore record at a fixed path.
type HighscoreFile struct {
	path string
}

// NewHighscoreFile creates a store for the given path.
func NewHighscoreFile(path string) *HighscoreFile {
	return &HighscoreFile{path: path}
}

// DefaultHighscorePath returns <user config dir>/TypeMaster.
func DefaultHighscorePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot locate config directory: %w", err)
	}
	return filepath.Join(dir, HighscoreAppName), nil
}

// Path returns the record location.
func (f *HighscoreFile) Path() string {
	return f.path
}

// LoadHighscore reads the record. A missing, unreadable or malformed file
// yields the zero highscore.
func (f *HighscoreFile) LoadHighscore() Highscore {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return Highscore{}
	}
	h, err := DecodeHighscore(data)
	if err != nil {
		return Highscore{}
	}
	return h
}

// SaveHighscore writes the record, creating the parent directory if needed.
func (f *HighscoreFile) SaveHighscore(h Highscore) error {
	if dir := filepath.Dir(f.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(f.path, h.Encode(), 0o644); err != nil {
		return fmt.Errorf("storage: cannot write highscore: %w", err)
	}
	return nil
}

// Exists reports whether a record has been written.
func (f *HighscoreFile) Exists() bool {
	_, err := os.Stat(f.path)
	return !errors.Is(err, fs.ErrNotExist)
}

var _ HighscoreStore = (*HighscoreFile)(nil)
