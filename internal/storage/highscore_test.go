package storage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestHighscoreEncodeDecode(t *testing.T) {
	tests := []struct {
		name string
		h    Highscore
		want []byte
	}{
		{"zero", Highscore{}, []byte{0, 0, 0, 0}},
		{"small", Highscore{TypedChars: 42, CPM: 7}, []byte{0, 42, 0, 7}},
		{"split", Highscore{TypedChars: 300, CPM: 255}, []byte{1, 45, 1, 0}},
		{"max", Highscore{TypedChars: MaxHighscoreValue, CPM: MaxHighscoreValue}, []byte{255, 254, 255, 254}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.h.Encode()
			if !bytes.Equal(got, tc.want) {
				t.Fatalf("Encode() = %v, expected %v", got, tc.want)
			}
			back, err := DecodeHighscore(got)
			if err != nil {
				t.Fatalf("DecodeHighscore() failed: %v", err)
			}
			if back != tc.h {
				t.Errorf("decoded %+v, expected %+v", back, tc.h)
			}
		})
	}
}

func TestHighscoreEncodeClamps(t *testing.T) {
	h := Highscore{TypedChars: 1 << 20, CPM: 70000}
	back, err := DecodeHighscore(h.Encode())
	if err != nil {
		t.Fatalf("DecodeHighscore() failed: %v", err)
	}
	if back.TypedChars != MaxHighscoreValue || back.CPM != MaxHighscoreValue {
		t.Errorf("expected clamped values, got %+v", back)
	}
}

func TestDecodeHighscoreRejectsWrongLength(t *testing.T) {
	for _, data := range [][]byte{nil, {1, 2, 3}, {1, 2, 3, 4, 5}} {
		if _, err := DecodeHighscore(data); !errors.Is(err, ErrMalformedHighscore) {
			t.Errorf("DecodeHighscore(%v) error = %v, expected ErrMalformedHighscore", data, err)
		}
	}
}

func TestDecodeHighscoreRejectsOutOfRangeDigit(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"typed chars low digit", []byte{0, 255, 0, 0}},
		{"cpm low digit", []byte{0, 0, 0, 255}},
		{"all bytes set", []byte{255, 255, 255, 255}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeHighscore(tc.data); !errors.Is(err, ErrMalformedHighscore) {
				t.Errorf("DecodeHighscore(%v) error = %v, expected ErrMalformedHighscore", tc.data, err)
			}
		})
	}

	// The largest value Encode can produce still decodes.
	h, err := DecodeHighscore([]byte{255, 254, 255, 254})
	if err != nil {
		t.Fatalf("DecodeHighscore(max) error = %v", err)
	}
	if h.TypedChars != MaxHighscoreValue || h.CPM != MaxHighscoreValue {
		t.Errorf("DecodeHighscore(max) = %+v, expected both %d", h, MaxHighscoreValue)
	}
}

func TestHighscoreMerge(t *testing.T) {
	// Each component is maximised independently
	a := Highscore{TypedChars: 500, CPM: 90}
	b := Highscore{TypedChars: 200, CPM: 140}

	got := a.Merge(b)
	want := Highscore{TypedChars: 500, CPM: 140}
	if got != want {
		t.Errorf("Merge() = %+v, expected %+v", got, want)
	}
	if b.Merge(a) != want {
		t.Error("Merge should be symmetric")
	}
}

func TestHighscoreFileMissing(t *testing.T) {
	f := NewHighscoreFile(filepath.Join(t.TempDir(), "nope", HighscoreAppName))
	if f.Exists() {
		t.Error("Exists() should be false before the first save")
	}
	if h := f.LoadHighscore(); h != (Highscore{}) {
		t.Errorf("LoadHighscore() = %+v, expected zero", h)
	}
}

func TestHighscoreFileCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), HighscoreAppName)
	if err := os.WriteFile(path, []byte("not a record"), 0o644); err != nil {
		t.Fatal(err)
	}

	if h := NewHighscoreFile(path).LoadHighscore(); h != (Highscore{}) {
		t.Errorf("LoadHighscore() = %+v, expected zero for a corrupt file", h)
	}
}

func TestHighscoreFileOutOfRangeRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), HighscoreAppName)
	if err := os.WriteFile(path, []byte{0, 255, 0, 0}, 0o644); err != nil {
		t.Fatal(err)
	}

	f := NewHighscoreFile(path)
	h := f.LoadHighscore()
	if h != (Highscore{}) {
		t.Fatalf("LoadHighscore() = %+v, expected zero for an unencodable record", h)
	}
	if err := f.SaveHighscore(h); err != nil {
		t.Fatal(err)
	}
	if again := f.LoadHighscore(); again != h {
		t.Errorf("reload after save = %+v, expected %+v", again, h)
	}
}

func TestHighscoreFileSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", HighscoreAppName)
	f := NewHighscoreFile(path)

	want := Highscore{TypedChars: 1234, CPM: 321}
	if err := f.SaveHighscore(want); err != nil {
		t.Fatalf("SaveHighscore() failed: %v", err)
	}
	if got := f.LoadHighscore(); got != want {
		t.Errorf("LoadHighscore() = %+v, expected %+v", got, want)
	}

	// save(load()) leaves a valid record untouched
	before, _ := os.ReadFile(path)
	if err := f.SaveHighscore(f.LoadHighscore()); err != nil {
		t.Fatalf("SaveHighscore() failed: %v", err)
	}
	after, _ := os.ReadFile(path)
	if !bytes.Equal(before, after) {
		t.Errorf("round trip changed the record: %v -> %v", before, after)
	}
}
