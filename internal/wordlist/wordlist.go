// Package wordlist loads the word pool that feeds a session.
package wordlist

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrEmpty is returned when a source yields no words.
var ErrEmpty = errors.New("wordlist: word list is empty")

//go:embed assets/wordlist.txt
var defaultWords string

// Parse reads whitespace-delimited words from r.
// Entries are NFC-normalized so a precomposed keystroke matches a leading character.
func Parse(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		word := norm.NFC.String(strings.TrimSpace(scanner.Text()))
		if word == "" {
			continue
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("wordlist: read: %w", err)
	}
	if len(words) == 0 {
		return nil, ErrEmpty
	}
	return words, nil
}

// LoadWords reads a word list from the provided file path.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("wordlist: open %s: %w", path, err)
	}
	defer file.Close()

	words, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return words, nil
}

// Default returns the embedded word list.
func Default() []string {
	words, err := Parse(strings.NewReader(defaultWords))
	if err != nil {
		// The embedded asset is never empty
		panic(err)
	}
	return words
}

// Load returns the words at path, or the embedded list when path is empty.
func Load(path string) ([]string, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadWords(path)
}
