// Package wordcount measures the text of a field against its character limit.
package wordcount

import (
	"errors"
	"fmt"
	"sync"
	"unicode"

	"github.com/rivo/uniseg"
	"golang.org/x/text/encoding"
	xunicode "golang.org/x/text/encoding/unicode"
)

// Charset selects how characters are counted.
type Charset string

const (
	CharsetUTF8  Charset = "UTF-8"
	CharsetUTF16 Charset = "UTF-16"
)

// ErrUnknownCharset is returned for a charset other than UTF-8 or UTF-16.
var ErrUnknownCharset = errors.New("unrecognized charset")

// ParseCharset validates a charset name. An empty name selects UTF-16.
func ParseCharset(name string) (Charset, error) {
	switch Charset(name) {
	case "", CharsetUTF16:
		return CharsetUTF16, nil
	case CharsetUTF8:
		return CharsetUTF8, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCharset, name)
}

// Counts is the result of measuring a text.
type Counts struct {
	Words      int
	Characters int
	Limit      int // zero means unlimited
	Remaining  int
}

// Exceeded reports whether the text is longer than the limit.
func (c Counts) Exceeded() bool { return c.Limit > 0 && c.Remaining < 0 }

// Percentage returns the share of the limit in use, or 0 when unlimited.
func (c Counts) Percentage() float64 {
	if c.Limit <= 0 {
		return 0
	}
	return float64(c.Characters) / float64(c.Limit) * 100
}

// Counter measures text in one charset. Each field owns its Counter; the
// UTF-16 encoder is created on first use.
type Counter struct {
	charset Charset
	limit   int

	mu      sync.Mutex
	encoder *encoding.Encoder
}

// New creates a Counter. limit <= 0 disables the limit.
func New(charset Charset, limit int) (*Counter, error) {
	if charset != CharsetUTF8 && charset != CharsetUTF16 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCharset, charset)
	}
	if limit < 0 {
		limit = 0
	}
	return &Counter{charset: charset, limit: limit}, nil
}

// Charset returns the counting charset.
func (c *Counter) Charset() Charset { return c.charset }

// Length returns the length of text in code units of the counter's charset.
func (c *Counter) Length(text string) int {
	if c.charset == CharsetUTF8 {
		return len(text)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.encoder == nil {
		c.encoder = xunicode.UTF16(xunicode.LittleEndian, xunicode.IgnoreBOM).NewEncoder()
	}
	encoded, err := c.encoder.String(text)
	if err != nil {
		// Invalid UTF-8 is replaced rune by rune; count those as one unit each.
		n := 0
		for _, r := range text {
			if r >= 0x10000 {
				n += 2
			} else {
				n++
			}
		}
		return n
	}
	return len(encoded) / 2
}

// Count measures text.
func (c *Counter) Count(text string) Counts {
	counts := Counts{
		Words:      Words(text),
		Characters: c.Length(text),
		Limit:      c.limit,
	}
	if c.limit > 0 {
		counts.Remaining = c.limit - counts.Characters
	}
	return counts
}

// Words counts the words of text using Unicode word boundaries. Segments made
// only of spaces or punctuation are not words.
func Words(text string) int {
	count := 0
	state := -1
	var word string
	for len(text) > 0 {
		word, text, state = uniseg.FirstWordInString(text, state)
		for _, r := range word {
			if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
				count++
				break
			}
		}
	}
	return count
}
