// Package metrics counts bytes, tokens, and lines for collected content.
package metrics

import (
	"bytes"
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// Stats holds counts for a piece of text or an accumulated total.
type Stats struct {
	Bytes  int
	Tokens int
	Lines  int
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.Bytes += other.Bytes
	s.Tokens += other.Tokens
	s.Lines += other.Lines
}

// Counter measures a piece of text.
type Counter interface {
	Count(text string) Stats
}

// HeuristicCounter estimates tokens as bytes/4, which is close enough for
// progress display without pulling in a tokenizer.
type HeuristicCounter struct{}

func (HeuristicCounter) Count(text string) Stats {
	return Stats{
		Bytes:  len(text),
		Tokens: len(text) / 4,
		Lines:  lineCount(text),
	}
}

// TiktokenCounter counts tokens with a real BPE encoding.
type TiktokenCounter struct {
	enc *tiktoken.Tiktoken
}

// NewTiktokenCounter creates a counter for the named encoding, e.g.
// "cl100k_base".
func NewTiktokenCounter(encoding string) (*TiktokenCounter, error) {
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("unsupported tiktoken encoding %q: %w", encoding, err)
	}
	return &TiktokenCounter{enc: enc}, nil
}

func (c *TiktokenCounter) Count(text string) Stats {
	return Stats{
		Bytes:  len(text),
		Tokens: len(c.enc.Encode(text, nil, nil)),
		Lines:  lineCount(text),
	}
}

func lineCount(text string) int {
	if text == "" {
		return 0
	}
	return bytes.Count([]byte(text), []byte{'\n'}) + 1
}
