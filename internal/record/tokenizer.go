// Package record implements the delimited-record tokenizer, the C3 key
// extractor, and the padded output writer — the external-collaborator
// boundary spec.md §1/§6 deliberately keeps out of the join engine's
// core.
package record

import (
	"bufio"
	"io"
)

// Tokenizer splits a byte stream into records on a single-byte
// separator, mirroring the reference implementation's `BufReader.split`
// behavior: a separator at the very end of the input does not produce
// a trailing empty record — the stream is simply exhausted at that
// point, the same way `split` yields nothing further once the last
// separator has been consumed.
type Tokenizer struct {
	r    *bufio.Reader
	sep  byte
	done bool
	err  error
}

// NewTokenizer wraps r, splitting on sep.
func NewTokenizer(r io.Reader, sep byte) *Tokenizer {
	return &Tokenizer{r: bufio.NewReader(r), sep: sep}
}

// Next returns the next record and true, or ("", false) once the
// stream is exhausted or a read error occurred — check Err() to tell
// the two apart.
func (t *Tokenizer) Next() (string, bool) {
	if t.done {
		return "", false
	}
	chunk, err := t.r.ReadBytes(t.sep)
	if err != nil {
		t.done = true
		if err != io.EOF {
			t.err = err
			return "", false
		}
		if len(chunk) == 0 {
			// True exhaustion: either the input was empty, or the last
			// byte read was itself a separator and nothing follows it.
			return "", false
		}
		return string(chunk), true
	}
	return string(chunk[:len(chunk)-1]), true
}

// Err returns the first non-EOF read error encountered, if any.
func (t *Tokenizer) Err() error { return t.err }

// SeparatorAsByte validates that sep is exactly one UTF-8 byte, per
// spec.md §6.2 ("must be one UTF-8 byte") and §6.3 ("record-separator
// not single-byte" is a validation error).
func SeparatorAsByte(sep string) (byte, bool) {
	if len(sep) != 1 {
		return 0, false
	}
	return sep[0], true
}
