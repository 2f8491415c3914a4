package record

import (
	"unicode/utf8"

	"github.com/canonica-labs/joinkit/internal/fieldspec"
	"github.com/canonica-labs/joinkit/internal/joinerr"
	"github.com/canonica-labs/joinkit/internal/key"
)

// Source pulls one side of a join: it tokenizes a byte stream into
// records, splits each record into fields, and extracts the
// composite key plan describes. It is the bridge between the raw
// byte-stream inputs of a CLI front-end and pkg/joinkit's Cursor
// abstraction.
type Source struct {
	path        string
	fieldSep    string
	plan        fieldspec.Plan
	tok         *Tokenizer
	recordIndex int
	numFields   int
	err         error
}

// NewSource builds a Source over tok, splitting each record on
// fieldSep and extracting a key per plan. path is used only for error
// attribution.
func NewSource(path string, tok *Tokenizer, fieldSep string, plan fieldspec.Plan) *Source {
	return &Source{path: path, fieldSep: fieldSep, plan: plan, tok: tok}
}

// Next pulls the next (key, record) pair, or (nil, "", false) once the
// stream is exhausted or a fatal error occurred — check Err().
func (s *Source) Next() (key.CompositeKey, string, bool) {
	if s.err != nil {
		return nil, "", false
	}
	rec, ok := s.tok.Next()
	if !ok {
		if terr := s.tok.Err(); terr != nil {
			s.err = joinerr.NewReadError(s.path, terr)
		}
		return nil, "", false
	}

	if !utf8.ValidString(rec) {
		s.err = joinerr.NewEncodingError(s.path, s.recordIndex)
		return nil, "", false
	}

	fields := Fields(rec, s.fieldSep)
	if s.recordIndex == 0 {
		s.numFields = len(fields)
	}

	k, err := ExtractKey(fields, s.plan, s.path, s.recordIndex)
	if err != nil {
		s.err = err
		return nil, "", false
	}
	s.recordIndex++
	return k, rec, true
}

// Err returns the first fatal error encountered, if any.
func (s *Source) Err() error { return s.err }

// NumFields returns the field count of the first record pulled from
// this source — the "computed once from the first record" arity
// spec.md §6.2 uses for output padding. Zero until the first Next().
func (s *Source) NumFields() int { return s.numFields }
