package record

import (
	"strconv"
	"strings"

	"github.com/canonica-labs/joinkit/internal/fieldspec"
	"github.com/canonica-labs/joinkit/internal/joinerr"
	"github.com/canonica-labs/joinkit/internal/key"
)

// Fields splits a record on the field separator. Unlike the record
// separator, the field separator may be any non-empty string — hjoin
// and mjoin both accept multi-byte field separators (spec.md §6.2).
func Fields(rec, fieldSep string) []string {
	return strings.Split(rec, fieldSep)
}

// ExtractKey walks plan against a record's fields (already split by
// Fields) and builds the CompositeKey in declared order. path and
// recordIndex are carried only for error attribution.
func ExtractKey(fields []string, plan fieldspec.Plan, path string, recordIndex int) (key.CompositeKey, error) {
	out := make(key.CompositeKey, plan.Len())
	for _, f := range plan.Fields {
		if f.SourceIndex >= len(fields) {
			return nil, joinerr.NewArityError(path, recordIndex, len(fields), f.SourceIndex+1)
		}
		tok := fields[f.SourceIndex]
		atom, err := parseAtom(tok, f.Type, path, recordIndex, f.SourceIndex)
		if err != nil {
			return nil, err
		}
		out[f.OutputPos] = atom
	}
	return out, nil
}

func parseAtom(tok string, typ key.Type, path string, recordIndex, fieldIndex int) (key.Atom, error) {
	switch typ {
	case key.SignedInt:
		n, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return key.Atom{}, joinerr.NewNumericParseError(path, recordIndex, fieldIndex+1, "signed-int", tok)
		}
		return key.NewSignedInt(n), nil
	case key.UnsignedInt:
		n, err := strconv.ParseUint(tok, 10, 64)
		if err != nil {
			return key.Atom{}, joinerr.NewNumericParseError(path, recordIndex, fieldIndex+1, "unsigned-int", tok)
		}
		return key.NewUnsignedInt(n), nil
	default:
		return key.NewString(tok), nil
	}
}
