// Package fieldspec parses the `-1`/`-2` field-list flag into a
// canonical extraction plan (C2). Grammar, per spec.md §6.2:
//
//	field := UINT ( '-' ('i'|'u') )?
//	list  := field (',' field)*
//
// Duplicates are a validation error; the type-tag suffix is only
// accepted when the caller marks the list as tag-aware (mjoin; hjoin
// has no type tags and every field is String).
package fieldspec

import (
	"sort"
	"strconv"
	"strings"

	"github.com/canonica-labs/joinkit/internal/joinerr"
	"github.com/canonica-labs/joinkit/internal/key"
)

// Field is one triple of the field plan, per spec.md §3: a 0-based
// source index, the output position it was declared at, and its type
// tag.
type Field struct {
	SourceIndex int // 0-based
	OutputPos   int // permutation witness: original declared order
	Type        key.Type
}

// Plan is the canonical extraction plan: Fields sorted ascending by
// SourceIndex, with OutputPos recording the original declared order so
// the extracted key can be reassembled in that order.
type Plan struct {
	Fields []Field
}

// Len returns the number of fields in the plan (also the key's length).
func (p Plan) Len() int { return len(p.Fields) }

// Parse parses a comma-separated field list into a canonical Plan.
// When allowTypeTags is false (hjoin), a `-i`/`-u` suffix is itself a
// parse error — hjoin's keys are always String atoms.
func Parse(spec string, allowTypeTags bool) (Plan, error) {
	raw := strings.Split(spec, ",")
	fields := make([]Field, 0, len(raw))
	seen := make(map[int]bool, len(raw))

	for declaredPos, tok := range raw {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			return Plan{}, joinerr.NewFieldSpecError(spec, "empty field entry")
		}

		idxPart := tok
		typ := key.String
		if dash := strings.IndexByte(tok, '-'); dash >= 0 {
			if !allowTypeTags {
				return Plan{}, joinerr.NewFieldSpecError(spec, "type tags are not supported here")
			}
			idxPart = tok[:dash]
			switch tag := tok[dash+1:]; tag {
			case "i":
				typ = key.SignedInt
			case "u":
				typ = key.UnsignedInt
			default:
				return Plan{}, joinerr.NewFieldSpecError(spec, "unknown type tag \""+tag+"\", want i or u")
			}
		}

		n, err := strconv.Atoi(idxPart)
		if err != nil || n < 1 {
			return Plan{}, joinerr.NewFieldSpecError(spec, "field index \""+idxPart+"\" must be a positive integer")
		}
		sourceIndex := n - 1
		if seen[sourceIndex] {
			return Plan{}, joinerr.NewFieldSpecError(spec, "duplicate field index "+idxPart)
		}
		seen[sourceIndex] = true

		fields = append(fields, Field{
			SourceIndex: sourceIndex,
			OutputPos:   declaredPos,
			Type:        typ,
		})
	}

	if len(fields) == 0 {
		return Plan{}, joinerr.NewFieldSpecError(spec, "at least one field must be present")
	}

	sort.Slice(fields, func(i, j int) bool { return fields[i].SourceIndex < fields[j].SourceIndex })

	return Plan{Fields: fields}, nil
}

// Canonical renders the plan back into the `-1`/`-2` grammar, in
// original declared order — parsing this string again is a fixed
// point (spec.md §8 "Idempotence of plan parsing").
func (p Plan) Canonical() string {
	ordered := make([]Field, len(p.Fields))
	copy(ordered, p.Fields)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].OutputPos < ordered[j].OutputPos })

	parts := make([]string, len(ordered))
	for i, f := range ordered {
		tok := strconv.Itoa(f.SourceIndex + 1)
		switch f.Type {
		case key.SignedInt:
			tok += "-i"
		case key.UnsignedInt:
			tok += "-u"
		}
		parts[i] = tok
	}
	return strings.Join(parts, ",")
}
