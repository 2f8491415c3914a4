// Package joincli provides the flag surface and input resolution
// shared by hjoin and mjoin, grounded on the teacher's
// internal/cli/cli.go + internal/cli/query.go pattern: an Options
// struct bound to cobra flags, resolved once into a Resolved value
// before any record is read.
package joincli

import (
	"fmt"

	"github.com/canonica-labs/joinkit/internal/fieldspec"
	"github.com/canonica-labs/joinkit/internal/joinerr"
	"github.com/canonica-labs/joinkit/internal/record"
)

// Options is bound directly to cobra flags by the hjoin/mjoin root
// commands.
type Options struct {
	File1 string
	File2 string

	Field1 string
	Field2 string

	InRecSep      string
	InRecSepLeft  string
	InRecSepRight string

	InFieldSep      string
	InFieldSepLeft  string
	InFieldSepRight string

	OutRecSep   string
	OutFieldSep string

	Mode string

	LogLevel string
	AuditDSN string

	// AllowTypeTags is true for mjoin, false for hjoin — hjoin's keys
	// are always String atoms (spec.md §6.2).
	AllowTypeTags bool

	// DefaultField2 is the fallback for Field2 when -2 is not given:
	// "2" for hjoin (left and right key columns default to distinct
	// positions), "1" for mjoin (both sides conventionally sorted and
	// keyed on the first column). Set by the cmd/hjoin and cmd/mjoin
	// root commands.
	DefaultField2 string
}

// Resolved is the fully validated, side-specific separator and mode
// configuration a join run executes with.
type Resolved struct {
	LeftRecSep, RightRecSep   byte
	LeftFieldSep, RightFieldSep string
	OutRecSep, OutFieldSep    string
	Mode                      string
}

// Resolve validates the per-side separator pairing rules and fills in
// output-separator defaults. It is a pure Configuration-kind
// validation step: nothing is read from disk yet.
func (o Options) Resolve() (Resolved, error) {
	leftRS, rightRS, err := resolveRecSep(o)
	if err != nil {
		return Resolved{}, err
	}
	leftFS, rightFS, err := resolveFieldSep(o)
	if err != nil {
		return Resolved{}, err
	}

	outRS := o.OutRecSep
	if outRS == "" {
		outRS = string(leftRS)
	}
	outFS := o.OutFieldSep
	if outFS == "" {
		outFS = leftFS
	}

	mode := o.Mode
	if mode == "" {
		mode = "inner"
	}
	switch mode {
	case "inner", "left-excl", "left-outer", "right-excl", "right-outer", "full-outer":
	default:
		return Resolved{}, joinerr.NewConfigError(fmt.Sprintf("unknown mode %q", mode), nil)
	}

	return Resolved{
		LeftRecSep:   leftRS,
		RightRecSep:  rightRS,
		LeftFieldSep: leftFS,
		RightFieldSep: rightFS,
		OutRecSep:    outRS,
		OutFieldSep:  outFS,
		Mode:         mode,
	}, nil
}

func resolveRecSep(o Options) (byte, byte, error) {
	perSideGiven := o.InRecSepLeft != "" || o.InRecSepRight != ""
	if perSideGiven {
		if o.InRecSepLeft == "" || o.InRecSepRight == "" {
			return 0, 0, joinerr.NewConfigError("--in-rec-sep-left and --in-rec-sep-right must both be given together", nil)
		}
		lb, ok := record.SeparatorAsByte(o.InRecSepLeft)
		if !ok {
			return 0, 0, joinerr.NewSeparatorError(o.InRecSepLeft)
		}
		rb, ok := record.SeparatorAsByte(o.InRecSepRight)
		if !ok {
			return 0, 0, joinerr.NewSeparatorError(o.InRecSepRight)
		}
		return lb, rb, nil
	}

	sep := o.InRecSep
	if sep == "" {
		sep = "\n"
	}
	b, ok := record.SeparatorAsByte(sep)
	if !ok {
		return 0, 0, joinerr.NewSeparatorError(sep)
	}
	return b, b, nil
}

func resolveFieldSep(o Options) (string, string, error) {
	perSideGiven := o.InFieldSepLeft != "" || o.InFieldSepRight != ""
	if perSideGiven {
		if o.InFieldSepLeft == "" || o.InFieldSepRight == "" {
			return "", "", joinerr.NewConfigError("--in-field-sep-left and --in-field-sep-right must both be given together", nil)
		}
		return o.InFieldSepLeft, o.InFieldSepRight, nil
	}

	sep := o.InFieldSep
	if sep == "" {
		sep = ","
	}
	return sep, sep, nil
}

// BuildPlans parses the -1/-2 field lists into extraction plans and
// checks they agree on key arity.
func (o Options) BuildPlans() (left, right fieldspec.Plan, err error) {
	field1 := o.Field1
	if field1 == "" {
		field1 = "1"
	}
	field2 := o.Field2
	if field2 == "" {
		field2 = o.DefaultField2
		if field2 == "" {
			field2 = "1"
		}
	}

	left, err = fieldspec.Parse(field1, o.AllowTypeTags)
	if err != nil {
		return
	}
	right, err = fieldspec.Parse(field2, o.AllowTypeTags)
	if err != nil {
		return
	}
	if left.Len() != right.Len() {
		err = joinerr.NewConfigError(
			fmt.Sprintf("field list arity mismatch: -1 has %d field(s), -2 has %d", left.Len(), right.Len()), nil)
	}
	return
}
