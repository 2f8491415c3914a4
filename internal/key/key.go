package key

import "encoding/binary"

// CompositeKey is the fixed-length ordered tuple of atoms spec.md §3
// describes. It is deliberately a slice, not an array, because the
// plan length is only known at parse time — but a Go slice is not
// `comparable`, so it cannot itself be used as a Go map key. Callers
// needing a hashable token (the hash-join family's `K comparable`)
// should use Fingerprint; callers needing only a total order (the
// merge-join family's `K any` + `cmp`) can use Compare directly.
type CompositeKey []Atom

// Equal reports componentwise equality.
func (k CompositeKey) Equal(other CompositeKey) bool {
	if len(k) != len(other) {
		return false
	}
	for i := range k {
		if !k[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

// Compare implements the lexicographic total order spec.md §3
// requires: per-component order, first differing component decides.
func (k CompositeKey) Compare(other CompositeKey) int {
	n := len(k)
	if len(other) < n {
		n = len(other)
	}
	for i := 0; i < n; i++ {
		if c := k[i].Compare(other[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(k) < len(other):
		return -1
	case len(k) > len(other):
		return 1
	default:
		return 0
	}
}

// encode produces an unambiguous byte representation of the key: each
// atom is tagged and length-prefixed so that, e.g., SignedInt(12) can
// never collide with String("12").
func (k CompositeKey) encode() []byte {
	buf := make([]byte, 0, len(k)*9)
	var scratch [8]byte
	for _, a := range k {
		buf = append(buf, byte(a.typ))
		switch a.typ {
		case SignedInt:
			binary.BigEndian.PutUint64(scratch[:], uint64(a.i))
			buf = append(buf, scratch[:]...)
		case UnsignedInt:
			binary.BigEndian.PutUint64(scratch[:], a.u)
			buf = append(buf, scratch[:]...)
		default:
			binary.BigEndian.PutUint32(scratch[:4], uint32(len(a.s)))
			buf = append(buf, scratch[:4]...)
			buf = append(buf, a.s...)
		}
	}
	return buf
}

// Fingerprint returns a canonical string encoding of the key suitable
// as a Go `comparable` map key for the hash-join family — the
// "well-defined combination of component hashes" spec.md §3 requires,
// realized as an exact byte encoding rather than a lossy hash so two
// distinct keys never collapse to one fingerprint.
func (k CompositeKey) Fingerprint() string {
	return string(k.encode())
}

// Strings renders each atom via Atom.String, in tuple order — used by
// the record package's key-extraction tests.
func (k CompositeKey) Strings() []string {
	out := make([]string, len(k))
	for i, a := range k {
		out[i] = a.String()
	}
	return out
}
