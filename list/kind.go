package list

import (
	"strconv"
	"strings"

	"github.com/percona-lab/percona-dlist/errors"
)

// Kind selects a list representation.
type Kind int

// KindLinked is the doubly linked representation.
const KindLinked Kind = iota

// ErrUnknownKind is returned for a Kind that has no representation.
var ErrUnknownKind = errors.New("unknown list kind")

func (k Kind) String() string {
	switch k {
	case KindLinked:
		return "linked"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// ParseKind parses the name returned by [Kind.String].
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "linked", "linkedlist":
		return KindLinked, nil
	default:
		return 0, errors.Wrapf(ErrUnknownKind, "parse %q", s)
	}
}

// New creates an empty list of the given kind.
func New[T comparable](kind Kind) (*LinkedList[T], error) {
	switch kind {
	case KindLinked:
		return &LinkedList[T]{}, nil
	default:
		return nil, errors.Wrap(ErrUnknownKind, kind.String())
	}
}
