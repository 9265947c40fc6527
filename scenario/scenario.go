// Package scenario replays scripted list operations loaded from YAML and
// verifies their results.
//
// A scenario file looks like:
//
//	name: insert at front
//	steps:
//	  - op: append
//	    value: 1
//	  - op: insertAt
//	    index: 0
//	    value: 0
//	  - op: removeAt
//	    index: 0
//	    want: false
//	expect: [0, 1]
package scenario

import (
	"bytes"
	"context"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/percona-lab/percona-dlist/errors"
	"github.com/percona-lab/percona-dlist/log"
	"github.com/percona-lab/percona-dlist/tracked"
)

// Op is a list operation name as written in scenario files.
type Op string

const (
	OpAppend   Op = "append"
	OpInsertAt Op = "insertAt"
	OpRemoveAt Op = "removeAt"
	OpRemove   Op = "remove"
	OpContains Op = "contains"
	OpGet      Op = "get"
	OpSize     Op = "size"
)

var (
	ErrUnknownOp = errors.New("unknown operation")
	ErrMismatch  = errors.New("unexpected result")
	ErrEmpty     = errors.New("empty scenario")
)

// Step is a single operation and its optional expectations.
type Step struct {
	Op    Op  `yaml:"op"`
	Index int `yaml:"index,omitempty"`
	Value int `yaml:"value,omitempty"`

	// Want is the expected boolean result of removeAt, remove, contains and
	// get (found).
	Want *bool `yaml:"want,omitempty"`
	// WantValue is the expected value of get or the expected result of size.
	WantValue *int `yaml:"wantValue,omitempty"`
}

// Scenario is a named sequence of steps.
type Scenario struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
	// Expect is the list content after the last step. Nil skips the check.
	Expect []int `yaml:"expect,omitempty"`
}

// Result summarizes a replayed scenario.
type Result struct {
	Name   string
	Steps  int
	Values []int
}

// Load reads a scenario file. Environment variables in the file are expanded.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read")
	}

	s, err := Parse([]byte(os.ExpandEnv(string(data))))
	if err != nil {
		return nil, errors.Wrap(err, path)
	}

	return s, nil
}

// Parse decodes and validates a scenario document.
func Parse(data []byte) (*Scenario, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Scenario

	err := dec.Decode(&s)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}

		return nil, errors.Wrap(err, "decode")
	}

	if len(s.Steps) == 0 {
		return nil, ErrEmpty
	}

	for i, step := range s.Steps {
		if !step.Op.valid() {
			return nil, errors.Wrapf(ErrUnknownOp, "step %d: %q", i, step.Op)
		}
	}

	return &s, nil
}

func (op Op) valid() bool {
	switch op {
	case OpAppend, OpInsertAt, OpRemoveAt, OpRemove, OpContains, OpGet, OpSize:
		return true
	}

	return false
}

// Run applies the steps to l in order, checking expectations and the list
// structure after each one. It stops at the first failure.
func (s *Scenario) Run(ctx context.Context, l *tracked.List[int]) (Result, error) {
	lg := log.Ctx(ctx).With(log.Scope("scenario"))
	lg.Debugf("replay %q: %d steps", s.Name, len(s.Steps))

	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return Result{Name: s.Name, Steps: i}, err //nolint:wrapcheck
		}

		err := applyStep(l, step)
		if err == nil {
			err = l.Check()
		}
		if err != nil {
			return Result{Name: s.Name, Steps: i}, errors.Wrapf(err, "step %d (%s)", i, step.Op)
		}
	}

	res := Result{
		Name:   s.Name,
		Steps:  len(s.Steps),
		Values: l.Values(),
	}

	if s.Expect != nil && !slices.Equal(s.Expect, res.Values) {
		return res, errors.Wrapf(ErrMismatch, "final content: want %v, got %v", s.Expect, res.Values)
	}

	lg.Debugf("replay %q: done, size %d", s.Name, len(res.Values))

	return res, nil
}

func applyStep(l *tracked.List[int], step Step) error {
	var got bool

	switch step.Op {
	case OpAppend:
		l.Append(step.Value)
		return nil

	case OpInsertAt:
		l.InsertAt(step.Index, step.Value)
		return nil

	case OpRemoveAt:
		got = l.RemoveAt(step.Index)

	case OpRemove:
		got = l.Remove(step.Value)

	case OpContains:
		got = l.Contains(step.Value)

	case OpGet:
		var val int
		val, got = l.Get(step.Index)
		if step.WantValue != nil && (!got || val != *step.WantValue) {
			return errors.Wrapf(ErrMismatch, "get %d: want %d, got %d (found %t)",
				step.Index, *step.WantValue, val, got)
		}

	case OpSize:
		size := l.Size()
		if step.WantValue != nil && size != *step.WantValue {
			return errors.Wrapf(ErrMismatch, "size: want %d, got %d", *step.WantValue, size)
		}
		return nil

	default:
		return errors.Wrapf(ErrUnknownOp, "%q", step.Op)
	}

	if step.Want != nil && got != *step.Want {
		return errors.Wrapf(ErrMismatch, "want %t, got %t", *step.Want, got)
	}

	return nil
}
