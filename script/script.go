// Package script runs a YAML-described sequence of driver calls against a
// controller and, for the hardware-side steps, a simulated register block.
//
//	chip: stm32f103ze
//	grouping: 2g2s
//	steps:
//	  - {op: init}
//	  - {op: priority, line: USART1, group: 1, sub: 2}
//	  - {op: enable, line: USART1}
//	  - {op: raise, line: USART1}
//	  - {op: pending, line: USART1}
package script

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"omibyte.io/nvic/irq"
	"omibyte.io/nvic/nvic"
	"omibyte.io/nvic/sim"
)

var (
	ErrUnknownOp     = errors.New("unknown op")
	ErrMissingField  = errors.New("missing field")
	ErrNoHardware    = errors.New("step needs a simulated register block")
	ErrScriptInvalid = errors.New("invalid script")
	ErrFieldConflict = errors.New("conflicting fields")
)

type Script struct {
	Chip     string             `yaml:"chip"`
	Grouping *nvic.GroupingMode `yaml:"grouping"`
	Steps    []Step             `yaml:"steps"`
}

type Step struct {
	Op    string             `yaml:"op"`
	Line  *irq.Line          `yaml:"line"`
	Value *uint8             `yaml:"value"`
	Group *uint8             `yaml:"group"`
	Sub   *uint8             `yaml:"sub"`
	Mode  *nvic.GroupingMode `yaml:"mode"`
}

func (s Step) String() string {
	if s.Line != nil {
		return s.Op + " " + s.Line.String()
	}
	if s.Mode != nil {
		return s.Op + " " + s.Mode.String()
	}
	return s.Op
}

// Result is the answer to a query step.
type Result struct {
	Step  int
	Query string
	Line  irq.Line
	Value bool
}

func (r Result) String() string {
	return fmt.Sprintf("#%d %s %s = %v", r.Step, r.Query, r.Line, r.Value)
}

func Load(r io.Reader) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScriptInvalid, err)
	}
	return &s, nil
}

// Run executes the steps in order. hw may be nil when the script uses no
// hardware-side steps. Execution stops at the first failing step.
func (s *Script) Run(ctrl *nvic.Controller, hw *sim.NVIC) ([]Result, error) {
	if s.Grouping != nil {
		if err := ctrl.SetPriorityGrouping(*s.Grouping); err != nil {
			return nil, err
		}
	}

	var results []Result
	for i, step := range s.Steps {
		result, ok, err := run(step, ctrl, hw)
		if err != nil {
			return results, fmt.Errorf("step %d (%s): %w", i+1, step, err)
		}
		if ok {
			result.Step = i + 1
			results = append(results, result)
		}
	}
	return results, nil
}

func run(step Step, ctrl *nvic.Controller, hw *sim.NVIC) (Result, bool, error) {
	line := func() (irq.Line, error) {
		if step.Line == nil {
			return 0, fmt.Errorf("%w: line", ErrMissingField)
		}
		return *step.Line, nil
	}
	query := func(f func(irq.Line) (bool, error)) (Result, bool, error) {
		l, err := line()
		if err != nil {
			return Result{}, false, err
		}
		v, err := f(l)
		if err != nil {
			return Result{}, false, err
		}
		return Result{Query: step.Op, Line: l, Value: v}, true, nil
	}
	do := func(f func(irq.Line) error) (Result, bool, error) {
		l, err := line()
		if err != nil {
			return Result{}, false, err
		}
		return Result{}, false, f(l)
	}
	hardware := func(f func(irq.Line) error) (Result, bool, error) {
		if hw == nil {
			return Result{}, false, ErrNoHardware
		}
		return do(f)
	}

	switch step.Op {
	case "init":
		return Result{}, false, ctrl.Init()
	case "enable":
		return do(ctrl.Enable)
	case "disable":
		return do(ctrl.Disable)
	case "pend":
		return do(ctrl.SetPending)
	case "unpend":
		return do(ctrl.ClearPending)
	case "clear-pending":
		ctrl.ClearAllPending()
		return Result{}, false, nil
	case "priority":
		l, err := line()
		if err != nil {
			return Result{}, false, err
		}
		switch {
		case step.Value != nil && (step.Group != nil || step.Sub != nil):
			return Result{}, false, fmt.Errorf("%w: value with group or sub", ErrFieldConflict)
		case step.Value != nil:
			return Result{}, false, ctrl.SetPriority(l, *step.Value)
		case step.Group != nil:
			var sub uint8
			if step.Sub != nil {
				sub = *step.Sub
			}
			return Result{}, false, ctrl.SetGroupPriority(l, *step.Group, sub)
		case step.Sub != nil:
			return Result{}, false, fmt.Errorf("%w: group", ErrMissingField)
		default:
			return Result{}, false, fmt.Errorf("%w: value or group", ErrMissingField)
		}
	case "grouping":
		if step.Mode == nil {
			return Result{}, false, fmt.Errorf("%w: mode", ErrMissingField)
		}
		return Result{}, false, ctrl.SetPriorityGrouping(*step.Mode)
	case "active":
		return query(ctrl.IsActive)
	case "enabled":
		return query(ctrl.IsEnabled)
	case "pending":
		return query(ctrl.IsPending)
	case "raise":
		return hardware(hw.Raise)
	case "enter":
		return hardware(hw.Enter)
	case "exit":
		return hardware(hw.Exit)
	default:
		return Result{}, false, fmt.Errorf("%w: %q", ErrUnknownOp, step.Op)
	}
}
