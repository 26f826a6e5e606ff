package targets

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"

	"omibyte.io/nvic/nvic"
)

//go:embed targets.yaml
var rawTargets []byte

var (
	targets    Targets
	interrupts []Interrupt
)

var ErrTargetNotFound = errors.New("target not found")

func All() Targets {
	return targets
}

// Interrupts returns the full interrupt table, ordered by value.
func Interrupts() []Interrupt {
	return interrupts
}

type Targets []TargetInfo

type TargetInfo struct {
	Series          string            `yaml:"series"`
	Chips           []string          `yaml:"chips"`
	Lines           int               `yaml:"lines"`
	PriorityBits    int               `yaml:"priorityBits"`
	NVICBase        uint32            `yaml:"nvicBase"`
	AIRCR           uint32            `yaml:"aircr"`
	DefaultGrouping nvic.GroupingMode `yaml:"defaultGrouping"`
}

type Interrupt struct {
	Name        string `yaml:"name"`
	Value       int    `yaml:"value"`
	Description string `yaml:"description"`
}

func (t TargetInfo) Layout() nvic.Layout {
	return nvic.Layout{
		Lines:        t.Lines,
		PriorityBits: t.PriorityBits,
		Base:         uintptr(t.NVICBase),
		AIRCR:        uintptr(t.AIRCR),
	}
}

func (t TargetInfo) Options() nvic.Options {
	return nvic.Options{
		Layout:          t.Layout(),
		DefaultGrouping: t.DefaultGrouping,
	}
}

// Interrupts returns the lines implemented by the target.
func (t TargetInfo) Interrupts() []Interrupt {
	var result []Interrupt
	for _, i := range interrupts {
		if i.Value < t.Lines {
			result = append(result, i)
		}
	}
	return result
}

func (t Targets) FindBySeries(name string) (TargetInfo, error) {
	for _, target := range t {
		if target.Series == strings.ToLower(name) {
			return target, nil
		}
	}
	return TargetInfo{}, fmt.Errorf("%w: series %q", ErrTargetNotFound, name)
}

func (t Targets) FindByChip(name string) (TargetInfo, error) {
	for _, target := range t {
		if slices.Contains(target.Chips, strings.ToLower(name)) {
			return target, nil
		}
	}
	return TargetInfo{}, fmt.Errorf("%w: chip %q", ErrTargetNotFound, name)
}

// Find accepts either a chip or a series name.
func (t Targets) Find(name string) (TargetInfo, error) {
	if target, err := t.FindByChip(name); err == nil {
		return target, nil
	}
	return t.FindBySeries(name)
}

// Table is the decoded form of a target file.
type Table struct {
	Targets    Targets     `yaml:"targets"`
	Interrupts []Interrupt `yaml:"interrupts"`
}

// Parse decodes and checks a target file.
func Parse(data []byte) (Table, error) {
	var table Table
	if err := yaml.Unmarshal(data, &table); err != nil {
		return Table{}, err
	}

	var errs []error
	slices.SortFunc(table.Interrupts, func(a, b Interrupt) bool {
		return a.Value < b.Value
	})
	for i, intr := range table.Interrupts {
		if intr.Value != i {
			errs = append(errs, fmt.Errorf("interrupt %s: value %d leaves a gap or duplicate at %d", intr.Name, intr.Value, i))
		}
	}
	for _, target := range table.Targets {
		if target.Lines > len(table.Interrupts) {
			errs = append(errs, fmt.Errorf("series %s: %d lines but only %d interrupts", target.Series, target.Lines, len(table.Interrupts)))
		}
		if target.PriorityBits < 1 || target.PriorityBits > 8 {
			errs = append(errs, fmt.Errorf("series %s: %d priority bits, want 1 to 8", target.Series, target.PriorityBits))
		}
		if !target.DefaultGrouping.Valid() {
			errs = append(errs, fmt.Errorf("series %s: missing default grouping", target.Series))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return Table{}, err
	}
	return table, nil
}

func init() {
	table, err := Parse(rawTargets)
	if err != nil {
		panic(err)
	}
	targets = table.Targets
	interrupts = table.Interrupts
}
