// Package irq enumerates the external interrupt lines of the STM32F10x
// family. The numbering is fixed by the silicon and must not change.
package irq

//go:generate go run omibyte.io/nvic/cmd/irq-gen -in ../targets/targets.yaml -series stm32f10x-hd -out lines_gen.go

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var ErrUnknownLine = errors.New("unknown interrupt line")

// Line identifies one external interrupt source.
type Line uint8

var byName map[string]Line

func init() {
	byName = make(map[string]Line, Count)
	for i, name := range names {
		if name == "" {
			continue
		}
		byName[strings.ToUpper(name)] = Line(i)
	}
}

// Valid reports whether l names a line in the table.
func (l Line) Valid() bool {
	return int(l) < Count && names[l] != ""
}

func (l Line) String() string {
	if !l.Valid() {
		return "Line(" + strconv.Itoa(int(l)) + ")"
	}
	return names[l]
}

func (l Line) Description() string {
	if !l.Valid() {
		return ""
	}
	return descriptions[l]
}

// Lookup finds a line by name, ignoring case.
func Lookup(name string) (Line, bool) {
	l, ok := byName[strings.ToUpper(name)]
	return l, ok
}

// Parse accepts a line name or its decimal number.
func Parse(s string) (Line, error) {
	if l, ok := Lookup(s); ok {
		return l, nil
	}
	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil || !Line(n).Valid() {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLine, s)
	}
	return Line(n), nil
}

// All returns every line in ascending order.
func All() []Line {
	lines := make([]Line, Count)
	for i := range lines {
		lines[i] = Line(i)
	}
	return lines
}

// Names returns the line names sorted alphabetically.
func Names() []string {
	keys := maps.Keys(byName)
	for i, key := range keys {
		keys[i] = names[byName[key]]
	}
	slices.Sort(keys)
	return keys
}

func (l Line) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLine, l)
	}
	return []byte(names[l]), nil
}

func (l *Line) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*l = v
	return nil
}
