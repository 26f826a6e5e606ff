package main

import (
	"encoding/xml"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
	"golang.org/x/tools/imports"

	"omibyte.io/nvic/cmd/irq-gen/svd"
	"omibyte.io/nvic/targets"
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type table struct {
	source     string
	interrupts []targets.Interrupt
}

// count is one past the highest line number.
func (t table) count() int {
	if len(t.interrupts) == 0 {
		return 0
	}
	return t.interrupts[len(t.interrupts)-1].Value + 1
}

func readTable(fname string, buf []byte, series string) (table, error) {
	switch strings.ToLower(filepath.Ext(fname)) {
	case ".yaml", ".yml":
		return readTargets(fname, buf, series)
	case ".svd":
		return readSVD(buf)
	default:
		return table{}, fmt.Errorf("unsupported file type %s", filepath.Ext(fname))
	}
}

func readTargets(fname string, buf []byte, series string) (table, error) {
	parsed, err := targets.Parse(buf)
	if err != nil {
		return table{}, err
	}
	target, err := parsed.Targets.FindBySeries(series)
	if err != nil {
		return table{}, err
	}

	var t table
	t.source = fmt.Sprintf("%s (%s)", filepath.Base(fname), target.Series)
	for _, intr := range parsed.Interrupts {
		if intr.Value < target.Lines {
			t.interrupts = append(t.interrupts, intr)
		}
	}
	return t, nil
}

func readSVD(buf []byte) (table, error) {
	var device svd.DeviceElement
	if err := xml.Unmarshal(buf, &device); err != nil {
		return table{}, fmt.Errorf("xml decode error: %w", err)
	}

	// Shared interrupts are listed under every peripheral that raises them.
	seen := map[int]string{}
	var t table
	t.source = device.Name
	for _, periph := range device.Peripherals.Elements {
		for _, intr := range periph.Interrupts {
			value := int(intr.Value)
			if name, ok := seen[value]; ok {
				if name != intr.Name {
					return table{}, fmt.Errorf("interrupt %d named both %s and %s", value, name, intr.Name)
				}
				continue
			}
			seen[value] = intr.Name
			t.interrupts = append(t.interrupts, targets.Interrupt{
				Name:        intr.Name,
				Value:       value,
				Description: intr.Description,
			})
		}
	}
	slices.SortFunc(t.interrupts, func(a, b targets.Interrupt) bool {
		return a.Value < b.Value
	})
	return t, nil
}

func (t table) writePreamble(w *strings.Builder, pkg string) {
	fmt.Fprintf(w, "// Code generated by irq-gen from %s. DO NOT EDIT.\n\n", t.source)
	fmt.Fprintf(w, "package %s\n\n", pkg)
}

func generate(pkg string, t table) ([]byte, error) {
	if len(t.interrupts) == 0 {
		return nil, fmt.Errorf("%s: no interrupts", t.source)
	}
	if t.count() > 256 {
		return nil, fmt.Errorf("%s: %d lines do not fit in a uint8", t.source, t.count())
	}

	for i, intr := range t.interrupts {
		if intr.Value != i {
			return nil, fmt.Errorf("%s: no interrupt for line %d", t.source, i)
		}
	}

	var w strings.Builder
	t.writePreamble(&w, pkg)

	fmt.Fprintln(&w, "const (")
	for i, intr := range t.interrupts {
		if !identifier.MatchString(intr.Name) {
			return nil, fmt.Errorf("interrupt %d: %q is not a Go identifier", intr.Value, intr.Name)
		}
		if i > 0 {
			fmt.Fprintln(&w)
		}
		if desc := description(intr.Description); desc != "" {
			fmt.Fprintf(&w, "// %s\n", desc)
		}
		fmt.Fprintf(&w, "%s Line = %d\n", intr.Name, intr.Value)
	}
	fmt.Fprintln(&w, ")")
	fmt.Fprintln(&w)

	fmt.Fprintln(&w, "// Count is the number of lines in the table.")
	fmt.Fprintf(&w, "const Count = %d\n\n", t.count())

	fmt.Fprintln(&w, "var names = [Count]string{")
	for _, intr := range t.interrupts {
		fmt.Fprintf(&w, "%s: %s,\n", intr.Name, strconv.Quote(intr.Name))
	}
	fmt.Fprintln(&w, "}")
	fmt.Fprintln(&w)

	fmt.Fprintln(&w, "var descriptions = [Count]string{")
	for _, intr := range t.interrupts {
		fmt.Fprintf(&w, "%s: %s,\n", intr.Name, strconv.Quote(description(intr.Description)))
	}
	fmt.Fprintln(&w, "}")

	src, err := imports.Process(pkg+"/lines_gen.go", []byte(w.String()), nil)
	if err != nil {
		return nil, fmt.Errorf("error formatting generated source: %v", err)
	}
	return src, nil
}

// description collapses the whitespace SVD files carry in their text.
func description(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
