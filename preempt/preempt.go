// Package preempt works out which enabled interrupt lines can preempt which
// under the controller's current priority configuration, and how deeply
// handlers can nest as a result.
package preempt

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/multi"
	"gonum.org/v1/gonum/graph/topo"

	"omibyte.io/nvic/irq"
	"omibyte.io/nvic/nvic"
)

// Source is the read side of a controller. *nvic.Controller satisfies it.
type Source interface {
	Layout() nvic.Layout
	IsEnabled(line irq.Line) (bool, error)
	Priority(line irq.Line) (uint8, error)
	PriorityGrouping() (nvic.GroupingMode, error)
}

type Entry struct {
	Line     irq.Line
	Priority uint8
	Group    uint8
	Sub      uint8

	// Preempts lists the enabled lines whose handlers this line can
	// interrupt, in line order.
	Preempts []irq.Line
}

type Report struct {
	Grouping nvic.GroupingMode

	// Entries are in the order the controller would service them when all
	// are pending at once: group priority, then sub-priority, then line.
	Entries []Entry

	// Depth is the largest number of handlers that can be stacked on top
	// of each other.
	Depth int
}

type lineNode struct {
	line irq.Line
}

func (n lineNode) ID() int64 {
	return int64(n.line)
}

// Analyze reads the enabled lines and their priorities from src.
func Analyze(src Source) (Report, error) {
	mode, err := src.PriorityGrouping()
	if err != nil {
		return Report{}, err
	}
	bits := src.Layout().PriorityBits

	var entries []Entry
	for n := 0; n < src.Layout().Lines; n++ {
		line := irq.Line(n)
		enabled, err := src.IsEnabled(line)
		if err != nil {
			return Report{}, err
		}
		if !enabled {
			continue
		}
		priority, err := src.Priority(line)
		if err != nil {
			return Report{}, err
		}
		group, sub, err := nvic.DecodePriority(mode, bits, priority)
		if err != nil {
			return Report{}, err
		}
		entries = append(entries, Entry{Line: line, Priority: priority, Group: group, Sub: sub})
	}

	g := multi.NewDirectedGraph()
	for _, e := range entries {
		g.AddNode(lineNode{e.Line})
	}
	for i := range entries {
		for j := range entries {
			// Only a strictly more urgent group priority preempts.
			if entries[i].Group < entries[j].Group {
				g.SetLine(g.NewLine(lineNode{entries[i].Line}, lineNode{entries[j].Line}))
				entries[i].Preempts = append(entries[i].Preempts, entries[j].Line)
			}
		}
	}

	depth, err := nesting(g)
	if err != nil {
		return Report{}, err
	}

	slices.SortFunc(entries, func(a, b Entry) bool {
		if a.Group != b.Group {
			return a.Group < b.Group
		}
		if a.Sub != b.Sub {
			return a.Sub < b.Sub
		}
		return a.Line < b.Line
	})

	return Report{Grouping: mode, Entries: entries, Depth: depth}, nil
}

// nesting is the number of nodes on the longest path through g.
func nesting(g graph.Directed) (int, error) {
	sorted, err := topo.Sort(g)
	if err != nil {
		return 0, fmt.Errorf("preemption graph is not acyclic: %w", err)
	}

	longest := make(map[int64]int, len(sorted))
	depth := 0
	for _, node := range sorted {
		d := 1
		to := g.To(node.ID())
		for to.Next() {
			if l := longest[to.Node().ID()] + 1; l > d {
				d = l
			}
		}
		longest[node.ID()] = d
		if d > depth {
			depth = d
		}
	}
	return depth, nil
}

func (r Report) String() string {
	var w strings.Builder
	fmt.Fprintf(&w, "grouping %s, %d enabled, nesting depth %d\n", r.Grouping, len(r.Entries), r.Depth)
	for _, e := range r.Entries {
		fmt.Fprintf(&w, "  %-16s prio 0x%02X group %2d sub %2d preempts %d\n", e.Line, e.Priority, e.Group, e.Sub, len(e.Preempts))
	}
	return w.String()
}
