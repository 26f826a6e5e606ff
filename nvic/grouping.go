package nvic

import (
	"fmt"
	"strings"
)

// GroupingMode selects how the priority byte is split between group
// (preemption) priority and sub-priority. The value is the PRIGROUP field
// already shifted into position for AIRCR.
type GroupingMode uint32

const (
	Group4Sub0 GroupingMode = 0x300
	Group3Sub1 GroupingMode = 0x400
	Group2Sub2 GroupingMode = 0x500
	Group1Sub3 GroupingMode = 0x600
	Group0Sub4 GroupingMode = 0x700
)

var groupingNames = map[GroupingMode]string{
	Group4Sub0: "4g0s",
	Group3Sub1: "3g1s",
	Group2Sub2: "2g2s",
	Group1Sub3: "1g3s",
	Group0Sub4: "0g4s",
}

func (m GroupingMode) Valid() bool {
	_, ok := groupingNames[m]
	return ok
}

func (m GroupingMode) String() string {
	if name, ok := groupingNames[m]; ok {
		return name
	}
	return fmt.Sprintf("GroupingMode(%#x)", uint32(m))
}

// prigroup is the binary point: priority bits [7:prigroup+1] are group
// priority, bits [prigroup:0] sub-priority.
func (m GroupingMode) prigroup() uint {
	return uint(m>>8) & 0x7
}

// GroupBits is the number of implemented group priority bits when the
// controller implements prioBits bits of priority.
func (m GroupingMode) GroupBits(prioBits int) int {
	bits := 7 - int(m.prigroup())
	if bits > prioBits {
		bits = prioBits
	}
	return bits
}

// SubBits is the number of implemented sub-priority bits.
func (m GroupingMode) SubBits(prioBits int) int {
	return prioBits - m.GroupBits(prioBits)
}

// ParseGroupingMode accepts a mode name ("2g2s") or its selector value
// ("0x500").
func ParseGroupingMode(s string) (GroupingMode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for mode, n := range groupingNames {
		if n == name {
			return mode, nil
		}
	}
	var v uint32
	if _, err := fmt.Sscan(name, &v); err == nil && GroupingMode(v).Valid() {
		return GroupingMode(v), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidGroupingMode, s)
}

func (m GroupingMode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %#x", ErrInvalidGroupingMode, uint32(m))
	}
	return []byte(m.String()), nil
}

func (m *GroupingMode) UnmarshalText(text []byte) error {
	v, err := ParseGroupingMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// EncodePriority builds the priority byte for a group/sub pair under mode on
// a controller implementing prioBits bits. Implemented bits are the most
// significant ones; the unimplemented low bits are left zero.
func EncodePriority(mode GroupingMode, prioBits int, group, sub uint8) (uint8, error) {
	if !mode.Valid() {
		return 0, fmt.Errorf("%w: %#x", ErrInvalidGroupingMode, uint32(mode))
	}
	if prioBits < 1 || prioBits > 8 {
		return 0, fmt.Errorf("%w: %d priority bits", ErrInvalidLayout, prioBits)
	}

	groupBits := mode.GroupBits(prioBits)
	subBits := mode.SubBits(prioBits)
	if uint32(group) >= 1<<groupBits {
		return 0, fmt.Errorf("%w: group %d needs more than %d bits", ErrInvalidPriority, group, groupBits)
	}
	if uint32(sub) >= 1<<subBits {
		return 0, fmt.Errorf("%w: sub-priority %d needs more than %d bits", ErrInvalidPriority, sub, subBits)
	}

	value := uint32(group)<<(8-groupBits) | uint32(sub)<<(8-prioBits)
	return uint8(value), nil
}

// DecodePriority splits a priority byte into its group and sub-priority
// fields. Unimplemented low bits are ignored, as the hardware does.
func DecodePriority(mode GroupingMode, prioBits int, value uint8) (group, sub uint8, err error) {
	if !mode.Valid() {
		return 0, 0, fmt.Errorf("%w: %#x", ErrInvalidGroupingMode, uint32(mode))
	}
	if prioBits < 1 || prioBits > 8 {
		return 0, 0, fmt.Errorf("%w: %d priority bits", ErrInvalidLayout, prioBits)
	}

	groupBits := mode.GroupBits(prioBits)
	subBits := mode.SubBits(prioBits)
	v := uint32(value)
	group = uint8(v >> (8 - groupBits))
	sub = uint8((v >> (8 - prioBits)) & (1<<subBits - 1))
	return group, sub, nil
}
