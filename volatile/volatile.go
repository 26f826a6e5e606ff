// Package volatile provides access to memory-mapped registers.
//
// The Bus interface is what the rest of the module talks to. On the target,
// Memory dereferences the physical address directly. Everywhere else a
// simulated register block (see package sim) stands in for the hardware.
package volatile

import (
	"sync/atomic"
	"unsafe"
)

// Bus performs single, sized accesses at a physical address. Each call is
// exactly one bus transaction; implementations must not split or merge them.
type Bus interface {
	LoadUint8(addr uintptr) uint8
	StoreUint8(addr uintptr, value uint8)
	LoadUint16(addr uintptr) uint16
	StoreUint16(addr uintptr, value uint16)
	LoadUint32(addr uintptr) uint32
	StoreUint32(addr uintptr, value uint32)
}

// Memory accesses the physical address space of the running program. It is
// only valid on a target where the addresses are mapped.
type Memory struct{}

func (Memory) LoadUint8(addr uintptr) uint8 {
	return *(*uint8)(unsafe.Pointer(addr))
}

func (Memory) StoreUint8(addr uintptr, value uint8) {
	*(*uint8)(unsafe.Pointer(addr)) = value
}

func (Memory) LoadUint16(addr uintptr) uint16 {
	return *(*uint16)(unsafe.Pointer(addr))
}

func (Memory) StoreUint16(addr uintptr, value uint16) {
	*(*uint16)(unsafe.Pointer(addr)) = value
}

func (Memory) LoadUint32(addr uintptr) uint32 {
	return atomic.LoadUint32((*uint32)(unsafe.Pointer(addr)))
}

func (Memory) StoreUint32(addr uintptr, value uint32) {
	atomic.StoreUint32((*uint32)(unsafe.Pointer(addr)), value)
}
