package engine

import "fmt"

// ExeKind enumerates the kinds of executors an engine may expose.
//
// The executor is the device that drives a Transfer's data movement; its sub-executors
// are the units of parallel work inside it (CPU threads, GPU compute units, DMA queues).
type ExeKind int

//go:generate go tool enumer -type=ExeKind -trimprefix=Exe -output=gen_exekind_enumer.go types.go

const (
	// ExeCPU is a CPU executor; its sub-executors are threads.
	ExeCPU ExeKind = iota
	// ExeGPUGfx is a GPU kernel-based executor; its sub-executors are compute units.
	ExeGPUGfx
	// ExeGPUDma is a GPU DMA-engine executor.
	ExeGPUDma
)

// MemKind enumerates the kinds of memory pools a transfer endpoint may live in.
type MemKind int

//go:generate go tool enumer -type=MemKind -trimprefix=Mem -output=gen_memkind_enumer.go types.go

const (
	// MemCPU is coarse-grained pinned CPU memory.
	MemCPU MemKind = iota
	// MemGPU is coarse-grained global GPU memory.
	MemGPU
	// MemCPUFine is fine-grained pinned CPU memory.
	MemCPUFine
	// MemGPUFine is fine-grained global GPU memory.
	MemGPUFine
)

// ExeDevice identifies one specific executor: a kind plus the device index within that
// kind, in [0, Engine.NumExecutors(kind)).
type ExeDevice struct {
	Kind  ExeKind
	Index int
}

func (d ExeDevice) String() string {
	return fmt.Sprintf("%s %02d", d.Kind, d.Index)
}

// MemDevice identifies a memory pool on a specific device.
type MemDevice struct {
	Kind  MemKind
	Index int
}

// UseAllSubExecs is the sentinel for Transfer.ExeSubIndex meaning "spread the transfer
// over all available sub-executor units of the executing device".
const UseAllSubExecs = -1

// Transfer describes one data movement: read from every source, write to every
// destination, driven by Exe. A Transfer with no sources is write-only; one with no
// destinations is read-only. Transfers are built once by a preset and never mutated
// after being handed to RunTransfers.
type Transfer struct {
	// NumBytes moved by this transfer, per iteration.
	NumBytes int64

	// Srcs and Dsts are the memory endpoints. Either may be empty, not both.
	Srcs []MemDevice
	Dsts []MemDevice

	// Exe is the device driving the transfer.
	Exe ExeDevice

	// ExeSubIndex selects a specific sub-executor, or UseAllSubExecs.
	ExeSubIndex int

	// NumSubExecs is how many sub-executor units to dedicate to this transfer.
	NumSubExecs int
}
