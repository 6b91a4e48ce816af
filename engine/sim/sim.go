// Package sim implements a simulated, hardware-free transfer-execution engine.
//
// It models a deterministic multi-device topology (islands of fully connected devices
// on a ring) and synthesizes bandwidth numbers from link distance, endpoint shape and
// sub-executor count. Identical inputs always produce identical results, which makes it
// suitable for tests and for exercising presets on machines without accelerators.
package sim

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gomlx/exceptions"
	"k8s.io/klog/v2"

	"github.com/accelbench/xferbench/engine"
)

// EngineName to be used in XFERBENCH_ENGINE to specify this engine.
const EngineName = "sim"

// islandSize is how many devices share a fully connected island. Devices in the same
// island are one hop apart; islands are chained on a ring.
const islandSize = 4

// defaultNumDevices simulated when the config string doesn't say otherwise.
const defaultNumDevices = 8

func init() {
	engine.Register(EngineName, New)
}

// New constructs a simulated Engine.
//
// The config string is a comma-separated list of: a device count (default 8) and the
// word "progress" to draw a progress bar on stderr while a batch runs.
// E.g.: "sim:16,progress".
func New(config string) engine.Engine {
	e := &Engine{numDevices: defaultNumDevices}
	for _, part := range strings.Split(config, ",") {
		part = strings.TrimSpace(part)
		switch {
		case part == "":
		case part == "progress":
			e.showProgress = true
		default:
			n, err := strconv.Atoi(part)
			if err != nil || n < 0 {
				exceptions.Panicf("invalid configuration %q for %q engine: %q is neither a device count nor an option", config, EngineName, part)
			}
			e.numDevices = n
		}
	}
	klog.V(1).Infof("sim engine created with %d devices", e.numDevices)
	return e
}

// Engine implements engine.Engine over a synthetic device topology.
type Engine struct {
	numDevices   int
	showProgress bool
}

// Compile-time checks of the implemented interfaces.
var (
	_ engine.Engine          = &Engine{}
	_ engine.TopologyQuerier = &Engine{}
)

// Name returns the short name of the engine.
func (e *Engine) Name() string { return EngineName }

// Description is a longer description of the Engine that can be used to pretty-print.
func (e *Engine) Description() string {
	return fmt.Sprintf("Simulated engine (%d devices, islands of %d)", e.numDevices, islandSize)
}

// NumExecutors returns how many executor devices of the given kind are available.
// Both GPU executor kinds map onto the same simulated devices; there is a single
// simulated CPU.
func (e *Engine) NumExecutors(kind engine.ExeKind) int {
	switch kind {
	case engine.ExeGPUGfx, engine.ExeGPUDma:
		return e.numDevices
	case engine.ExeCPU:
		return 1
	}
	return 0
}

// Topology implements engine.TopologyQuerier.
func (e *Engine) Topology() engine.TopologyProvider {
	return &topology{numDevices: e.numDevices}
}

type topology struct {
	numDevices int
}

func (t *topology) LinkInfo(src, dst int) (engine.LinkInfo, error) {
	if src < 0 || src >= t.numDevices || dst < 0 || dst >= t.numDevices {
		return engine.LinkInfo{}, fmt.Errorf("device pair (%d,%d) out of range, have %d devices", src, dst, t.numDevices)
	}
	return engine.LinkInfo{Kind: engine.LinkFabric, HopCount: hopCount(src, dst, t.numDevices)}, nil
}

// hopCount is 0 for a device to itself, 1 within an island, and one extra hop per
// island traversed on the ring (shorter direction).
func hopCount(src, dst, numDevices int) int {
	if src == dst {
		return 0
	}
	srcIsland := src / islandSize
	dstIsland := dst / islandSize
	if srcIsland == dstIsland {
		return 1
	}
	numIslands := (numDevices + islandSize - 1) / islandSize
	dist := srcIsland - dstIsland
	if dist < 0 {
		dist = -dist
	}
	if ring := numIslands - dist; ring < dist {
		dist = ring
	}
	return 1 + dist
}
