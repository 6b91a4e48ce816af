package a2a

import (
	"k8s.io/klog/v2"

	"github.com/accelbench/xferbench/engine"
)

// PairFilter decides which (source, destination) device pairs take part in a run.
// It is a pure decision function: no side effects, safe to query in any order.
type PairFilter struct {
	// Topology answers direct-link queries. May be nil when the platform offers no
	// link introspection, in which case direct-only filtering keeps every pair.
	Topology engine.TopologyProvider

	// DirectOnly keeps only pairs connected by a single direct hop.
	DirectOnly bool

	// IncludeLocal keeps self-pairs (src == dst).
	IncludeLocal bool
}

// Include reports whether the (src, dst) pair should be benchmarked.
func (f PairFilter) Include(src, dst int) bool {
	if src == dst {
		return f.IncludeLocal
	}
	if !f.DirectOnly || f.Topology == nil {
		return true
	}
	info, err := f.Topology.LinkInfo(src, dst)
	if err != nil {
		// Treat a failing topology query like a missing capability: keep the pair.
		klog.V(1).Infof("topology query for pair (%d,%d) failed, including it: %v", src, dst, err)
		return true
	}
	return info.HopCount == 1
}
