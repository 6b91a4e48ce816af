package engine

// LinkKind classifies the connection between two devices, as reported by the platform.
type LinkKind int

const (
	// LinkUnknown is reported when the platform can't classify the connection.
	LinkUnknown LinkKind = iota
	// LinkPCIe is a connection over the PCIe fabric.
	LinkPCIe
	// LinkFabric is a direct accelerator-to-accelerator fabric link (e.g. xGMI, NVLink).
	LinkFabric
)

// LinkInfo describes how two devices are connected.
type LinkInfo struct {
	Kind LinkKind

	// HopCount is the number of fabric hops between the two devices. Directly
	// connected devices have HopCount == 1.
	HopCount int
}

// Direct reports whether the link is a single direct hop.
func (l LinkInfo) Direct() bool { return l.HopCount == 1 }

// TopologyProvider answers link queries for pairs of devices of an engine's primary
// executor kind. Implementations must be safe for repeated queries and must not depend
// on query order.
type TopologyProvider interface {
	// LinkInfo returns the connection between devices src and dst.
	LinkInfo(src, dst int) (LinkInfo, error)
}

// AlwaysDirect is the TopologyProvider used when an engine offers no link introspection:
// it reports every pair as a single direct fabric hop, so direct-only filtering keeps
// all pairs rather than failing.
var AlwaysDirect TopologyProvider = alwaysDirect{}

type alwaysDirect struct{}

func (alwaysDirect) LinkInfo(src, dst int) (LinkInfo, error) {
	return LinkInfo{Kind: LinkUnknown, HopCount: 1}, nil
}

// TopologyOf returns the engine's topology provider, or AlwaysDirect when the engine
// doesn't implement TopologyQuerier.
func TopologyOf(e Engine) TopologyProvider {
	if q, ok := e.(TopologyQuerier); ok {
		if t := q.Topology(); t != nil {
			return t
		}
	}
	return AlwaysDirect
}
