package a2a

import "github.com/accelbench/xferbench/engine"

// PairKey identifies one ordered (source, destination) device pair.
type PairKey struct {
	Src, Dst int
}

// Plan is the transfer list of one run together with its pair index. Both are built in
// a single step by BuildPlan and never mutated afterwards: the index always refers to
// valid positions in Transfers, and pairs excluded by the filter simply have no entry.
type Plan struct {
	// Transfers in submission order, one per included pair.
	Transfers []engine.Transfer

	index map[PairKey]int
}

// Lookup returns the position of the (src, dst) pair's transfer in Transfers.
// The second result is false for pairs the filter excluded; that is a frequent,
// expected outcome, not an error.
func (p *Plan) Lookup(src, dst int) (int, bool) {
	pos, ok := p.index[PairKey{Src: src, Dst: dst}]
	return pos, ok
}

// NumTransfers in the plan. Zero is valid and means a no-op run.
func (p *Plan) NumTransfers() int { return len(p.Transfers) }

// BuildPlan walks every ordered pair in [0, cfg.NumDevices)² and builds a transfer for
// each pair accepted by the filter derived from cfg and topology:
//
//   - every transfer moves numBytes from (cfg.MemKind(), src) to (cfg.MemKind(), dst),
//     dropping the source endpoint in write-only mode and the destination endpoint in
//     read-only mode;
//   - the executing device is dst when cfg.UseRemoteRead, else src;
//   - all sub-executor units are eligible (engine.UseAllSubExecs), cfg.NumSubExecs of
//     them dedicated to the transfer.
//
// The pair's index entry is recorded before its transfer is appended, so the two
// structures cannot disagree. An empty plan is returned when no pair passes the filter.
func BuildPlan(cfg Config, topology engine.TopologyProvider, numBytes int64) *Plan {
	filter := PairFilter{
		Topology:     topology,
		DirectOnly:   cfg.DirectOnly,
		IncludeLocal: cfg.IncludeLocal,
	}
	memKind := cfg.MemKind()
	exeKind := cfg.ExeKind()

	plan := &Plan{index: make(map[PairKey]int)}
	for src := 0; src < cfg.NumDevices; src++ {
		for dst := 0; dst < cfg.NumDevices; dst++ {
			if !filter.Include(src, dst) {
				continue
			}
			transfer := engine.Transfer{
				NumBytes:    numBytes,
				Exe:         engine.ExeDevice{Kind: exeKind, Index: src},
				ExeSubIndex: engine.UseAllSubExecs,
				NumSubExecs: cfg.NumSubExecs,
			}
			if cfg.UseRemoteRead {
				transfer.Exe.Index = dst
			}
			if cfg.Mode.HasSrc() {
				transfer.Srcs = []engine.MemDevice{{Kind: memKind, Index: src}}
			}
			if cfg.Mode.HasDst() {
				transfer.Dsts = []engine.MemDevice{{Kind: memKind, Index: dst}}
			}
			plan.index[PairKey{Src: src, Dst: dst}] = len(plan.Transfers)
			plan.Transfers = append(plan.Transfers, transfer)
		}
	}
	return plan
}
