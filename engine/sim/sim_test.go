package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accelbench/xferbench/engine"
)

func newTestEngine(t *testing.T, config string) *Engine {
	e, ok := New(config).(*Engine)
	require.True(t, ok)
	return e
}

func TestConfigString(t *testing.T) {
	assert.Equal(t, defaultNumDevices, newTestEngine(t, "").numDevices)
	assert.Equal(t, 16, newTestEngine(t, "16").numDevices)

	e := newTestEngine(t, "12,progress")
	assert.Equal(t, 12, e.numDevices)
	assert.True(t, e.showProgress)

	assert.Panics(t, func() { New("banana") })
}

func TestNumExecutors(t *testing.T) {
	e := newTestEngine(t, "16")
	assert.Equal(t, 16, e.NumExecutors(engine.ExeGPUGfx))
	assert.Equal(t, 16, e.NumExecutors(engine.ExeGPUDma))
	assert.Equal(t, 1, e.NumExecutors(engine.ExeCPU))
}

func TestTopologyHops(t *testing.T) {
	e := newTestEngine(t, "8") // 2 islands of 4
	top := e.Topology()

	info, err := top.LinkInfo(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, info.HopCount)

	info, err = top.LinkInfo(0, 3) // same island
	require.NoError(t, err)
	assert.Equal(t, 1, info.HopCount)
	assert.True(t, info.Direct())

	info, err = top.LinkInfo(0, 4) // neighboring island
	require.NoError(t, err)
	assert.Equal(t, 2, info.HopCount)
	assert.False(t, info.Direct())

	_, err = top.LinkInfo(0, 8)
	assert.Error(t, err)
}

func TestTopologyRingDistance(t *testing.T) {
	e := newTestEngine(t, "16") // 4 islands on a ring
	top := e.Topology()

	// Island 0 to island 2: two islands away in either direction.
	info, err := top.LinkInfo(0, 8)
	require.NoError(t, err)
	assert.Equal(t, 3, info.HopCount)

	// Island 0 to island 3: one island away going backwards on the ring.
	info, err = top.LinkInfo(0, 12)
	require.NoError(t, err)
	assert.Equal(t, 2, info.HopCount)
}

func copyTransfer(src, dst, subExecs int) engine.Transfer {
	return engine.Transfer{
		NumBytes:    1 << 20,
		Srcs:        []engine.MemDevice{{Kind: engine.MemGPUFine, Index: src}},
		Dsts:        []engine.MemDevice{{Kind: engine.MemGPUFine, Index: dst}},
		Exe:         engine.ExeDevice{Kind: engine.ExeGPUGfx, Index: src},
		ExeSubIndex: engine.UseAllSubExecs,
		NumSubExecs: subExecs,
	}
}

func TestRunTransfersDeterministic(t *testing.T) {
	e := newTestEngine(t, "8")
	cfg := engine.DefaultConfigOptions()
	transfers := []engine.Transfer{copyTransfer(0, 1, 8), copyTransfer(1, 0, 8), copyTransfer(0, 4, 8)}

	first, err := e.RunTransfers(cfg, transfers)
	require.NoError(t, err)
	second, err := e.RunTransfers(cfg, transfers)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	require.Len(t, first.TfrResults, 3)
	// Same-island pairs are one hop and faster than the two-hop cross-island pair.
	assert.Greater(t, first.TfrResults[0].AvgBandwidthGbPerSec, first.TfrResults[2].AvgBandwidthGbPerSec)
	assert.Equal(t, int64(3<<20), first.TotalBytesTransferred)
	assert.Positive(t, first.AvgTotalBandwidthGbPerSec)
}

func TestRunTransfersExecutorAggregation(t *testing.T) {
	e := newTestEngine(t, "8")
	// Two transfers on executor 0: one fast local, one slower cross-island.
	transfers := []engine.Transfer{copyTransfer(0, 0, 8), copyTransfer(0, 4, 8)}
	results, err := e.RunTransfers(engine.DefaultConfigOptions(), transfers)
	require.NoError(t, err)

	exe := results.ExeResults[engine.ExeDevice{Kind: engine.ExeGPUGfx, Index: 0}]
	require.Len(t, exe.TransferIdx, 2)
	assert.Equal(t, int64(2<<20), exe.NumBytes)
	// The executor is held for as long as its slowest transfer.
	assert.Equal(t, results.TfrResults[1].AvgDurationMsec, exe.AvgDurationMsec)
	assert.InDelta(t,
		results.TfrResults[0].AvgBandwidthGbPerSec+results.TfrResults[1].AvgBandwidthGbPerSec,
		exe.SumBandwidthGbPerSec, 1e-9)
}

func TestRunTransfersSubExecScaling(t *testing.T) {
	e := newTestEngine(t, "8")
	slow := copyTransfer(0, 1, 4)
	fast := copyTransfer(0, 1, 8)
	saturated := copyTransfer(0, 1, 32)

	results, err := e.RunTransfers(engine.DefaultConfigOptions(), []engine.Transfer{slow, fast, saturated})
	require.NoError(t, err)
	assert.Less(t, results.TfrResults[0].AvgBandwidthGbPerSec, results.TfrResults[1].AvgBandwidthGbPerSec)
	assert.Equal(t, results.TfrResults[1].AvgBandwidthGbPerSec, results.TfrResults[2].AvgBandwidthGbPerSec)
}

func TestRunTransfersReportsAllErrors(t *testing.T) {
	e := newTestEngine(t, "4")
	bad := []engine.Transfer{
		copyTransfer(0, 9, 8), // destination out of range
		copyTransfer(7, 1, 8), // source and executor out of range
	}
	_, err := e.RunTransfers(engine.DefaultConfigOptions(), bad)
	require.Error(t, err)
	var batchErr *engine.BatchError
	require.ErrorAs(t, err, &batchErr)
	assert.GreaterOrEqual(t, len(batchErr.Messages()), 2)
}

func TestRunTransfersSingleEnded(t *testing.T) {
	e := newTestEngine(t, "8")
	readOnly := copyTransfer(0, 1, 8)
	readOnly.Dsts = nil
	writeOnly := copyTransfer(0, 1, 8)
	writeOnly.Srcs = nil
	writeOnly.Exe.Index = 1

	results, err := e.RunTransfers(engine.DefaultConfigOptions(), []engine.Transfer{readOnly, writeOnly})
	require.NoError(t, err)
	// Single-ended transfers only touch memory on one side, so both beat a full copy
	// over the same link, and reads beat writes.
	copyResults, err := e.RunTransfers(engine.DefaultConfigOptions(), []engine.Transfer{copyTransfer(0, 1, 8)})
	require.NoError(t, err)
	assert.Greater(t, results.TfrResults[0].AvgBandwidthGbPerSec, copyResults.TfrResults[0].AvgBandwidthGbPerSec)
	assert.Greater(t, results.TfrResults[0].AvgBandwidthGbPerSec, results.TfrResults[1].AvgBandwidthGbPerSec)
}
