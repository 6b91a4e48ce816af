package a2a

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accelbench/xferbench/engine"
)

// fakeResults builds a result set where transfer i measured bandwidths[i] GB/s, and
// every executor's aggregate bandwidth is the max over its transfers.
func fakeResults(plan *Plan, bandwidths []float64) *engine.TestResults {
	results := &engine.TestResults{
		NumTimedIterations:        10,
		AvgTotalBandwidthGbPerSec: 123.0,
		ExeResults:                make(map[engine.ExeDevice]engine.ExeResult),
		TfrResults:                make([]engine.TransferResult, len(bandwidths)),
	}
	for i, bw := range bandwidths {
		results.TfrResults[i] = engine.TransferResult{
			NumBytes:             plan.Transfers[i].NumBytes,
			AvgBandwidthGbPerSec: bw,
		}
		exe := results.ExeResults[plan.Transfers[i].Exe]
		if bw > exe.AvgBandwidthGbPerSec {
			exe.AvgBandwidthGbPerSec = bw
		}
		exe.TransferIdx = append(exe.TransferIdx, i)
		results.ExeResults[plan.Transfers[i].Exe] = exe
	}
	return results
}

func TestAggregateTotals(t *testing.T) {
	plan := BuildPlan(defaultTestConfig(2), nil, 1<<20)
	require.Equal(t, 2, plan.NumTransfers())

	pos01, _ := plan.Lookup(0, 1)
	pos10, _ := plan.Lookup(1, 0)
	bandwidths := make([]float64, 2)
	bandwidths[pos01] = 10.0
	bandwidths[pos10] = 20.0

	report := Aggregate(2, plan, fakeResults(plan, bandwidths))
	assert.Equal(t, []float64{10, 20}, report.RowTotals)
	assert.Equal(t, []float64{20, 10, 30}, report.ColTotals)
	assert.InDelta(t, 15.0, report.AvgBandwidth, 1e-9)
	assert.Equal(t, 123.0, report.WallBandwidth)

	// Excluded self-pairs are absent, not zero.
	assert.False(t, report.Present[0][0])
	assert.False(t, report.Present[1][1])
	assert.True(t, report.Present[0][1])
	assert.Equal(t, 10.0, report.Cells[0][1])
}

func TestAggregateSkipsExcludedPairs(t *testing.T) {
	// Only the (0,1)/(1,0) pairs are direct; rows and columns for device 2 stay empty
	// and contribute nothing.
	top := &pairTopology{direct: map[PairKey]bool{
		{Src: 0, Dst: 1}: true,
		{Src: 1, Dst: 0}: true,
	}}
	cfg := defaultTestConfig(3)
	cfg.DirectOnly = true
	plan := BuildPlan(cfg, top, 1<<20)
	require.Equal(t, 2, plan.NumTransfers())

	report := Aggregate(3, plan, fakeResults(plan, []float64{5, 7}))
	assert.Equal(t, 0.0, report.RowTotals[2])
	assert.Equal(t, 0.0, report.ColTotals[2])
	assert.Equal(t, 12.0, report.ColTotals[3])
	assert.False(t, report.Present[2][0])
	// The empty row drags the executor minimum to zero.
	assert.Equal(t, 0.0, report.MinExecutorBW)
}

func TestAggregateExecutorMaxNotSum(t *testing.T) {
	// Three transfers out of device 0, all driven by executor 0. The row executor
	// bandwidth is the executor's aggregate, not the sum of the row's transfers.
	cfg := defaultTestConfig(4)
	plan := BuildPlan(cfg, nil, 1<<20)

	bandwidths := make([]float64, plan.NumTransfers())
	for i := range bandwidths {
		bandwidths[i] = 10.0
	}
	pos, _ := plan.Lookup(0, 2)
	bandwidths[pos] = 15.0
	results := fakeResults(plan, bandwidths)

	report := Aggregate(4, plan, results)
	// fakeResults models each executor aggregate as the max over its transfers: 15 for
	// executor 0, 10 elsewhere.
	assert.Equal(t, 15.0, report.RowExecutorBW[0])
	assert.Equal(t, 10.0, report.RowExecutorBW[1])
	assert.Equal(t, 10.0, report.MinExecutorBW)
	assert.Equal(t, 15.0, report.MaxExecutorBW)
}

func TestAggregateRemoteReadMixedExecutors(t *testing.T) {
	// With remote reads, row 0's transfers run on executors 1 and 2. The row reports
	// the fastest of those executors.
	cfg := defaultTestConfig(3)
	cfg.UseRemoteRead = true
	plan := BuildPlan(cfg, nil, 1<<20)

	bandwidths := make([]float64, plan.NumTransfers())
	pos01, _ := plan.Lookup(0, 1)
	pos02, _ := plan.Lookup(0, 2)
	bandwidths[pos01] = 10.0
	bandwidths[pos02] = 15.0
	report := Aggregate(3, plan, fakeResults(plan, bandwidths))
	assert.Equal(t, 15.0, report.RowExecutorBW[0])
}

func TestAggregateIdempotent(t *testing.T) {
	cfg := defaultTestConfig(3)
	cfg.IncludeLocal = true
	plan := BuildPlan(cfg, nil, 1<<20)
	bandwidths := make([]float64, plan.NumTransfers())
	for i := range bandwidths {
		bandwidths[i] = float64(i + 1)
	}
	results := fakeResults(plan, bandwidths)

	first := Aggregate(3, plan, results)
	second := Aggregate(3, plan, results)
	assert.Equal(t, first, second)
}

func TestRenderHumanReadable(t *testing.T) {
	plan := BuildPlan(defaultTestConfig(2), nil, 1<<20)
	report := Aggregate(2, plan, fakeResults(plan, []float64{10, 20}))

	var sb strings.Builder
	report.Render(&sb, 1<<20, false)
	out := sb.String()

	assert.Contains(t, out, "SRC\\DST")
	assert.Contains(t, out, "GPU 00")
	assert.Contains(t, out, "GPU 01")
	assert.Contains(t, out, "STotal")
	assert.Contains(t, out, "Actual")
	assert.Contains(t, out, "RTotal")
	assert.Contains(t, out, "N/A") // excluded self-pairs
	assert.Contains(t, out, "1048576 bytes per Transfer")
	assert.NotContains(t, out, ",")
}

func TestRenderCSV(t *testing.T) {
	plan := BuildPlan(defaultTestConfig(2), nil, 1<<20)
	report := Aggregate(2, plan, fakeResults(plan, []float64{10, 20}))

	var human, csv strings.Builder
	report.Render(&human, 1<<20, false)
	report.Render(&csv, 1<<20, true)

	assert.Contains(t, csv.String(), ",")
	// Same fields, different separator.
	assert.Equal(t,
		strings.ReplaceAll(csv.String(), ",", " "),
		human.String())
}
