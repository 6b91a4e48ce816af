package a2a

import (
	"fmt"
	"io"

	"github.com/accelbench/xferbench/engine"
)

// MatrixReport is the aggregated view of one run: a bandwidth matrix indexed by
// (source, destination) plus its row, column and executor statistics. It is derived
// from the engine results and recomputed fresh for each run.
type MatrixReport struct {
	NumDevices int

	// Cells[src][dst] is the measured bandwidth in GB/s, valid where Present[src][dst].
	// Pairs the filter excluded are absent and contribute nothing to the totals.
	Cells   [][]float64
	Present [][]bool

	// RowTotals[src] sums the bandwidths of row src; ColTotals[dst] of column dst.
	// ColTotals has one extra trailing entry with the grand total.
	RowTotals []float64
	ColTotals []float64

	// RowExecutorBW[src] is the maximum aggregate bandwidth among the executors driving
	// row src's transfers. Maximum, not sum: transfers sharing an executor are
	// bandwidth-limited together.
	RowExecutorBW []float64

	// MinExecutorBW and MaxExecutorBW are taken over RowExecutorBW.
	MinExecutorBW float64
	MaxExecutorBW float64

	// AvgBandwidth is the grand total divided by the number of transfers.
	AvgBandwidth float64

	// WallBandwidth is the engine's wall-clock aggregate for the whole batch.
	WallBandwidth float64

	NumTransfers int
}

// Aggregate walks the full numDevices² matrix, pulling each included pair's measured
// bandwidth from results through the plan's pair index, and accumulates row totals,
// column totals, the grand total and per-row executor bandwidths. It only reads its
// inputs, so re-running it over the same results yields an identical report.
func Aggregate(numDevices int, plan *Plan, results *engine.TestResults) *MatrixReport {
	report := &MatrixReport{
		NumDevices:    numDevices,
		Cells:         make([][]float64, numDevices),
		Present:       make([][]bool, numDevices),
		RowTotals:     make([]float64, numDevices),
		ColTotals:     make([]float64, numDevices+1),
		RowExecutorBW: make([]float64, numDevices),
		NumTransfers:  plan.NumTransfers(),
		WallBandwidth: results.AvgTotalBandwidthGbPerSec,
	}

	var grandTotal float64
	first := true
	for src := 0; src < numDevices; src++ {
		report.Cells[src] = make([]float64, numDevices)
		report.Present[src] = make([]bool, numDevices)
		var rowTotal, executorBW float64
		for dst := 0; dst < numDevices; dst++ {
			pos, ok := plan.Lookup(src, dst)
			if !ok {
				continue
			}
			bw := results.TfrResults[pos].AvgBandwidthGbPerSec
			report.Cells[src][dst] = bw
			report.Present[src][dst] = true
			report.ColTotals[dst] += bw
			rowTotal += bw
			grandTotal += bw
			if exeBW := results.ExeResults[plan.Transfers[pos].Exe].AvgBandwidthGbPerSec; exeBW > executorBW {
				executorBW = exeBW
			}
		}
		report.RowTotals[src] = rowTotal
		report.RowExecutorBW[src] = executorBW
		if first || executorBW < report.MinExecutorBW {
			report.MinExecutorBW = executorBW
		}
		if first || executorBW > report.MaxExecutorBW {
			report.MaxExecutorBW = executorBW
		}
		first = false
	}
	report.ColTotals[numDevices] = grandTotal
	if report.NumTransfers > 0 {
		report.AvgBandwidth = grandTotal / float64(report.NumTransfers)
	}
	return report
}

// Render writes the fixed-width bandwidth matrix: one row per source device, one column
// per destination device, trailing row-total ("STotal") and row-executor ("Actual")
// columns, and a trailing "RTotal" row mirroring the column totals followed by the
// min/max executor bandwidths. csv switches the field separator from spaces to commas
// for machine-readable output.
func (r *MatrixReport) Render(w io.Writer, numBytes int64, csv bool) {
	sep := ' '
	if csv {
		sep = ','
	}

	fmt.Fprintf(w, "\nSummary: [%d bytes per Transfer]\n", numBytes)
	fmt.Fprintf(w, "==========================================================\n")
	fmt.Fprintf(w, "SRC\\DST ")
	for dst := 0; dst < r.NumDevices; dst++ {
		fmt.Fprintf(w, "%cGPU %02d    ", sep, dst)
	}
	fmt.Fprintf(w, "   %cSTotal     %cActual\n", sep, sep)

	for src := 0; src < r.NumDevices; src++ {
		fmt.Fprintf(w, "GPU %02d", src)
		for dst := 0; dst < r.NumDevices; dst++ {
			if r.Present[src][dst] {
				fmt.Fprintf(w, "%c%8.3f  ", sep, r.Cells[src][dst])
			} else {
				fmt.Fprintf(w, "%c%8s  ", sep, "N/A")
			}
		}
		fmt.Fprintf(w, "   %c%8.3f   %c%8.3f\n", sep, r.RowTotals[src], sep, r.RowExecutorBW[src])
	}

	fmt.Fprintf(w, "\nRTotal")
	for dst := 0; dst < r.NumDevices; dst++ {
		fmt.Fprintf(w, "%c%8.3f  ", sep, r.ColTotals[dst])
	}
	fmt.Fprintf(w, "   %c%8.3f   %c%8.3f   %c%8.3f\n",
		sep, r.ColTotals[r.NumDevices], sep, r.MinExecutorBW, sep, r.MaxExecutorBW)
	fmt.Fprintf(w, "\n")

	fmt.Fprintf(w, "Average   bandwidth (Engine Timed): %8.3f GB/s\n", r.AvgBandwidth)
	fmt.Fprintf(w, "Aggregate bandwidth (Engine Timed): %8.3f GB/s\n", r.ColTotals[r.NumDevices])
	fmt.Fprintf(w, "Aggregate bandwidth (Wall Timed):   %8.3f GB/s\n", r.WallBandwidth)
}
