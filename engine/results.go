package engine

import "strings"

// ErrKind classifies an engine-reported problem.
type ErrKind int

const (
	// ErrWarn means results were produced but may not be accurate.
	ErrWarn ErrKind = iota
	// ErrFatal means the batch failed and results are invalid.
	ErrFatal
)

// ErrResult is one engine-reported error or warning, with a human-readable message.
type ErrResult struct {
	Kind ErrKind
	Msg  string
}

// BatchError is returned by Engine.RunTransfers when a batch fails. It carries every
// error the engine reported; callers are expected to surface each message verbatim.
type BatchError struct {
	Errs []ErrResult
}

func (e *BatchError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Msg
	}
	return strings.Join(msgs, "\n")
}

// Messages returns the individual error messages, in the order the engine reported them.
func (e *BatchError) Messages() []string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Msg
	}
	return msgs
}

// TransferResult holds the measurements for a single Transfer.
type TransferResult struct {
	// NumBytes transferred per iteration.
	NumBytes int64

	// AvgDurationMsec is the duration averaged over all timed iterations.
	AvgDurationMsec float64

	// AvgBandwidthGbPerSec is the bandwidth based on the averaged duration.
	AvgBandwidthGbPerSec float64
}

// ExeResult holds the aggregate measurements for a single executor device.
type ExeResult struct {
	// NumBytes is the total bytes transferred by this executor per iteration.
	NumBytes int64

	// AvgDurationMsec is the averaged duration over all the transfers of this executor.
	AvgDurationMsec float64

	// AvgBandwidthGbPerSec is the executor bandwidth based on AvgDurationMsec.
	AvgBandwidthGbPerSec float64

	// SumBandwidthGbPerSec is the naive sum of the individual transfer bandwidths.
	SumBandwidthGbPerSec float64

	// TransferIdx are the positions (in the submitted batch) of the transfers this
	// executor executed.
	TransferIdx []int
}

// TestResults holds the measurements for one batch of transfers: per transfer, per
// executor, and for the batch as a whole. It also carries any non-fatal warnings.
type TestResults struct {
	// NumTimedIterations actually executed.
	NumTimedIterations int

	// TotalBytesTransferred per iteration, summed over all transfers.
	TotalBytesTransferred int64

	// AvgTotalDurationMsec is the wall time to finish all transfers, averaged across
	// timed iterations.
	AvgTotalDurationMsec float64

	// AvgTotalBandwidthGbPerSec is the batch bandwidth based on wall time.
	AvgTotalBandwidthGbPerSec float64

	// ExeResults are the per-executor aggregates.
	ExeResults map[ExeDevice]ExeResult

	// TfrResults has one entry per submitted Transfer, in submission order.
	TfrResults []TransferResult

	// Warnings reported by the engine; the batch still succeeded.
	Warnings []ErrResult
}
