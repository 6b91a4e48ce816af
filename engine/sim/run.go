package sim

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"k8s.io/klog/v2"

	"github.com/accelbench/xferbench/engine"
)

// Synthetic link rates, in GB/s. Remote rates halve for every hop past the first.
const (
	localRateGbPerSec  = 1200.0
	directRateGbPerSec = 50.0
	dmaRateCapGbPerSec = 45.0
)

// subExecSaturation is the sub-executor count past which a transfer no longer speeds up.
const subExecSaturation = 8

// wallOverheadMsec models launch and synchronization overhead on top of the slowest
// executor.
const wallOverheadMsec = 0.05

// RunTransfers executes the batch against the synthetic model. It validates every
// transfer first and reports all problems at once through a *engine.BatchError.
func (e *Engine) RunTransfers(cfg engine.ConfigOptions, transfers []engine.Transfer) (*engine.TestResults, error) {
	var errs []engine.ErrResult
	appendErr := func(format string, args ...any) {
		errs = append(errs, engine.ErrResult{Kind: engine.ErrFatal, Msg: fmt.Sprintf(format, args...)})
	}

	if cfg.General.NumIterations < 1 {
		appendErr("[ERROR] NumIterations must be at least 1, got %d", cfg.General.NumIterations)
	}
	for i, t := range transfers {
		if t.NumBytes <= 0 {
			appendErr("[ERROR] Transfer %d: NumBytes must be positive, got %d", i, t.NumBytes)
		}
		if len(t.Srcs) == 0 && len(t.Dsts) == 0 {
			appendErr("[ERROR] Transfer %d: has neither sources nor destinations", i)
		}
		for _, m := range t.Srcs {
			if m.Index < 0 || m.Index >= e.numDevices {
				appendErr("[ERROR] Transfer %d: source device %d out of range, have %d devices", i, m.Index, e.numDevices)
			}
		}
		for _, m := range t.Dsts {
			if m.Index < 0 || m.Index >= e.numDevices {
				appendErr("[ERROR] Transfer %d: destination device %d out of range, have %d devices", i, m.Index, e.numDevices)
			}
		}
		if t.Exe.Kind != engine.ExeGPUGfx && t.Exe.Kind != engine.ExeGPUDma {
			appendErr("[ERROR] Transfer %d: unsupported executor kind %s", i, t.Exe.Kind)
		} else if t.Exe.Index < 0 || t.Exe.Index >= e.numDevices {
			appendErr("[ERROR] Transfer %d: executor device %d out of range, have %d devices", i, t.Exe.Index, e.numDevices)
		}
		if t.NumSubExecs < 1 {
			appendErr("[ERROR] Transfer %d: NumSubExecs must be at least 1, got %d", i, t.NumSubExecs)
		}
	}
	if len(errs) > 0 {
		return nil, &engine.BatchError{Errs: errs}
	}

	var bar *progressbar.ProgressBar
	if e.showProgress {
		bar = progressbar.NewOptions(cfg.General.NumWarmups+cfg.General.NumIterations,
			progressbar.OptionSetDescription("sim"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("iters"),
			progressbar.OptionSetTheme(progressbar.ThemeASCII),
		)
	}

	// The model is deterministic, so every iteration measures the same durations.
	// Warmup and timed iterations are still walked so progress reporting behaves
	// like a real engine.
	results := &engine.TestResults{
		NumTimedIterations: cfg.General.NumIterations,
		ExeResults:         make(map[engine.ExeDevice]engine.ExeResult),
		TfrResults:         make([]engine.TransferResult, len(transfers)),
	}
	for iter := 0; iter < cfg.General.NumWarmups+cfg.General.NumIterations; iter++ {
		for i, t := range transfers {
			durMsec := e.transferDurationMsec(t)
			results.TfrResults[i] = engine.TransferResult{
				NumBytes:             t.NumBytes,
				AvgDurationMsec:      durMsec,
				AvgBandwidthGbPerSec: float64(t.NumBytes) / 1.0e6 / durMsec,
			}
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(os.Stderr)
	}

	// Per-executor aggregation: transfers sharing an executor run concurrently, so the
	// executor duration is the slowest of its transfers.
	for i, t := range transfers {
		r := results.TfrResults[i]
		exe := results.ExeResults[t.Exe]
		exe.NumBytes += r.NumBytes
		exe.SumBandwidthGbPerSec += r.AvgBandwidthGbPerSec
		if r.AvgDurationMsec > exe.AvgDurationMsec {
			exe.AvgDurationMsec = r.AvgDurationMsec
		}
		exe.TransferIdx = append(exe.TransferIdx, i)
		results.ExeResults[t.Exe] = exe
		results.TotalBytesTransferred += r.NumBytes
	}
	var slowestMsec float64
	for dev, exe := range results.ExeResults {
		exe.AvgBandwidthGbPerSec = float64(exe.NumBytes) / 1.0e6 / exe.AvgDurationMsec
		results.ExeResults[dev] = exe
		if exe.AvgDurationMsec > slowestMsec {
			slowestMsec = exe.AvgDurationMsec
		}
	}
	results.AvgTotalDurationMsec = slowestMsec + wallOverheadMsec
	results.AvgTotalBandwidthGbPerSec = float64(results.TotalBytesTransferred) / 1.0e6 / results.AvgTotalDurationMsec

	klog.V(1).Infof("sim engine ran %d transfers: %.3f GB/s wall bandwidth",
		len(transfers), results.AvgTotalBandwidthGbPerSec)
	return results, nil
}

// transferDurationMsec is the modeled duration of one transfer.
//
// The rate starts at the link rate between the transfer's endpoints (local copies use a
// much higher on-device rate, remote rates halve per extra hop), scales linearly with
// sub-executor count up to saturation, and gets a small boost for single-ended
// (read-only or write-only) transfers that touch memory on one side only.
func (e *Engine) transferDurationMsec(t engine.Transfer) float64 {
	src, dst := endpointDevices(t)
	hops := hopCount(src, dst, e.numDevices)

	var rate float64
	if hops == 0 {
		rate = localRateGbPerSec
	} else {
		rate = directRateGbPerSec
		for h := 1; h < hops; h++ {
			rate /= 2
		}
	}

	if t.Exe.Kind == engine.ExeGPUDma {
		// The DMA engine moves data without sub-executor parallelism.
		if rate > dmaRateCapGbPerSec {
			rate = dmaRateCapGbPerSec
		}
	} else {
		subExecs := t.NumSubExecs
		if subExecs > subExecSaturation {
			subExecs = subExecSaturation
		}
		rate *= float64(subExecs) / float64(subExecSaturation)
	}

	switch {
	case len(t.Dsts) == 0:
		rate *= 1.2
	case len(t.Srcs) == 0:
		rate *= 1.1
	}

	return float64(t.NumBytes) / 1.0e6 / rate
}

// endpointDevices picks the devices whose link determines the transfer rate. A missing
// endpoint is substituted by the executing device.
func endpointDevices(t engine.Transfer) (src, dst int) {
	src, dst = t.Exe.Index, t.Exe.Index
	if len(t.Srcs) > 0 {
		src = t.Srcs[0].Index
	}
	if len(t.Dsts) > 0 {
		dst = t.Dsts[0].Index
	}
	return
}
