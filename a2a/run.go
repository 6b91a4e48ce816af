// Package a2a builds and evaluates an all-to-all data-movement benchmark across the
// devices of a transfer-execution engine.
//
// One run is strictly sequential: decide which (source, destination) pairs take part
// (PairFilter), turn them into a transfer plan with a pair index (BuildPlan), hand the
// whole plan to the engine in a single batched call, and fold the per-transfer
// measurements back into a bandwidth matrix (Aggregate, MatrixReport). Nothing is
// shared across runs.
package a2a

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/accelbench/xferbench/engine"
)

// RunOptions are the per-invocation knobs that don't come from the environment.
type RunOptions struct {
	// NumBytes moved by every transfer.
	NumBytes int64

	// CSV switches the report to comma-delimited output.
	CSV bool

	// Writer receives the report; defaults to os.Stdout.
	Writer io.Writer

	// Engine is the timing configuration forwarded to the engine; zero value means
	// engine.DefaultConfigOptions().
	Engine engine.ConfigOptions
}

// Run executes one all-to-all benchmark on eng: validate cfg, build the plan, submit it
// as a single batch, aggregate and render the matrix report.
//
// A plan with zero transfers is a no-op: Run prints the summary line and returns nil
// without calling the engine. An engine failure is returned as a *engine.BatchError and
// no report is produced; the caller is expected to surface every message it carries.
func Run(eng engine.Engine, cfg Config, opts RunOptions) error {
	w := opts.Writer
	if w == nil {
		w = os.Stdout
	}
	engineCfg := opts.Engine
	if engineCfg == (engine.ConfigOptions{}) {
		engineCfg = engine.DefaultConfigOptions()
	}

	detected := eng.NumExecutors(cfg.ExeKind())
	if err := cfg.Validate(detected); err != nil {
		return errors.Wrap(err, "invalid all-to-all configuration")
	}

	plan := BuildPlan(cfg, engine.TopologyOf(eng), opts.NumBytes)

	pairs := "all"
	if cfg.DirectOnly {
		pairs = "directly connected"
	}
	fmt.Fprintf(w, "All-To-All benchmark (%s engine):\n", eng.Name())
	fmt.Fprintf(w, "==========================\n")
	fmt.Fprintf(w, "- Copying %s between %s pairs of %d devices using %d sub-executors (%d Transfers)\n",
		humanize.IBytes(uint64(opts.NumBytes)), pairs, cfg.NumDevices, cfg.NumSubExecs, plan.NumTransfers())
	if plan.NumTransfers() == 0 {
		return nil
	}

	klog.V(1).Infof("submitting %d transfers to engine %q", plan.NumTransfers(), eng.Name())
	results, err := eng.RunTransfers(engineCfg, plan.Transfers)
	if err != nil {
		return err
	}

	report := Aggregate(cfg.NumDevices, plan, results)
	report.Render(w, opts.NumBytes, opts.CSV)
	for _, warn := range results.Warnings {
		fmt.Fprintf(w, "%s\n", warn.Msg)
	}
	return nil
}
