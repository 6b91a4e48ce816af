// xferbench runs an all-to-all bandwidth benchmark across the devices of a
// transfer-execution engine and prints the resulting bandwidth matrix.
//
// The transfer shape, pair filtering and device count are configured through
// environment variables (see the a2a package); engine selection, transfer size and
// output format are flags. Example:
//
//	A2A_LOCAL=1 xferbench -engine=sim:16 -bytes=256MiB
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/accelbench/xferbench/a2a"
	"github.com/accelbench/xferbench/engine"
	_ "github.com/accelbench/xferbench/engine/sim"
)

var (
	flagEngine = flag.String("engine", "", "Engine configuration, formatted as \"<engine_name>:<engine_config>\". "+
		"Defaults to the XFERBENCH_ENGINE environment variable, then to the first registered engine.")
	flagBytes   = flag.String("bytes", "64MiB", "Number of bytes moved by each transfer.")
	flagCSV     = flag.Bool("csv", false, "Output the report comma-delimited instead of as a fixed-width table.")
	flagHideEnv = flag.Bool("hide_env", false, "Don't print the configuration summary before the run.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	if flag.NArg() > 0 {
		klog.Errorf("Unexpected arguments %q. See 'xferbench -help'.", flag.Args())
		os.Exit(1)
	}

	numBytes := must.M1(humanize.ParseBytes(*flagBytes))

	var eng engine.Engine
	if *flagEngine != "" {
		eng = engine.NewWithConfig(*flagEngine)
	} else {
		eng = engine.New()
	}

	detected := eng.NumExecutors(engine.ExeGPUGfx)
	cfg := a2a.LoadConfig(detected)
	if !*flagHideEnv {
		printEnvSummary(eng, cfg, detected)
	}

	err := a2a.Run(eng, cfg, a2a.RunOptions{
		NumBytes: int64(numBytes),
		CSV:      *flagCSV,
	})
	if err != nil {
		var batchErr *engine.BatchError
		if errors.As(err, &batchErr) {
			for _, msg := range batchErr.Messages() {
				fmt.Println(msg)
			}
		} else {
			klog.Errorf("%v", err)
		}
		os.Exit(1)
	}
}

var (
	headerRowStyle = lipgloss.NewStyle().Reverse(true).
			Padding(0, 2, 0, 2).Align(lipgloss.Center)
	oddRowStyle = lipgloss.NewStyle().Faint(false).
			PaddingLeft(1).PaddingRight(1)
	evenRowStyle = lipgloss.NewStyle().Faint(true).
			PaddingLeft(1).PaddingRight(1)
	titleStyle = lipgloss.NewStyle().Bold(true).Padding(1, 4, 0, 4)
)

func newEnvTable() *lgtable.Table {
	return lgtable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("99"))).
		StyleFunc(func(row, col int) (s lipgloss.Style) {
			if row < 0 {
				s = headerRowStyle
				return
			}
			switch {
			case row%2 == 0:
				s = oddRowStyle
			default:
				s = evenRowStyle
			}
			if col == 1 {
				s = s.Align(lipgloss.Right)
			}
			return
		})
}

func onOff(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// printEnvSummary lists every configuration option with its effective value and what it
// means for this run, the way the original environment dump reads.
func printEnvSummary(eng engine.Engine, cfg a2a.Config, detected int) {
	fmt.Println(titleStyle.Render(fmt.Sprintf("All-To-All configuration (%s)", eng.Description())))
	table := newEnvTable()
	table.Row("Variable", "Value", "Meaning")
	direct := "Full all-to-all"
	if cfg.DirectOnly {
		direct = "Only using direct links"
	}
	table.Row(a2a.EnvDirect, onOff(cfg.DirectOnly), direct)
	local := "Exclude local transfers"
	if cfg.IncludeLocal {
		local = "Include local transfers"
	}
	table.Row(a2a.EnvLocal, onOff(cfg.IncludeLocal), local)
	table.Row(a2a.EnvMode, strconv.Itoa(int(cfg.Mode)), cfg.Mode.String())
	table.Row(a2a.EnvNumDevices, strconv.Itoa(cfg.NumDevices),
		fmt.Sprintf("Using %d of %d detected devices", cfg.NumDevices, detected))
	table.Row(a2a.EnvNumSubExecs, strconv.Itoa(cfg.NumSubExecs),
		fmt.Sprintf("Using %d sub-executors per Transfer", cfg.NumSubExecs))
	table.Row(a2a.EnvUseDmaExec, onOff(cfg.UseDmaExec), fmt.Sprintf("Using %s executor", cfg.ExeKind()))
	grain := "coarse"
	if cfg.UseFineGrain {
		grain = "fine"
	}
	table.Row(a2a.EnvUseFineGrain, onOff(cfg.UseFineGrain), fmt.Sprintf("Using %s-grained memory", grain))
	executor := "SRC"
	if cfg.UseRemoteRead {
		executor = "DST"
	}
	table.Row(a2a.EnvUseRemoteRead, onOff(cfg.UseRemoteRead), fmt.Sprintf("Using %s as executor", executor))
	fmt.Println(table.Render())
}
