package a2a

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/accelbench/xferbench/engine"
)

// Environment variables making up the all-to-all configuration surface. Each has a
// default; see LoadConfig.
const (
	EnvDirect        = "A2A_DIRECT"
	EnvLocal         = "A2A_LOCAL"
	EnvMode          = "A2A_MODE"
	EnvNumDevices    = "NUM_DEVICES"
	EnvNumSubExecs   = "NUM_SUB_EXEC"
	EnvUseDmaExec    = "USE_DMA_EXEC"
	EnvUseFineGrain  = "USE_FINE_GRAIN"
	EnvUseRemoteRead = "USE_REMOTE_READ"
)

// Config are the knobs of one all-to-all run. Zero-configuration runs work: every field
// has a default, see LoadConfig.
type Config struct {
	// DirectOnly restricts the benchmark to pairs of directly linked devices.
	DirectOnly bool

	// IncludeLocal also benchmarks each device against itself.
	IncludeLocal bool

	// Mode is the transfer shape: copy, read-only or write-only.
	Mode Mode

	// NumDevices to benchmark, in [0, detected]. Defaults to all detected devices.
	NumDevices int

	// NumSubExecs dedicated to each transfer.
	NumSubExecs int

	// UseDmaExec drives transfers with the DMA executor instead of the kernel one.
	UseDmaExec bool

	// UseFineGrain places endpoints in fine-grained device memory.
	UseFineGrain bool

	// UseRemoteRead makes the destination device drive each transfer, so data is read
	// remotely instead of written remotely.
	UseRemoteRead bool
}

// LoadConfig reads the configuration from the environment, filling in defaults.
// detected is the number of available devices, used as the NumDevices default.
func LoadConfig(detected int) Config {
	v := viper.New()
	v.SetDefault(EnvDirect, true)
	v.SetDefault(EnvLocal, false)
	v.SetDefault(EnvMode, int(ModeCopy))
	v.SetDefault(EnvNumDevices, detected)
	v.SetDefault(EnvNumSubExecs, 8)
	v.SetDefault(EnvUseDmaExec, false)
	v.SetDefault(EnvUseFineGrain, true)
	v.SetDefault(EnvUseRemoteRead, false)
	v.AutomaticEnv()

	return Config{
		DirectOnly:    v.GetBool(EnvDirect),
		IncludeLocal:  v.GetBool(EnvLocal),
		Mode:          Mode(v.GetInt(EnvMode)),
		NumDevices:    v.GetInt(EnvNumDevices),
		NumSubExecs:   v.GetInt(EnvNumSubExecs),
		UseDmaExec:    v.GetBool(EnvUseDmaExec),
		UseFineGrain:  v.GetBool(EnvUseFineGrain),
		UseRemoteRead: v.GetBool(EnvUseRemoteRead),
	}
}

// Validate checks the configuration against the number of detected devices.
// It must be called before building a plan; an error here is a configuration error and
// terminates the benchmark before any transfer is built.
func (c Config) Validate(detected int) error {
	if !c.Mode.IsAMode() {
		return errors.Errorf("mode must be between 0 and 2, got %d", int(c.Mode))
	}
	if c.NumDevices < 0 || c.NumDevices > detected {
		return errors.Errorf("cannot use %d devices, detected %d devices", c.NumDevices, detected)
	}
	return nil
}

// MemKind is the memory pool used for every endpoint of this run.
func (c Config) MemKind() engine.MemKind {
	if c.UseFineGrain {
		return engine.MemGPUFine
	}
	return engine.MemGPU
}

// ExeKind is the executor kind driving every transfer of this run.
func (c Config) ExeKind() engine.ExeKind {
	if c.UseDmaExec {
		return engine.ExeGPUDma
	}
	return engine.ExeGPUGfx
}
