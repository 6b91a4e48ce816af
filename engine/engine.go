// Package engine defines the interface a transfer-execution engine needs to implement to
// be driven by the xferbench presets.
//
// An engine owns everything hardware-related: device memory, kernel or DMA dispatch, and
// timing. Presets only describe the transfers to run (see Transfer) and consume the
// measurements the engine hands back (see TestResults). Engines register themselves by
// name, and the active one is selected through the XFERBENCH_ENGINE environment variable
// or an explicit configuration string.
package engine

import (
	"os"
	"strings"

	"github.com/gomlx/exceptions"
)

// Engine is the API that needs to be implemented by an xferbench execution engine.
type Engine interface {
	// Name returns the short name of the engine. E.g.: "sim" for the simulated engine.
	Name() string

	// Description is a longer description of the Engine that can be used to pretty-print.
	Description() string

	// NumExecutors returns how many executor devices of the given kind are available.
	NumExecutors(kind ExeKind) int

	// RunTransfers executes the given transfers as one batch and blocks until they
	// finish. On success it returns the measurements for the batch. On failure it
	// returns a *BatchError carrying every error the engine reported; the partial
	// results are discarded.
	RunTransfers(cfg ConfigOptions, transfers []Transfer) (*TestResults, error)
}

// TopologyQuerier is an optional capability of an Engine: it reports how two devices of
// the engine's primary executor kind are connected. Engines running on platforms without
// link introspection simply don't implement it, and callers fall back to AlwaysDirect.
type TopologyQuerier interface {
	Topology() TopologyProvider
}

// Constructor takes a config string (optionally empty) and returns an Engine.
type Constructor func(config string) Engine

var (
	registeredConstructors = make(map[string]Constructor)
	firstRegistered        string
)

// Register an engine with the given name, and a constructor that takes as input a
// configuration string that is passed along to the engine constructor.
//
// To be safe, call Register during initialization of a package.
func Register(name string, constructor Constructor) {
	if len(registeredConstructors) == 0 {
		firstRegistered = name
	}
	registeredConstructors[name] = constructor
}

// DefaultConfig is the engine configuration to use if none is given explicitly.
//
// See NewWithConfig for the format of the configuration string.
var DefaultConfig string

// EnvEngine is the environment variable with the default engine configuration to use.
//
// The format of config is "<engine_name>:<engine_configuration>".
// The "<engine_name>" is the name of a registered engine (e.g.: "sim") and
// "<engine_configuration>" is engine specific.
const EnvEngine = "XFERBENCH_ENGINE"

// New returns a new default Engine.
//
// The default is:
//
// 1. The environment XFERBENCH_ENGINE is used as a configuration if defined.
// 2. Next the variable DefaultConfig is used as a configuration if defined.
// 3. The first registered engine is used with an empty configuration.
//
// It panics if no engine was registered.
func New() Engine {
	config, found := os.LookupEnv(EnvEngine)
	if found {
		return NewWithConfig(config)
	}
	if DefaultConfig != "" {
		return NewWithConfig(DefaultConfig)
	}
	return NewWithConfig("")
}

// NewWithConfig creates the engine described by config, formatted as
// "<engine_name>:<engine_configuration>".
//
// The "<engine_name>" is the name of a registered engine (e.g.: "sim") and
// "<engine_configuration>" is engine specific.
func NewWithConfig(config string) Engine {
	if len(registeredConstructors) == 0 {
		exceptions.Panicf(`no registered engines for xferbench -- maybe import the simulated one with import _ "github.com/accelbench/xferbench/engine/sim"?`)
	}
	engineName := firstRegistered
	engineConfig := config
	if idx := strings.Index(config, ":"); idx != -1 {
		engineName = config[:idx]
		engineConfig = config[idx+1:]
	}
	constructor, found := registeredConstructors[engineName]
	if !found {
		exceptions.Panicf("can't find engine %q for configuration %q given", engineName, config)
	}
	return constructor(engineConfig)
}
