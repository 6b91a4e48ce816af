package engine

// GeneralOptions control how an engine times a batch of transfers.
type GeneralOptions struct {
	// NumIterations is the number of timed iterations to perform.
	NumIterations int

	// NumSubIterations is the number of sub-iterations per iteration.
	NumSubIterations int

	// NumWarmups is the number of un-timed warmup iterations to perform.
	NumWarmups int
}

// ConfigOptions is the engine configuration forwarded with every RunTransfers call.
type ConfigOptions struct {
	General GeneralOptions
}

// DefaultConfigOptions returns the standard timing configuration: 10 timed iterations,
// 1 sub-iteration, 3 warmups.
func DefaultConfigOptions() ConfigOptions {
	return ConfigOptions{
		General: GeneralOptions{
			NumIterations:    10,
			NumSubIterations: 1,
			NumWarmups:       3,
		},
	}
}
