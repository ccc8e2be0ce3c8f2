package pikevm

import (
	"go.uber.org/zap"
)

// Config controls compilation and search behavior.
//
// Example:
//
//	config := pikevm.DefaultConfig()
//	config.Greedy = false // prefer fewer repetitions when recording captures
//	re, err := pikevm.CompileWithConfig("(a+)(a*)", config)
type Config struct {
	// Greedy selects the split priority used by the convenience methods
	// (MatchString, FindString, ...). Search and SearchAt take it explicitly.
	// It only affects which capture offsets are recorded, never the overall
	// span of a match.
	// Default: true
	Greedy bool

	// EnablePrefilter enables literal-based prefiltering.
	// When false, the VM tries a match at every input position.
	// Default: true
	EnablePrefilter bool

	// MaxLiterals limits the number of prefix literals extracted for the
	// prefilter.
	// Default: 64
	MaxLiterals int

	// MaxLiteralLen limits the length of each prefix literal.
	// Default: 16
	MaxLiteralLen int

	// MaxNestingDepth limits how deeply groups may nest in a pattern.
	// Default: 1000
	MaxNestingDepth int

	// Logger receives debug output about compiled patterns.
	// Default: zap.NewNop()
	Logger *zap.Logger
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Greedy:          true,
		EnablePrefilter: true,
		MaxLiterals:     64,
		MaxLiteralLen:   16,
		MaxNestingDepth: 1000,
		Logger:          zap.NewNop(),
	}
}

// Validate checks if the configuration is valid.
// Returns a *ConfigError if any parameter is out of range.
//
// Valid ranges:
//   - MaxLiterals: 1 to 1,000 (checked only with EnablePrefilter)
//   - MaxLiteralLen: 1 to 64 (checked only with EnablePrefilter)
//   - MaxNestingDepth: 10 to 10,000
func (c Config) Validate() error {
	if c.EnablePrefilter {
		if c.MaxLiterals < 1 || c.MaxLiterals > 1_000 {
			return &ConfigError{
				Field:   "MaxLiterals",
				Message: "must be between 1 and 1,000",
			}
		}
		if c.MaxLiteralLen < 1 || c.MaxLiteralLen > 64 {
			return &ConfigError{
				Field:   "MaxLiteralLen",
				Message: "must be between 1 and 64",
			}
		}
	}

	if c.MaxNestingDepth < 10 || c.MaxNestingDepth > 10_000 {
		return &ConfigError{
			Field:   "MaxNestingDepth",
			Message: "must be between 10 and 10,000",
		}
	}

	return nil
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "pikevm: invalid config: " + e.Field + ": " + e.Message
}
