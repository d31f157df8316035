package config

// SeedConfig holds seed-specific configuration for a single start URL.
// This allows customizing crawl behavior per seed without repeating
// command-line flags.
type SeedConfig struct {
	// MaxPages overrides the global page budget for this seed.
	// If zero, the global MaxPages is used.
	MaxPages int `yaml:"maxPages,omitempty"`

	// Append, when set, overrides whether this seed's run appends to the
	// previous corpus file. A pointer distinguishes "unset" from "false".
	Append *bool `yaml:"append,omitempty"`

	// UserAgent overrides the User-Agent header for this seed.
	// If empty, the global UserAgent is used.
	UserAgent string `yaml:"userAgent,omitempty"`
}

// File represents the structure of the .textcrawl configuration file.
type File struct {
	// Seeds maps seed URLs to their seed-specific configurations.
	// Keys should be the full URL (e.g., "https://www.wikipedia.org").
	Seeds map[string]SeedConfig `yaml:"seeds,omitempty"`

	// Defaults contains default seed configuration applied to all seeds
	// unless overridden in the seed-specific configuration.
	Defaults SeedConfig `yaml:"defaults,omitempty"`
}

// GetSeedConfig returns the configuration for a specific seed URL.
// It merges the seed-specific configuration with defaults.
func (cf *File) GetSeedConfig(seedURL string) SeedConfig {
	// Start with defaults
	result := cf.Defaults

	// Override with seed-specific configuration if present
	if seedConfig, ok := cf.Seeds[seedURL]; ok {
		if seedConfig.MaxPages != 0 {
			result.MaxPages = seedConfig.MaxPages
		}
		if seedConfig.Append != nil {
			result.Append = seedConfig.Append
		}
		if seedConfig.UserAgent != "" {
			result.UserAgent = seedConfig.UserAgent
		}
	}

	return result
}
