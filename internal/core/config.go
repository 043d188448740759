package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the optional configuration file at the wiki root.
const ConfigFileName = "wikimv.yaml"

// Config represents the wikimv.yaml configuration file.
type Config struct {
	Rename RenameConfig `yaml:"rename"`
}

// RenameConfig holds defaults for rename and index walks.
type RenameConfig struct {
	ExcludePaths    []string `yaml:"exclude_paths"`
	Workers         int      `yaml:"workers"`
	ContinueOnError bool     `yaml:"continue_on_error"`
}

// LoadConfig reads wikimv.yaml from the wiki root.
// Returns zero Config and nil error if the file does not exist.
func LoadConfig(wikiRoot string) (Config, error) {
	p := filepath.Join(wikiRoot, ConfigFileName)
	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", ConfigFileName, err)
	}
	if err := validateGlobPatterns(cfg.Rename.ExcludePaths); err != nil {
		return Config{}, fmt.Errorf("%s: %w", ConfigFileName, err)
	}
	if cfg.Rename.Workers < 0 {
		return Config{}, fmt.Errorf("%s: workers must not be negative: %d", ConfigFileName, cfg.Rename.Workers)
	}
	return cfg, nil
}

// validateGlobPatterns rejects character classes, which globMatch does not
// implement.
func validateGlobPatterns(patterns []string) error {
	for _, p := range patterns {
		if strings.Contains(p, "[") {
			return fmt.Errorf("unsupported glob pattern (character class): %s", p)
		}
	}
	return nil
}

// globMatch reports whether the wiki-relative path s matches pattern.
// '*' matches any run of characters including '/', '?' exactly one
// character. '[' has no special meaning.
func globMatch(pattern, s string) bool {
	p, str := []rune(pattern), []rune(s)
	pi, si := 0, 0
	star, mark := -1, 0
	for si < len(str) {
		switch {
		case pi < len(p) && (p[pi] == '?' || p[pi] == str[si]) && p[pi] != '*':
			pi++
			si++
		case pi < len(p) && p[pi] == '*':
			star, mark = pi, si
			pi++
		case star >= 0:
			// Let the last '*' swallow one more character.
			mark++
			pi, si = star+1, mark
		default:
			return false
		}
	}
	for pi < len(p) && p[pi] == '*' {
		pi++
	}
	return pi == len(p)
}
