package cmd

import (
	"os"

	"github.com/goccy/go-yaml"
)

// config is the optional CLI configuration file (endbasic.yaml), never
// read by the language core itself — only by this command layer, to
// pick default console colours and an RNG auto-seed policy before a
// program even starts.
type config struct {
	WorkDir       string `yaml:"work_dir"`
	DefaultFg     *int   `yaml:"default_fg"`
	DefaultBg     *int   `yaml:"default_bg"`
	AutoSeedRNG   bool   `yaml:"auto_seed_rng"`
}

// loadConfig reads path if it exists, returning a zero-value config
// (meaning "use built-in defaults") when it does not.
func loadConfig(path string) (config, error) {
	var c config
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, err
	}
	return c, nil
}
