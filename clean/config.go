package clean

import (
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the configuration file looked up when no explicit
// path is given.
const DefaultConfigFile = ".sec-im-cleanup.yaml"

// Config controls which calls are stripped and which files are visited.
type Config struct {
	// SinkObject/SinkMethod name the logging sink call that is always
	// removable, e.g. console.log.
	SinkObject string `yaml:"sink-object"`
	SinkMethod string `yaml:"sink-method"`
	// Denylist lists method names whose member-style calls are removed
	// regardless of receiver.
	Denylist []string `yaml:"denylist"`
	// Marker exempts comment lines containing it from stripping.
	Marker string `yaml:"marker"`
	// Extensions selects the file types visited during traversal.
	Extensions []string `yaml:"extensions"`
	// ExcludeDirs names directories skipped during traversal.
	ExcludeDirs []string `yaml:"exclude-dirs"`
}

// DefaultConfig returns the built-in configuration targeting the standard
// instrumentation call set.
func DefaultConfig() Config {
	return Config{
		SinkObject: "console",
		SinkMethod: "log",
		Denylist: []string{
			"countEvent",
			"countRareEvent",
			"profileSectionStart",
			"profileSectionEnd",
			"playbackLogNote",
		},
		Marker:      "eslint-disable",
		Extensions:  []string{".js", ".ts"},
		ExcludeDirs: []string{"node_modules", ".git", "dist", "build"},
	}
}

// ParseConfig reads a configuration file, filling unset fields from the
// defaults. A missing file at the default path is not an error.
func ParseConfig(configurationPath string) (Config, error) {
	config := DefaultConfig()
	if configurationPath == "" {
		configurationPath = DefaultConfigFile
	}

	f, err := os.Open(configurationPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && configurationPath == DefaultConfigFile {
			return config, nil
		}
		return config, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&config); err != nil {
		return config, err
	}
	if len(config.Extensions) == 0 {
		config.Extensions = DefaultConfig().Extensions
	}
	return config, nil
}

// WriteDefault writes the default configuration to the given path, used by
// the init command.
func WriteDefault(configurationPath string) error {
	if configurationPath == "" {
		configurationPath = DefaultConfigFile
	}
	d, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return err
	}
	return os.WriteFile(configurationPath, d, 0o644)
}
