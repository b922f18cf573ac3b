package file

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bitdevs-tools/radar-cli/internal/logger"
)

// RepositoryConfig is one entry of the scanned repository list.
type RepositoryConfig struct {
	// URL is the GitHub repository URL.
	URL string `yaml:"url"`

	// PostsDirectory overrides the Jekyll posts directory.
	PostsDirectory string `yaml:"posts_directory,omitempty"`
}

// Config is the run configuration: which repositories to scan.
type Config struct {
	Repositories []RepositoryConfig `yaml:"repositories"`
}

// LoadConfig reads the repository list from a YAML file. A missing or
// empty repository list is a configuration error: a scan with nothing
// to scan cannot proceed.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if len(cfg.Repositories) == 0 {
		return nil, fmt.Errorf("config %s: no repositories configured", path)
	}

	logger.Info("loaded configuration with %d repositories", len(cfg.Repositories))
	return &cfg, nil
}

type exclusionsFile struct {
	ExcludedDomains []string `yaml:"excluded_domains"`
}

// LoadExclusions reads the excluded-domain prefixes from a YAML file.
// A missing file is not an error: the run proceeds with an empty
// exclusion list, with a warning for transparency.
func LoadExclusions(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("exclusion file %s not found, using empty exclusion list", path)
			return nil, nil
		}
		return nil, fmt.Errorf("read exclusions %s: %w", path, err)
	}

	var parsed exclusionsFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse exclusions %s: %w", path, err)
	}

	logger.Info("loaded %d excluded domains", len(parsed.ExcludedDomains))
	return parsed.ExcludedDomains, nil
}
