package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadCandy loads the match-3 configuration.
// Search order: customPath -> ~/.arcade/configs/candy.yaml -> ./configs/candy.yaml -> embedded default
func LoadCandy(customPath string) (CandyConfig, error) {
	cfg := DefaultCandyConfig()
	if err := load("candy.yaml", customPath, defaultCandyYAML, &cfg); err != nil {
		return DefaultCandyConfig(), err
	}
	if err := cfg.Validate(); err != nil {
		return DefaultCandyConfig(), fmt.Errorf("invalid candy config: %w", err)
	}
	return cfg, nil
}

// LoadSnake loads the Snake configuration.
// Search order: customPath -> ~/.arcade/configs/snake.yaml -> ./configs/snake.yaml -> embedded default
func LoadSnake(customPath string) (SnakeConfig, error) {
	cfg := DefaultSnakeConfig()
	if err := load("snake.yaml", customPath, defaultSnakeYAML, &cfg); err != nil {
		return DefaultSnakeConfig(), err
	}
	if err := cfg.Validate(); err != nil {
		return DefaultSnakeConfig(), fmt.Errorf("invalid snake config: %w", err)
	}
	return cfg, nil
}

// load decodes the first readable source into out. Fields missing from the
// YAML keep whatever out already holds, so callers pre-fill hardcoded defaults.
// Only an explicit customPath produces an error; the other locations are
// optional and silently skipped when missing or malformed.
func load(filename, customPath string, embedded []byte, out any) error {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return nil
	}

	candidates := []string{filepath.Join("configs", filename)}
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		candidates = append([]string{userCfgPath}, candidates...)
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if err := yaml.Unmarshal(data, out); err == nil {
			return nil
		}
	}

	// Embedded default; a decode failure leaves the hardcoded values in place
	//nolint:errcheck // hardcoded defaults already populate out
	yaml.Unmarshal(embedded, out)
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
