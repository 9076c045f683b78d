package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the search directories.
const FileName = "wildgrove.yaml"

// Load loads the configuration.
// Search order: customPath -> ~/.wildgrove/configs/wildgrove.yaml ->
// ./configs/wildgrove.yaml -> embedded default -> hardcoded Default().
// Files are decoded over Default(), so a partial file only overrides the
// keys it sets.
func Load(customPath string) (Config, error) {
	cfg := Default()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := UserPath("configs", FileName); userCfgPath != "" {
		if c, ok := tryFile(userCfgPath); ok {
			return c, nil
		}
	}

	// Try local configs directory
	if c, ok := tryFile(filepath.Join("configs", FileName)); ok {
		return c, nil
	}

	// Use embedded default YAML
	embedded := Default()
	if err := yaml.Unmarshal(defaultYAML, &embedded); err != nil {
		return Default(), nil
	}
	return embedded, nil
}

// tryFile loads a config file if it exists and is valid.
func tryFile(path string) (Config, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, false
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, false
	}
	if cfg.Validate() != nil {
		return Config{}, false
	}
	return cfg, true
}

// UserPath returns a path under ~/.wildgrove, or empty if home is unavailable.
func UserPath(elem ...string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(append([]string{home, ".wildgrove"}, elem...)...)
}

// ApplyPreset adjusts hostile pressure for a difficulty preset.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Hostiles.Speed *= 0.8
		cfg.Hostiles.BiteDamage = max(1, cfg.Hostiles.BiteDamage/2)
		cfg.Spawn.Min = max(0, cfg.Spawn.Min-3)
		cfg.Stream.HealChance = min(1, cfg.Stream.HealChance*2)
	case DifficultyHard:
		cfg.Hostiles.Speed = min(cfg.Hostiles.Speed*1.25, cfg.Player.Speed*0.9)
		cfg.Hostiles.BiteDamage *= 2
		cfg.Spawn.Min += 4
		cfg.Hostiles.AggroRange *= 1.2
	}
}
