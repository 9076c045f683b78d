package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/wildgrove/internal/sim"
	"github.com/vovakirdan/wildgrove/internal/worldgen"
)

func TestEmbeddedMatchesDefault(t *testing.T) {
	cfg := Default()
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		t.Fatalf("embedded yaml does not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("embedded yaml differs from Default():\n%+v\n%+v", cfg, Default())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestDefaultParamsAgree(t *testing.T) {
	if got := Default().GenParams(); got != worldgen.DefaultParams() {
		t.Errorf("GenParams() = %+v\nexpected %+v", got, worldgen.DefaultParams())
	}
	if got := Default().SimParams(); got != sim.DefaultParams() {
		t.Errorf("SimParams() = %+v\nexpected %+v", got, sim.DefaultParams())
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	content := "player:\n  speed: 5\nworld:\n  obstacles: 10\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Player.Speed != 5 || cfg.World.Obstacles != 10 {
		t.Errorf("overrides not applied: speed=%g obstacles=%d", cfg.Player.Speed, cfg.World.Obstacles)
	}
	if cfg.Hostiles.MaxHP != Default().Hostiles.MaxHP {
		t.Error("unset keys should keep defaults")
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	_ = os.WriteFile(bad, []byte("player: [not, a, map"), 0o600)
	if _, err := Load(bad); err == nil {
		t.Error("expected parse error")
	}

	slow := filepath.Join(dir, "slow.yaml")
	_ = os.WriteFile(slow, []byte("player:\n  speed: 1\n"), 0o600)
	if _, err := Load(slow); err == nil || !strings.Contains(err.Error(), "hostiles.speed") {
		t.Errorf("expected speed validation error, got %v", err)
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{"hard", DifficultyHard, false},
		{"nightmare", "", true},
	}
	for _, tc := range tests {
		got, err := ParsePreset(tc.in)
		if (err != nil) != tc.wantErr || got != tc.want {
			t.Errorf("ParsePreset(%q) = %q, %v", tc.in, got, err)
		}
	}
}

func TestApplyPreset(t *testing.T) {
	base := Default()

	normal := Default()
	ApplyPreset(&normal, DifficultyNormal)
	if !reflect.DeepEqual(normal, base) {
		t.Error("normal preset should not change anything")
	}

	easy := Default()
	ApplyPreset(&easy, DifficultyEasy)
	if easy.Hostiles.Speed >= base.Hostiles.Speed || easy.Hostiles.BiteDamage >= base.Hostiles.BiteDamage {
		t.Error("easy should soften hostiles")
	}

	hard := Default()
	ApplyPreset(&hard, DifficultyHard)
	if hard.Hostiles.BiteDamage <= base.Hostiles.BiteDamage || hard.Spawn.Min <= base.Spawn.Min {
		t.Error("hard should raise hostile pressure")
	}
	if err := hard.Validate(); err != nil {
		t.Errorf("hard preset produced invalid config: %v", err)
	}
}
