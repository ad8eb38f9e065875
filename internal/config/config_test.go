package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultTopN, cfg.TopN)
	assert.Equal(t, DefaultTopNMax, cfg.TopNMax)
	assert.Equal(t, DefaultInnerRadiusRatio, cfg.InnerRadiusRatio)
	assert.Equal(t, DefaultAnimationStep, cfg.AnimationStep)
	assert.Equal(t, 20*time.Millisecond, cfg.AnimationInterval)
	assert.Equal(t, 800, cfg.CanvasWidth)
	assert.Equal(t, 600, cfg.CanvasHeight)
	assert.Equal(t, 400, cfg.ChartSize)
	assert.Equal(t, "Popular: Dota 2, LoL", cfg.Hint("Multiplayer Battle Arena"))
	assert.Equal(t, "", cfg.Hint("Chess"))
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultTopN, cfg.TopN)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
top_n: 25
top_n_max: 30
animation_interval_ms: 40
export_dir: out
genre_hints:
  Puzzle: "Popular: Tetris"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.TopN)
	assert.Equal(t, 30, cfg.TopNMax)
	assert.Equal(t, 40*time.Millisecond, cfg.AnimationInterval)
	assert.Equal(t, "out", cfg.ExportDir)
	assert.Equal(t, "Popular: Tetris", cfg.Hint("Puzzle"))
}

func TestLoadClampsTopN(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"top_n": 99}`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultTopNMax, cfg.TopN)
}

func TestLoadRejectsBadRatio(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"inner_radius_ratio": 1.5}`), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("ESPORTS_TOP_N", "3")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.TopN)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"top_n": `), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
