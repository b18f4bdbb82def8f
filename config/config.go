package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	json5 "github.com/KevinWang15/go-json5"
	"github.com/adrg/xdg"
)

// Config holds runtime configuration for sampling and app behavior.
// Fields may be loaded from a JSON file and overridden by command-line flags.
// The file is read leniently: comments and trailing commas are accepted.
type Config struct {
	Debug bool `json:"debug"`

	// Sampling parameters
	WindowBias       int `json:"window_bias"`
	HSVRoundDecimals int `json:"hsv_round_decimals"`
	DefaultRadius    int `json:"default_radius"`
	MaxRadius        int `json:"max_radius"`

	// Reference data
	TaxonomyPath   string `json:"taxonomy_path"`
	SpeciesCSVPath string `json:"species_csv_path"`
	ReferenceDir   string `json:"reference_dir"`

	// Dataset & images
	DatasetPath    string `json:"dataset_path"`
	LastImageDir   string `json:"last_image_dir"`
	ImageCacheSize int    `json:"image_cache_size"`

	// Canvas geometry (pixels)
	CanvasWidth  int `json:"canvas_width"`
	CanvasHeight int `json:"canvas_height"`
}

const appDir = "plumage-sampler"

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:            false,
		WindowBias:       2,
		HSVRoundDecimals: -1,
		DefaultRadius:    5,
		MaxRadius:        100,
		DatasetPath:      "samples.csv",
		ImageCacheSize:   8,
		CanvasWidth:      720,
		CanvasHeight:     540,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	if c.MaxRadius <= 0 {
		c.MaxRadius = 100
	}
	if c.DefaultRadius < 0 {
		c.DefaultRadius = 0
	}
	if c.DefaultRadius > c.MaxRadius {
		c.DefaultRadius = c.MaxRadius
	}
	if c.HSVRoundDecimals > 6 {
		c.HSVRoundDecimals = 6
	}
	if c.HSVRoundDecimals < -1 {
		c.HSVRoundDecimals = -1
	}
	if c.ImageCacheSize <= 0 {
		c.ImageCacheSize = 8
	}
	if c.CanvasWidth < 200 {
		c.CanvasWidth = 200
	}
	if c.CanvasHeight < 150 {
		c.CanvasHeight = 150
	}
	if c.DatasetPath == "" {
		c.DatasetPath = "samples.csv"
	}
	return nil
}

// DefaultPath returns the per-user config file location. It falls back to a
// file in the working directory when no XDG config home can be resolved.
func DefaultPath() string {
	p, err := xdg.ConfigFile(filepath.Join(appDir, "config.json"))
	if err != nil {
		return "./config.json"
	}
	return p
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	loaded := DefaultConfig()
	if err := json5.Unmarshal(data, loaded); err != nil {
		return cfg, err
	}
	_ = loaded.Validate()
	return loaded, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
