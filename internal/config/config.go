package config

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/kozaktomas/photopdf/internal/layout"
	"gopkg.in/yaml.v3"
)

//go:embed pagesizes.yaml
var pageSizesYAML []byte

type Config struct {
	Output OutputConfig
	Web    WebConfig
	Pages  PagesConfig
}

type OutputConfig struct {
	DPI         int    // output density, defaults to 300
	Page        string // page preset name, defaults to "a4"
	Grid        string // "COLSxROWS" grid, defaults to "1x1"
	JPEGQuality int    // embedded JPEG quality, defaults to 90
}

type WebConfig struct {
	Port int
	Host string
}

type PagesConfig struct {
	Pages map[string]PagePreset `yaml:"pages"`
}

// PagePreset is a named physical page size.
type PagePreset struct {
	WidthMM  float64 `yaml:"width_mm"`
	HeightMM float64 `yaml:"height_mm"`
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envString reads an environment variable with a default.
func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

func Load() *Config {
	var pages PagesConfig
	if err := yaml.Unmarshal(pageSizesYAML, &pages); err != nil {
		// This is an embedded file so this error should never happen in practice
		panic("failed to unmarshal embedded pagesizes.yaml: " + err.Error())
	}

	return &Config{
		Output: OutputConfig{
			DPI:         envInt("PHOTOPDF_DPI", 300),
			Page:        envString("PHOTOPDF_PAGE", "a4"),
			Grid:        envString("PHOTOPDF_GRID", "1x1"),
			JPEGQuality: envInt("PHOTOPDF_JPEG_QUALITY", 90),
		},
		Web: WebConfig{
			Port: envInt("WEB_PORT", 8080),
			Host: envString("WEB_HOST", "0.0.0.0"),
		},
		Pages: pages,
	}
}

// ParseGrid parses a "COLSxROWS" grid description such as "2x3".
func ParseGrid(grid string) (columns, rows int, err error) {
	parts := strings.SplitN(strings.ToLower(strings.TrimSpace(grid)), "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid grid %q: expected COLSxROWS", grid)
	}
	columns, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid grid %q: %w", grid, err)
	}
	rows, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid grid %q: %w", grid, err)
	}
	if columns < 1 || rows < 1 {
		return 0, 0, fmt.Errorf("invalid grid %q: columns and rows must be at least 1", grid)
	}
	return columns, rows, nil
}

// Geometry resolves a page preset name and a grid description into a page
// geometry. Empty arguments fall back to the configured defaults.
func (c *Config) Geometry(page, grid string) (layout.PageGeometry, error) {
	if page == "" {
		page = c.Output.Page
	}
	if grid == "" {
		grid = c.Output.Grid
	}

	preset, ok := c.Pages.Pages[strings.ToLower(page)]
	if !ok {
		return layout.PageGeometry{}, fmt.Errorf("unknown page preset %q (available: %s)",
			page, strings.Join(c.PageNames(), ", "))
	}

	columns, rows, err := ParseGrid(grid)
	if err != nil {
		return layout.PageGeometry{}, err
	}

	return layout.PageGeometry{
		WidthMM:  preset.WidthMM,
		HeightMM: preset.HeightMM,
		Columns:  columns,
		Rows:     rows,
	}, nil
}

// PageNames returns the sorted names of all page presets.
func (c *Config) PageNames() []string {
	names := make([]string, 0, len(c.Pages.Pages))
	for name := range c.Pages.Pages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
