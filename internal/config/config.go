// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kpauljoseph/pdf2jpeg/pkg/models"
)

const (
	DefaultPath     = "pdf2jpeg.yaml"
	DefaultRenderer = "fitz"
)

type Size struct {
	Width  *int `yaml:"width"`
	Height *int `yaml:"height"`
}

func (s Size) Spec() models.SizeSpec {
	return models.NewSizeSpec(s.Width, s.Height)
}

type Config struct {
	Renderer      string `yaml:"renderer"`
	OutputDir     string `yaml:"output_dir"`
	ThumbSuffix   string `yaml:"thumb_suffix"`
	PageSize      Size   `yaml:"page_size"`
	ThumbnailSize Size   `yaml:"thumbnail_size"`
	Verbose       bool   `yaml:"verbose"`
}

func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// LoadOptional behaves like Load but returns the defaults when path does
// not exist.
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

func (c *Config) applyDefaults() {
	if c.Renderer == "" {
		c.Renderer = DefaultRenderer
	}
	if c.ThumbSuffix == "" {
		c.ThumbSuffix = models.DefaultThumbSuffix
	}
}
