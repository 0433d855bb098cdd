package anvil

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Format constants. These are fixed by the Anvil container layout itself.
const (
	// SectionSize is the edge length of a cubic chunk section in blocks.
	SectionSize = 16
	// SectionVolume is the number of blocks in one section.
	SectionVolume = SectionSize * SectionSize * SectionSize
	// RegionChunks is the edge length of a region in chunks.
	RegionChunks = 32
	// SectorBytes is the region file allocation unit.
	SectorBytes = 4096
)

// Config carries the world-shape parameters that vary between Minecraft
// versions and dimensions. The vertical range is configuration rather than a
// constant so tests can decode small synthetic worlds.
type Config struct {
	// MinY and MaxY bound the world vertically in block coordinates.
	// Both must be multiples of SectionSize.
	MinY int `yaml:"min_y"`
	MaxY int `yaml:"max_y"`

	// Workers bounds the chunk decode pool. Zero means one worker per CPU.
	Workers int `yaml:"workers"`
}

// DefaultConfig matches a modern overworld dimension (Y -64..320).
func DefaultConfig() Config {
	return Config{MinY: -64, MaxY: 320}
}

// LoadConfig reads a Config from a YAML file. Omitted fields keep the
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("anvil: read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("anvil: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.MaxY <= c.MinY {
		return fmt.Errorf("anvil: max_y (%d) must exceed min_y (%d)", c.MaxY, c.MinY)
	}
	if c.MinY%SectionSize != 0 || c.MaxY%SectionSize != 0 {
		return fmt.Errorf("anvil: world bounds %d..%d must be multiples of %d", c.MinY, c.MaxY, SectionSize)
	}
	if c.Workers < 0 {
		return fmt.Errorf("anvil: workers must not be negative")
	}
	return nil
}

// Height is the world height in blocks.
func (c Config) Height() int { return c.MaxY - c.MinY }

// Sections is the number of sections stacked in one chunk column.
func (c Config) Sections() int { return c.Height() / SectionSize }

// minSectionY is the section index of MinY; section Y values from chunk data
// are offset by it to produce grid indices.
func (c Config) minSectionY() int { return c.MinY / SectionSize }
