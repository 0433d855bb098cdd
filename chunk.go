package anvil

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/blocksage/anvil/nbt"
)

const blockNamespace = "minecraft:"

// chunkResult is one decoded chunk column: its region-relative slot, the
// world chunk coordinates it came from, and a sub-grid laid out
// [sectionY][localX][localY][localZ], sentinel-filled where nothing decoded.
type chunkResult struct {
	x, z   int
	worldX int
	worldZ int
	blocks []BlockID
}

// decodeChunk runs the full pipeline for one chunk: slice, inflate, parse
// the tag tree, and resolve every section's palette indices into block ids.
func decodeChunk(reader *RegionReader, x, z int, dict BlockDict, cfg Config) (chunkResult, error) {
	stream, err := reader.ReadChunk(x, z)
	if err != nil {
		return chunkResult{}, err
	}
	payload, err := io.ReadAll(stream)
	if err != nil {
		return chunkResult{}, fmt.Errorf("inflate chunk: %w", err)
	}

	root, err := nbt.Parse(payload)
	if err != nil {
		return chunkResult{}, fmt.Errorf("parse chunk tag tree: %w", err)
	}

	xPos, ok := intTag(root.Compound["xPos"])
	if !ok {
		return chunkResult{}, fmt.Errorf("chunk has no xPos tag")
	}
	zPos, ok := intTag(root.Compound["zPos"])
	if !ok {
		return chunkResult{}, fmt.Errorf("chunk has no zPos tag")
	}

	result := chunkResult{
		x:      int(xPos) & (RegionChunks - 1),
		z:      int(zPos) & (RegionChunks - 1),
		worldX: int(xPos),
		worldZ: int(zPos),
		blocks: newChunkBlocks(cfg),
	}

	for _, section := range root.Compound["sections"].List {
		if section.Type != nbt.TagCompound {
			continue
		}
		if err := decodeSection(section, dict, cfg, result.blocks); err != nil {
			return chunkResult{}, err
		}
	}
	return result, nil
}

func newChunkBlocks(cfg Config) []BlockID {
	blocks := make([]BlockID, cfg.Sections()*SectionVolume)
	for i := range blocks {
		blocks[i] = MissingBlockID
	}
	return blocks
}

// decodeSection resolves one section's palette and bit-packed indices into
// ids within the chunk sub-grid. Sections without block states, and sections
// whose Y falls outside the configured world range, are skipped.
func decodeSection(section nbt.Tag, dict BlockDict, cfg Config, blocks []BlockID) error {
	states, ok := section.Compound["block_states"]
	if !ok || states.Type != nbt.TagCompound {
		return nil
	}

	yValue, ok := intTag(section.Compound["Y"])
	if !ok {
		return nil
	}
	sectionY := int(int8(yValue)) - cfg.minSectionY()
	if sectionY < 0 || sectionY >= cfg.Sections() {
		return nil
	}

	paletteTag := states.Compound["palette"]
	if paletteTag.Type != nbt.TagList {
		return nil
	}
	palette := make([]string, 0, len(paletteTag.List))
	for _, entry := range paletteTag.List {
		if entry.Type != nbt.TagCompound {
			continue
		}
		name, ok := entry.Compound["Name"]
		if !ok || name.Type != nbt.TagString {
			continue
		}
		palette = append(palette, strings.TrimPrefix(name.String, blockNamespace))
	}
	if len(palette) == 0 {
		return nil
	}

	// Without an explicit data array every block is palette entry 0.
	indices := make([]uint64, SectionVolume)
	if data, ok := states.Compound["data"]; ok && data.Type == nbt.TagLongArray {
		var err error
		indices, err = UnpackIndices(data.LongArray, paletteBits(len(palette)))
		if err != nil {
			return err
		}
	}

	base := sectionY * SectionVolume
	for i, paletteIdx := range indices {
		x := i % SectionSize
		z := (i / SectionSize) % SectionSize
		y := i / (SectionSize * SectionSize)

		if paletteIdx >= uint64(len(palette)) {
			Logger().Warn("palette index out of range",
				zap.Uint64("index", paletteIdx),
				zap.Int("palette_size", len(palette)))
			continue
		}
		name := palette[paletteIdx]
		id, ok := dict[name]
		if !ok {
			Logger().Warn("unknown block", zap.String("name", name))
			continue
		}
		blocks[base+((x*SectionSize)+y)*SectionSize+z] = id
	}
	return nil
}

// intTag widens any integral tag to int64. Section Y values are Byte tags
// and chunk positions are Int tags, but older writers are not consistent.
func intTag(tag nbt.Tag) (int64, bool) {
	switch tag.Type {
	case nbt.TagByte:
		return int64(tag.Byte), true
	case nbt.TagShort:
		return int64(tag.Short), true
	case nbt.TagInt:
		return int64(tag.Int), true
	case nbt.TagLong:
		return tag.Long, true
	default:
		return 0, false
	}
}
