package anvil

import "github.com/willf/bitset"

// BlockID is the caller-defined numeric id of a block type.
type BlockID uint16

// MissingBlockID fills every grid cell that no decoded chunk data claimed:
// absent chunks, absent sections, and blocks whose palette name the caller's
// dictionary does not know.
const MissingBlockID BlockID = 0xFFFF

// Region is the fully decoded content of one region file. It is immutable
// once returned and safe for concurrent reads.
//
// The grid is addressed [chunkX][chunkZ][sectionY][localX][localY][localZ]
// and flattened in that order; extents are fixed at construction no matter
// how many chunks the file actually contains.
type Region struct {
	blocks []BlockID
	chunks *bitset.BitSet
	cfg    Config

	regionX int
	regionZ int
}

func newRegion(cfg Config) *Region {
	blocks := make([]BlockID, RegionChunks*RegionChunks*cfg.Sections()*SectionVolume)
	for i := range blocks {
		blocks[i] = MissingBlockID
	}
	return &Region{
		blocks: blocks,
		chunks: bitset.New(RegionChunks * RegionChunks),
		cfg:    cfg,
	}
}

// chunkSlot is the offset of a chunk column's sub-grid within blocks.
func (r *Region) chunkSlot(cx, cz int) int {
	return (cx*RegionChunks + cz) * r.cfg.Sections() * SectionVolume
}

// setChunk writes a decoded chunk sub-grid into its slot. Only the decoder
// calls this, before the Region is handed out.
func (r *Region) setChunk(cx, cz int, sub []BlockID) {
	copy(r.blocks[r.chunkSlot(cx, cz):], sub)
	r.chunks.Set(uint(cx*RegionChunks + cz))
}

// BlockAt returns the block id at region-local block coordinates, where x
// and z are in [0, SizeX) and y in [0, SizeY) counted up from the world
// bottom. Coordinates outside those extents are a caller error.
func (r *Region) BlockAt(x, y, z int) BlockID {
	cx, lx := x/SectionSize, x%SectionSize
	sy, ly := y/SectionSize, y%SectionSize
	cz, lz := z/SectionSize, z%SectionSize

	idx := r.chunkSlot(cx, cz) +
		((sy*SectionSize+lx)*SectionSize+ly)*SectionSize + lz
	return r.blocks[idx]
}

// SizeX is the region's extent along X in blocks.
func (r *Region) SizeX() int { return RegionChunks * SectionSize }

// SizeY is the configured world height in blocks.
func (r *Region) SizeY() int { return r.cfg.Height() }

// SizeZ is the region's extent along Z in blocks.
func (r *Region) SizeZ() int { return RegionChunks * SectionSize }

// X and Z are the region's coordinates in world region space, derived from
// the first decoded chunk.
func (r *Region) X() int { return r.regionX }
func (r *Region) Z() int { return r.regionZ }

// ChunkPresent reports whether the chunk column at region-relative chunk
// coordinates decoded successfully.
func (r *Region) ChunkPresent(cx, cz int) bool {
	if cx < 0 || cz < 0 || cx >= RegionChunks || cz >= RegionChunks {
		return false
	}
	return r.chunks.Test(uint(cx*RegionChunks + cz))
}

// ChunkCount is the number of successfully decoded chunk columns.
func (r *Region) ChunkCount() int {
	return int(r.chunks.Count())
}
