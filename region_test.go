package anvil

import "testing"

func TestRegionExtents(t *testing.T) {
	r := newRegion(Config{MinY: -64, MaxY: 320})

	if r.SizeX() != 512 || r.SizeZ() != 512 {
		t.Errorf("horizontal extents = %d,%d, want 512,512", r.SizeX(), r.SizeZ())
	}
	if r.SizeY() != 384 {
		t.Errorf("SizeY = %d, want 384", r.SizeY())
	}
}

func TestRegionStartsAtSentinel(t *testing.T) {
	r := newRegion(Config{MinY: 0, MaxY: 32})

	for _, c := range [][3]int{{0, 0, 0}, {511, 31, 511}, {100, 17, 300}} {
		if got := r.BlockAt(c[0], c[1], c[2]); got != MissingBlockID {
			t.Errorf("BlockAt(%v) = %d, want sentinel", c, got)
		}
	}
	if r.ChunkCount() != 0 {
		t.Errorf("ChunkCount = %d, want 0", r.ChunkCount())
	}
}

func TestRegionBlockAtAddressing(t *testing.T) {
	cfg := Config{MinY: 0, MaxY: 32}
	r := newRegion(cfg)

	// Mark one distinctive cell per section of one chunk sub-grid:
	// (lx,ly,lz) = (1,2,3) in section 0 and (4,5,6) in section 1 of
	// chunk (3, 7).
	sub := newChunkBlocks(cfg)
	sub[((0*SectionSize+1)*SectionSize+2)*SectionSize+3] = 11
	sub[((1*SectionSize+4)*SectionSize+5)*SectionSize+6] = 22
	r.setChunk(3, 7, sub)

	if got := r.BlockAt(3*16+1, 2, 7*16+3); got != 11 {
		t.Errorf("section 0 cell = %d, want 11", got)
	}
	if got := r.BlockAt(3*16+4, 16+5, 7*16+6); got != 22 {
		t.Errorf("section 1 cell = %d, want 22", got)
	}
	// A neighboring cell stays untouched.
	if got := r.BlockAt(3*16+1, 2, 7*16+4); got != MissingBlockID {
		t.Errorf("neighbor = %d, want sentinel", got)
	}

	if !r.ChunkPresent(3, 7) {
		t.Error("ChunkPresent(3,7) = false after setChunk")
	}
	if r.ChunkPresent(3, 8) || r.ChunkPresent(-1, 0) || r.ChunkPresent(0, 32) {
		t.Error("ChunkPresent true outside the set slot")
	}
	if r.ChunkCount() != 1 {
		t.Errorf("ChunkCount = %d, want 1", r.ChunkCount())
	}
}
