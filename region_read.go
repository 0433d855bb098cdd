package anvil

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"

	"github.com/blocksage/anvil/bytebuf"
)

var (
	ErrNoChunk            = errors.New("anvil: chunk not found")
	ErrTruncatedRegion    = errors.New("anvil: region file shorter than location table")
	ErrChunkOutOfBounds   = errors.New("anvil: chunk sectors outside region data range")
	ErrInvalidChunkLength = errors.New("anvil: invalid chunk length")
	ErrInvalidCompression = errors.New("anvil: invalid compression format")
)

type CompressionType byte

const (
	CompressionGzip    CompressionType = 1
	CompressionDeflate CompressionType = 2
)

// RegionReader gives access to the chunks of an Anvil region file held
// entirely in memory. The location table is parsed once up front; reads are
// stateless afterwards, so a RegionReader is safe for concurrent use.
type RegionReader struct {
	data          []byte
	locationTable []uint32
	Name          string
}

// OpenRegionFile reads a whole .mca file into memory and parses its
// chunk-location table.
func OpenRegionFile(path string) (*RegionReader, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("anvil: read region file: %w", err)
	}
	reader, err := NewRegionReader(data)
	if err != nil {
		return nil, err
	}
	reader.Name = path
	return reader, nil
}

// NewRegionReader wraps raw region-file bytes. The first 4096 bytes hold
// 1024 big-endian location words, row-major over the 32x32 chunk grid; the
// timestamp sector that follows is not consumed.
func NewRegionReader(data []byte) (*RegionReader, error) {
	if len(data) < SectorBytes {
		return nil, ErrTruncatedRegion
	}
	reader := &RegionReader{
		data:          data,
		locationTable: make([]uint32, RegionChunks*RegionChunks),
	}
	in := bytes.NewReader(data[:SectorBytes])
	if err := binary.Read(in, binary.BigEndian, reader.locationTable); err != nil {
		return nil, err
	}
	return reader, nil
}

// ChunkExists reports whether the location table has an entry for the chunk
// at region-relative coordinates. A zero word means the chunk was never
// written.
func (r *RegionReader) ChunkExists(x, z int) bool {
	return r.locationTable[x+z*RegionChunks] != 0
}

// ReadChunk returns a reader over the decompressed NBT document of the chunk
// at region-relative coordinates.
func (r *RegionReader) ReadChunk(x, z int) (io.Reader, error) {
	entry := r.locationTable[x+z*RegionChunks]
	if entry == 0 {
		return nil, ErrNoChunk
	}

	offset := int(entry>>8) * SectorBytes
	length := int(entry&0xFF) * SectorBytes
	if offset+length > len(r.data) {
		return nil, ErrChunkOutOfBounds
	}

	sector := bytebuf.NewReader(r.data[offset : offset+length])
	payloadLen, err := sector.ReadInt32()
	if err != nil {
		return nil, err
	}
	compression, err := sector.ReadUint8()
	if err != nil {
		return nil, err
	}
	if payloadLen <= 0 || int(payloadLen) > sector.Remaining()+1 {
		return nil, ErrInvalidChunkLength
	}

	// payloadLen counts the compression byte already consumed.
	compressed, err := sector.ReadBytes(int(payloadLen) - 1)
	if err != nil {
		return nil, err
	}

	chunkStream := bytes.NewReader(compressed)
	switch CompressionType(compression) {
	case CompressionGzip:
		return gzip.NewReader(chunkStream)
	case CompressionDeflate:
		return zlib.NewReader(chunkStream)
	default:
		return nil, ErrInvalidCompression
	}
}
