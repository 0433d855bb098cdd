package anvil

import (
	"runtime"
	"sync"

	"go.uber.org/zap"
)

// ReadRegion decodes a region file into a Region using DefaultConfig. It
// blocks until every present chunk has been decoded or failed; a chunk that
// fails is logged and its slot stays at the sentinel, it never aborts the
// load. Errors opening the file or reading the location table are fatal.
func ReadRegion(path string, dict BlockDict) (*Region, error) {
	return ReadRegionConfig(path, dict, DefaultConfig())
}

// ReadRegionConfig is ReadRegion with an explicit world-shape configuration.
func ReadRegionConfig(path string, dict BlockDict, cfg Config) (*Region, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	reader, err := OpenRegionFile(path)
	if err != nil {
		return nil, err
	}
	return decodeRegion(reader, dict, cfg)
}

func decodeRegion(reader *RegionReader, dict BlockDict, cfg Config) (*Region, error) {
	var coords [][2]int
	for z := 0; z < RegionChunks; z++ {
		for x := 0; x < RegionChunks; x++ {
			if reader.ChunkExists(x, z) {
				coords = append(coords, [2]int{x, z})
			}
		}
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(coords) {
		workers = len(coords)
	}

	// Each worker decodes into a sub-grid it owns; the merge below is the
	// only writer of the shared region grid.
	jobs := make(chan [2]int, len(coords))
	results := make(chan chunkResult, len(coords))
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for c := range jobs {
				result, err := decodeChunk(reader, c[0], c[1], dict, cfg)
				if err != nil {
					Logger().Warn("chunk decode failed",
						zap.String("region", reader.Name),
						zap.Int("x", c[0]),
						zap.Int("z", c[1]),
						zap.Error(err))
					continue
				}
				results <- result
			}
		}()
	}
	for _, c := range coords {
		jobs <- c
	}
	close(jobs)
	wg.Wait()
	close(results)

	region := newRegion(cfg)
	first := true
	for result := range results {
		region.setChunk(result.x, result.z, result.blocks)
		if first {
			// Every chunk in a file shares the same region coordinates.
			region.regionX = result.worldX >> 5
			region.regionZ = result.worldZ >> 5
			first = false
		}
	}
	return region, nil
}
