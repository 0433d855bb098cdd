package anvil

import "errors"

var ErrInvalidBitLength = errors.New("anvil: bit length outside [1,64]")

// UnpackIndices extracts up to SectionVolume bitLength-wide fields from a
// block-state long array. Fields are packed least-significant-bit first:
// field i of a word occupies bits [i*bitLength, (i+1)*bitLength), and fields
// never straddle word boundaries. A short input yields fewer values; a long
// one stops at the 4096 cap.
func UnpackIndices(words []uint64, bitLength int) ([]uint64, error) {
	if bitLength < 1 || bitLength > 64 {
		return nil, ErrInvalidBitLength
	}

	perWord := 64 / bitLength
	var mask uint64
	if bitLength == 64 {
		mask = ^uint64(0)
	} else {
		mask = (1 << bitLength) - 1
	}

	out := make([]uint64, 0, SectionVolume)
	for _, word := range words {
		for i := 0; i < perWord && len(out) < SectionVolume; i++ {
			out = append(out, (word>>(i*bitLength))&mask)
		}
		if len(out) == SectionVolume {
			break
		}
	}
	return out, nil
}

// paletteBits is the field width for a palette of the given size:
// ceil(log2(n)) with a floor of 4, matching the Anvil block-state encoding.
func paletteBits(paletteSize int) int {
	bits := 0
	for 1<<bits < paletteSize {
		bits++
	}
	if bits < 4 {
		bits = 4
	}
	return bits
}
