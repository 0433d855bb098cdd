// Package nbt parses the NBT binary serialization used for Anvil chunk
// metadata into a tree of Tag values.
package nbt

import (
	"errors"
	"fmt"

	"github.com/blocksage/anvil/bytebuf"
)

type TagType byte

const (
	TagEnd       TagType = 0
	TagByte      TagType = 1
	TagShort     TagType = 2
	TagInt       TagType = 3
	TagLong      TagType = 4
	TagFloat     TagType = 5
	TagDouble    TagType = 6
	TagByteArray TagType = 7
	TagString    TagType = 8
	TagList      TagType = 9
	TagCompound  TagType = 10
	TagIntArray  TagType = 11
	TagLongArray TagType = 12
)

func (t TagType) String() string {
	names := [...]string{
		"End", "Byte", "Short", "Int", "Long", "Float", "Double",
		"ByteArray", "String", "List", "Compound", "IntArray", "LongArray",
	}
	if int(t) < len(names) {
		return names[t]
	}
	return fmt.Sprintf("TagType(%d)", byte(t))
}

// MaxDepth bounds tag-tree nesting. Recursion happens for List and Compound
// payloads; the limit guards against adversarial input blowing the stack.
const MaxDepth = 512

var (
	ErrRootNotCompound = errors.New("nbt: root tag must be a compound")
	ErrDepthExceeded   = errors.New("nbt: nesting exceeds maximum depth")
	ErrUnknownTagType  = errors.New("nbt: unknown tag type code")
	ErrNegativeLength  = errors.New("nbt: negative length prefix")
)

// Tag is one node of a parsed tree. Type selects which payload field is
// meaningful; the others keep their zero values. Name is empty for list
// elements and for a root written without one.
type Tag struct {
	Type TagType
	Name string

	Byte      int8
	Short     int16
	Int       int32
	Long      int64
	Float     float32
	Double    float64
	ByteArray []int8
	String    string
	ListType  TagType
	List      []Tag
	Compound  map[string]Tag
	IntArray  []int32
	LongArray []uint64
}

// Parse reads one NBT document. The root must be a compound tag.
func Parse(data []byte) (Tag, error) {
	return ParseRoot(bytebuf.NewReader(data))
}

// ParseRoot reads one NBT document from the reader's current position.
func ParseRoot(r *bytebuf.Reader) (Tag, error) {
	code, err := r.ReadUint8()
	if err != nil {
		return Tag{}, err
	}
	if TagType(code) != TagCompound {
		return Tag{}, ErrRootNotCompound
	}
	return parseTag(r, TagCompound, true, 0)
}

func parseTag(r *bytebuf.Reader, typ TagType, named bool, depth int) (Tag, error) {
	if depth > MaxDepth {
		return Tag{}, ErrDepthExceeded
	}

	tag := Tag{Type: typ}
	if named {
		nameLen, err := r.ReadUint16()
		if err != nil {
			return Tag{}, err
		}
		tag.Name, err = r.ReadString(int(nameLen))
		if err != nil {
			return Tag{}, err
		}
	}

	var err error
	switch typ {
	case TagEnd:

	case TagByte:
		tag.Byte, err = r.ReadInt8()
	case TagShort:
		tag.Short, err = r.ReadInt16()
	case TagInt:
		tag.Int, err = r.ReadInt32()
	case TagLong:
		tag.Long, err = r.ReadInt64()
	case TagFloat:
		tag.Float, err = r.ReadFloat32()
	case TagDouble:
		tag.Double, err = r.ReadFloat64()

	case TagByteArray:
		var n int32
		if n, err = r.ReadInt32(); err != nil {
			return Tag{}, err
		}
		if n < 0 {
			return Tag{}, ErrNegativeLength
		}
		raw, err := r.ReadBytes(int(n))
		if err != nil {
			return Tag{}, err
		}
		tag.ByteArray = make([]int8, n)
		for i, b := range raw {
			tag.ByteArray[i] = int8(b)
		}

	case TagString:
		var n int16
		if n, err = r.ReadInt16(); err != nil {
			return Tag{}, err
		}
		if n < 0 {
			return Tag{}, ErrNegativeLength
		}
		tag.String, err = r.ReadString(int(n))

	case TagList:
		var elemCode uint8
		if elemCode, err = r.ReadUint8(); err != nil {
			return Tag{}, err
		}
		elemType := TagType(elemCode)
		if elemType > TagLongArray {
			return Tag{}, fmt.Errorf("%w: %d in list", ErrUnknownTagType, elemCode)
		}
		var n int32
		if n, err = r.ReadInt32(); err != nil {
			return Tag{}, err
		}
		if n < 0 {
			return Tag{}, ErrNegativeLength
		}
		tag.ListType = elemType
		// Every element but End consumes at least one byte, so the remaining
		// input bounds a trustworthy capacity hint.
		capHint := int(n)
		if capHint > r.Remaining() {
			capHint = r.Remaining()
		}
		tag.List = make([]Tag, 0, capHint)
		for i := int32(0); i < n; i++ {
			elem, err := parseTag(r, elemType, false, depth+1)
			if err != nil {
				return Tag{}, err
			}
			tag.List = append(tag.List, elem)
		}

	case TagCompound:
		tag.Compound = make(map[string]Tag)
		for {
			var code uint8
			if code, err = r.ReadUint8(); err != nil {
				return Tag{}, err
			}
			childType := TagType(code)
			if childType == TagEnd {
				break
			}
			if childType > TagLongArray {
				return Tag{}, fmt.Errorf("%w: %d in compound", ErrUnknownTagType, code)
			}
			child, err := parseTag(r, childType, true, depth+1)
			if err != nil {
				return Tag{}, err
			}
			// A duplicate name overwrites the earlier entry.
			tag.Compound[child.Name] = child
		}
		return tag, nil

	case TagIntArray:
		var n int32
		if n, err = r.ReadInt32(); err != nil {
			return Tag{}, err
		}
		if n < 0 {
			return Tag{}, ErrNegativeLength
		}
		if int64(n)*4 > int64(r.Remaining()) {
			return Tag{}, bytebuf.ErrOutOfRange
		}
		tag.IntArray = make([]int32, n)
		for i := range tag.IntArray {
			if tag.IntArray[i], err = r.ReadInt32(); err != nil {
				return Tag{}, err
			}
		}

	case TagLongArray:
		var n uint32
		if n, err = r.ReadUint32(); err != nil {
			return Tag{}, err
		}
		if int64(n)*8 > int64(r.Remaining()) {
			return Tag{}, bytebuf.ErrOutOfRange
		}
		tag.LongArray = make([]uint64, n)
		for i := range tag.LongArray {
			if tag.LongArray[i], err = r.ReadUint64(); err != nil {
				return Tag{}, err
			}
		}

	default:
		return Tag{}, fmt.Errorf("%w: %d", ErrUnknownTagType, byte(typ))
	}
	if err != nil {
		return Tag{}, err
	}
	return tag, nil
}
