package nbt_test

import (
	"bytes"
	"errors"
	"testing"

	mcnbt "github.com/Tnze/go-mc/nbt"

	"github.com/blocksage/anvil/bytebuf"
	"github.com/blocksage/anvil/nbt"
)

func TestParseMinimalCompound(t *testing.T) {
	// Compound (empty name) { Int "x" = 42 } End
	data := []byte{
		0x0A, 0x00, 0x00,
		0x03, 0x00, 0x01, 'x', 0x00, 0x00, 0x00, 0x2A,
		0x00,
	}

	root, err := nbt.Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if root.Type != nbt.TagCompound {
		t.Fatalf("root type = %v, want Compound", root.Type)
	}
	x, ok := root.Compound["x"]
	if !ok {
		t.Fatal(`compound has no entry "x"`)
	}
	if x.Type != nbt.TagInt || x.Int != 42 {
		t.Errorf("x = %v(%d), want Int(42)", x.Type, x.Int)
	}
	if x.Name != "x" {
		t.Errorf("x.Name = %q, want \"x\"", x.Name)
	}
}

func TestParseRejectsNonCompoundRoot(t *testing.T) {
	data := []byte{0x01, 0x00, 0x00, 0x07}
	if _, err := nbt.Parse(data); !errors.Is(err, nbt.ErrRootNotCompound) {
		t.Errorf("err = %v, want ErrRootNotCompound", err)
	}
}

func TestParseUnknownTagType(t *testing.T) {
	data := []byte{0x0A, 0x00, 0x00, 0x0D, 0x00, 0x00}
	if _, err := nbt.Parse(data); !errors.Is(err, nbt.ErrUnknownTagType) {
		t.Errorf("err = %v, want ErrUnknownTagType", err)
	}
}

func TestParseTruncatedInput(t *testing.T) {
	data := []byte{0x0A, 0x00, 0x00, 0x03, 0x00, 0x01, 'x', 0x00}
	if _, err := nbt.Parse(data); !errors.Is(err, bytebuf.ErrOutOfRange) {
		t.Errorf("err = %v, want ErrOutOfRange", err)
	}
}

func TestParseNegativeStringLength(t *testing.T) {
	data := []byte{
		0x0A, 0x00, 0x00,
		0x08, 0x00, 0x01, 's', 0xFF, 0xFF,
		0x00,
	}
	if _, err := nbt.Parse(data); !errors.Is(err, nbt.ErrNegativeLength) {
		t.Errorf("err = %v, want ErrNegativeLength", err)
	}
}

func TestParseDuplicateKeyLastWins(t *testing.T) {
	data := []byte{
		0x0A, 0x00, 0x00,
		0x03, 0x00, 0x01, 'k', 0x00, 0x00, 0x00, 0x01,
		0x03, 0x00, 0x01, 'k', 0x00, 0x00, 0x00, 0x02,
		0x00,
	}
	root, err := nbt.Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := root.Compound["k"].Int; got != 2 {
		t.Errorf("k = %d, want 2", got)
	}
}

func TestParseDepthGuard(t *testing.T) {
	// 600 nested unnamed-payload compounds, far past the limit. The parser
	// must fail cleanly instead of exhausting the stack.
	var buf bytes.Buffer
	buf.Write([]byte{0x0A, 0x00, 0x00})
	for i := 0; i < 600; i++ {
		buf.Write([]byte{0x0A, 0x00, 0x01, 'c'})
	}

	if _, err := nbt.Parse(buf.Bytes()); !errors.Is(err, nbt.ErrDepthExceeded) {
		t.Errorf("err = %v, want ErrDepthExceeded", err)
	}
}

func TestParseDeepButLegalNesting(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0x0A, 0x00, 0x00})
	const depth = 500
	for i := 0; i < depth; i++ {
		buf.Write([]byte{0x0A, 0x00, 0x01, 'c'})
	}
	for i := 0; i < depth+1; i++ {
		buf.WriteByte(0x00)
	}

	if _, err := nbt.Parse(buf.Bytes()); err != nil {
		t.Errorf("Parse at depth %d: %v", depth, err)
	}
}

// TestParseAgainstReferenceEncoder round-trips a document produced by the
// go-mc encoder through this parser.
func TestParseAgainstReferenceEncoder(t *testing.T) {
	type inner struct {
		Name string `nbt:"Name"`
	}
	doc := struct {
		B      int8    `nbt:"b"`
		S      int16   `nbt:"s"`
		I      int32   `nbt:"i"`
		L      int64   `nbt:"l"`
		F      float32 `nbt:"f"`
		D      float64 `nbt:"d"`
		Str    string  `nbt:"str"`
		Bytes  []byte  `nbt:"bytes"`
		Ints   []int32 `nbt:"ints"`
		Longs  []int64 `nbt:"longs"`
		Things []inner `nbt:"things"`
	}{
		B: -7, S: 300, I: -100000, L: 1 << 40,
		F: 0.5, D: -1.25,
		Str:   "minecraft:stone",
		Bytes: []byte{1, 2, 255},
		Ints:  []int32{-1, 0, 1},
		Longs: []int64{-2, 9},
		Things: []inner{
			{Name: "minecraft:dirt"},
			{Name: "minecraft:air"},
		},
	}

	raw, err := mcnbt.Marshal(doc)
	if err != nil {
		t.Fatalf("reference Marshal: %v", err)
	}

	root, err := nbt.Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	c := root.Compound

	if c["b"].Byte != -7 {
		t.Errorf("b = %d", c["b"].Byte)
	}
	if c["s"].Short != 300 {
		t.Errorf("s = %d", c["s"].Short)
	}
	if c["i"].Int != -100000 {
		t.Errorf("i = %d", c["i"].Int)
	}
	if c["l"].Long != 1<<40 {
		t.Errorf("l = %d", c["l"].Long)
	}
	if c["f"].Float != 0.5 {
		t.Errorf("f = %v", c["f"].Float)
	}
	if c["d"].Double != -1.25 {
		t.Errorf("d = %v", c["d"].Double)
	}
	if c["str"].String != "minecraft:stone" {
		t.Errorf("str = %q", c["str"].String)
	}
	if got := c["bytes"].ByteArray; len(got) != 3 || got[2] != -1 {
		t.Errorf("bytes = %v", got)
	}
	if got := c["ints"].IntArray; len(got) != 3 || got[0] != -1 || got[2] != 1 {
		t.Errorf("ints = %v", got)
	}
	longs := c["longs"].LongArray
	if len(longs) != 2 || longs[0] != uint64(0xFFFFFFFFFFFFFFFE) || longs[1] != 9 {
		t.Errorf("longs = %v", longs)
	}
	things := c["things"]
	if things.Type != nbt.TagList || things.ListType != nbt.TagCompound {
		t.Fatalf("things = %v of %v", things.Type, things.ListType)
	}
	if len(things.List) != 2 || things.List[0].Compound["Name"].String != "minecraft:dirt" {
		t.Errorf("things list = %+v", things.List)
	}
	for _, elem := range things.List {
		if elem.Name != "" {
			t.Errorf("list element carries name %q", elem.Name)
		}
	}
}

func TestParseEmptyList(t *testing.T) {
	// List with element type End and zero length, as vanilla writes them.
	data := []byte{
		0x0A, 0x00, 0x00,
		0x09, 0x00, 0x01, 'e', 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00,
	}
	root, err := nbt.Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	e := root.Compound["e"]
	if e.Type != nbt.TagList || len(e.List) != 0 {
		t.Errorf("e = %v len %d, want empty list", e.Type, len(e.List))
	}
}
