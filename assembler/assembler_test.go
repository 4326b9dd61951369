package gekkoasm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assembleOneBlock(t *testing.T, src string, base uint32) []byte {
	t.Helper()
	res, err := Assemble(src, base)
	require.NoError(t, err)
	require.Len(t, res.Blocks, 1)
	return res.Blocks[0].Bytes
}

func TestAssembleBasicAdd(t *testing.T) {
	bytes := assembleOneBlock(t, "add r3, r4, r5\n", 0)
	assert.Equal(t, []byte{0x7c, 0x64, 0x2a, 0x14}, bytes)
}

func TestAssembleAddVariantBits(t *testing.T) {
	cases := map[string][]byte{
		"add. r3, r4, r5\n":  {0x7c, 0x64, 0x2a, 0x15},
		"addo r3, r4, r5\n":  {0x7c, 0x64, 0x2e, 0x14},
		"addo. r3, r4, r5\n": {0x7c, 0x64, 0x2e, 0x15},
	}
	for src, want := range cases {
		assert.Equal(t, want, assembleOneBlock(t, src, 0), "src=%q", src)
	}
}

func TestAssembleBranchPCRelativeAndAbsolute(t *testing.T) {
	assert.Equal(t, []byte{0x48, 0x00, 0x10, 0x00}, assembleOneBlock(t, "b 0x1000\n", 0))
	assert.Equal(t, []byte{0x48, 0x00, 0x00, 0x00}, assembleOneBlock(t, "b 0x1000\n", 0x1000))
	assert.Equal(t, []byte{0x48, 0x00, 0x10, 0x02}, assembleOneBlock(t, "ba 0x1000\n", 0x1000))
}

func TestAssembleConditionalBranch(t *testing.T) {
	assert.Equal(t, []byte{0x40, 0x82, 0x00, 0x04}, assembleOneBlock(t, "bne 0, 4\n", 0))
}

func TestAssembleExtendedMnemonicMr(t *testing.T) {
	assert.Equal(t, []byte{0x7c, 0x80, 0x23, 0x78}, assembleOneBlock(t, "mr r0, r4\n", 0))
}

func TestAssembleFourByteDirective(t *testing.T) {
	bytes := assembleOneBlock(t, ".4byte 0x12345678, 0x9abcdef0\n", 0)
	assert.Equal(t, []byte{0x12, 0x34, 0x56, 0x78, 0x9a, 0xbc, 0xde, 0xf0}, bytes)
}

func TestAssembleFloatDirective(t *testing.T) {
	bytes := assembleOneBlock(t, ".float 1.25\n", 0)
	assert.Equal(t, []byte{0x3f, 0xa0, 0x00, 0x00}, bytes)
}

func TestAssembleAsciiDirective(t *testing.T) {
	bytes := assembleOneBlock(t, ".ascii \"a\\nb\"\n", 0)
	assert.Equal(t, []byte{0x61, 0x0a, 0x62}, bytes)
}

func TestAssembleLocateSplitsBlocks(t *testing.T) {
	src := ".locate 0x100\n.byte 1\n.locate 0x200\n.byte 2\n"
	res, err := Assemble(src, 0)
	require.NoError(t, err)
	require.Len(t, res.Blocks, 2)
	assert.Equal(t, CodeBlock{Address: 0x100, Bytes: []byte{1}}, res.Blocks[0])
	assert.Equal(t, CodeBlock{Address: 0x200, Bytes: []byte{2}}, res.Blocks[1])
}

func TestAssembleHaLFixupWithDefvar(t *testing.T) {
	src := ".defvar sym, 0x80001234\nlis r0, sym@ha\nori r0, r0, sym@l\n"
	bytes := assembleOneBlock(t, src, 0)
	assert.Equal(t, []byte{0x3c, 0x00, 0x80, 0x00, 0x60, 0x00, 0x12, 0x34}, bytes)
}

func TestAssembleUndefinedSymbolFails(t *testing.T) {
	_, err := Assemble("b missing\n", 0)
	require.Error(t, err)
}

func TestAssembleForwardBranchReference(t *testing.T) {
	src := "b target\nnop\ntarget:\nblr\n"
	res, err := Assemble(src, 0)
	require.NoError(t, err)
	require.Len(t, res.Blocks, 1)
	assert.Equal(t, []byte{0x48, 0x00, 0x00, 0x08}, res.Blocks[0].Bytes[0:4])
}

func TestAssembleUnusedLabelWarning(t *testing.T) {
	res, err := Assemble("unused:\nblr\n", 0)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Warnings)
}
