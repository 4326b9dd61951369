package irgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lookbusy1344/gekko-assembler/editorhook"
)

func generate(t *testing.T, src string, base uint32) []Block {
	t.Helper()
	blocks, _, err := New(src, "", base).Generate()
	require.NoError(t, err)
	return blocks
}

func TestGeneratorSkipDirective(t *testing.T) {
	blocks := generate(t, ".skip 3\n.byte 0xff\n", 0)
	require.Len(t, blocks, 1)
	assert.Equal(t, []byte{0, 0, 0, 0xff}, blocks[0].Bytes)
}

func TestGeneratorAlignDirective(t *testing.T) {
	// .align K pads to the next multiple of 1<<K, within the same block.
	blocks := generate(t, ".byte 1\n.align 2\n.byte 2\n", 0)
	require.Len(t, blocks, 1)
	assert.Equal(t, []byte{1, 0, 0, 0, 2}, blocks[0].Bytes)
}

func TestGeneratorPadalignSplitsBlockWithoutPadding(t *testing.T) {
	blocks := generate(t, ".byte 1\n.padalign 2\n.byte 2\n", 0)
	require.Len(t, blocks, 2)
	assert.Equal(t, Block{Address: 0, Bytes: []byte{1}}, blocks[0])
	assert.Equal(t, Block{Address: 4, Bytes: []byte{2}}, blocks[1])
}

func TestGeneratorPadalignNoOpWhenAlreadyAligned(t *testing.T) {
	blocks := generate(t, ".4byte 0\n.padalign 2\n.byte 2\n", 0)
	require.Len(t, blocks, 1)
	assert.Equal(t, []byte{0, 0, 0, 0, 2}, blocks[0].Bytes)
}

func TestGeneratorAsczNullTerminates(t *testing.T) {
	blocks := generate(t, ".asciz \"hi\"\n", 0)
	require.Len(t, blocks, 1)
	assert.Equal(t, []byte{'h', 'i', 0}, blocks[0].Bytes)
}

func TestGeneratorDuplicateLabelIsError(t *testing.T) {
	_, _, err := New("a:\nnop\na:\nnop\n", "", 0).Generate()
	require.Error(t, err)
}

func TestGeneratorDuplicateVariableIsError(t *testing.T) {
	_, _, err := New(".defvar x, 1\n.defvar x, 2\n", "", 0).Generate()
	require.Error(t, err)
}

func TestGeneratorForwardLabelInBranch(t *testing.T) {
	blocks := generate(t, "b ahead\nnop\nahead:\nnop\n", 0)
	require.Len(t, blocks, 1)
	// b at addr 0 targeting addr 8: LI = (8-0)>>2 = 2 -> word 0x48000008
	assert.Equal(t, byte(0x48), blocks[0].Bytes[0])
	assert.Equal(t, byte(0x08), blocks[0].Bytes[3])
}

func TestSymbolTableUnusedTracksOrderAndUsage(t *testing.T) {
	st := NewSymbolTable()
	require.True(t, st.Define("a", Symbol{Name: "a", Kind: SymbolLabel}))
	require.True(t, st.Define("b", Symbol{Name: "b", Kind: SymbolVariable}))
	st.MarkUsed("a")
	unused := st.Unused()
	require.Len(t, unused, 1)
	assert.Equal(t, "b", unused[0].Name)
}

func TestSymbolTableDefineRejectsDuplicate(t *testing.T) {
	st := NewSymbolTable()
	require.True(t, st.Define("x", Symbol{Name: "x"}))
	assert.False(t, st.Define("x", Symbol{Name: "x"}))
}

func TestGeneratorDrivesEditorhookPlugin(t *testing.T) {
	h := editorhook.NewHighlighter()
	gen := New("start:\n.defvar count, 4\nadd r3, r4, r5\n", "", 0)
	gen.SetPlugin(h)
	_, _, err := gen.Generate()
	require.NoError(t, err)

	var sawLabel, sawVariable, sawMnemonic bool
	for _, s := range h.Spans {
		switch s.Kind {
		case editorhook.SpanLabel:
			sawLabel = true
		case editorhook.SpanVariable:
			sawVariable = true
		case editorhook.SpanMnemonic:
			sawMnemonic = true
		}
	}
	assert.True(t, sawLabel, "expected a label span")
	assert.True(t, sawVariable, "expected a variable span")
	assert.True(t, sawMnemonic, "expected a mnemonic span")
}

func TestGeneratorPluginFiresOnceDespiteTwoInternalPasses(t *testing.T) {
	h := editorhook.NewHighlighter()
	gen := New("a:\nnop\n", "", 0)
	gen.SetPlugin(h)
	_, _, err := gen.Generate()
	require.NoError(t, err)

	labels := 0
	for _, s := range h.Spans {
		if s.Kind == editorhook.SpanLabel {
			labels++
		}
	}
	assert.Equal(t, 1, labels)
}
