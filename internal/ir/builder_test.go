package ir_test

import (
	"testing"

	"github.com/monsieurbadia/zhoo/internal/ir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBuildAddOneFunction builds the equivalent of
// `fun add(a: int, b: int): int { return a + b; }` directly against the
// builder API and checks the resulting function's shape.
func TestBuildAddOneFunction(t *testing.T) {
	b := ir.NewFunctionBuilder("add", ir.FuncSig{Params: []ir.Ty{ir.TyI64, ir.TyI64}, Ret: ir.TyI64})
	entry := b.CreateBlock()
	b.SwitchToBlock(entry)

	a := b.AppendBlockParam(entry, ir.TyI64)
	c := b.AppendBlockParam(entry, ir.TyI64)
	b.SealBlock(entry)

	sum := b.Iadd(a, c)
	b.Return([]ir.Value{sum})

	fn := b.Finish()
	require.Len(t, fn.Blocks, 1)
	require.NotNil(t, fn.Blocks[0].Term)
	assert.Equal(t, ir.TermReturn, fn.Blocks[0].Term.Kind)

	text := fn.String()
	assert.Contains(t, text, "iadd")
	assert.Contains(t, text, "return")
}

func TestBuildBranchingFunctionHasIcmpAndBrz(t *testing.T) {
	b := ir.NewFunctionBuilder("max", ir.FuncSig{Params: []ir.Ty{ir.TyI64, ir.TyI64}, Ret: ir.TyI64})
	entry := b.CreateBlock()
	thenBlk := b.CreateBlock()
	elseBlk := b.CreateBlock()
	b.SwitchToBlock(entry)

	x := b.AppendBlockParam(entry, ir.TyI64)
	y := b.AppendBlockParam(entry, ir.TyI64)
	b.SealBlock(entry)

	cond := b.Icmp(ir.IntSgt, x, y)
	b.Brz(cond, elseBlk, nil)

	b.SwitchToBlock(thenBlk)
	b.SealBlock(thenBlk)
	b.Return([]ir.Value{x})

	b.SwitchToBlock(elseBlk)
	b.SealBlock(elseBlk)
	b.Return([]ir.Value{y})

	fn := b.Finish()
	require.Len(t, fn.Blocks, 3)
	assert.Equal(t, ir.TermBrz, fn.Blocks[0].Term.Kind)

	text := fn.String()
	assert.Contains(t, text, "icmp")
	assert.Contains(t, text, "brz")
}

func TestModuleCollectsFunctionsAndData(t *testing.T) {
	b := ir.NewFunctionBuilder("main", ir.FuncSig{Ret: ir.TyI64})
	entry := b.CreateBlock()
	b.SwitchToBlock(entry)
	b.SealBlock(entry)
	zero := b.Iconst(0)
	b.Return([]ir.Value{zero})
	fn := b.Finish()

	m := ir.NewModule("test")
	m.DefineData(&ir.DataSymbol{Id: 0, Name: ir.DataSymbolName(0), Linkage: ir.LinkageLocal, Bytes: []byte("hi")})
	m.DefineFunction(fn)

	require.Len(t, m.Functions, 1)
	require.Len(t, m.Data, 1)

	out, err := m.Finalize()
	require.NoError(t, err)
	assert.Contains(t, string(out), "hi")
	assert.Contains(t, string(out), "main")
}
