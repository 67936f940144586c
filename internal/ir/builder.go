package ir

// FunctionBuilder is the per-function cursor internal/codegen drives:
// create/seal/switch blocks, declare and def/use variables, and append
// instructions to whichever block is currently selected. Mirrors the
// cranelift-frontend `FunctionBuilder` API surface spec.md §4.6 assumes.
type FunctionBuilder struct {
	fn  *Function
	cur BlockId
}

// NewFunctionBuilder starts building a function with the given name and
// already-mapped machine signature.
func NewFunctionBuilder(name string, sig FuncSig) *FunctionBuilder {
	return &FunctionBuilder{fn: newFunction(name, sig)}
}

// Finish returns the built function. Call after the entry block's
// terminator and every reachable block's terminator have been emitted.
func (b *FunctionBuilder) Finish() *Function {
	return b.fn
}

// CreateBlock allocates a new, empty block.
func (b *FunctionBuilder) CreateBlock() BlockId {
	id := BlockId(len(b.fn.Blocks))
	b.fn.Blocks = append(b.fn.Blocks, &Block{Id: id})
	return id
}

// AppendBlockParam adds a typed parameter to block and returns the Value
// that reads it inside that block (the phi-equivalent spec.md §4.6
// describes).
func (b *FunctionBuilder) AppendBlockParam(block BlockId, ty Ty) Value {
	blk := b.fn.block(block)
	v := b.fn.allocValue(block)
	blk.Params = append(blk.Params, ty)
	blk.ParamValues = append(blk.ParamValues, v)
	return v
}

// SealBlock marks a block as having all its predecessors known. This
// builder does not perform cranelift's incremental SSA-construction
// optimizations, so sealing is pure bookkeeping, kept to preserve the
// contract's call shape (every real call site in codegen seals blocks
// exactly where cranelift requires it).
func (b *FunctionBuilder) SealBlock(block BlockId) {
	b.fn.block(block).Sealed = true
}

// SwitchToBlock moves the insertion cursor to block.
func (b *FunctionBuilder) SwitchToBlock(block BlockId) {
	b.cur = block
}

// CurrentBlock returns the block instructions are currently appended to.
func (b *FunctionBuilder) CurrentBlock() BlockId {
	return b.cur
}

// DeclareVar allocates a new variable of the given machine type.
func (b *FunctionBuilder) DeclareVar(ty Ty) Var {
	v := b.fn.nextVar
	b.fn.nextVar++
	b.fn.varTypes[v] = ty
	return v
}

// DefVar binds var to value in the current definition point.
func (b *FunctionBuilder) DefVar(v Var, value Value) {
	b.fn.varValues[v] = value
}

// UseVar reads var's currently bound value.
func (b *FunctionBuilder) UseVar(v Var) Value {
	return b.fn.varValues[v]
}

func (b *FunctionBuilder) push(i Instr) Value {
	blk := b.fn.block(b.cur)
	i.Result = b.fn.allocValue(b.cur)
	blk.Instrs = append(blk.Instrs, i)
	return i.Result
}

// Iconst / Bconst / Fconst emit typed constant instructions.
func (b *FunctionBuilder) Iconst(v int64) Value {
	return b.push(Instr{Op: OpIconst, Ty: TyI64, IntImm: v})
}

func (b *FunctionBuilder) Bconst(v bool) Value {
	return b.push(Instr{Op: OpBconst, Ty: TyB1, BoolImm: v})
}

func (b *FunctionBuilder) Fconst(v float64) Value {
	return b.push(Instr{Op: OpFconst, Ty: TyF64, FloatImm: v})
}

func (b *FunctionBuilder) binary(op Op, ty Ty, lhs, rhs Value) Value {
	return b.push(Instr{Op: op, Ty: ty, Args: []Value{lhs, rhs}})
}

func (b *FunctionBuilder) Iadd(l, r Value) Value { return b.binary(OpIadd, TyI64, l, r) }
func (b *FunctionBuilder) Isub(l, r Value) Value { return b.binary(OpIsub, TyI64, l, r) }
func (b *FunctionBuilder) Imul(l, r Value) Value { return b.binary(OpImul, TyI64, l, r) }
func (b *FunctionBuilder) Sdiv(l, r Value) Value { return b.binary(OpSdiv, TyI64, l, r) }
func (b *FunctionBuilder) Srem(l, r Value) Value { return b.binary(OpSrem, TyI64, l, r) }
func (b *FunctionBuilder) Fadd(l, r Value) Value { return b.binary(OpFadd, TyF64, l, r) }
func (b *FunctionBuilder) Fsub(l, r Value) Value { return b.binary(OpFsub, TyF64, l, r) }
func (b *FunctionBuilder) Fmul(l, r Value) Value { return b.binary(OpFmul, TyF64, l, r) }
func (b *FunctionBuilder) Fdiv(l, r Value) Value { return b.binary(OpFdiv, TyF64, l, r) }
func (b *FunctionBuilder) Band(l, r Value) Value { return b.binary(OpBand, TyI64, l, r) }
func (b *FunctionBuilder) Bor(l, r Value) Value  { return b.binary(OpBor, TyI64, l, r) }
func (b *FunctionBuilder) Bxor(l, r Value) Value { return b.binary(OpBxor, TyI64, l, r) }
func (b *FunctionBuilder) Shl(l, r Value) Value  { return b.binary(OpShl, TyI64, l, r) }
func (b *FunctionBuilder) Shr(l, r Value) Value  { return b.binary(OpShr, TyI64, l, r) }

func (b *FunctionBuilder) Ineg(v Value) Value {
	return b.push(Instr{Op: OpIneg, Ty: TyI64, Args: []Value{v}})
}

func (b *FunctionBuilder) Fneg(v Value) Value {
	return b.push(Instr{Op: OpFneg, Ty: TyF64, Args: []Value{v}})
}

// Not computes logical negation as a single bxor_not instruction whose
// result is typed b1; the result is not widened to the default integer
// type.
func (b *FunctionBuilder) Not(v Value) Value {
	return b.push(Instr{Op: OpBxorNot, Ty: TyB1, Args: []Value{v}})
}

func (b *FunctionBuilder) Icmp(cc IntCC, l, r Value) Value {
	return b.push(Instr{Op: OpIcmp, Ty: TyB1, IntCC: cc, Args: []Value{l, r}})
}

func (b *FunctionBuilder) Fcmp(cc FloatCC, l, r Value) Value {
	return b.push(Instr{Op: OpFcmp, Ty: TyB1, FloatCC: cc, Args: []Value{l, r}})
}

// Call emits a call instruction; ty is the callee's return machine type
// (TyI64 used as the canonical zero-value type for void callees).
func (b *FunctionBuilder) Call(callee FuncId, ty Ty, args []Value) Value {
	return b.push(Instr{Op: OpCall, Ty: ty, Callee: callee, Args: args})
}

// SymbolValue returns the address of a module data symbol as a pointer
// value, mirroring cranelift's `symbol_value`.
func (b *FunctionBuilder) SymbolValue(data DataId) Value {
	return b.push(Instr{Op: OpSymbolValue, Ty: TyPtr, Data: data})
}

// Jump / Brz / Brnz / Return terminate the current block. Each may only
// be called once per block.
func (b *FunctionBuilder) Jump(target BlockId, args []Value) {
	b.fn.block(b.cur).Term = &Term{Kind: TermJump, Target: target, BlockArgs: args}
}

func (b *FunctionBuilder) Brz(cond Value, target BlockId, args []Value) {
	b.fn.block(b.cur).Term = &Term{Kind: TermBrz, Cond: cond, Target: target, BlockArgs: args}
}

func (b *FunctionBuilder) Brnz(cond Value, target BlockId, args []Value) {
	b.fn.block(b.cur).Term = &Term{Kind: TermBrnz, Cond: cond, Target: target, BlockArgs: args}
}

func (b *FunctionBuilder) Return(results []Value) {
	b.fn.block(b.cur).Term = &Term{Kind: TermReturn, Results: results}
}
