// Package codegen lowers a type-checked *ast.Program to internal/ir: one
// ir.Function per Zhoo function, module-level data symbols for interned
// string literals, and external-linkage declarations for the runtime
// ABI builtins.
//
// Grounded on original_source/compiler/zhoo-codegen-cranelift/src/codegen.rs
// (module/function orchestration: the funs table, generate_prototype's
// redefinition checks, register_builtin) and translator.rs (per-
// expression lowering). Two behaviors are implemented the FIXED way per
// spec.md §9/DESIGN.md rather than as the Rust source has them:
// `continue` jumps to the loop header (source jumps to the end block),
// and arithmetic/comparison instruction selection dispatches on the
// operand's checker-resolved Ty (tc.Types, built during type-checking)
// rather than the raw syntactic literal kind of the right-hand operand.
package codegen

import (
	"github.com/monsieurbadia/zhoo/internal/ast"
	"github.com/monsieurbadia/zhoo/internal/builtins"
	zerrors "github.com/monsieurbadia/zhoo/internal/errors"
	"github.com/monsieurbadia/zhoo/internal/ir"
)

// funcEntry mirrors codegen.rs's CompiledFunction: an id, whether a
// body has been defined for it yet, and its declared arity (both
// needed to detect the two redefinition errors generate_prototype
// raises).
type funcEntry struct {
	id        ir.FuncId
	isDefined bool
	inputsLen int
	sig       ir.FuncSig
}

// loopFrame is one entry of the active-loops stack translate_expr_loop
// / translate_expr_while push onto: the blocks `continue` and `break`
// target. Source only tracks the end block (`self.blocks: Vec<CBlock>`);
// this type also carries the header so `continue` can jump there
// instead, per the documented fix.
type loopFrame struct {
	header ir.BlockId
	end    ir.BlockId
}

// Codegen owns the module-wide state translator.rs's Codegen/Translator
// split describes: the function table, the data-symbol intern table,
// and the finished functions. Expression lowering's per-function state
// (current builder, local var table, loop stack) lives on builderState
// and is reset between functions, mirroring the source's
// "clear_context" step.
type Codegen struct {
	r     *zerrors.Reporter
	types map[ast.Expr]*ast.Ty

	funs       map[string]*funcEntry
	nextFuncId int

	dataByText map[string]ir.DataId
	dataOrder  []ir.DataId
	dataBytes  map[ir.DataId]string
	nextDataId int

	Functions []*ir.Function
}

// New starts a Codegen. types is the checker's per-expression type
// table (checker.TypeChecker.Types), consulted during lowering instead
// of re-deriving operand kinds from literal syntax.
func New(r *zerrors.Reporter, types map[ast.Expr]*ast.Ty) *Codegen {
	cg := &Codegen{
		r: r, types: types,
		funs:       map[string]*funcEntry{},
		dataByText: map[string]ir.DataId{},
		dataBytes:  map[ir.DataId]string{},
	}
	cg.registerBuiltins()
	return cg
}

// machineTy applies the type-mapping table spec.md §4.6 fixes: Void and
// Int both map to i64 (Void's i64 is the canonical unit sentinel), Bool
// to b1, Real to f64, and everything else (Str, Array, Tuple, Fn,
// unresolved Infer) to a pointer-sized integer.
func machineTy(k ast.TyKind) ir.Ty {
	switch k {
	case ast.KVoid, ast.KInt:
		return ir.TyI64
	case ast.KBool:
		return ir.TyB1
	case ast.KReal:
		return ir.TyF64
	default:
		return ir.TyPtr
	}
}

func (cg *Codegen) registerBuiltins() {
	for _, sig := range builtins.All {
		params := make([]ir.Ty, len(sig.Inputs))
		for i, k := range sig.Inputs {
			params[i] = machineTy(k)
		}
		id := ir.FuncId(cg.nextFuncId)
		cg.nextFuncId++
		cg.funs[sig.Name] = &funcEntry{
			id: id, isDefined: false, inputsLen: len(sig.Inputs),
			sig: ir.FuncSig{Params: params, Ret: machineTy(sig.Output)},
		}
	}
}

// Lower walks every top-level statement twice: a declare pass that
// registers every ext/fun prototype's signature up front (so a function
// may call another declared later in the file), then a define pass that
// builds the IR body of each fun. Must run after a successful
// checker.Run pass.
func (cg *Codegen) Lower(prog *ast.Program) {
	for _, s := range prog.Stmts {
		cg.declareStmt(s)
	}
	for _, s := range prog.Stmts {
		cg.defineStmt(s)
	}
}

func (cg *Codegen) declareStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.ExtStmt:
		// generate_stmt_ext: always import linkage, body (if any — the
		// supplemented `ext` feature allows one) is never lowered, matching
		// codegen.rs's generate_stmt_ext ignoring ext.body entirely.
		cg.declareOrResolve(n.Prototype)
	case *ast.FunStmt:
		cg.declareOrResolve(n.Prototype)
	}
}

func (cg *Codegen) defineStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.FunStmt:
		cg.lowerFun(n)
	case *ast.ExtStmt, *ast.TyAliasStmt, *ast.UnitStmt:
		// No runtime representation to define: externs are declaration-only
		// (see declareStmt), the type alias is compile-time-only, and Unit
		// groups are checked but never lowered (spec.md never names a
		// lowering for test groups).
	}
}

// declareOrResolve mirrors generate_prototype: find-or-declare a
// function id for proto, raising a fatal FunctionRedefinition when an
// already-defined function is redeclared, or when the declared arity
// disagrees with a prior declaration.
func (cg *Codegen) declareOrResolve(proto *ast.Prototype) *funcEntry {
	if existing, ok := cg.funs[proto.Name]; ok {
		if existing.isDefined {
			cg.r.Raise(zerrors.FunctionRedefinition{Span: proto.Span, Name: proto.Name})
		}
		if existing.inputsLen != len(proto.Inputs) {
			cg.r.Raise(zerrors.FunctionRedefinition{Span: proto.Span, Name: proto.Name})
		}
		return existing
	}

	params := make([]ir.Ty, len(proto.Inputs))
	for i, a := range proto.Inputs {
		params[i] = machineTy(a.Ty.Kind)
	}
	ret := machineTy(proto.Output.AsTy().Kind)

	id := ir.FuncId(cg.nextFuncId)
	cg.nextFuncId++
	entry := &funcEntry{id: id, isDefined: false, inputsLen: len(proto.Inputs), sig: ir.FuncSig{Params: params, Ret: ret}}
	cg.funs[proto.Name] = entry
	return entry
}

// lowerFun implements §4.6's five-step function-lowering recipe. The
// signature was already registered by the declare pass in Lower, so
// forward calls to a function defined later in the file still resolve.
func (cg *Codegen) lowerFun(fn *ast.FunStmt) {
	entry := cg.declareOrResolve(fn.Prototype)
	entry.isDefined = true

	b := ir.NewFunctionBuilder(fn.Prototype.Name, entry.sig)
	st := &builderState{cg: cg, b: b, vars: map[string]ir.Var{}}

	entryBlock := b.CreateBlock()
	paramValues := make([]ir.Value, len(fn.Prototype.Inputs))
	for i := range fn.Prototype.Inputs {
		paramValues[i] = b.AppendBlockParam(entryBlock, entry.sig.Params[i])
	}
	b.SealBlock(entryBlock)
	b.SwitchToBlock(entryBlock)

	for i, a := range fn.Prototype.Inputs {
		v := b.DeclareVar(entry.sig.Params[i])
		b.DefVar(v, paramValues[i])
		st.vars[a.Pattern] = v
	}

	result := st.translateBlock(fn.Body)
	b.Return([]ir.Value{result})

	cg.Functions = append(cg.Functions, b.Finish())
}

// internString interns text once per distinct value, mirroring the
// source's data_builder: the first occurrence mints a new DataId with
// Linkage::Local; later occurrences reuse it.
func (cg *Codegen) internString(text string) ir.DataId {
	if id, ok := cg.dataByText[text]; ok {
		return id
	}
	id := ir.DataId(cg.nextDataId)
	cg.nextDataId++
	cg.dataByText[text] = id
	cg.dataBytes[id] = text
	cg.dataOrder = append(cg.dataOrder, id)
	return id
}

// DataSection returns the interned string table in definition order, for
// a driver or --ir dump to render.
func (cg *Codegen) DataSection() []struct {
	Id    ir.DataId
	Bytes string
} {
	out := make([]struct {
		Id    ir.DataId
		Bytes string
	}, len(cg.dataOrder))
	for i, id := range cg.dataOrder {
		out[i] = struct {
			Id    ir.DataId
			Bytes string
		}{id, cg.dataBytes[id]}
	}
	return out
}

// Module assembles the finished functions and interned data symbols into
// an ir.Module, mirroring codegen.rs's `self.module` once every function
// has been defined — the thing §4.7's Object/Link Driver finalizes.
func (cg *Codegen) Module(name string) *ir.Module {
	m := ir.NewModule(name)
	for _, d := range cg.DataSection() {
		m.DefineData(&ir.DataSymbol{
			Id:      d.Id,
			Name:    ir.DataSymbolName(d.Id),
			Linkage: ir.LinkageLocal,
			Bytes:   []byte(d.Bytes),
		})
	}
	for _, f := range cg.Functions {
		m.DefineFunction(f)
	}
	return m
}

// resolvedKind returns the checker-resolved TyKind of e, defaulting to
// Int when e was never type-checked (defensive; should not happen on a
// tree that already passed checker.Run).
func (cg *Codegen) resolvedKind(e ast.Expr) ast.TyKind {
	if t, ok := cg.types[e]; ok && t != nil {
		return t.Kind
	}
	return ast.KInt
}
