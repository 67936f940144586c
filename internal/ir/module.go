package ir

import (
	"fmt"
	"sort"
	"strings"
)

// DataSymbol is one module-level data symbol: a name, its linkage, and
// its defining bytes. internal/codegen interns one per distinct string
// literal value with Linkage::Local, per spec.md §4.6.
type DataSymbol struct {
	Id      DataId
	Name    string
	Linkage Linkage
	Bytes   []byte
}

// Module is the object-producing unit spec.md §4.6 calls "an
// object-producing module (ISA chosen by host target)". It collects the
// functions and data symbols a Codegen instance finished lowering and is
// the thing component #10 (Object/Link Driver) finalizes and emits.
//
// No package anywhere in the retrieved corpus wraps a real native-target
// object writer (see DESIGN.md "Unwired/unbuildable contracts" — this is
// the one place spec.md itself marks the underlying library as external
// and unavailable in the pack), so Finalize produces a deterministic,
// self-describing byte encoding of this IR rather than a real ELF/Mach-O
// object. internal/driver treats whatever Finalize returns as opaque
// object bytes, exactly as codegen.rs treats `object.emit()`'s result.
type Module struct {
	Name      string
	Functions []*Function
	Data      []*DataSymbol
}

// NewModule starts an empty module for the given target/module name.
func NewModule(name string) *Module {
	return &Module{Name: name}
}

// DataSymbolName names an interned data symbol with the sequential
// counter spec.md §4.6 describes ("symbols are named with a sequential
// counter").
func DataSymbolName(id DataId) string {
	return fmt.Sprintf("__data_%d", id)
}

// DefineFunction appends a finished function to the module, mirroring
// `self.module.define_function(func_id, &mut self.context)`.
func (m *Module) DefineFunction(f *Function) {
	m.Functions = append(m.Functions, f)
}

// DefineData appends a data symbol, mirroring the data_builder's one
// definition per distinct interned string.
func (m *Module) DefineData(d *DataSymbol) {
	m.Data = append(m.Data, d)
}

// Finalize serializes the module into the bytes a real backend's
// `object.emit()` would produce. The encoding is a plain textual dump of
// every function and data symbol header; its contract obligation is only
// "bytes internal/driver can write to an object file and hand to the
// linker", which spec.md §1 explicitly places outside this core anyway.
func (m *Module) Finalize() ([]byte, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "; zhoo-ir-object module=%s\n", m.Name)
	for _, d := range m.Data {
		fmt.Fprintf(&b, "data %s local %d\n%q\n", d.Name, d.Id, string(d.Bytes))
	}
	for _, f := range m.Functions {
		b.WriteString(f.String())
	}
	return []byte(b.String()), nil
}

// String renders the module's IR the way `--ir` prints it: the original
// source field this mirrors (`codegen.rs`'s `self.ir`) is a per-function
// `cranelift` text dump produced by `Context::func::display`; this is the
// same idea over the hand-written IR.
func (m *Module) String() string {
	var b strings.Builder
	ids := make([]int, 0, len(m.Data))
	byId := map[int]*DataSymbol{}
	for _, d := range m.Data {
		ids = append(ids, int(d.Id))
		byId[int(d.Id)] = d
	}
	sort.Ints(ids)
	for _, id := range ids {
		d := byId[id]
		fmt.Fprintf(&b, "data %s = %q\n", d.Name, string(d.Bytes))
	}
	for _, f := range m.Functions {
		b.WriteString(f.String())
	}
	return b.String()
}
