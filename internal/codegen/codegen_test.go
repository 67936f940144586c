package codegen_test

import (
	"bytes"
	"testing"

	"github.com/monsieurbadia/zhoo/internal/checker"
	"github.com/monsieurbadia/zhoo/internal/codegen"
	zerrors "github.com/monsieurbadia/zhoo/internal/errors"
	"github.com/monsieurbadia/zhoo/internal/parser"
	"github.com/stretchr/testify/require"
)

// lower parses, checks, and lowers src, failing the test if any stage
// reported an error. It mirrors the exact pipeline order internal/driver
// runs (parse -> checker.Run -> codegen.New/Lower).
func lower(t *testing.T, src string) *codegen.Codegen {
	t.Helper()

	var buf bytes.Buffer
	r := zerrors.NewForTest(&buf)
	r.AddSource("<test>", src)

	p := parser.New(src, 0, r)
	program := p.ParseProgram()
	require.False(t, r.HasErrors(), "parse errors: %s", buf.String())

	tc := checker.Run(program, "<test>", r)
	require.False(t, r.HasErrors(), "check errors: %s", buf.String())

	cg := codegen.New(r, tc.Types)
	cg.Lower(program)
	require.False(t, r.HasErrors(), "codegen errors: %s", buf.String())

	return cg
}

func funcByName(cg *codegen.Codegen, name string) string {
	for _, f := range cg.Functions {
		if f.Name == name {
			return f.String()
		}
	}
	return ""
}

// --- spec.md §8 "Codegen round-trips (behavioral)" -----------------------

func TestLowerPrintlnHi(t *testing.T) {
	cg := lower(t, `fun main(): int { println("hi"); return 0; }`)

	module := cg.Module("test")
	require.Len(t, module.Data, 1)
	require.Equal(t, "hi", string(module.Data[0].Bytes))

	main := funcByName(cg, "main")
	require.Contains(t, main, "call")
	require.Contains(t, main, "symbol_value")
	require.Contains(t, main, "return")
}

func TestLowerPrintilnArithmetic(t *testing.T) {
	cg := lower(t, `fun main(): int { printiln(3 + 4); return 0; }`)

	main := funcByName(cg, "main")
	require.Contains(t, main, "iadd")
	require.Contains(t, main, "call")
}

func TestLowerWhileLoop(t *testing.T) {
	cg := lower(t, `fun main(): int {
		val mut i: int = 0;
		while i < 3 { printiln(i); i = i + 1; }
		return 0;
	}`)

	main := funcByName(cg, "main")
	require.Contains(t, main, "icmp")
	require.Contains(t, main, "brz")
	require.Contains(t, main, "iadd")
}

func TestLowerCallUserFunction(t *testing.T) {
	cg := lower(t, `fun add(a: int, b: int): int { return a + b; }
		fun main(): int { printiln(add(2, 5)); return 0; }`)

	require.Len(t, cg.Functions, 2)
	add := funcByName(cg, "add")
	require.Contains(t, add, "iadd")

	main := funcByName(cg, "main")
	require.Contains(t, main, "call")
}

func TestLowerIfElse(t *testing.T) {
	cg := lower(t, `fun main(): int {
		if 2 > 1 { println("y"); } else { println("n"); }
		return 0;
	}`)

	module := cg.Module("test")
	texts := make([]string, len(module.Data))
	for i, d := range module.Data {
		texts[i] = string(d.Bytes)
	}
	require.Contains(t, texts, "y")
	require.Contains(t, texts, "n")

	main := funcByName(cg, "main")
	require.Contains(t, main, "icmp")
	require.Contains(t, main, "brz")
}

func TestModuleFinalizeProducesBytes(t *testing.T) {
	cg := lower(t, `fun main(): int { return 0; }`)
	module := cg.Module("test")

	out, err := module.Finalize()
	require.NoError(t, err)
	require.NotEmpty(t, out)
	require.Contains(t, string(out), "main")
}
