// Package driver implements component #10 (spec.md §4.7): finalizing a
// lowered module, writing its object file, and invoking the system C
// compiler to link it against the prebuilt runtime archive into a
// standalone executable. It also implements the `run` subcommand's
// contract: executing the produced binary and relaying its stdout.
//
// Grounded on original_source/compiler/zhoo-helper/src/{pack,constant}.rs
// (fixed paths, make_dir/make_file/make_exe_with_link) and
// zhoo-driver/src/cmd/handle/{compile,run}.rs (the settings shape and the
// worker-thread-join wrapping spec.md §5/§9 describe, reproduced here as
// a joinable goroutine rather than an `async`/`thread::spawn` pair).
package driver

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/google/uuid"
	"github.com/monsieurbadia/zhoo/internal/checker"
	"github.com/monsieurbadia/zhoo/internal/codegen"
	zerrors "github.com/monsieurbadia/zhoo/internal/errors"
	"github.com/monsieurbadia/zhoo/internal/ir"
	"github.com/monsieurbadia/zhoo/internal/parser"
)

// Fixed filesystem layout, mirroring zhoo-helper/src/constant.rs exactly.
const (
	CompilerName        = "zhoo"
	GccProgram          = "gcc"
	EntryPoint          = "main"
	PathLibrary         = "target/debug"
	PathLibraryCore     = "libzhoo_core.a"
	PathOutputDirectory = "program"
)

// Backend names the only accepted codegen target. Anything else is a
// fatal CLI usage error, per spec.md §6.
const BackendCranelift = "cranelift"

// Settings collects the resolved configuration for one `compile`
// invocation — the CLI-flags-plus-fixed-paths struct SPEC_FULL.md's
// AMBIENT STACK "Configuration" section calls for, shaped after
// zhoo-driver/src/cmd/settings/compile.rs's Settings.
type Settings struct {
	Input   string
	AST     bool
	IR      bool
	Backend string
}

// ValidateBackend enforces spec.md §6's CLI contract: `-b` only accepts
// "cranelift".
func ValidateBackend(name string) error {
	if name != BackendCranelift {
		return fmt.Errorf("unsupported backend %q: only %q is supported", name, BackendCranelift)
	}
	return nil
}

// Compile runs the full pipeline once: read source, parse, run the three
// analyzer passes, lower to IR, then finalize/write/link. It mirrors
// zhoo-driver's `compiling` function body exactly, statement for
// statement.
func Compile(settings Settings) error {
	if err := ValidateBackend(settings.Backend); err != nil {
		return err
	}

	text, err := os.ReadFile(settings.Input)
	if err != nil {
		return fmt.Errorf("reading source file: %w", err)
	}

	r := zerrors.New(os.Stderr)
	r.AddSource(settings.Input, string(text))

	p := parser.New(string(text), 0, r)
	program := p.ParseProgram()

	if settings.AST {
		fmt.Println()
		fmt.Println(program.String())
	}

	tc := checker.Run(program, settings.Input, r)

	cg := codegen.New(r, tc.Types)
	cg.Lower(program)

	module := cg.Module(CompilerName)

	if settings.IR {
		fmt.Println()
		fmt.Print(module.String())
	}

	return build(module)
}

// build finalizes the module, writes the object file under a uuid-tmp
// name and atomically renames it into place (so two concurrent compiler
// invocations never observe a half-written program/main.o — the
// motivation SPEC_FULL.md's "Build identifiers" section gives for minting
// a build id), then invokes the linker.
func build(module *ir.Module) error {
	bytesOut, err := module.Finalize()
	if err != nil {
		return fmt.Errorf("finalizing module: %w", err)
	}

	if err := os.MkdirAll(PathOutputDirectory, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	objectPath := filepath.Join(PathOutputDirectory, EntryPoint+".o")
	tmpPath := objectPath + "." + uuid.NewString() + ".tmp"

	if err := os.WriteFile(tmpPath, bytesOut, 0o644); err != nil {
		return fmt.Errorf("writing object file: %w", err)
	}
	if err := os.Rename(tmpPath, objectPath); err != nil {
		return fmt.Errorf("finalizing object file: %w", err)
	}

	exePath := filepath.Join(PathOutputDirectory, EntryPoint)
	archivePath := filepath.Join(PathLibrary, PathLibraryCore)

	return link(objectPath, archivePath, exePath)
}

// link invokes the system C compiler per spec.md §6: always `-v`
// (SUPPLEMENTED FEATURES item 5, matching pack.rs's make_exe_with_link
// unconditional `-v`), `-fno-pie -pthread -ldl`, and — everywhere except
// Darwin — `-Wl,no-as-needed`.
func link(objectPath, archivePath, exePath string) error {
	args := []string{"-v", "-fno-pie", "-pthread", "-ldl"}
	if runtime.GOOS != "darwin" {
		args = append(args, "-Wl,no-as-needed")
	}
	args = append(args, objectPath, archivePath, "-o", exePath)

	cmd := exec.Command(GccProgram, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("linking %s: %w: %s", exePath, err, stderr.String())
	}
	return nil
}

// Run executes `./program/main` and returns its captured stdout, which
// cmd/zhoo's `run` subcommand prints — that subcommand's entire contract (spec.md §6), mirrored directly
// from zhoo-driver's `running` function.
func Run() (string, error) {
	program := filepath.Join(".", PathOutputDirectory, EntryPoint)
	cmd := exec.Command(program)
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("running %s: %w", program, err)
	}
	return string(out), nil
}
