// Command zhoo is the compiler's CLI entry point: `compile` lowers and
// links one source file into program/main, `run` executes it and prints
// its captured stdout.
//
// Grounded on original_source/compiler/zhoo-driver/src/cmd/handle/
// {compile,run}.rs (the two subcommands and their settings) reimplemented
// with github.com/urfave/cli/v3 (other_examples/manifests/rubiojr-rugo)
// instead of clap. The original wraps each subcommand's body in an async
// block joined on a spawned thread so the CLI front-end stays responsive
// and the OS can clean up if the worker aborts the process (spec.md §5,
// §9); onWorker reproduces that intent with a joinable goroutine instead
// of importing any coroutine runtime.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/monsieurbadia/zhoo/internal/driver"
	"github.com/urfave/cli/v3"
)

// onWorker runs fn on its own goroutine and blocks until it finishes,
// converting a panic into an error rather than letting it escape —
// mirroring the original's `thread::spawn(...).join()`, whose Err arm is
// exactly "the worker panicked".
func onWorker(fn func() error) (err error) {
	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- fmt.Errorf("internal error: %v", r)
			}
		}()
		done <- fn()
	}()
	return <-done
}

func compileAction(_ context.Context, cmd *cli.Command) error {
	settings := driver.Settings{
		Input:   cmd.String("input"),
		AST:     cmd.Bool("ast"),
		IR:      cmd.Bool("ir"),
		Backend: cmd.String("backend"),
	}

	fmt.Println("compiling the program")

	return onWorker(func() error {
		return driver.Compile(settings)
	})
}

func runAction(_ context.Context, _ *cli.Command) error {
	fmt.Println("running the program")

	return onWorker(func() error {
		out, err := driver.Run()
		if err != nil {
			return err
		}
		if out != "" {
			fmt.Println()
			fmt.Print(out)
		}
		return nil
	})
}

func main() {
	cmd := &cli.Command{
		Name:  "zhoo",
		Usage: "an ahead-of-time compiler for the zhoo language",
		Commands: []*cli.Command{
			{
				Name:  "compile",
				Usage: "compile a zhoo source file into a standalone executable",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Required: true, Usage: "path of the program to compile"},
					&cli.BoolFlag{Name: "ast", Usage: "print the AST of the program"},
					&cli.BoolFlag{Name: "ir", Usage: "print the IR of the program"},
					&cli.StringFlag{Name: "backend", Aliases: []string{"b"}, Value: driver.BackendCranelift, Usage: "the backend to use"},
				},
				Action: compileAction,
			},
			{
				Name:   "run",
				Usage:  "run the most recently compiled program",
				Action: runAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
