package docgen

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// Runner executes an external command in dir.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) error
}

// ExecRunner runs commands as child processes sharing the caller's stdio.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Generator produces per-symbol markdown fragments from an extraction
// directory using api-documenter.
type Generator struct {
	runner Runner
	bin    string
	dir    string
}

// NewGenerator returns a Generator invoking bin from working directory dir.
func NewGenerator(runner Runner, bin, dir string) *Generator {
	return &Generator{runner: runner, bin: bin, dir: dir}
}

// Generate writes fragments for the package in inputDir into outputDir.
func (g *Generator) Generate(ctx context.Context, inputDir, outputDir string) error {
	err := g.runner.Run(ctx, g.dir, g.bin,
		"markdown",
		"--input-folder", inputDir,
		"--output-folder", outputDir,
	)
	if err != nil {
		return fmt.Errorf("api-documenter %s: %w", inputDir, err)
	}
	return nil
}
