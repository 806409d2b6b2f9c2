package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dgallion1/apidocs/internal/apitree"
	"github.com/dgallion1/apidocs/internal/config"
	"github.com/dgallion1/apidocs/internal/discover"
	"github.com/dgallion1/apidocs/internal/fragment"
)

// Generator produces markdown fragments for one extraction directory.
type Generator interface {
	Generate(ctx context.Context, inputDir, outputDir string) error
}

// Orchestrator runs doc generation for every discovered package.
type Orchestrator struct {
	gen       Generator
	log       *slog.Logger
	cfg       config.Config
	fragments func(dir string) fragment.Reader
}

// NewOrchestrator creates a pipeline reading fragments from disk.
func NewOrchestrator(cfg config.Config, gen Generator, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		gen: gen,
		log: log,
		cfg: cfg,
		fragments: func(dir string) fragment.Reader {
			return fragment.DirReader{Dir: dir}
		},
	}
}

// Run processes packages one at a time. A failed package does not stop the
// run; the returned error lists every package that failed.
func (o *Orchestrator) Run(ctx context.Context) (Summary, error) {
	roots := discover.ParseRoots(o.cfg.Packages)
	pkgs, err := discover.Packages(o.cfg.InputDir, roots)
	if err != nil {
		return Summary{}, err
	}
	o.log.Info("discovered packages", "count", len(pkgs), "input_dir", o.cfg.InputDir)

	var sum Summary
	for _, p := range pkgs {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		job := newJob(apitree.PackageName(o.cfg.Scope, p.Path), p.Path)
		sum.Jobs = append(sum.Jobs, job)
		o.process(ctx, job, p)
	}

	if failed := sum.Failed(); len(failed) > 0 {
		return sum, fmt.Errorf("%d of %d packages failed: %s", len(failed), len(sum.Jobs), failedNames(failed))
	}
	return sum, nil
}
