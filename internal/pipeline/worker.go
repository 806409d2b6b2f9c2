package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/apidocs/internal/apitree"
	"github.com/dgallion1/apidocs/internal/discover"
	"github.com/dgallion1/apidocs/internal/render"
	"github.com/dgallion1/apidocs/internal/transform"
)

// process runs generation, transformation and emission for a single package.
func (o *Orchestrator) process(ctx context.Context, job *Job, p discover.Package) {
	log := o.log.With("job_id", job.ID, "package", job.Package)
	log.Info("generate API markdown docs")

	// Phase 1: fragments
	job.SetStatus(StatusGenerating)
	mdDir := o.cfg.MarkdownDir(markdownDirName(p.Path))
	if err := os.MkdirAll(mdDir, 0o755); err != nil {
		log.Error("create markdown dir failed", "dir", mdDir, "error", err)
		job.Fail(fmt.Errorf("create markdown dir: %w", err))
		return
	}
	if err := o.gen.Generate(ctx, p.Dir, mdDir); err != nil {
		log.Error("markdown generation failed", "error", err)
		job.Fail(err)
		return
	}

	// Phase 2: transform
	job.SetStatus(StatusTransforming)
	root, err := loadExtract(p.ExtractFile)
	if err != nil {
		log.Error("load extraction failed", "file", p.ExtractFile, "error", err)
		job.Fail(err)
		return
	}
	t := transform.New(o.fragments(mdDir), log, transform.Options{
		Scope:          o.cfg.Scope,
		FragmentPrefix: o.cfg.FragmentPrefix,
	})
	data, err := t.Transform(job.Package, root)
	if err != nil {
		log.Error("transform failed", "error", err)
		job.Fail(err)
		return
	}
	job.Members = len(data.Members)

	// Phase 3: emit
	job.SetStatus(StatusWriting)
	res, err := render.Write(filepath.Join(o.cfg.DocsRoutesDir(), data.ID), data)
	if err != nil {
		log.Error("write output failed", "error", err)
		job.Fail(err)
		return
	}
	job.OutputDir = res.Dir
	job.ContentHash = res.ContentHash

	job.SetStatus(StatusCompleted)
	log.Info("package docs written", "members", job.Members, "dir", res.Dir, "content_hash", res.ContentHash)
}

func loadExtract(path string) (*apitree.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open extraction: %w", err)
	}
	defer f.Close()
	return apitree.Parse(f)
}

// markdownDirName names the fragment directory of a package path, leaving out
// the "core" entry point segment.
func markdownDirName(path []string) string {
	parts := make([]string, 0, len(path))
	for _, s := range path {
		if s != "core" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "-")
}
