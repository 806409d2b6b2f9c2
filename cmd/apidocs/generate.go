package main

import (
	"path/filepath"

	"github.com/dgallion1/apidocs/internal/docgen"
	"github.com/dgallion1/apidocs/internal/pipeline"
	"github.com/spf13/cobra"
)

func generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Build api.json and index.mdx for every extracted package",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.ValidateDocs(); err != nil {
				return err
			}
			gen := docgen.NewGenerator(docgen.ExecRunner{}, cfg.DocumenterBin, filepath.Dir(cfg.DocumenterBin))
			sum, err := pipeline.NewOrchestrator(cfg, gen, log).Run(cmd.Context())
			log.Info("api docs run finished",
				"packages", len(sum.Jobs),
				"completed", sum.Completed(),
				"failed", len(sum.Failed()),
			)
			return err
		},
	}
	cmd.Flags().StringVar(&cfg.InputDir, "input", cfg.InputDir, "api-extractor output directory")
	cmd.Flags().StringVar(&cfg.PackagesDir, "packages-dir", cfg.PackagesDir, "monorepo packages directory")
	cmd.Flags().StringVar(&cfg.Packages, "packages", cfg.Packages, "comma separated package paths to document")
	cmd.Flags().StringVar(&cfg.DocumenterBin, "documenter", cfg.DocumenterBin, "api-documenter binary")
	return cmd
}
