package main

import (
	"github.com/dgallion1/apidocs/internal/bundle"
	"github.com/spf13/cobra"
)

func submoduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submodule",
		Short: "Bundle a submodule as ESM and CommonJS and write its package.json",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.ValidateBuild(); err != nil {
				return err
			}
			return bundle.Build(cmd.Context(), bundle.Options{
				Submodule:   cfg.Submodule,
				PackageName: cfg.Scope + "/qwik/" + cfg.Submodule,
				GlobalName:  cfg.GlobalName,
				Version:     cfg.DistVersion,
				SrcDir:      cfg.SrcDir,
				DtsDir:      cfg.DtsDir,
				DistPkgDir:  cfg.DistPkgDir,
			}, log)
		},
	}
	cmd.Flags().StringVar(&cfg.Submodule, "name", cfg.Submodule, "submodule to build")
	cmd.Flags().StringVar(&cfg.DistVersion, "version", cfg.DistVersion, "version written to package.json")
	return cmd
}
