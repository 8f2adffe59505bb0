package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"

	"universe-builder/internal/artifact"
	"universe-builder/internal/catalog"
	"universe-builder/internal/planet"
	"universe-builder/internal/shared/errors"
	"universe-builder/internal/universe"

	"github.com/spf13/cobra"
)

func openInput(path, what string) (*os.File, error) {
	if path == "" {
		return nil, errors.Configf("%s is required (--input)", what)
	}
	if path == "-" {
		return os.Stdin, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapConfig("failed to open "+what, err)
	}
	return f, nil
}

// writeOutput commits data to path atomically, or writes it to stdout when
// path is "-".
func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return universe.WriteFiles(filepath.Dir(path), []universe.File{{Name: filepath.Base(path), Data: data}})
}

func (a *app) catalogCmd() *cobra.Command {
	var flags catalogFlags
	var outDir string
	var preview bool

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Build the star catalog and grid map from a raw star table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			input, params := a.catalogParams(cmd, &flags)
			in, err := openInput(input, "raw star catalog")
			if err != nil {
				return err
			}
			defer in.Close()

			cat, err := catalog.NewService(a.logger).BuildFromCSV(cmd.Context(), in, params)
			if err != nil {
				return err
			}

			var csvData bytes.Buffer
			if err := catalog.WriteCSV(&csvData, cat.Stars); err != nil {
				return err
			}

			names := a.cfg.Output
			dir := a.outDir(cmd, outDir)
			if err := universe.WriteFiles(dir, []universe.File{
				{Kind: universe.KindCatalog, Name: names.CatalogFile, Data: csvData.Bytes()},
				{Kind: universe.KindMap, Name: names.MapFile, Data: []byte(cat.Map.String())},
			}); err != nil {
				return err
			}
			a.logger.Info("Catalog written", "dir", dir, "stars", len(cat.Stars))

			if preview {
				colored := catalog.IsTerminal(os.Stdout)
				width := 0
				if colored {
					width = catalog.TerminalWidth(os.Stdout)
				}
				return catalog.Preview(os.Stdout, cat.Map, colored, width)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&outDir, "out-dir", "o", "", "output directory")
	cmd.Flags().BoolVar(&preview, "preview", false, "print the grid map to the terminal")
	return cmd
}

func (a *app) objectsCmd() *cobra.Command {
	var flags objectFlags
	var input, output string

	cmd := &cobra.Command{
		Use:   "objects",
		Short: "Generate the planets, moons and asteroids of every cataloged star",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if input == "" {
				input = filepath.Join(a.cfg.Output.Dir, a.cfg.Output.CatalogFile)
			}
			if output == "" {
				output = filepath.Join(a.cfg.Output.Dir, a.cfg.Output.ObjectsFile)
			}
			params, workers := a.planetParams(cmd, &flags)

			in, err := openInput(input, "star catalog")
			if err != nil {
				return err
			}
			defer in.Close()

			objects, err := a.generateObjects(cmd.Context(), in, params, workers)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := planet.WriteCSV(&buf, objects); err != nil {
				return err
			}
			if err := writeOutput(output, buf.Bytes()); err != nil {
				return err
			}
			a.logger.Info("Objects written", "output", output, "objects", len(objects))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&input, "input", "i", "", "star catalog CSV (default: <output dir>/star_catalog.csv)")
	cmd.Flags().StringVar(&output, "output", "", "objects CSV, or - for stdout")
	return cmd
}

func (a *app) generateObjects(ctx context.Context, r io.Reader, params planet.Params, workers int) ([]planet.CelestialObject, error) {
	stars, err := catalog.ReadCSV(r, a.logger)
	if err != nil {
		return nil, err
	}
	return planet.NewService(nil, workers, a.logger).GenerateAll(ctx, stars, params)
}

func (a *app) artifactsCmd() *cobra.Command {
	var input, output string
	var seed int64
	var rate float64

	cmd := &cobra.Command{
		Use:   "artifacts",
		Short: "Tag generated objects with alien artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if input == "" {
				input = filepath.Join(a.cfg.Output.Dir, a.cfg.Output.ObjectsFile)
			}
			if output == "" {
				output = filepath.Join(a.cfg.Output.Dir, a.cfg.Output.ArtifactFile)
			}
			if !cmd.Flags().Changed("seed") {
				seed = a.cfg.Objects.Seed
			}

			tagger, err := artifact.NewTagger(seed, a.artifactRate(cmd, rate))
			if err != nil {
				return err
			}

			in, err := openInput(input, "objects table")
			if err != nil {
				return err
			}
			defer in.Close()

			var buf bytes.Buffer
			stats, err := tagger.AugmentCSV(in, &buf, a.logger)
			if err != nil {
				return err
			}
			if err := writeOutput(output, buf.Bytes()); err != nil {
				return err
			}
			a.logger.Info("Artifacts written", "output", output, "flagged", stats.Flagged)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "objects CSV (default: <output dir>/system_objects.csv)")
	cmd.Flags().StringVar(&output, "output", "", "augmented CSV, or - for stdout")
	cmd.Flags().Int64Var(&seed, "seed", 0, "global seed")
	registerRate(cmd, &rate)
	return cmd
}
