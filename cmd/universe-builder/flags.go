package main

import (
	"github.com/spf13/cobra"

	"universe-builder/internal/artifact"
	"universe-builder/internal/catalog"
	"universe-builder/internal/planet"
	"universe-builder/internal/universe"
)

// Flags override the loaded configuration only when given on the command
// line, so defaults stay in one place.

type catalogFlags struct {
	input    string
	radius   float64
	maxStars int
	scale    float64
}

func (f *catalogFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "raw star catalog CSV (HYG format)")
	cmd.Flags().Float64Var(&f.radius, "radius", 0, "maximum distance from the home star in light-years")
	cmd.Flags().IntVar(&f.maxStars, "max-stars", 0, "maximum number of stars kept, nearest first")
	cmd.Flags().Float64Var(&f.scale, "scale", 0, "light-years per grid cell")
}

func (a *app) catalogParams(cmd *cobra.Command, f *catalogFlags) (string, catalog.Params) {
	c := a.cfg.Catalog
	if cmd.Flags().Changed("input") {
		c.InputCSV = f.input
	}
	if cmd.Flags().Changed("radius") {
		c.RadiusLY = f.radius
	}
	if cmd.Flags().Changed("max-stars") {
		c.MaxStars = f.maxStars
	}
	if cmd.Flags().Changed("scale") {
		c.Scale = f.scale
	}
	return c.InputCSV, catalog.Params{RadiusLY: c.RadiusLY, MaxStars: c.MaxStars, Scale: c.Scale}
}

type objectFlags struct {
	seed         int64
	maxPrimaries int
	workers      int
}

func (f *objectFlags) register(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "global seed")
	cmd.Flags().IntVar(&f.maxPrimaries, "max-primaries", 0, "maximum primary objects per system")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "systems generated concurrently")
}

func (a *app) planetParams(cmd *cobra.Command, f *objectFlags) (planet.Params, int) {
	o := a.cfg.Objects
	if cmd.Flags().Changed("seed") {
		o.Seed = f.seed
	}
	if cmd.Flags().Changed("max-primaries") {
		o.MaxPrimaries = f.maxPrimaries
	}
	if cmd.Flags().Changed("workers") {
		o.Workers = f.workers
	}
	return planet.Params{GlobalSeed: o.Seed, MaxPrimaries: o.MaxPrimaries}, o.Workers
}

func registerRate(cmd *cobra.Command, rate *float64) {
	cmd.Flags().Float64Var(rate, "rate", artifact.DefaultRate, "share of eligible objects hosting an artifact")
}

func (a *app) artifactRate(cmd *cobra.Command, rate float64) float64 {
	if cmd.Flags().Changed("rate") {
		return rate
	}
	return a.cfg.Artifacts.Rate
}

type universeFlags struct {
	catalog catalogFlags
	objects objectFlags
	rate    float64
	name    string
	outDir  string
}

func (f *universeFlags) register(cmd *cobra.Command) {
	f.catalog.register(cmd)
	f.objects.register(cmd)
	registerRate(cmd, &f.rate)
	cmd.Flags().StringVar(&f.name, "name", "", "universe name")
	cmd.Flags().StringVarP(&f.outDir, "out-dir", "o", "", "output directory")
}

func (a *app) universeParams(cmd *cobra.Command, f *universeFlags) (string, universe.Params, int) {
	input, catalogParams := a.catalogParams(cmd, &f.catalog)
	planetParams, workers := a.planetParams(cmd, &f.objects)
	return input, universe.Params{
		Name:         f.name,
		Catalog:      catalogParams,
		Planet:       planetParams,
		ArtifactRate: a.artifactRate(cmd, f.rate),
	}, workers
}

func (a *app) outDir(cmd *cobra.Command, dir string) string {
	if cmd.Flags().Changed("out-dir") {
		return dir
	}
	return a.cfg.Output.Dir
}
