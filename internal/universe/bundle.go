package universe

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"universe-builder/internal/artifact"
	"universe-builder/internal/catalog"
	"universe-builder/internal/planet"
	"universe-builder/internal/shared/config"
)

const (
	KindCatalog   = "star_catalog"
	KindMap       = "star_map"
	KindObjects   = "system_objects"
	KindArtifacts = "system_objects_artifacts"
	KindBundle    = "universe"
	KindSummary   = "summary"
)

// File is one rendered output held in memory until the whole run succeeded.
type File struct {
	Kind string
	Name string
	Data []byte
}

// renderData renders the four data tables that the fingerprint covers.
func renderData(cat *catalog.Catalog, rows []planet.ObjectRow, names config.OutputConfig) ([]File, error) {
	var catalogCSV bytes.Buffer
	if err := catalog.WriteCSV(&catalogCSV, cat.Stars); err != nil {
		return nil, err
	}

	objects := make([]planet.CelestialObject, len(rows))
	for i, r := range rows {
		objects[i] = r.CelestialObject
	}
	var objectsCSV bytes.Buffer
	if err := planet.WriteCSV(&objectsCSV, objects); err != nil {
		return nil, err
	}

	var artifactsCSV bytes.Buffer
	if err := artifact.WriteCSV(&artifactsCSV, rows); err != nil {
		return nil, err
	}

	return []File{
		{Kind: KindCatalog, Name: names.CatalogFile, Data: catalogCSV.Bytes()},
		{Kind: KindMap, Name: names.MapFile, Data: []byte(cat.Map.String())},
		{Kind: KindObjects, Name: names.ObjectsFile, Data: objectsCSV.Bytes()},
		{Kind: KindArtifacts, Name: names.ArtifactFile, Data: artifactsCSV.Bytes()},
	}, nil
}

// Files renders every output of the universe: the data tables, universe.json
// and the summary.
func (u *Universe) Files(names config.OutputConfig) ([]File, error) {
	files, err := renderData(u.Catalog, u.Objects, names)
	if err != nil {
		return nil, fmt.Errorf("failed to render universe tables: %w", err)
	}

	bundle, err := json.MarshalIndent(Bundle{
		Metadata: u.Metadata,
		Stars:    u.Catalog.Stars,
		Objects:  u.Objects,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode universe bundle: %w", err)
	}

	return append(files,
		File{Kind: KindBundle, Name: names.BundleFile, Data: append(bundle, '\n')},
		File{Kind: KindSummary, Name: names.SummaryFile, Data: []byte(u.Summary())},
	), nil
}

// Summary is a short human-readable report of the run.
func (u *Universe) Summary() string {
	m := u.Metadata
	var b strings.Builder
	fmt.Fprintf(&b, "Universe: %s\n", m.Name)
	fmt.Fprintf(&b, "Seed: %d\n", m.Seed)
	fmt.Fprintf(&b, "Fingerprint: %s\n", m.Fingerprint)
	fmt.Fprintf(&b, "\nCatalog (radius %.1f ly, scale %.2f ly/cell, max %d stars)\n", m.RadiusLY, m.Scale, m.MaxStars)
	fmt.Fprintf(&b, "  loaded rows:        %d\n", m.Report.Loaded)
	fmt.Fprintf(&b, "  skipped rows:       %d\n", m.Report.SkippedRows)
	fmt.Fprintf(&b, "  within radius:      %d\n", m.Report.WithinRadius)
	fmt.Fprintf(&b, "  selected:           %d\n", m.Report.Selected)
	fmt.Fprintf(&b, "  pruned off map:     %d\n", m.Report.PrunedOffMap)
	fmt.Fprintf(&b, "  pruned collisions:  %d\n", m.Report.PrunedCollision)
	fmt.Fprintf(&b, "  stars:              %d\n", m.StarCount)

	if home, ok := u.Catalog.Home(); ok {
		fmt.Fprintf(&b, "  home star:          %s at (%d,%d)\n", home.Name, home.GridX, home.GridY)
	}

	counts := make(map[planet.ClassCode]int)
	moons := 0
	for _, o := range u.Objects {
		counts[o.Class]++
		if o.IsMoon {
			moons++
		}
	}
	fmt.Fprintf(&b, "\nObjects (max %d primaries per system)\n", m.MaxPrimaries)
	fmt.Fprintf(&b, "  total:              %d\n", m.ObjectCount)
	fmt.Fprintf(&b, "  moons:              %d\n", moons)
	for _, c := range planet.AllClasses {
		fmt.Fprintf(&b, "  %s:                 %d\n", c, counts[c])
	}

	fmt.Fprintf(&b, "\nArtifacts (rate %.3f)\n", m.ArtifactRate)
	fmt.Fprintf(&b, "  eligible:           %d\n", m.Artifacts.Eligible)
	fmt.Fprintf(&b, "  flagged:            %d\n", m.Artifacts.Flagged)
	types := make([]string, 0, len(m.Artifacts.ByType))
	for t := range m.Artifacts.ByType {
		types = append(types, string(t))
	}
	slices.Sort(types)
	for _, t := range types {
		fmt.Fprintf(&b, "  %s:                %d\n", t, m.Artifacts.ByType[artifact.Type(t)])
	}
	return b.String()
}

// WriteFiles writes every file into dir. Each file goes to a temporary name
// in dir first and is renamed into place, so a failed run never leaves a
// truncated output behind.
func WriteFiles(dir string, files []File) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	temps := make([]string, 0, len(files))
	defer func() {
		for _, t := range temps {
			os.Remove(t)
		}
	}()

	for _, f := range files {
		tmp, err := os.CreateTemp(dir, "."+f.Name+".*")
		if err != nil {
			return fmt.Errorf("failed to create temp file for %s: %w", f.Name, err)
		}
		temps = append(temps, tmp.Name())

		if err := tmp.Chmod(0o644); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to set mode on %s: %w", f.Name, err)
		}
		if _, err := tmp.Write(f.Data); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to write %s: %w", f.Name, err)
		}
		if err := tmp.Close(); err != nil {
			return fmt.Errorf("failed to close %s: %w", f.Name, err)
		}
	}

	for i, f := range files {
		if err := os.Rename(temps[i], filepath.Join(dir, f.Name)); err != nil {
			return fmt.Errorf("failed to commit %s: %w", f.Name, err)
		}
	}
	return nil
}
