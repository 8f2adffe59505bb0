package artifact

import (
	"bytes"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"testing"

	"universe-builder/internal/planet"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTagFieldsWithFullRate(t *testing.T) {
	tests := []struct {
		seed     int64
		sid, oid string
		want     Type
	}{
		{0, "0", "0", TypeRelic},
		{0, "0", "1", TypeRuins},
		{0, "17", "3", TypeEnergy},
		{42, "0", "0", TypeFacility},
		{42, "0", "1", TypeBeacon},
	}
	for _, tt := range tests {
		tagger, err := NewTagger(tt.seed, 1)
		if err != nil {
			t.Fatal(err)
		}
		got := tagger.TagFields(tt.sid, tt.oid, "RP")
		if !got.Flag || got.Type != tt.want {
			t.Errorf("seed %d %s:%s = %+v, want %s", tt.seed, tt.sid, tt.oid, got, tt.want)
		}
	}
}

func TestTagFieldsThreshold(t *testing.T) {
	tagger, _ := NewTagger(0, DefaultRate)

	flagged := map[[2]string]Type{
		{"46", "1"}: TypeRelic,
		{"48", "1"}: TypeRuins,
		{"65", "1"}: TypeRelic,
	}
	for ids, want := range flagged {
		if got := tagger.TagFields(ids[0], ids[1], "im"); !got.Flag || got.Type != want {
			t.Errorf("%v = %+v, want flagged %s", ids, got, want)
		}
	}

	// h_main/2^32 is about 0.059 here, above the default rate.
	if got := tagger.TagFields("0", "1", "RP"); got.Flag {
		t.Errorf("0:1 should not be flagged at rate %v", DefaultRate)
	}
}

func TestGasGiantsAreNeverTagged(t *testing.T) {
	tagger, _ := NewTagger(0, 1)
	for sid := 0; sid < 50; sid++ {
		o := planet.CelestialObject{SystemID: sid, ObjectID: 0, Class: planet.ClassGasGiant}
		if tag := tagger.Tag(o); tag.Flag || tag.Type != "" {
			t.Fatalf("gas giant tagged: %+v", tag)
		}
	}
	if Eligible(planet.ClassGasGiant) || !Eligible(planet.ClassAsteroid) {
		t.Error("unexpected eligibility")
	}
}

func TestZeroRateTagsNothing(t *testing.T) {
	tagger, _ := NewTagger(7, 0)
	for sid := 0; sid < 200; sid++ {
		if tag := tagger.TagFields(strconv.Itoa(sid), "0", "RP"); tag.Flag {
			t.Fatalf("tag with zero rate: %+v", tag)
		}
	}
}

func TestNewTaggerRejectsBadRate(t *testing.T) {
	for _, rate := range []float64{-0.1, 1.01} {
		if _, err := NewTagger(0, rate); err == nil {
			t.Errorf("rate %v accepted", rate)
		}
	}
}

func TestAugmentCSV(t *testing.T) {
	input := strings.Join([]string{
		"system_id,object_id,name,class,extra",
		"0,0,Earth,RP,keep",
		"0,1,Jove,GG,",
		"17,3,Far,ic",
	}, "\n") + "\n"

	tagger, _ := NewTagger(0, 1)
	var out bytes.Buffer
	stats, err := tagger.AugmentCSV(strings.NewReader(input), &out, discardLogger())
	if err != nil {
		t.Fatalf("AugmentCSV: %v", err)
	}

	want := strings.Join([]string{
		"system_id,object_id,name,class,extra,artifact_flag,artifact_type",
		"0,0,Earth,RP,keep,1,ARC",
		"0,1,Jove,GG,,0,",
		"17,3,Far,ic,,1,ENG",
	}, "\n") + "\n"
	if out.String() != want {
		t.Errorf("output:\n%s\nwant:\n%s", out.String(), want)
	}
	if stats.Objects != 3 || stats.Eligible != 2 || stats.Flagged != 2 || stats.ByType[TypeEnergy] != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestAugmentCSVOverwritesExistingColumns(t *testing.T) {
	input := "artifact_type,system_id,object_id,class,artifact_flag\nTEC,0,1,GG,1\n"

	tagger, _ := NewTagger(0, 1)
	var out bytes.Buffer
	if _, err := tagger.AugmentCSV(strings.NewReader(input), &out, discardLogger()); err != nil {
		t.Fatal(err)
	}
	want := "artifact_type,system_id,object_id,class,artifact_flag\n,0,1,GG,0\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestWriteCSVMatchesAugment(t *testing.T) {
	objects := planet.Generate(planetStar(), planet.Params{})
	tagger, _ := NewTagger(3, 0.5)

	var plain bytes.Buffer
	if err := planet.WriteCSV(&plain, objects); err != nil {
		t.Fatal(err)
	}
	var augmented bytes.Buffer
	if _, err := tagger.AugmentCSV(&plain, &augmented, discardLogger()); err != nil {
		t.Fatal(err)
	}

	var direct bytes.Buffer
	if err := WriteCSV(&direct, tagger.TagAll(objects)); err != nil {
		t.Fatal(err)
	}
	if augmented.String() != direct.String() {
		t.Errorf("direct and augmented output differ:\n%s\n---\n%s", direct.String(), augmented.String())
	}
}
