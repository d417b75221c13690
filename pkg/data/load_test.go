package data

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gitlab.com/tinyland/lab/timebrush/pkg/coerce"
)

var loadNow = time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)

func TestLoadCSVWithHeader(t *testing.T) {
	in := "value,date\n5,2020-01-01\n20,2020-01-10\n,\n"
	res, err := LoadAt(strings.NewReader(in), FormatCSV, loadNow)
	if err != nil {
		t.Fatalf("LoadAt: %v", err)
	}
	if len(res.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(res.Items))
	}
	if res.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", res.Skipped)
	}
	if res.Items[1].Value != 20 || !res.Items[1].Date.Equal(time.Date(2020, 1, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("item 1 = %v", res.Items[1])
	}
}

func TestLoadCSVWithoutHeader(t *testing.T) {
	in := "2020-01-01T10:00:00Z,3\n2020-01-01T11:00:00Z\n"
	res, err := LoadAt(strings.NewReader(in), FormatCSV, loadNow)
	if err != nil {
		t.Fatalf("LoadAt: %v", err)
	}
	if len(res.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(res.Items))
	}
	if res.Items[1].Value != 1 {
		t.Errorf("missing value = %v, want 1", res.Items[1].Value)
	}
}

func TestLoadJSON(t *testing.T) {
	in := `[
		{"date": "2020-01-01", "value": 5},
		{"date": 2014, "value": "2.5"},
		{"date": null, "value": 1},
		{"date": 1577836800000}
	]`
	res, err := LoadAt(strings.NewReader(in), FormatJSON, loadNow)
	if err != nil {
		t.Fatalf("LoadAt: %v", err)
	}
	if len(res.Items) != 3 || res.Skipped != 1 {
		t.Fatalf("items = %d skipped = %d, want 3 and 1", len(res.Items), res.Skipped)
	}
	if res.Items[1].Date.Year() != 2014 || res.Items[1].Value != 2.5 {
		t.Errorf("year row = %v", res.Items[1])
	}
	if !res.Items[2].Date.Equal(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("epoch row = %v", res.Items[2].Date)
	}
}

func TestLoadYAML(t *testing.T) {
	in := `
- date: "2020-01-01"
  value: 5
- date: "12:33"
  value: 7
`
	res, err := LoadAt(strings.NewReader(in), FormatYAML, loadNow)
	if err != nil {
		t.Fatalf("LoadAt: %v", err)
	}
	if len(res.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(res.Items))
	}
	want := time.Date(2026, 2, 9, 12, 33, 0, 0, time.UTC)
	if !res.Items[1].Date.Equal(want) {
		t.Errorf("clock row = %v, want %v", res.Items[1].Date, want)
	}
}

func TestLoadEmptyInputs(t *testing.T) {
	for _, f := range []Format{FormatCSV, FormatJSON, FormatYAML} {
		res, err := LoadAt(strings.NewReader(""), f, loadNow)
		if err != nil {
			t.Errorf("%s: %v", f, err)
		}
		if len(res.Items) != 0 {
			t.Errorf("%s: items = %d, want 0", f, len(res.Items))
		}
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := LoadAt(strings.NewReader("date\nnonsense\n"), FormatCSV, loadNow); !errors.Is(err, coerce.ErrUnrecognized) {
		t.Errorf("bad date err = %v, want ErrUnrecognized", err)
	}
	if _, err := LoadAt(strings.NewReader("2020-01-01,abc\n"), FormatCSV, loadNow); err == nil {
		t.Error("expected error for non-numeric value")
	}
	if _, err := LoadAt(strings.NewReader("{"), FormatJSON, loadNow); err == nil {
		t.Error("expected error for malformed JSON")
	}
	if _, err := LoadAt(strings.NewReader(""), Format("xml"), loadNow); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("xml err = %v, want ErrUnknownFormat", err)
	}
}

func TestDetectFormat(t *testing.T) {
	tests := map[string]Format{
		"a.csv":      FormatCSV,
		"b.JSON":     FormatJSON,
		"dir/c.yml":  FormatYAML,
		"dir/d.yaml": FormatYAML,
	}
	for path, want := range tests {
		got, err := DetectFormat(path)
		if err != nil || got != want {
			t.Errorf("DetectFormat(%q) = %q, %v, want %q", path, got, err, want)
		}
	}
	if _, err := DetectFormat("e.parquet"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("parquet err = %v, want ErrUnknownFormat", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.csv")
	if err := os.WriteFile(path, []byte("date\n2020-01-01\n2020-01-01\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	res, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got := Bucket(res.Items, Day, AggSum); len(got) != 1 || got[0].Value != 2 {
		t.Errorf("bucketed = %v, want one day with 2", got)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
