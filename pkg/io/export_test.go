package io

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "chart.svg")
	if err := WriteFile(path, []byte("<svg/>")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil || string(got) != "<svg/>" {
		t.Errorf("ReadFile = (%q, %v)", got, err)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %d entries", len(entries))
	}
}

func TestWriteFileInvalidPath(t *testing.T) {
	if err := WriteFile("out/", []byte("x")); err == nil {
		t.Error("directory path should be rejected")
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		formats []string
		want    map[string]string
	}{
		{"single explicit", "my.svg", []string{"svg"}, map[string]string{"svg": "my.svg"}},
		{"single default", "", []string{"png"}, map[string]string{"png": "colleges.png"}},
		{"multi default", "", []string{"svg", "json"}, map[string]string{"svg": "colleges.svg", "json": "colleges.json"}},
		{"multi base", "out/chart", []string{"svg", "html"}, map[string]string{"svg": "out/chart.svg", "html": "out/chart.html"}},
		{"multi strips known ext", "chart.svg", []string{"svg", "pdf"}, map[string]string{"svg": "chart.svg", "pdf": "chart.pdf"}},
		{"multi keeps unknown ext", "chart.v2", []string{"svg", "pdf"}, map[string]string{"svg": "chart.v2.svg", "pdf": "chart.v2.pdf"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OutputPaths(tt.output, "colleges", tt.formats)
			if len(got) != len(tt.want) {
				t.Fatalf("OutputPaths = %v, want %v", got, tt.want)
			}
			for f, p := range tt.want {
				if got[f] != p {
					t.Errorf("path[%s] = %q, want %q", f, got[f], p)
				}
			}
		})
	}
}

func TestStem(t *testing.T) {
	tests := map[string]string{
		"colleges.csv":                          "colleges",
		"data/colleges.csv":                     "colleges",
		"https://example.com/d/colleges.csv?v=2": "colleges",
		"https://example.com/":                  "example",
		"":                                      "scatterplot",
	}
	for in, want := range tests {
		if got := Stem(in); got != want {
			t.Errorf("Stem(%q) = %q, want %q", in, got, want)
		}
	}
}
