package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/scatterplot/pkg/cache"
	"github.com/matzehuels/scatterplot/pkg/config"
	perrors "github.com/matzehuels/scatterplot/pkg/errors"
	"github.com/matzehuels/scatterplot/pkg/interact"
	"github.com/matzehuels/scatterplot/pkg/observability"
	"github.com/matzehuels/scatterplot/pkg/pipeline"
)

const sampleCSV = `Name,Median Earnings 8 years After Entry,Median Debt on Graduation
Alpha College,40000,20000
Beta University,60000,25000
Gamma Institute,N/A,18000
`

// isolate points the config and cache directories at temp dirs so tests
// never see the user's files.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	t.Cleanup(observability.Reset)
	return cacheHome
}

func writeCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "colleges.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRenderCommand(t *testing.T) {
	isolate(t)
	input := writeCSV(t)
	base := filepath.Join(t.TempDir(), "out", "chart")

	if _, err := runCommand(t, "render", input, "-f", "svg,json", "-o", base, "--no-cache"); err != nil {
		t.Fatalf("render error: %v", err)
	}

	svg, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatalf("read svg: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Error("svg output missing <svg element")
	}
	if !bytes.Contains(svg, []byte("<script")) {
		t.Error("svg output missing hover script with tooltip enabled")
	}
	if _, err := os.Stat(base + ".json"); err != nil {
		t.Errorf("json output not written: %v", err)
	}
}

func TestRenderCommandSingleOutput(t *testing.T) {
	isolate(t)
	input := writeCSV(t)
	out := filepath.Join(t.TempDir(), "plot.svg")

	if _, err := runCommand(t, "render", input, "-o", out, "--tooltip=false", "--title", "Debt vs Earnings"); err != nil {
		t.Fatalf("render error: %v", err)
	}

	svg, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read svg: %v", err)
	}
	if bytes.Contains(svg, []byte("<script")) {
		t.Error("--tooltip=false should omit the hover script")
	}
	if !bytes.Contains(svg, []byte("Debt vs Earnings")) {
		t.Error("--title not applied")
	}
}

func TestRenderCommandErrors(t *testing.T) {
	isolate(t)
	input := writeCSV(t)

	tests := []struct {
		name string
		args []string
		code perrors.Code
	}{
		{"bad policy", []string{"render", input, "--invalid", "bogus"}, perrors.ErrCodeInvalidPolicy},
		{"bad format", []string{"render", input, "-f", "gif"}, perrors.ErrCodeInvalidFormat},
		{"missing file", []string{"render", filepath.Join(t.TempDir(), "nope.csv")}, perrors.ErrCodeFileNotFound},
		{"bad scale", []string{"render", input, "-f", "png", "--scale", "0"}, perrors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCommand(t, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !perrors.Is(err, tt.code) {
				t.Errorf("error code = %s, want %s (%v)", perrors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestRenderCommandMalformedCSVDetail(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "bad.csv")
	bad := "Name,Median Earnings 8 years After Entry,Median Debt on Graduation\nA\"b,1,2\n"
	if err := os.WriteFile(path, []byte(bad), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := runCommand(t, "render", path, "--no-cache")
	if !perrors.Is(err, perrors.ErrCodeInvalidInput) {
		t.Fatalf("error = %v, want INVALID_INPUT", err)
	}
	msg := perrors.Detail(err)
	if !strings.Contains(msg, "read csv row 1") || !strings.Contains(msg, "bare \"") {
		t.Errorf("Detail() = %q, want the row and the csv reason", msg)
	}
}

func TestCompletionCommand(t *testing.T) {
	isolate(t)

	for _, shell := range completionShells {
		t.Run(shell, func(t *testing.T) {
			out, err := runCommand(t, "completion", shell)
			if err != nil {
				t.Fatalf("completion %s error: %v", shell, err)
			}
			if !strings.Contains(out, appName) {
				t.Errorf("%s script does not mention %s", shell, appName)
			}
		})
	}

	if _, err := runCommand(t, "completion", "tcsh"); err == nil {
		t.Error("completion should reject unknown shells")
	}
}

func TestFlagValueCompletion(t *testing.T) {
	isolate(t)

	tests := []struct {
		args []string
		want []string
	}{
		{[]string{"__complete", "render", "x.csv", "--invalid", ""}, []string{"hide", "zero", "drop"}},
		{[]string{"__complete", "stats", "x.csv", "--invalid", ""}, []string{"hide", "zero", "drop"}},
		{[]string{"__complete", "render", "x.csv", "--format", ""}, formatNames()},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args[1:], " "), func(t *testing.T) {
			out, err := runCommand(t, tt.args...)
			if err != nil {
				t.Fatalf("completion error: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("completions %q missing %q", out, want)
				}
			}
		})
	}
}

func TestChartFlagsApply(t *testing.T) {
	var flags chartFlags
	cmd := &cobra.Command{Use: "test"}
	flags.register(cmd)
	if err := cmd.ParseFlags([]string{"--width", "1024", "--invalid", "zero"}); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Labels.Title = "From config"
	if err := flags.apply(cmd, &cfg); err != nil {
		t.Fatalf("apply error: %v", err)
	}

	if cfg.Frame.Width != 1024 {
		t.Errorf("Frame.Width = %g, want 1024", cfg.Frame.Width)
	}
	if cfg.Data.Invalid != "zero" {
		t.Errorf("Data.Invalid = %q, want zero", cfg.Data.Invalid)
	}
	if cfg.Labels.Title != "From config" {
		t.Errorf("unset --title overrode config: %q", cfg.Labels.Title)
	}
	if cfg.Frame.Height != config.Default().Frame.Height {
		t.Errorf("unset --height changed Frame.Height to %g", cfg.Frame.Height)
	}
}

func TestChartFlagsApplyInvalid(t *testing.T) {
	var flags chartFlags
	cmd := &cobra.Command{Use: "test"}
	flags.register(cmd)
	if err := cmd.ParseFlags([]string{"--height", "10"}); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	if err := flags.apply(cmd, &cfg); err == nil {
		t.Error("apply should reject a frame with no plot area")
	}
}

func TestConfigShowCommand(t *testing.T) {
	isolate(t)

	out, err := runCommand(t, "config", "show")
	if err != nil {
		t.Fatalf("config show error: %v", err)
	}
	cfg, err := config.Decode(out)
	if err != nil {
		t.Fatalf("config show output does not decode: %v\n%s", err, out)
	}
	if cfg.Frame != config.Default().Frame {
		t.Errorf("Frame = %+v, want defaults", cfg.Frame)
	}
}

func TestConfigShowCommandFromFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.toml")
	if err := os.WriteFile(path, []byte("[labels]\ntitle = \"Custom\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCommand(t, "--config", path, "config", "show")
	if err != nil {
		t.Fatalf("config show error: %v", err)
	}
	if !strings.Contains(out, `"Custom"`) {
		t.Errorf("config show output missing custom title:\n%s", out)
	}
}

func TestCacheClearCommand(t *testing.T) {
	cacheHome := isolate(t)
	dir := filepath.Join(cacheHome, appName)

	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, key := range []string{"source:a", "artifact:b"} {
		if err := fc.Set(ctx, key, []byte("data"), time.Hour); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := runCommand(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear error: %v", err)
	}
	if _, ok, _ := fc.Get(ctx, "source:a"); ok {
		t.Error("entry survived cache clear")
	}
}

func TestCacheCommandUnsupportedBackend(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "redis.toml")
	if err := os.WriteFile(path, []byte("[cache]\nbackend = \"redis\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := runCommand(t, "--config", path, "cache", "path")
	if !perrors.Is(err, perrors.ErrCodeUnsupported) {
		t.Errorf("cache path with redis backend: err = %v, want UNSUPPORTED", err)
	}
}

func TestStatsLine(t *testing.T) {
	fresh := statsLine(3, 2, false)
	for _, want := range []string{"3 rows", "2 drawn", iconFresh} {
		if !strings.Contains(fresh, want) {
			t.Errorf("statsLine() = %q, missing %q", fresh, want)
		}
	}
	if cached := statsLine(3, 2, true); !strings.Contains(cached, iconCached) {
		t.Errorf("statsLine(cached) = %q, missing %q", cached, iconCached)
	}
}

func TestPrintSummary(t *testing.T) {
	isolate(t)
	input := writeCSV(t)
	cfg := config.Default()

	runner := pipeline.NewRunner(nil, nil, log.New(io.Discard))
	result, err := runner.Prepare(context.Background(), pipeline.Options{Source: input, Config: &cfg})
	if err != nil {
		t.Fatalf("Prepare error: %v", err)
	}

	var buf bytes.Buffer
	printSummary(&buf, result, cfg)
	out := buf.String()
	for _, want := range []string{cfg.Labels.Title, "Chart ID", result.Chart.ID, "hide", "Earnings"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestInspectModelHover(t *testing.T) {
	cfg := config.Default()
	records, err := pipeline.Parse([]byte(sampleCSV), cfg)
	if err != nil {
		t.Fatal(err)
	}
	c, err := pipeline.Layout(records, cfg)
	if err != nil {
		t.Fatal(err)
	}

	m := newInspectModel(c, cfg.InteractConfig())
	if m.hovered != 0 {
		t.Fatalf("initial hovered = %d, want 0", m.hovered)
	}
	if got := m.ctrl.State(0); got != interact.Emphasized {
		t.Errorf("mark 0 state = %s, want emphasized", got)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(inspectModel)
	if m.hovered != 1 {
		t.Fatalf("hovered after down = %d, want 1", m.hovered)
	}
	if got := m.ctrl.State(0); got != interact.Resting {
		t.Errorf("mark 0 state after leave = %s, want resting", got)
	}
	if got := m.ctrl.State(1); got != interact.Emphasized {
		t.Errorf("mark 1 state = %s, want emphasized", got)
	}
	if owner := m.ctrl.Tooltip().Owner; owner != 1 {
		t.Errorf("tooltip owner = %d, want 1", owner)
	}
	if len(m.last) == 0 {
		t.Error("cursor move recorded no transitions")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(inspectModel)
	if m.hovered != 2 {
		t.Fatalf("hovered after second down = %d, want 2", m.hovered)
	}
	if m.status == "" {
		t.Error("hovering a hidden mark should set a status message")
	}
	if !strings.Contains(m.View(), c.Marks[2].ID) {
		t.Error("view should show the hovered mark id")
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	h := logHooks{logger: newLogger(&buf, log.DebugLevel)}
	ctx := context.Background()

	h.OnCacheSet(ctx, "artifact", 2048)
	h.OnLoadComplete(ctx, "colleges.csv", 512, time.Millisecond, nil)

	out := buf.String()
	for _, want := range []string{"cache set", "2.0 kB", "load done", "colleges.csv"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}
