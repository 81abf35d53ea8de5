package sink

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/matzehuels/scatterplot/pkg/chart"
	"github.com/matzehuels/scatterplot/pkg/dataset"
	"github.com/matzehuels/scatterplot/pkg/interact"
)

func buildChart(t *testing.T, rows ...[3]string) *chart.Chart {
	t.Helper()
	cols := dataset.DefaultColumns()
	out := make([]dataset.Row, len(rows))
	for i, r := range rows {
		out[i] = dataset.Row{cols.Name: r[0], cols.Earnings: r[1], cols.Debt: r[2]}
	}
	c, err := chart.Build(dataset.ParseRows(out, cols, dataset.PolicyHide), chart.Options{})
	if err != nil {
		t.Fatalf("chart.Build: %v", err)
	}
	return c
}

func sample(t *testing.T) *chart.Chart {
	return buildChart(t,
		[3]string{"Alpha & Sons", "40000", "20000"},
		[3]string{"Beta", "60000", "10000"},
		[3]string{"Gamma", "PrivacySuppressed", "5000"},
	)
}

func TestRenderSVGStatic(t *testing.T) {
	svg, err := RenderSVG(sample(t))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	s := string(svg)

	if !strings.HasPrefix(s, "<svg") || !strings.HasSuffix(s, "</svg>\n") {
		t.Error("output is not an svg document")
	}
	if got := strings.Count(s, "<circle"); got != 2 {
		t.Errorf("circles = %d, want 2 (hidden mark skipped)", got)
	}
	for _, want := range []string{
		`width="800" height="600"`,
		`transform="translate(100,50)"`,
		`class="axis axis-x" transform="translate(0,490)"`,
		`transform="rotate(-90)"`,
		chart.DefaultTitle,
		chart.DefaultXLabel,
		chart.DefaultYLabel,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("svg missing %q", want)
		}
	}
	if strings.Contains(s, "<script") {
		t.Error("static svg should not embed a script")
	}
	if strings.Contains(s, "data-tooltip") {
		t.Error("static svg should not carry tooltip data")
	}
}

func TestRenderSVGWellFormed(t *testing.T) {
	svg, err := RenderSVG(sample(t), WithInteraction(interact.DefaultConfig()))
	if err != nil {
		t.Fatal(err)
	}
	dec := xml.NewDecoder(bytes.NewReader(svg))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("svg is not well-formed XML: %v", err)
		}
	}
}

func TestRenderSVGInteractive(t *testing.T) {
	c := sample(t)
	svg, err := RenderSVG(c, WithInteraction(interact.DefaultConfig()))
	if err != nil {
		t.Fatal(err)
	}
	s := string(svg)

	for _, want := range []string{
		`id="` + ElementID(c) + `"`,
		`id="` + ElementID(c) + `-tooltip"`,
		`data-name="Alpha &amp; Sons"`,
		`data-earnings="40000"`,
		`data-debt="20000"`,
		`data-tooltip="Alpha &amp; Sons&#xA;Median Earnings: $40000&#xA;Median Debt: $20000"`,
		`"emphasized":10`,
		`"grow":100`,
		`"hide":500`,
		`"opacity":0.9`,
		`"offsetY":-28`,
		"owner !== el.id",
		"<![CDATA[",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("interactive svg missing %q", want)
		}
	}
}

func TestRenderSVGEmpty(t *testing.T) {
	c := buildChart(t)
	svg, err := RenderSVG(c, WithInteraction(interact.DefaultConfig()))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	s := string(svg)
	if strings.Contains(s, "<circle") {
		t.Error("empty chart should have no circles")
	}
	if !strings.Contains(s, `class="axis axis-x"`) || !strings.Contains(s, `class="axis axis-y"`) {
		t.Error("empty chart should still draw both axes")
	}
}

func TestRenderHTML(t *testing.T) {
	c := sample(t)
	page, err := RenderHTML(c, WithInteraction(interact.DefaultConfig()))
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	s := string(page)

	if !strings.HasPrefix(s, "<!DOCTYPE html>") {
		t.Error("missing doctype")
	}
	div := `<div class="tooltip" data-for="` + ElementID(c) + `">`
	if !strings.Contains(s, div) {
		t.Errorf("page missing %s", div)
	}
	if strings.Index(s, div) > strings.Index(s, "<svg") {
		t.Error("tooltip div must precede the svg so the script can find it")
	}
	if strings.Contains(s, ElementID(c)+"-tooltip") {
		t.Error("html page should not include the in-svg tooltip group")
	}
	if !strings.Contains(s, "evt.pageX + cfg.offsetX") {
		t.Error("html tooltip should follow page coordinates")
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(sample(t), WithJSONInteraction(interact.DefaultConfig()), WithJSONPolicy("hide"))
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	var out struct {
		Width  float64 `json:"width"`
		Policy string  `json:"policy"`
		X      struct {
			Domain [2]float64 `json:"domain"`
			Range  [2]float64 `json:"range"`
		} `json:"x"`
		Marks []struct {
			ID       string   `json:"id"`
			Earnings *float64 `json:"earnings"`
			X        *float64 `json:"x"`
			Y        *float64 `json:"y"`
			Visible  bool     `json:"visible"`
		} `json:"marks"`
		Interaction struct {
			EmphasizedRadius float64 `json:"emphasized_radius"`
			TooltipHideMS    int64   `json:"tooltip_hide_ms"`
		} `json:"interaction"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if out.Width != 800 || out.Policy != "hide" {
		t.Errorf("width=%v policy=%q", out.Width, out.Policy)
	}
	if out.X.Domain != [2]float64{0, 60000} || out.X.Range != [2]float64{0, 670} {
		t.Errorf("x axis = %+v", out.X)
	}
	if len(out.Marks) != 3 {
		t.Fatalf("len(marks) = %d, want 3", len(out.Marks))
	}
	hidden := out.Marks[2]
	if hidden.Visible || hidden.X != nil || hidden.Y != nil || hidden.Earnings != nil {
		t.Errorf("hidden mark = %+v, want null coordinates", hidden)
	}
	if !out.Marks[0].Visible || out.Marks[0].X == nil {
		t.Errorf("first mark should be visible with coordinates")
	}
	if out.Interaction.EmphasizedRadius != 10 || out.Interaction.TooltipHideMS != 500 {
		t.Errorf("interaction = %+v", out.Interaction)
	}
}

func TestRenderPNG(t *testing.T) {
	png, err := RenderPNG(sample(t))
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}

func TestRenderPDF(t *testing.T) {
	pdf, err := RenderPDF(buildChart(t), WithScale(0.5))
	if err != nil {
		t.Fatalf("RenderPDF: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("output is not a PDF")
	}
}

func TestNum(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{670, "670"},
		{12.3456, "12.35"},
		{-0.001, "0"},
		{-6, "-6"},
	}
	for _, tt := range tests {
		if got := num(tt.in); got != tt.want {
			t.Errorf("num(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
