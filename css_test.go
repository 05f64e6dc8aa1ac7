package gg

import (
	"strconv"
	"testing"
)

var sanitizeIDTests = []struct {
	in   string
	want string
}{
	{"myChart", "mychart"},
	{"My Chart 2", "my-chart-2"},
	{"a--b", "a-b"},
	{"Ähem!", "hem"},
	{"-lead-", "lead"},
	{"", ""},
}

func TestSanitizeID(t *testing.T) {
	for i, tc := range sanitizeIDTests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			if got := SanitizeID(tc.in); got != tc.want {
				t.Errorf("SanitizeID(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

var elementIDTests = []struct {
	cfg     CSSConfig
	faceted bool
	want    string
}{
	{CSSConfig{}, false, ""},
	{CSSConfig{Classes: true}, false, ""},
	{CSSConfig{IDs: true}, false, "gg-layer-1-point-4"},
	{CSSConfig{IDs: true, IDPrefix: "sales"}, false, "sales-layer-1-point-4"},
	{CSSConfig{IDs: true, IDPrefix: "sales"}, true, "sales-panel-0-2-layer-1-point-4"},
	{CSSAttributes("My Chart"), false, "my-chart-layer-1-point-4"},
}

func TestElementID(t *testing.T) {
	for i, tc := range elementIDTests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			got := tc.cfg.ElementID(0, 2, 1, GeomPoint, 4, tc.faceted)
			if got != tc.want {
				t.Errorf("ElementID = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestCSSAttributes(t *testing.T) {
	cfg := CSSAttributes("")
	if !cfg.Enabled() || !cfg.Classes || !cfg.IDs || !cfg.DataAttributes {
		t.Errorf("CSSAttributes not fully enabled: %+v", cfg)
	}
	if got := cfg.Prefix(); got != "gg" {
		t.Errorf("default Prefix = %q, want gg", got)
	}
	if (CSSConfig{}).Enabled() {
		t.Error("zero config reports enabled")
	}
}

func TestParams(t *testing.T) {
	p := Params{
		"width":  0.5,
		"bins":   12,
		"method": "loess",
		"flip":   true,
		"probs":  []float64{0.25, 0.5, 0.75},
	}
	if got := p.Float("width", 1); got != 0.5 {
		t.Errorf("Float(width) = %v", got)
	}
	if got := p.Float("missing", 1); got != 1 {
		t.Errorf("Float(missing) = %v", got)
	}
	if got := p.Int("bins", 30); got != 12 {
		t.Errorf("Int(bins) = %v", got)
	}
	if got := p.Str("method", "lm"); got != "loess" {
		t.Errorf("Str(method) = %q", got)
	}
	if !p.Bool("flip", false) {
		t.Error("Bool(flip) = false")
	}
	if got := p.Floats("probs"); len(got) != 3 || got[1] != 0.5 {
		t.Errorf("Floats(probs) = %v", got)
	}
}
