package gg

import (
	"fmt"
	"strings"
)

// ClassPrefix starts every CSS class the renderers attach.
const ClassPrefix = "gg-"

// Class returns the CSS class for elements drawn by geom g, e.g.
// "gg-point". Compound geoms add suffixed classes for their parts,
// such as "gg-boxplot-whisker".
func Class(g GeomKind) string { return ClassPrefix + g.String() }

// CSSConfig controls the styling hooks written on geometry elements.
// Everything is off by default; CSSAttributes returns the fully
// enabled configuration. Chart furniture (axes, grid, legend) always
// carries its classes regardless.
type CSSConfig struct {
	// Classes attaches the geom class, e.g. "gg-point", plus the
	// part suffixed classes of compound geoms.
	Classes bool

	// IDs attaches a stable per-element id in the form
	// {prefix}-layer-{i}-{geom}-{n}, with the panel position spliced
	// in on faceted charts.
	IDs bool

	// DataAttributes records the source data of each element in
	// data-* attributes (x, y, group, row, layer, panel).
	DataAttributes bool

	// IDPrefix replaces the leading "gg" of element ids, so multiple
	// charts can share a document without id collisions. The prefix
	// is normalized through SanitizeID.
	IDPrefix string
}

// CSSAttributes returns a CSSConfig with every hook enabled. An empty
// prefix keeps the default "gg".
func CSSAttributes(prefix string) CSSConfig {
	return CSSConfig{Classes: true, IDs: true, DataAttributes: true, IDPrefix: prefix}
}

// Enabled reports whether any styling hook is written.
func (c CSSConfig) Enabled() bool { return c.Classes || c.IDs || c.DataAttributes }

// Prefix returns the normalized id prefix, "gg" when unset.
func (c CSSConfig) Prefix() string {
	if c.IDPrefix == "" {
		return "gg"
	}
	return SanitizeID(c.IDPrefix)
}

// ID joins the prefix and parts into a sanitized id token.
func (c CSSConfig) ID(parts ...string) string {
	if !c.IDs {
		return ""
	}
	return SanitizeID(c.Prefix() + "-" + strings.Join(parts, "-"))
}

// ElementID returns the id for the n-th element drawn by layer i's
// geom. Faceted charts include the panel position so ids stay unique
// across panels.
func (c CSSConfig) ElementID(panelRow, panelCol, layer int, g GeomKind, n int, faceted bool) string {
	if !c.IDs {
		return ""
	}
	if faceted {
		return c.ID("panel", fmt.Sprint(panelRow), fmt.Sprint(panelCol),
			"layer", fmt.Sprint(layer), g.String(), fmt.Sprint(n))
	}
	return c.ID("layer", fmt.Sprint(layer), g.String(), fmt.Sprint(n))
}

// SanitizeID lowercases s and maps every run of characters outside
// [a-z0-9-] to a single dash so the result is a safe XML id.
func SanitizeID(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	dash := false
	for _, r := range strings.ToLower(s) {
		ok := r == '-' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !ok {
			dash = true
			continue
		}
		if r == '-' {
			dash = true
			continue
		}
		if dash && b.Len() > 0 {
			b.WriteByte('-')
		}
		dash = false
		b.WriteRune(r)
	}
	return b.String()
}
