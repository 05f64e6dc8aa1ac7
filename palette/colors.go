package palette

import (
	"fmt"
	"image/color"
	"strings"
)

// Named colors accepted wherever a layer parameter or YAML palette
// takes a color string. The values are the usual CSS ones.
var named = map[string]color.RGBA{
	"black":       {0x00, 0x00, 0x00, 0xff},
	"white":       {0xff, 0xff, 0xff, 0xff},
	"red":         {0xff, 0x00, 0x00, 0xff},
	"green":       {0x00, 0x80, 0x00, 0xff},
	"blue":        {0x00, 0x00, 0xff, 0xff},
	"yellow":      {0xff, 0xff, 0x00, 0xff},
	"orange":      {0xff, 0xa5, 0x00, 0xff},
	"purple":      {0x80, 0x00, 0x80, 0xff},
	"brown":       {0xa5, 0x2a, 0x2a, 0xff},
	"pink":        {0xff, 0xc0, 0xcb, 0xff},
	"gray":        {0x80, 0x80, 0x80, 0xff},
	"grey":        {0x80, 0x80, 0x80, 0xff},
	"darkgray":    {0xa9, 0xa9, 0xa9, 0xff},
	"darkgrey":    {0xa9, 0xa9, 0xa9, 0xff},
	"lightgray":   {0xd3, 0xd3, 0xd3, 0xff},
	"lightgrey":   {0xd3, 0xd3, 0xd3, 0xff},
	"dimgray":     {0x69, 0x69, 0x69, 0xff},
	"cyan":        {0x00, 0xff, 0xff, 0xff},
	"magenta":     {0xff, 0x00, 0xff, 0xff},
	"navy":        {0x00, 0x00, 0x80, 0xff},
	"teal":        {0x00, 0x80, 0x80, 0xff},
	"olive":       {0x80, 0x80, 0x00, 0xff},
	"maroon":      {0x80, 0x00, 0x00, 0xff},
	"lime":        {0x00, 0xff, 0x00, 0xff},
	"silver":      {0xc0, 0xc0, 0xc0, 0xff},
	"gold":        {0xff, 0xd7, 0x00, 0xff},
	"coral":       {0xff, 0x7f, 0x50, 0xff},
	"salmon":      {0xfa, 0x80, 0x72, 0xff},
	"tomato":      {0xff, 0x63, 0x47, 0xff},
	"crimson":     {0xdc, 0x14, 0x3c, 0xff},
	"indigo":      {0x4b, 0x00, 0x82, 0xff},
	"violet":      {0xee, 0x82, 0xee, 0xff},
	"orchid":      {0xda, 0x70, 0xd6, 0xff},
	"plum":        {0xdd, 0xa0, 0xdd, 0xff},
	"khaki":       {0xf0, 0xe6, 0x8c, 0xff},
	"beige":       {0xf5, 0xf5, 0xdc, 0xff},
	"ivory":       {0xff, 0xff, 0xf0, 0xff},
	"lavender":    {0xe6, 0xe6, 0xfa, 0xff},
	"turquoise":   {0x40, 0xe0, 0xd0, 0xff},
	"steelblue":   {0x46, 0x82, 0xb4, 0xff},
	"skyblue":     {0x87, 0xce, 0xeb, 0xff},
	"lightblue":   {0xad, 0xd8, 0xe6, 0xff},
	"darkblue":    {0x00, 0x00, 0x8b, 0xff},
	"darkred":     {0x8b, 0x00, 0x00, 0xff},
	"darkgreen":   {0x00, 0x64, 0x00, 0xff},
	"darkorange":  {0xff, 0x8c, 0x00, 0xff},
	"forestgreen": {0x22, 0x8b, 0x22, 0xff},
	"seagreen":    {0x2e, 0x8b, 0x57, 0xff},
	"royalblue":   {0x41, 0x69, 0xe1, 0xff},
	"slateblue":   {0x6a, 0x5a, 0xcd, 0xff},
	"firebrick":   {0xb2, 0x22, 0x22, 0xff},
	"chocolate":   {0xd2, 0x69, 0x1e, 0xff},
	"tan":         {0xd2, 0xb4, 0x8c, 0xff},
	"wheat":       {0xf5, 0xde, 0xb3, 0xff},
}

// Parse resolves a color string: "#rgb", "#rrggbb", "#rrggbbaa", or a
// named color. The boolean reports success.
func Parse(s string) (color.Color, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	if s[0] == '#' {
		return parseHex(s[1:])
	}
	if c, ok := named[strings.ToLower(s)]; ok {
		return c, true
	}
	return nil, false
}

// MustParse is Parse for compile-time constants in themes and demos.
// It panics on malformed input.
func MustParse(s string) color.Color {
	c, ok := Parse(s)
	if !ok {
		panic(fmt.Sprintf("palette: bad color %q", s))
	}
	return c
}

func parseHex(s string) (color.Color, bool) {
	nib := func(b byte) (uint8, bool) {
		switch {
		case b >= '0' && b <= '9':
			return b - '0', true
		case b >= 'a' && b <= 'f':
			return b - 'a' + 10, true
		case b >= 'A' && b <= 'F':
			return b - 'A' + 10, true
		}
		return 0, false
	}
	byteAt := func(i int) (uint8, bool) {
		hi, ok1 := nib(s[i])
		lo, ok2 := nib(s[i+1])
		return hi<<4 | lo, ok1 && ok2
	}
	switch len(s) {
	case 3:
		r, ok1 := nib(s[0])
		g, ok2 := nib(s[1])
		b, ok3 := nib(s[2])
		if !ok1 || !ok2 || !ok3 {
			return nil, false
		}
		return color.RGBA{r<<4 | r, g<<4 | g, b<<4 | b, 0xff}, true
	case 6:
		r, ok1 := byteAt(0)
		g, ok2 := byteAt(2)
		b, ok3 := byteAt(4)
		if !ok1 || !ok2 || !ok3 {
			return nil, false
		}
		return color.RGBA{r, g, b, 0xff}, true
	case 8:
		r, ok1 := byteAt(0)
		g, ok2 := byteAt(2)
		b, ok3 := byteAt(4)
		a, ok4 := byteAt(6)
		if !ok1 || !ok2 || !ok3 || !ok4 {
			return nil, false
		}
		return color.RGBA{r, g, b, a}, true
	}
	return nil, false
}

// Hex renders c as "#rrggbb", or "#rrggbbaa" when not fully opaque.
// SVG attributes carry colors in this form.
func Hex(c color.Color) string {
	r, g, b, a := rgba8(c)
	if a == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", r, g, b)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", r, g, b, a)
}
