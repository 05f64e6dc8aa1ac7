package palette

import (
	"fmt"
	"image/color"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// A Library holds user-defined palettes and ramps next to the
// built-ins. Scales resolve palette names against a library so chart
// styling can live in a config file.
type Library struct {
	Palettes map[string]*Palette
	Ramps    map[string]Ramp
}

type configFile struct {
	Palettes map[string][]string `yaml:"palettes"`
	Ramps    map[string][]string `yaml:"ramps"`
}

// Load reads a palette library from YAML. The format is two maps of
// color lists:
//
//	palettes:
//	  corporate: ["#0b3d91", "steelblue", "tomato"]
//	ramps:
//	  heat: ["#ffffcc", "#fd8d3c", "#800026"]
//
// Color strings follow Parse. Unknown colors fail the load.
func Load(r io.Reader) (*Library, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var cfg configFile
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("palette: %w", err)
	}
	lib := &Library{
		Palettes: map[string]*Palette{},
		Ramps:    map[string]Ramp{},
	}
	for name, specs := range cfg.Palettes {
		cs, err := parseAll(name, specs)
		if err != nil {
			return nil, err
		}
		lib.Palettes[name] = &Palette{Name: name, Colors: cs}
	}
	for name, specs := range cfg.Ramps {
		cs, err := parseAll(name, specs)
		if err != nil {
			return nil, err
		}
		if len(cs) < 2 {
			return nil, fmt.Errorf("palette: ramp %q needs at least 2 colors", name)
		}
		rgba := make([]color.RGBA, len(cs))
		for i, c := range cs {
			r, g, b, a := rgba8(c)
			rgba[i] = color.RGBA{r, g, b, a}
		}
		lib.Ramps[name] = Gradient{Colors: rgba}
	}
	return lib, nil
}

// LoadFile reads a palette library from a YAML file.
func LoadFile(path string) (*Library, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

func parseAll(name string, specs []string) ([]color.Color, error) {
	cs := make([]color.Color, len(specs))
	for i, s := range specs {
		c, ok := Parse(s)
		if !ok {
			return nil, fmt.Errorf("palette: %q color %d: bad color %q", name, i, s)
		}
		cs[i] = c
	}
	return cs, nil
}

// Palette resolves a palette name against the library, falling back
// to the built-ins. A nil library resolves built-ins only.
func (l *Library) Palette(name string) (*Palette, bool) {
	if l != nil {
		if p, ok := l.Palettes[name]; ok {
			return p, true
		}
	}
	switch name {
	case "", "default":
		return Default, true
	case "soft":
		return Soft, true
	}
	return nil, false
}

// Ramp resolves a ramp name against the library, falling back to
// RampByName.
func (l *Library) Ramp(name string) (Ramp, bool) {
	if l != nil {
		if r, ok := l.Ramps[name]; ok {
			return r, true
		}
	}
	return RampByName(name)
}
