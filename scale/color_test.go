package scale

import (
	"image/color"
	"strconv"
	"testing"

	gg "github.com/Alipsa/matrix-gg"
	"github.com/Alipsa/matrix-gg/palette"
)

func TestContinuousColorEnds(t *testing.T) {
	s := NewContinuousColor(palette.Viridis)
	s.Train(gg.Num(0), gg.Num(10))

	lo, ok := s.Transform(gg.Num(0))
	if !ok {
		t.Fatal("transform(0) failed")
	}
	hi, ok := s.Transform(gg.Num(10))
	if !ok {
		t.Fatal("transform(10) failed")
	}
	if lo == hi {
		t.Error("ramp ends identical")
	}
	if lo != palette.Viridis.Map(0) {
		t.Errorf("low = %v, want ramp start", lo)
	}
	if hi != palette.Viridis.Map(1) {
		t.Errorf("high = %v, want ramp end", hi)
	}
}

func TestContinuousColorDirection(t *testing.T) {
	s := NewContinuousColor(palette.Viridis)
	s.Direction = -1
	s.Train(gg.Num(0), gg.Num(10))
	lo, _ := s.Transform(gg.Num(0))
	if lo != palette.Viridis.Map(1) {
		t.Errorf("reversed low = %v, want ramp end", lo)
	}
}

func TestContinuousColorDegenerate(t *testing.T) {
	s := NewContinuousColor(palette.Grays)
	s.Train(gg.Num(4))
	got, ok := s.Transform(gg.Num(4))
	if !ok || got != palette.Grays.Map(0.5) {
		t.Errorf("degenerate = %v, %v, want ramp midpoint", got, ok)
	}
}

func TestContinuousColorRejectsLevels(t *testing.T) {
	s := NewContinuousColor(nil)
	s.Train(gg.Num(0), gg.Num(1))
	if _, ok := s.Transform(gg.Level("a")); ok {
		t.Error("level mapped on continuous color scale")
	}
}

func TestDiscreteColor(t *testing.T) {
	pal := &palette.Palette{Colors: []color.Color{
		color.RGBA{1, 0, 0, 255},
		color.RGBA{0, 1, 0, 255},
	}}
	s := NewDiscreteColor(pal)
	s.Train(gg.Level("a"), gg.Level("b"), gg.Level("a"))

	ca, ok := s.Transform(gg.Level("a"))
	if !ok || ca != pal.Colors[0] {
		t.Errorf("a = %v, %v", ca, ok)
	}
	cb, _ := s.Transform(gg.Level("b"))
	if cb != pal.Colors[1] {
		t.Errorf("b = %v", cb)
	}
	if _, ok := s.Transform(gg.Level("z")); ok {
		t.Error("unseen level mapped")
	}
}

func TestIdentityColor(t *testing.T) {
	var s IdentityColor
	got, ok := s.Transform(gg.Level("steelblue"))
	if !ok || got != palette.MustParse("steelblue") {
		t.Errorf("steelblue = %v, %v", got, ok)
	}
	if _, ok := s.Transform(gg.Level("nocolor")); ok {
		t.Error("bad color string mapped")
	}
	if _, ok := s.Transform(gg.Num(3)); ok {
		t.Error("number mapped by identity color scale")
	}
}

var newColorErrTests = []struct {
	kind string
	p    gg.Params
}{
	{"nope", nil},
	{"viridis", gg.Params{"begin": 0.8, "end": 0.2}},
	{"viridis", gg.Params{"direction": 2}},
	{"viridis", gg.Params{"option": "nosuchramp"}},
	{"discrete", gg.Params{"palette": "nosuchpalette"}},
	{"discrete", gg.Params{"values": []any{"red", "notacolor"}}},
	{"gradient", gg.Params{"low": "huh"}},
}

func TestNewColorErrors(t *testing.T) {
	for i, tc := range newColorErrTests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			_, err := NewColor(tc.kind, tc.p, nil)
			if err == nil {
				t.Fatalf("NewColor(%q, %v): want error", tc.kind, tc.p)
			}
			if _, ok := err.(*ConfigError); !ok {
				t.Errorf("error type %T, want *ConfigError", err)
			}
		})
	}
}

func TestNewColorKinds(t *testing.T) {
	for _, kind := range []string{"", "discrete", "continuous", "viridis", "gradient", "identity"} {
		s, err := NewColor(kind, nil, nil)
		if err != nil || s == nil {
			t.Errorf("NewColor(%q) = %v, %v", kind, s, err)
		}
	}
	s, err := NewColor("discrete", gg.Params{"values": []any{"red", "#00ff00"}}, nil)
	if err != nil {
		t.Fatalf("manual values: %v", err)
	}
	s.Train(gg.Level("a"))
	if c, ok := s.Transform(gg.Level("a")); !ok || c != palette.MustParse("red") {
		t.Errorf("manual a = %v, %v", c, ok)
	}
}
