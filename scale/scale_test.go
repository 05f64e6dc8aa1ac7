package scale

import (
	"math"
	"strconv"
	"testing"

	gg "github.com/Alipsa/matrix-gg"
)

var nan = math.NaN()

var intervalUpdateTests = []struct {
	old  Interval
	x    float64
	want Interval
}{
	{Interval{3, 6}, 4, Interval{3, 6}},
	{Interval{3, 6}, 2, Interval{2, 6}},
	{Interval{3, 6}, 7, Interval{3, 7}},
	{Interval{nan, nan}, nan, Interval{nan, nan}},
	{Interval{nan, nan}, 5, Interval{5, 5}},
	{Interval{5, 5}, nan, Interval{5, 5}},
}

func TestIntervalUpdate(t *testing.T) {
	for i, tc := range intervalUpdateTests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			got := tc.old
			got.Update(tc.x)
			if !got.Equal(tc.want) {
				t.Errorf("%v update %v = %v, want %v",
					tc.old, tc.x, got, tc.want)
			}
		})
	}
}

func TestContinuousTransform(t *testing.T) {
	s := NewContinuous()
	s.TrainFloats(0, 100)
	s.SetRange(0, 400)

	tests := []struct {
		x    float64
		want float64
	}{
		{0, 0},
		{50, 200},
		{100, 400},
		{25, 100},
		{125, 500}, // outside the domain still maps linearly
	}
	for _, tc := range tests {
		got, ok := s.TransformFloat(tc.x)
		if !ok || !equal64(got, tc.want) {
			t.Errorf("TransformFloat(%v) = %v, %v, want %v", tc.x, got, ok, tc.want)
		}
	}

	if _, ok := s.TransformFloat(nan); ok {
		t.Error("NaN transformed")
	}
	if _, ok := s.Transform(gg.Level("abc")); ok {
		t.Error("level transformed on continuous scale")
	}
}

func TestContinuousReversed(t *testing.T) {
	s := NewContinuous()
	s.Reversed = true
	s.TrainFloats(0, 100)
	s.SetRange(0, 400)
	if got, _ := s.TransformFloat(0); !equal64(got, 400) {
		t.Errorf("reversed 0 = %v, want 400", got)
	}
	if got, _ := s.TransformFloat(100); !equal64(got, 0) {
		t.Errorf("reversed 100 = %v, want 0", got)
	}
	if got, _ := s.TransformFloat(25); !equal64(got, 300) {
		t.Errorf("reversed 25 = %v, want 300", got)
	}
}

func TestContinuousDegenerate(t *testing.T) {
	s := NewContinuous()
	s.TrainFloats(5)
	s.SetRange(0, 400)
	got, ok := s.TransformFloat(5)
	if !ok || got != 200 {
		t.Errorf("degenerate transform = %v, %v, want 200", got, ok)
	}
	got, ok = s.TransformFloat(99)
	if !ok || got != 200 {
		t.Errorf("degenerate transform(99) = %v, %v, want 200", got, ok)
	}
}

func TestContinuousUntrained(t *testing.T) {
	s := NewContinuous()
	s.SetRange(0, 400)
	if _, ok := s.TransformFloat(5); ok {
		t.Error("untrained scale transformed")
	}
	if got := s.Ticks(5); got != nil {
		t.Errorf("untrained Ticks = %v", got)
	}
}

func TestContinuousInverseRoundTrip(t *testing.T) {
	s := NewContinuous()
	s.TrainFloats(10, 90)
	s.SetRange(0, 640)
	for _, x := range []float64{10, 37.5, 64, 90} {
		y, ok := s.TransformFloat(x)
		if !ok {
			t.Fatalf("transform(%v) failed", x)
		}
		back, ok := s.Inverse(y)
		if !ok || !equal64(back, x) {
			t.Errorf("Inverse(%v) = %v, %v, want %v", y, back, ok, x)
		}
	}
}

func TestContinuousExpand(t *testing.T) {
	s := NewContinuous()
	s.Expand.Rel = 0.05
	s.TrainFloats(0, 100)
	s.SetRange(0, 110)
	// Domain becomes [-5, 105], so -5 hits the range start.
	if got, _ := s.TransformFloat(-5); !equal64(got, 0) {
		t.Errorf("expanded -5 = %v, want 0", got)
	}
	if got, _ := s.TransformFloat(105); !equal64(got, 110) {
		t.Errorf("expanded 105 = %v, want 110", got)
	}
}

func TestContinuousFixedDomain(t *testing.T) {
	s := NewContinuous()
	s.TrainFloats(0, 1000)
	s.Domain = Interval{0, 50}
	s.SetRange(0, 100)
	if got, _ := s.TransformFloat(25); !equal64(got, 50) {
		t.Errorf("fixed domain 25 = %v, want 50", got)
	}
}

func TestLog10Scale(t *testing.T) {
	s := NewLog10()
	s.TrainFloats(1, 1000, -50, 0) // nonpositive values must not train
	s.SetRange(0, 3)
	if got, ok := s.TransformFloat(10); !ok || !equal64(got, 1) {
		t.Errorf("log 10 = %v, %v, want 1", got, ok)
	}
	if _, ok := s.TransformFloat(0); ok {
		t.Error("log scale placed 0")
	}
	if _, ok := s.TransformFloat(-4); ok {
		t.Error("log scale placed -4")
	}
	if s.Data.Min != 1 {
		t.Errorf("Data.Min = %v, want 1", s.Data.Min)
	}
}

func TestDiscreteCenters(t *testing.T) {
	s := NewDiscrete("a", "b", "c")
	s.SetRange(0, 300)

	wants := map[string]float64{"a": 50, "b": 150, "c": 250}
	for level, want := range wants {
		got, ok := s.Transform(gg.Level(level))
		if !ok || !equal64(got, want) {
			t.Errorf("Transform(%q) = %v, %v, want %v", level, got, ok, want)
		}
	}
	if bw := s.Bandwidth(); !equal64(bw, 100) {
		t.Errorf("Bandwidth = %v, want 100", bw)
	}
	if _, ok := s.Transform(gg.Level("z")); ok {
		t.Error("unknown level transformed")
	}
	if _, ok := s.Inverse(150); ok {
		t.Error("discrete Inverse defined")
	}
}

func TestDiscreteFractionalCodes(t *testing.T) {
	s := NewDiscrete("a", "b")
	s.SetRange(0, 200)
	// Half way between the two band centers.
	if got, ok := s.TransformFloat(0.5); !ok || !equal64(got, 100) {
		t.Errorf("TransformFloat(0.5) = %v, %v, want 100", got, ok)
	}
}

func TestDiscreteReversed(t *testing.T) {
	s := NewDiscrete("a", "b", "c")
	s.Reversed = true
	s.SetRange(0, 300)
	if got, _ := s.Transform(gg.Level("a")); !equal64(got, 250) {
		t.Errorf("reversed a = %v, want 250", got)
	}
	if got, _ := s.Transform(gg.Level("c")); !equal64(got, 50) {
		t.Errorf("reversed c = %v, want 50", got)
	}
}

func TestDiscreteTrainOrder(t *testing.T) {
	s := NewDiscrete()
	s.Train(gg.Level("x"), gg.Level("y"), gg.Level("x"), gg.Num(3))
	want := []string{"x", "y", "3"}
	got := s.Levels()
	if len(got) != len(want) {
		t.Fatalf("Levels = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Levels[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestIdentityScale(t *testing.T) {
	s := NewIdentity()
	s.TrainFloats(3, 9)
	if got, ok := s.TransformFloat(7); !ok || got != 7 {
		t.Errorf("identity = %v, %v, want 7", got, ok)
	}
	if _, ok := s.TransformFloat(nan); ok {
		t.Error("identity placed NaN")
	}
	if back, ok := s.Inverse(7); !ok || back != 7 {
		t.Errorf("identity inverse = %v, %v", back, ok)
	}
}

var newPositionalErrTests = []struct {
	kind string
	p    gg.Params
}{
	{"nope", nil},
	{"linear", gg.Params{"limits": []float64{5}}},
	{"linear", gg.Params{"limits": []float64{9, 1}}},
	{"log10", gg.Params{"limits": []float64{-1, 10}}},
	{"linear", gg.Params{"expand": []float64{-0.1, 0}}},
}

func TestNewPositionalErrors(t *testing.T) {
	for i, tc := range newPositionalErrTests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			_, err := NewPositional(tc.kind, tc.p)
			if err == nil {
				t.Fatalf("NewPositional(%q, %v): want error", tc.kind, tc.p)
			}
			if _, ok := err.(*ConfigError); !ok {
				t.Errorf("error type %T, want *ConfigError", err)
			}
		})
	}
}

func TestNewPositionalKinds(t *testing.T) {
	for _, kind := range []string{"", "linear", "log10", "sqrt", "discrete", "identity"} {
		s, err := NewPositional(kind, nil)
		if err != nil || s == nil {
			t.Errorf("NewPositional(%q) = %v, %v", kind, s, err)
		}
	}
	s, err := NewPositional("linear", gg.Params{"limits": []float64{0, 10}, "reverse": true})
	if err != nil {
		t.Fatalf("NewPositional: %v", err)
	}
	c := s.(*Continuous)
	if !c.Reversed || c.Domain.Min != 0 || c.Domain.Max != 10 {
		t.Errorf("params not applied: %+v", c)
	}
}

var niceNumTests = []struct {
	x     float64
	round bool
	want  float64
}{
	{1, false, 1},
	{7, false, 10},
	{2.5, true, 2},
	{25, true, 20},
	{0.23, true, 0.2},
	{4.9, true, 5},
	{-7, false, -10},
	{0, true, 0},
}

func TestNiceNum(t *testing.T) {
	for i, tc := range niceNumTests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			if got := NiceNum(tc.x, tc.round); !equal64(got, tc.want) {
				t.Errorf("NiceNum(%v, %v) = %v, want %v", tc.x, tc.round, got, tc.want)
			}
		})
	}
}

var breaksTests = []struct {
	min, max float64
	n        int
	want     []float64
}{
	{0, 100, 5, []float64{0, 20, 40, 60, 80, 100}},
	{0, 7, 5, []float64{0, 2, 4, 6, 8}},
	{1.7, 9.2, 5, []float64{0, 2, 4, 6, 8, 10}},
	{-30, 30, 5, []float64{-40, -20, 0, 20, 40}},
}

func TestBreaks(t *testing.T) {
	for i, tc := range breaksTests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			got := Breaks(tc.min, tc.max, tc.n)
			if len(got) != len(tc.want) {
				t.Fatalf("Breaks(%v,%v,%d) = %v, want %v",
					tc.min, tc.max, tc.n, got, tc.want)
			}
			for j := range got {
				if !equal64(got[j], tc.want[j]) {
					t.Errorf("break %d = %v, want %v", j, got[j], tc.want[j])
				}
			}
		})
	}
}

func TestTicksInsideDomain(t *testing.T) {
	s := NewContinuous()
	s.TrainFloats(1.7, 9.2)
	s.SetRange(0, 100)
	for _, tick := range s.Ticks(5) {
		if tick.Value < 1.7 || tick.Value > 9.2 {
			t.Errorf("tick %v outside domain", tick.Value)
		}
	}
}

var formatTickTests = []struct {
	v, step float64
	want    string
}{
	{0, 1, "0"},
	{25, 25, "25"},
	{0.30000000000000004, 0.1, "0.3"},
	{2.5, 0.5, "2.5"},
	{1500, 500, "1500"},
}

func TestFormatTick(t *testing.T) {
	for i, tc := range formatTickTests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			if got := FormatTick(tc.v, tc.step); got != tc.want {
				t.Errorf("FormatTick(%v, %v) = %q, want %q",
					tc.v, tc.step, got, tc.want)
			}
		})
	}
}
