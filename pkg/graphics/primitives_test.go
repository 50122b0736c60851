package graphics

import (
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func newTestCanvas(t *testing.T, size int) *Canvas {
	t.Helper()
	c, err := NewCanvas(size)
	if err != nil {
		t.Fatalf("NewCanvas(%d): %v", size, err)
	}
	return c
}

// colored は背景色以外のピクセルを集める
func colored(c *Canvas) map[Point]Color {
	out := make(map[Point]Color)
	for y := 0; y < c.Size(); y++ {
		for x := 0; x < c.Size(); x++ {
			if col := c.At(x, y); col != Background {
				out[Point{x, y}] = col
			}
		}
	}
	return out
}

func TestNormalizeSize(t *testing.T) {
	tests := []struct {
		input    int
		expected int
		ok       bool
	}{
		{1, 1, true},
		{3, 3, true},
		{4, 3, true},
		{2, 1, true},
		{0, 0, false},
		{-1, 0, false},
	}

	for _, tt := range tests {
		got, ok := NormalizeSize(tt.input)
		if got != tt.expected || ok != tt.ok {
			t.Errorf("NormalizeSize(%d) = %d, %v, want %d, %v", tt.input, got, ok, tt.expected, tt.ok)
		}
	}
}

func TestPaint(t *testing.T) {
	t.Run("太さ1", func(t *testing.T) {
		c := newTestCanvas(t, 5)
		c.Paint(Point{2, 2}, Brush{Color: Red, Size: 1})
		if got := colored(c); len(got) != 1 || got[Point{2, 2}] != Red {
			t.Errorf("unexpected pixels: %v", got)
		}
	})

	t.Run("太さ3は十字", func(t *testing.T) {
		c := newTestCanvas(t, 5)
		c.Paint(Point{2, 2}, Brush{Color: Red, Size: 3})
		got := colored(c)
		if len(got) != 5 {
			t.Fatalf("expected 5 pixels, got %d: %v", len(got), got)
		}
		for _, p := range []Point{{2, 2}, {1, 2}, {3, 2}, {2, 1}, {2, 3}} {
			if got[p] != Red {
				t.Errorf("pixel %v not painted", p)
			}
		}
	})

	t.Run("端では切り取られる", func(t *testing.T) {
		c := newTestCanvas(t, 5)
		c.Paint(Point{0, 0}, Brush{Color: Red, Size: 5})
		// 半径2の円の第1象限: (0,0),(1,0),(2,0),(0,1),(1,1),(0,2)
		if got := colored(c); len(got) != 6 {
			t.Errorf("expected 6 pixels, got %d: %v", len(got), got)
		}
	})

	t.Run("透明ブラシ", func(t *testing.T) {
		c := newTestCanvas(t, 5)
		c.Paint(Point{2, 2}, Brush{Color: Transparent, Size: 3})
		if got := colored(c); len(got) != 0 {
			t.Errorf("transparent brush painted %v", got)
		}
	})
}

func TestWalk(t *testing.T) {
	c := newTestCanvas(t, 5)

	tests := []struct {
		from     Point
		dx, dy   int
		steps    int
		expected Point
	}{
		{Point{0, 0}, 1, 0, 3, Point{3, 0}},
		{Point{0, 0}, 1, 1, 10, Point{4, 4}},
		{Point{2, 2}, -1, 0, 5, Point{0, 2}},
		{Point{2, 2}, 0, 1, 0, Point{2, 2}},
		{Point{2, 2}, 0, 1, -4, Point{2, 2}},
	}

	for _, tt := range tests {
		if got := c.Walk(tt.from, tt.dx, tt.dy, tt.steps); got != tt.expected {
			t.Errorf("Walk(%v, %d, %d, %d) = %v, want %v", tt.from, tt.dx, tt.dy, tt.steps, got, tt.expected)
		}
	}
}

func TestDrawLine(t *testing.T) {
	c := newTestCanvas(t, 5)
	brush := Brush{Color: Blue, Size: 1}

	end := c.DrawLine(Point{0, 0}, 1, 0, 3, brush)

	if end != (Point{3, 0}) {
		t.Errorf("end = %v, want (3,0)", end)
	}
	got := colored(c)
	if len(got) != 4 {
		t.Fatalf("expected 4 pixels, got %d: %v", len(got), got)
	}
	for x := 0; x <= 3; x++ {
		if got[Point{x, 0}] != Blue {
			t.Errorf("pixel (%d,0) not blue", x)
		}
	}
}

func TestDrawLine_StopsAtEdge(t *testing.T) {
	c := newTestCanvas(t, 5)

	end := c.DrawLine(Point{3, 3}, 1, 1, 10, Brush{Color: Red, Size: 1})

	if end != (Point{4, 4}) {
		t.Errorf("end = %v, want (4,4)", end)
	}
	if got := colored(c); len(got) != 2 {
		t.Errorf("expected 2 pixels, got %v", got)
	}
}

func TestDrawLine_ZeroDistance(t *testing.T) {
	c := newTestCanvas(t, 5)

	end := c.DrawLine(Point{1, 1}, 0, 1, 0, Brush{Color: Red, Size: 1})

	if end != (Point{1, 1}) {
		t.Errorf("end = %v, want (1,1)", end)
	}
	if got := colored(c); len(got) != 1 {
		t.Errorf("expected only the start pixel, got %v", got)
	}
}

// finishesWithin はfnがdの間に終わることを確認する
func finishesWithin(t *testing.T, d time.Duration, fn func()) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	select {
	case <-done:
	case <-time.After(d):
		t.Fatalf("did not finish within %v", d)
	}
}

func TestHugeArguments(t *testing.T) {
	c := newTestCanvas(t, 8)
	brush := Brush{Color: Red, Size: 1}

	t.Run("DrawLine", func(t *testing.T) {
		var end Point
		finishesWithin(t, 2*time.Second, func() {
			end = c.DrawLine(Point{0, 0}, 1, 0, 1<<40, brush)
		})
		if end != (Point{7, 0}) {
			t.Errorf("end = %v, want (7,0)", end)
		}
	})

	t.Run("Walk", func(t *testing.T) {
		var end Point
		finishesWithin(t, 2*time.Second, func() {
			end = c.Walk(Point{3, 3}, 0, -1, 1<<40)
		})
		if end != (Point{3, 0}) {
			t.Errorf("end = %v, want (3,0)", end)
		}
	})

	t.Run("DrawCircle", func(t *testing.T) {
		finishesWithin(t, 2*time.Second, func() {
			c.DrawCircle(Point{3, 3}, 4_000_000_000, brush)
		})
	})

	t.Run("DrawRectangle", func(t *testing.T) {
		finishesWithin(t, 2*time.Second, func() {
			c.DrawRectangle(Point{3, 3}, 1<<40, 1<<40, brush)
		})
	})

	t.Run("Paint", func(t *testing.T) {
		c := newTestCanvas(t, 8)
		finishesWithin(t, 2*time.Second, func() {
			c.Paint(Point{3, 3}, Brush{Color: Blue, Size: 1<<40 + 1})
		})
		if got := c.Count(Blue, 0, 0, 7, 7); got != 64 {
			t.Errorf("blue pixels = %d, want 64", got)
		}
	})
}

func TestDrawCircle(t *testing.T) {
	c := newTestCanvas(t, 5)

	c.DrawCircle(Point{2, 2}, 2, Brush{Color: Red, Size: 1})

	expected := []Point{
		{0, 1}, {0, 2}, {0, 3},
		{1, 0}, {2, 0}, {3, 0},
		{4, 1}, {4, 2}, {4, 3},
		{1, 4}, {2, 4}, {3, 4},
	}
	got := colored(c)
	if len(got) != len(expected) {
		t.Fatalf("expected %d pixels, got %d: %v", len(expected), len(got), got)
	}
	for _, p := range expected {
		if got[p] != Red {
			t.Errorf("pixel %v not painted", p)
		}
	}
}

func TestDrawCircle_Clipped(t *testing.T) {
	c := newTestCanvas(t, 3)

	// 範囲外の点は描かれず、パニックもしない
	c.DrawCircle(Point{0, 0}, 2, Brush{Color: Red, Size: 1})

	got := colored(c)
	if got[Point{2, 0}] != Red || got[Point{0, 2}] != Red {
		t.Errorf("expected the in-bounds arc to be painted, got %v", got)
	}
}

func TestDrawRectangle(t *testing.T) {
	tests := []struct {
		name     string
		w, h     int
		expected []Point
	}{
		{
			name: "3x3",
			w:    3, h: 3,
			expected: []Point{{1, 1}, {2, 1}, {3, 1}, {1, 2}, {3, 2}, {1, 3}, {2, 3}, {3, 3}},
		},
		{
			name: "偶数は右下に伸びる",
			w:    4, h: 2,
			expected: []Point{{1, 2}, {2, 2}, {3, 2}, {4, 2}, {1, 3}, {2, 3}, {3, 3}, {4, 3}},
		},
		{
			name: "1x1",
			w:    1, h: 1,
			expected: []Point{{2, 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCanvas(t, 5)
			c.DrawRectangle(Point{2, 2}, tt.w, tt.h, Brush{Color: Green, Size: 1})

			got := colored(c)
			if len(got) != len(tt.expected) {
				t.Fatalf("expected %d pixels, got %d: %v", len(tt.expected), len(got), got)
			}
			for _, p := range tt.expected {
				if got[p] != Green {
					t.Errorf("pixel %v not painted", p)
				}
			}
		})
	}
}

// Property: (1,0,d)の直線は N×N のキャンバスで min(d, N-1)+1 ピクセルを塗る
func TestProperty_DrawLineLength(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("horizontal line length is clipped by the canvas", prop.ForAll(
		func(size, dist int) bool {
			c, err := NewCanvas(size)
			if err != nil {
				return false
			}
			end := c.DrawLine(Point{0, 0}, 1, 0, dist, Brush{Color: Black, Size: 1})
			want := min(dist, size-1)
			return len(colored(c)) == want+1 && end == Point{want, 0}
		},
		gen.IntRange(1, 40),
		gen.IntRange(0, 60),
	))

	properties.TestingRun(t)
}

// Property: どの描画もキャンバスの外に出ない
func TestProperty_DrawingNeverPanics(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("circles and rectangles are clipped", prop.ForAll(
		func(x, y, r, size int) bool {
			c, _ := NewCanvas(8)
			brush := Brush{Color: Red, Size: size*2 + 1}
			c.DrawCircle(Point{x, y}, r, brush)
			c.DrawRectangle(Point{x, y}, r+1, r+2, brush)
			return c.Size() == 8
		},
		gen.IntRange(-3, 10),
		gen.IntRange(-3, 10),
		gen.IntRange(0, 12),
		gen.IntRange(0, 3),
	))

	properties.TestingRun(t)
}
