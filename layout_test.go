package cascade

import "testing"

func TestMonoFontAdvance(t *testing.T) {
	f := MonoFont{CellWidth: 10, Line: 20}
	tests := []struct {
		glyph string
		want  float64
	}{
		{"a", 10},
		{" ", 10},
		{"世", 20},
		{"é", 10},
	}
	for _, tt := range tests {
		if got := f.Advance(tt.glyph); got != tt.want {
			t.Errorf("Advance(%q) = %v, want %v", tt.glyph, got, tt.want)
		}
	}
	if f.LineHeight() != 20 {
		t.Errorf("LineHeight = %v, want 20", f.LineHeight())
	}
}

func TestLayoutContentHeight(t *testing.T) {
	tests := []struct {
		name   string
		layout Layout
		n      int
		want   float64
	}{
		{"defaults", Layout{}, 3, 4000},
		{"no sections", Layout{}, 0, 1600},
		{"explicit sizes", Layout{IntroHeight: 100, SectionHeight: 300, Gap: 50, OutroHeight: 200}, 3, 100 + 900 + 100 + 200},
		{"single with gap", Layout{Gap: 50}, 1, 2400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.layout.ContentHeight(tt.n, 800); got != tt.want {
				t.Errorf("ContentHeight = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLayoutArrange(t *testing.T) {
	sections := []SectionConfig{{Text: "Hi yo"}, {Text: "ab"}}
	e, _ := newTestEngine(t, sections, Options{
		Layout: Layout{
			IntroHeight:   100,
			SectionHeight: 300,
			Gap:           20,
			Font:          MonoFont{CellWidth: 10, Line: 40},
		},
	})

	first := e.Section(0)
	if first.Container.Top != 100 || first.Container.Height != 300 {
		t.Errorf("first container top/height = %v/%v, want 100/300", first.Container.Top, first.Container.Height)
	}
	if second := e.Section(1).Container; second.Top != 420 {
		t.Errorf("second container top = %v, want 420", second.Top)
	}

	// The space advances layout but is not a character.
	if len(first.Chars) != 4 {
		t.Fatalf("chars = %d, want 4", len(first.Chars))
	}
	wantX := []float64{0, 10, 30, 40}
	for i, want := range wantX {
		node := first.Chars[i].Node
		if node.HomeX != want || node.Width != 10 {
			t.Errorf("char %d HomeX/Width = %v/%v, want %v/10", i, node.HomeX, node.Width, want)
		}
	}
	if first.Container.Width != 50 {
		t.Errorf("container width = %v, want 50", first.Container.Width)
	}
}

func TestLayoutArrangeOnRefresh(t *testing.T) {
	e, _ := newTestEngine(t, threeTitles, Options{})
	e.Refresh(Rect{Width: 640, Height: 400})
	for i := 0; i < e.NumSections(); i++ {
		c := e.Section(i).Container
		if want := 400 * float64(i+1); c.Top != want || c.Height != 400 {
			t.Errorf("section %d top/height = %v/%v, want %v/400", i, c.Top, c.Height, want)
		}
	}
	if e.ContentHeight() != 2000 {
		t.Errorf("ContentHeight = %v, want 2000", e.ContentHeight())
	}
}

func TestSectionVisible(t *testing.T) {
	c := NewContainer("c")
	c.Top = 2000
	c.Height = 800
	viewport := Rect{Width: 1280, Height: 800}
	tests := []struct {
		name    string
		scrollY float64
		want    bool
	}{
		{"far below", 0, false},
		{"band touches bottom edge", 400, true},
		{"entering", 1500, true},
		{"band touches top edge", 3600, true},
		{"far above", 5000, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SectionVisible(c, tt.scrollY, viewport); got != tt.want {
				t.Errorf("SectionVisible(scroll %v) = %v, want %v", tt.scrollY, got, tt.want)
			}
		})
	}
}

func TestGlyphOrigin(t *testing.T) {
	container := NewContainer("c")
	container.Top = 1000
	container.Height = 800
	container.Width = 200
	glyph := NewGlyph("c/0", "a")
	glyph.HomeX = 30
	container.AddChild(glyph)

	tests := []struct {
		name         string
		cx, gy       float64
		scrollY      float64
		wantX, wantY float64
	}{
		{"at rest", 0, 0, 1000, 570, 360},
		{"pushed right", 100, 0, 1000, 770, 360},
		{"pushed left half", -50, 0, 1000, 470, 360},
		{"glyph above", 0, -150, 1000, 570, 210},
		{"scrolled", 0, 0, 600, 570, 760},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			container.X = tt.cx
			glyph.Y = tt.gy
			x, y := GlyphOrigin(1280, tt.scrollY, 80, container, glyph)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("GlyphOrigin = (%v, %v), want (%v, %v)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}
