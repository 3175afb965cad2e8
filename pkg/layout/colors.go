package layout

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorSource produces display colors for new leaves as #rrggbb strings.
type ColorSource interface {
	NextColor() string
}

// Palette names a family of generated colors.
type Palette string

// Supported palettes.
const (
	// PaletteHappy gives saturated, mid-bright colors.
	PaletteHappy Palette = "happy"
	// PalettePastel gives light, desaturated colors.
	PalettePastel Palette = "pastel"
	// PaletteRandom picks uniformly from the 24-bit RGB cube.
	PaletteRandom Palette = "random"
)

// Palettes lists the supported palette names.
func Palettes() []Palette {
	return []Palette{PaletteHappy, PalettePastel, PaletteRandom}
}

// ParsePalette converts a string to a Palette.
func ParsePalette(s string) (Palette, error) {
	p := Palette(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Palettes() {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown palette %q (available: happy, pastel, random)", s)
}

// PaletteSource generates colors from a palette. It is safe for concurrent use.
type PaletteSource struct {
	palette Palette

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewPaletteSource creates a PaletteSource. A nil rnd is seeded from the clock.
func NewPaletteSource(p Palette, rnd *rand.Rand) *PaletteSource {
	if rnd == nil {
		seed := uint64(time.Now().UnixNano())
		rnd = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	return &PaletteSource{palette: p, rnd: rnd}
}

// NewSeededPaletteSource creates a PaletteSource with a fixed seed, giving the
// same color sequence on every run.
func NewSeededPaletteSource(p Palette, seed uint64) *PaletteSource {
	return NewPaletteSource(p, rand.New(rand.NewPCG(seed, seed)))
}

// NextColor returns the next color.
func (s *PaletteSource) NextColor() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var c colorful.Color
	switch s.palette {
	case PalettePastel:
		c = colorful.Hsv(s.rnd.Float64()*360, 0.2+s.rnd.Float64()*0.2, 0.85+s.rnd.Float64()*0.15)
	case PaletteRandom:
		c = colorful.Color{R: s.rnd.Float64(), G: s.rnd.Float64(), B: s.rnd.Float64()}
	default:
		c = colorful.Hsv(s.rnd.Float64()*360, 0.7+s.rnd.Float64()*0.3, 0.6+s.rnd.Float64()*0.3)
	}
	return c.Clamped().Hex()
}

// FixedColors cycles through a fixed list of colors.
type FixedColors struct {
	colors []string

	mu sync.Mutex
	i  int
}

// NewFixedColors creates a FixedColors source. An empty list yields "#808080".
func NewFixedColors(colors ...string) *FixedColors {
	return &FixedColors{colors: colors}
}

// NextColor returns the next color of the list, wrapping around.
func (f *FixedColors) NextColor() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.colors) == 0 {
		return "#808080"
	}
	c := f.colors[f.i%len(f.colors)]
	f.i++
	return c
}

// ContrastText returns a text color readable on the given background.
// Unparseable input is treated as a dark background.
func ContrastText(background string) string {
	c, err := colorful.Hex(background)
	if err != nil {
		return "#ffffff"
	}
	l, _, _ := c.Lab()
	if l > 0.6 {
		return "#111111"
	}
	return "#ffffff"
}
