package scene

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a 24-bit 0xRRGGBB colour.
type Color uint32

const (
	Red   Color = 0xff0000
	Green Color = 0x00ff00
	Blue  Color = 0x0000ff
	White Color = 0xffffff
)

// ParseColor accepts "#rrggbb", "0xrrggbb" or "rrggbb".
func ParseColor(s string) (Color, error) {
	hex := strings.TrimSpace(s)
	hex = strings.TrimPrefix(hex, "#")
	hex = strings.TrimPrefix(strings.TrimPrefix(hex, "0x"), "0X")
	if len(hex) != 6 {
		return 0, fmt.Errorf("invalid color %q: expected 6 hex digits", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color(v), nil
}

func (c Color) String() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xffffff)
}

func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// RGBA returns normalized components with the given alpha.
func (c Color) RGBA(alpha float32) [4]float32 {
	r, g, b := c.RGB()
	return [4]float32{float32(r) / 255, float32(g) / 255, float32(b) / 255, alpha}
}

// BasicMaterial is an unlit surface with a flat colour.
type BasicMaterial struct {
	Color       Color
	Opacity     float32
	Transparent bool
}

func NewBasicMaterial(color Color, opacity float32) *BasicMaterial {
	m := &BasicMaterial{Color: color}
	m.SetOpacity(opacity)
	return m
}

func (m *BasicMaterial) SetOpacity(opacity float32) {
	m.Opacity = opacity
	m.Transparent = opacity < 1
}

func (m *BasicMaterial) RGBA() [4]float32 {
	return m.Color.RGBA(m.Opacity)
}
