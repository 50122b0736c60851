package graphics

import (
	"image/color"
	"strings"
)

// Color はパレット上の色
// ゼロ値は透明色
type Color uint8

const (
	Transparent Color = iota
	Red
	Blue
	Green
	Yellow
	Orange
	Purple
	Pink
	Cyan
	Maroon
	Crimson
	DarkBlue
	Gold
	Black
	Gray
	White
)

// Background はキャンバスの初期色
const Background = White

type paletteEntry struct {
	name string
	rgba color.RGBA
}

// palette の並びはColor定数と一致させること
var palette = [...]paletteEntry{
	Transparent: {"transparent", color.RGBA{}},
	Red:         {"red", color.RGBA{R: 0xFF, A: 0xFF}},
	Blue:        {"blue", color.RGBA{B: 0xFF, A: 0xFF}},
	Green:       {"green", color.RGBA{G: 0x80, A: 0xFF}},
	Yellow:      {"yellow", color.RGBA{R: 0xFF, G: 0xFF, A: 0xFF}},
	Orange:      {"orange", color.RGBA{R: 0xFF, G: 0xA5, A: 0xFF}},
	Purple:      {"purple", color.RGBA{R: 0x80, B: 0x80, A: 0xFF}},
	Pink:        {"pink", color.RGBA{R: 0xFF, G: 0xC0, B: 0xCB, A: 0xFF}},
	Cyan:        {"cyan", color.RGBA{G: 0xFF, B: 0xFF, A: 0xFF}},
	Maroon:      {"maroon", color.RGBA{R: 0x80, A: 0xFF}},
	Crimson:     {"crimson", color.RGBA{R: 0xDC, G: 0x14, B: 0x3C, A: 0xFF}},
	DarkBlue:    {"darkblue", color.RGBA{B: 0x8B, A: 0xFF}},
	Gold:        {"gold", color.RGBA{R: 0xFF, G: 0xD7, A: 0xFF}},
	Black:       {"black", color.RGBA{A: 0xFF}},
	Gray:        {"gray", color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF}},
	White:       {"white", color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}},
}

// Colors はパレットの全色を定義順で返す
func Colors() []Color {
	out := make([]Color, len(palette))
	for i := range palette {
		out[i] = Color(i)
	}
	return out
}

// ParseColor は色名をパレットの色に変換する（大文字小文字を無視）
func ParseColor(name string) (Color, bool) {
	lower := strings.ToLower(name)
	for i, entry := range palette {
		if entry.name == lower {
			return Color(i), true
		}
	}
	return Transparent, false
}

// String は色名を返す
func (c Color) String() string {
	if int(c) < len(palette) {
		return palette[c].name
	}
	return "unknown"
}

// RGBA は表示用のRGBA値を返す
func (c Color) RGBA() color.RGBA {
	if int(c) < len(palette) {
		return palette[c].rgba
	}
	return color.RGBA{}
}
