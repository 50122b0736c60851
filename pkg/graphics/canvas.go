// Package graphics はpixelpenのピクセルキャンバスを提供する
//
// キャンバスはパレット色の正方行列で、ブラシによる点描画、直線・円・矩形の
// ラスタライズ、塗りつぶし、画像への書き出しを行う。
// 座標は(0,0)が左上、xが右方向、yが下方向。
package graphics

import (
	"fmt"
	"image"
)

// MaxCanvasSize はキャンバスの最大辺長
const MaxCanvasSize = 1024

// Point はキャンバス上の座標
type Point struct {
	X, Y int
}

// Add は座標を加算する
func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Canvas は正方形のピクセルグリッド
type Canvas struct {
	size   int
	pixels []Color // 行優先 (y*size + x)
}

// NewCanvas は背景色で初期化されたキャンバスを作成する
func NewCanvas(size int) (*Canvas, error) {
	if err := validateSize(size); err != nil {
		return nil, err
	}
	c := &Canvas{size: size, pixels: make([]Color, size*size)}
	c.Reset()
	return c, nil
}

func validateSize(size int) error {
	if size < 1 || size > MaxCanvasSize {
		return fmt.Errorf("%w: %d (must be 1..%d)", ErrInvalidCanvasSize, size, MaxCanvasSize)
	}
	return nil
}

// Size は辺長を返す
func (c *Canvas) Size() int {
	return c.size
}

// Reset は全ピクセルを背景色に戻す
func (c *Canvas) Reset() {
	for i := range c.pixels {
		c.pixels[i] = Background
	}
}

// Resize はキャンバスの大きさを変え、背景色で初期化する
func (c *Canvas) Resize(size int) error {
	if err := validateSize(size); err != nil {
		return err
	}
	c.size = size
	c.pixels = make([]Color, size*size)
	c.Reset()
	return nil
}

// InBounds は座標がキャンバス内かどうかを返す
func (c *Canvas) InBounds(x, y int) bool {
	return x >= 0 && x < c.size && y >= 0 && y < c.size
}

// At はピクセルの色を返す。範囲外は透明色
func (c *Canvas) At(x, y int) Color {
	if !c.InBounds(x, y) {
		return Transparent
	}
	return c.pixels[y*c.size+x]
}

// Set はピクセルの色を設定する。範囲外の場合はfalseを返す
func (c *Canvas) Set(x, y int, col Color) bool {
	if !c.InBounds(x, y) {
		return false
	}
	c.pixels[y*c.size+x] = col
	return true
}

// Clone はキャンバスの複製を返す
func (c *Canvas) Clone() *Canvas {
	pixels := make([]Color, len(c.pixels))
	copy(pixels, c.pixels)
	return &Canvas{size: c.size, pixels: pixels}
}

// Count は2点を対角とする矩形（両端を含む）内で指定色のピクセル数を数える
// どちらかの点が範囲外の場合は0を返す
func (c *Canvas) Count(col Color, x1, y1, x2, y2 int) int {
	if !c.InBounds(x1, y1) || !c.InBounds(x2, y2) {
		return 0
	}

	minX, maxX := min(x1, x2), max(x1, x2)
	minY, maxY := min(y1, y2), max(y1, y2)

	count := 0
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if c.pixels[y*c.size+x] == col {
				count++
			}
		}
	}
	return count
}

// Image はキャンバスをRGBA画像に変換する
func (c *Canvas) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.size, c.size))
	for y := 0; y < c.size; y++ {
		for x := 0; x < c.size; x++ {
			img.SetRGBA(x, y, c.pixels[y*c.size+x].RGBA())
		}
	}
	return img
}
