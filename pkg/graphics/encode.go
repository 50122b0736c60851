package graphics

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// Format は画像の書き出し形式
type Format int

const (
	PNG Format = iota
	BMP
)

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case BMP:
		return "bmp"
	}
	return "unknown"
}

// FormatFromPath は拡張子から書き出し形式を決める（大文字小文字を無視）
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return PNG, nil
	case ".bmp":
		return BMP, nil
	}
	return PNG, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Scaled はキャンバスをscale倍に拡大した画像を返す（最近傍補間）
func (c *Canvas) Scaled(scale int) image.Image {
	src := c.Image()
	if scale <= 1 {
		return src
	}

	side := c.size * scale
	dst := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// Encode はキャンバスを画像として書き出す
//
// パラメータ:
//   - w: 書き出し先
//   - c: キャンバス
//   - format: PNG または BMP
//   - scale: 拡大率（1以下は等倍）
func Encode(w io.Writer, c *Canvas, format Format, scale int) error {
	img := c.Scaled(scale)

	var err error
	switch format {
	case PNG:
		err = png.Encode(w, img)
	case BMP:
		err = bmp.Encode(w, img)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return nil
}
