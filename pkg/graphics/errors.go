package graphics

import "errors"

var (
	// ErrInvalidCanvasSize はキャンバスサイズが範囲外の場合のエラー
	ErrInvalidCanvasSize = errors.New("invalid canvas size")

	// ErrUnsupportedFormat は書き出し形式に対応していない場合のエラー
	ErrUnsupportedFormat = errors.New("unsupported image format")
)
