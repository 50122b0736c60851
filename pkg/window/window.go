// Package window はキャンバスをEbitengineのウィンドウに表示する
package window

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/zurustar/pixelpen/pkg/graphics"
	"github.com/zurustar/pixelpen/pkg/logger"
)

// 画面レイアウト
const (
	CanvasArea   = 512 // キャンバスを表示する正方形の辺長
	StatusHeight = 24  // 下部のステータス行の高さ
)

var (
	// キャンバス外の背景色
	backgroundColor = color.RGBA{0x20, 0x20, 0x20, 0xFF}
	// テキスト色（白）
	textColor = color.White
	// デフォルトフォント
	defaultFace = text.NewGoXFace(basicfont.Face7x13)
)

// Game はEbitengineのゲームインターフェースを実装する
type Game struct {
	canvas    *graphics.Canvas // 表示するキャンバス（スナップショット）
	image     *ebiten.Image    // キャンバスの画像（最初のDrawで作成）
	status    string           // ステータス行の文字列
	timeout   time.Duration    // タイムアウト時間
	startTime time.Time        // 開始時刻
}

// NewGame Gameを作成
func NewGame(canvas *graphics.Canvas, status string, timeout time.Duration) *Game {
	return &Game{
		canvas:    canvas,
		status:    status,
		timeout:   timeout,
		startTime: time.Now(),
	}
}

// StatusLine はカーソル位置と診断数からステータス行を作る
func StatusLine(cursor graphics.Point, diagnostics int) string {
	return fmt.Sprintf("cursor (%d, %d)  diagnostics: %d  [Esc] close", cursor.X, cursor.Y, diagnostics)
}

// Update ゲームロジックの更新（Ebitengineが毎フレーム呼び出す）
func (g *Game) Update() error {
	// タイムアウトチェック
	if g.timeout > 0 && time.Since(g.startTime) >= g.timeout {
		logger.GetLogger().Info("Window timeout reached", "timeout", g.timeout)
		return ebiten.Termination
	}

	// Escキー（1回だけ反応）
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	return nil
}

// Draw 画面描画（Ebitengineが毎フレーム呼び出す）
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	// キャンバスは変わらないので画像は一度だけ作る
	if g.canvas != nil && g.image == nil {
		g.image = ebiten.NewImage(g.canvas.Size(), g.canvas.Size())
		g.image.WritePixels(g.canvas.Image().Pix)
	}

	if g.image != nil {
		op := &ebiten.DrawImageOptions{}
		s := Scale(g.canvas.Size())
		op.GeoM.Scale(s, s)
		// 中央寄せ
		offset := (CanvasArea - s*float64(g.canvas.Size())) / 2
		op.GeoM.Translate(offset, offset)
		screen.DrawImage(g.image, op)
	}

	statusOp := &text.DrawOptions{}
	statusOp.GeoM.Translate(8, CanvasArea+6)
	statusOp.ColorScale.ScaleWithColor(textColor)
	text.Draw(screen, g.status, defaultFace, statusOp)
}

// Scale はキャンバスを表示領域に収めるための整数倍率を返す
// 表示領域より大きいキャンバスは縮小する
func Scale(size int) float64 {
	if size <= 0 {
		return 1
	}
	if size > CanvasArea {
		return float64(CanvasArea) / float64(size)
	}
	return float64(CanvasArea / size)
}

// Layout 画面サイズを返す
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return CanvasArea, CanvasArea + StatusHeight
}

// Run GUIモードでウィンドウを実行
// Escキー、ウィンドウを閉じる操作、タイムアウトのいずれかで戻る
func Run(canvas *graphics.Canvas, status string, timeout time.Duration) error {
	game := NewGame(canvas, status, timeout)

	// ウィンドウ設定
	ebiten.SetWindowSize(CanvasArea, CanvasArea+StatusHeight)
	ebiten.SetWindowTitle("pixelpen")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	// ゲームを実行
	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("failed to run game: %w", err)
	}
	return nil
}
