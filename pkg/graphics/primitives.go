package graphics

import "math"

// Brush は描画に使う色と太さ
type Brush struct {
	Color Color
	Size  int // 1以上の奇数
}

// DefaultBrush は初期状態のブラシ（透明、太さ1）
func DefaultBrush() Brush {
	return Brush{Color: Transparent, Size: 1}
}

// NormalizeSize はブラシの太さを奇数に丸める（偶数kはk-1）
// 0以下はfalseを返す
func NormalizeSize(k int) (int, bool) {
	if k <= 0 {
		return 0, false
	}
	if k%2 == 0 {
		return k - 1, true
	}
	return k, true
}

// Paint はブラシで1点を描く
// 中心から半径 Size/2 の円内のピクセルを塗る（範囲外は切り捨て）
// 透明ブラシは何も描かない
func (c *Canvas) Paint(p Point, b Brush) {
	if b.Color == Transparent {
		return
	}

	// キャンバス外の範囲は走査しない
	r := b.Size / 2
	whole := r > 2*c.size
	for dy := max(-r, -p.Y); dy <= min(r, c.size-1-p.Y); dy++ {
		for dx := max(-r, -p.X); dx <= min(r, c.size-1-p.X); dx++ {
			if whole || dx*dx+dy*dy <= r*r {
				c.Set(p.X+dx, p.Y+dy, b.Color)
			}
		}
	}
}

// Walk は(dx,dy)方向にsteps回移動した位置を返す
// 移動先が範囲外になる歩はその場に留まる。方向は一定なので以降の歩も進まない
func (c *Canvas) Walk(from Point, dx, dy, steps int) Point {
	p := from
	for range max(steps, 0) {
		next, ok := c.step(p, dx, dy)
		if !ok {
			break
		}
		p = next
	}
	return p
}

// step は1歩進んだ位置を返す。進めない場合はfalse
func (c *Canvas) step(p Point, dx, dy int) (Point, bool) {
	if dx == 0 && dy == 0 {
		return p, false
	}
	next := p.Add(dx, dy)
	if !c.InBounds(next.X, next.Y) {
		return p, false
	}
	return next, true
}

// DrawLine は(dx,dy)方向に距離distの直線を描き、終点を返す
// 端に達した後の歩は同じ点を塗り直すだけなので打ち切る
//
// パラメータ:
//   - from: 始点（カーソル位置）
//   - dx, dy: 方向（-1, 0, 1）
//   - dist: 距離（0以上）
//   - b: ブラシ
func (c *Canvas) DrawLine(from Point, dx, dy, dist int, b Brush) Point {
	p := from
	for range max(dist, 0) {
		c.Paint(p, b)
		next, ok := c.step(p, dx, dy)
		if !ok {
			break
		}
		p = next
	}
	c.Paint(p, b)
	return p
}

// DrawCircle はcenterを中心に半径rの円周を描く
func (c *Canvas) DrawCircle(center Point, r int, b Brush) {
	// iがこの範囲外なら4点ともキャンバス外
	lo := max(-r, -max(center.X, center.Y))
	hi := min(r, c.size-1-min(center.X, center.Y))

	for i := lo; i <= hi; i++ {
		o, ok := c.circleOffset(i, r)
		if !ok {
			continue
		}

		// x軸方向
		c.paintClipped(center.Add(i, o), b)
		c.paintClipped(center.Add(i, -o), b)

		// y軸方向
		c.paintClipped(center.Add(o, i), b)
		c.paintClipped(center.Add(-o, i), b)
	}
}

// circleOffset は sqrt(r²-i²) を四捨五入した値
// キャンバスの辺長を超える値はどの点も範囲外になるのでfalse
func (c *Canvas) circleOffset(i, r int) (int, bool) {
	fr, fi := float64(r), float64(i)
	o := math.Round(math.Sqrt(fr*fr - fi*fi))
	if o > float64(c.size) {
		return 0, false
	}
	return int(o), true
}

// DrawRectangle はcenterを中心に幅w、高さhの矩形の枠を描く
// 偶数の幅・高さは右・下側が1ピクセル長くなる
func (c *Canvas) DrawRectangle(center Point, w, h int, b Brush) {
	left := center.X - (w-1)/2
	top := center.Y - (h-1)/2
	right := left + w - 1
	bottom := top + h - 1

	for x := max(left, 0); x <= min(right, c.size-1); x++ {
		c.paintClipped(Point{x, top}, b)
		c.paintClipped(Point{x, bottom}, b)
	}
	for y := max(top+1, 0); y < min(bottom, c.size); y++ {
		c.paintClipped(Point{left, y}, b)
		c.paintClipped(Point{right, y}, b)
	}
}

// paintClipped は範囲内の点だけをブラシで描く
func (c *Canvas) paintClipped(p Point, b Brush) {
	if c.InBounds(p.X, p.Y) {
		c.Paint(p, b)
	}
}
