package graphics

// Fill はstartと同じ色で4近傍につながった領域をcolで塗りつぶす
// ブラシの太さは使わず1ピクセルずつ塗る
// 透明色、領域と同じ色、範囲外の開始点の場合は何もしない
// 塗ったピクセル数を返す
func (c *Canvas) Fill(start Point, col Color) int {
	if col == Transparent || !c.InBounds(start.X, start.Y) {
		return 0
	}
	target := c.At(start.X, start.Y)
	if target == col {
		return 0
	}

	// 幅優先の波面で広げる
	painted := 0
	c.Set(start.X, start.Y, col)
	painted++
	wave := []Point{start}

	for len(wave) > 0 {
		var next []Point
		for _, p := range wave {
			for _, n := range [...]Point{p.Add(1, 0), p.Add(-1, 0), p.Add(0, 1), p.Add(0, -1)} {
				if c.InBounds(n.X, n.Y) && c.At(n.X, n.Y) == target {
					c.Set(n.X, n.Y, col)
					painted++
					next = append(next, n)
				}
			}
		}
		wave = next
	}
	return painted
}
