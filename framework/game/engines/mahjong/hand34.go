package mahjong

import "iter"

// Hand34 按牌种类计数的手牌
type Hand34 [TileTypeCount]uint8

// Hand34FromTiles 计数并按种类收集实体牌（每种按 ID 升序）
func Hand34FromTiles(tiles []Tile) (Hand34, map[TileType][]Tile) {
	var h Hand34
	sorted := append([]Tile(nil), tiles...)
	SortTiles(sorted)
	opts := make(map[TileType][]Tile, TileTypeCount)
	for _, t := range sorted {
		h[int(t.Type)]++
		opts[t.Type] = append(opts[t.Type], t)
	}
	return h, opts
}

func (h Hand34) keyWithFixedMelds(fixedMelds int) string {
	var b [TileTypeCount + 1]byte
	for i := 0; i < TileTypeCount; i++ {
		b[i] = byte(h[i])
	}
	b[TileTypeCount] = byte(fixedMelds)
	return string(b[:])
}

func (h *Hand34) total() int {
	n := 0
	for _, c := range h {
		n += int(c)
	}
	return n
}

func (h *Hand34) firstNonZero() int {
	for k := 0; k < TileTypeCount; k++ {
		if h[k] > 0 {
			return k
		}
	}
	return -1
}

// take 扣除一组牌种类，不够时回滚并返回 false
func (h *Hand34) take(types []TileType) bool {
	for i, t := range types {
		if h[t] == 0 {
			for _, r := range types[:i] {
				h[r]++
			}
			return false
		}
		h[t]--
	}
	return true
}

func (h *Hand34) put(types []TileType) {
	for _, t := range types {
		h[t]++
	}
}

// pickTiles 从每种牌的候选实体里取前 sel[t] 张
func pickTiles(sel Hand34, pools map[TileType][]Tile) []Tile {
	var out []Tile
	for t := 0; t < TileTypeCount; t++ {
		if sel[t] == 0 {
			continue
		}
		out = append(out, pools[TileType(t)][:sel[t]]...)
	}
	return out
}

// multisetCombinations 惰性枚举从 h 中取 k 张牌的所有种类组合
func multisetCombinations(h Hand34, k int) iter.Seq[Hand34] {
	return func(yield func(Hand34) bool) {
		if k < 0 || k > h.total() {
			return
		}
		var suffix [TileTypeCount + 1]int
		for t := TileTypeCount - 1; t >= 0; t-- {
			suffix[t] = suffix[t+1] + int(h[t])
		}
		var cur Hand34
		var walk func(t, left int) bool
		walk = func(t, left int) bool {
			if left == 0 {
				return yield(cur)
			}
			if t == TileTypeCount || suffix[t] < left {
				return true
			}
			most := min(int(h[t]), left)
			for c := 0; c <= most; c++ {
				cur[t] = uint8(c)
				if !walk(t+1, left-c) {
					cur[t] = 0
					return false
				}
			}
			cur[t] = 0
			return true
		}
		walk(0, k)
	}
}
