package mahjong

import "iter"

// shape 一种和牌型的结构定义：可用的牌组类型、搜索剪枝与最终的整体判定
type shape struct {
	vocabulary []UnitKind
	// handSize 给定副露数时手牌应有的张数，返回 -1 表示不限制
	handSize func(fixedMelds int) int
	// allow 已选牌组计数下是否还能再选一个 kind
	allow func(counts *[kindCount]int, kind UnitKind, fixedMelds int) bool
	// accept 拆分完成后的整体判定
	accept func(counts *[kindCount]int, fixedMelds int) bool
	// distinct 为 true 时同一拆分内不允许出现两个完全相同的牌组
	distinct bool
}

type pickedUnit struct {
	kind  UnitKind
	types []TileType
}

// parser 一次拆分搜索的状态，仅在单个迭代器内部使用
type parser struct {
	shape      *shape
	fixedMelds int
	pools      map[TileType][]Tile
	hand       Hand34
	picked     []pickedUnit
	counts     [kindCount]int
	seen       map[string]struct{}
}

// parse 惰性枚举 aliveTiles 的全部和牌拆分，结构相同的拆分只输出一次
func (s *shape) parse(fixedMelds int, aliveTiles []Tile) iter.Seq[Decomposition] {
	return func(yield func(Decomposition) bool) {
		if len(aliveTiles) == 0 {
			return
		}
		if s.handSize != nil {
			if n := s.handSize(fixedMelds); n >= 0 && n != len(aliveTiles) {
				return
			}
		}
		h, pools := Hand34FromTiles(aliveTiles)
		p := &parser{
			shape:      s,
			fixedMelds: fixedMelds,
			pools:      pools,
			hand:       h,
			seen:       make(map[string]struct{}),
		}
		p.search(yield)
	}
}

// search 以剩余最小的牌为锚点，尝试每一种包含它的牌组后递归；返回 false 表示调用方已停止
func (p *parser) search(yield func(Decomposition) bool) bool {
	anchor := p.hand.firstNonZero()
	if anchor < 0 {
		if !p.shape.accept(&p.counts, p.fixedMelds) {
			return true
		}
		d := p.instantiate()
		key := d.Key()
		if _, dup := p.seen[key]; dup {
			return true
		}
		p.seen[key] = struct{}{}
		return yield(d)
	}

	for _, kind := range p.shape.vocabulary {
		if p.shape.allow != nil && !p.shape.allow(&p.counts, kind, p.fixedMelds) {
			continue
		}
		for _, types := range kind.candidates(TileType(anchor), &p.hand) {
			if p.shape.distinct && p.hasPicked(kind, types) {
				continue
			}
			if !p.hand.take(types) {
				continue
			}
			p.counts[kind]++
			p.picked = append(p.picked, pickedUnit{kind: kind, types: types})
			ok := p.search(yield)
			p.picked = p.picked[:len(p.picked)-1]
			p.counts[kind]--
			p.hand.put(types)
			if !ok {
				return false
			}
		}
	}
	return true
}

func (p *parser) hasPicked(kind UnitKind, types []TileType) bool {
	for _, u := range p.picked {
		if u.kind != kind || len(u.types) != len(types) {
			continue
		}
		same := true
		for i := range types {
			if u.types[i] != types[i] {
				same = false
				break
			}
		}
		if same {
			return true
		}
	}
	return false
}

// instantiate 把种类拆分落到实体牌上，每种牌按 ID 顺序取用
func (p *parser) instantiate() Decomposition {
	var next [TileTypeCount]int
	d := make(Decomposition, 0, len(p.picked))
	for _, u := range p.picked {
		tiles := make([]Tile, len(u.types))
		for i, t := range u.types {
			tiles[i] = p.pools[t][next[t]]
			next[t]++
		}
		d = append(d, TileUnit{Kind: u.kind, Tiles: tiles})
	}
	return d
}

// candidates 包含 anchor 的该类牌组的种类组合（anchor 为剩余最小的牌）
func (k UnitKind) candidates(anchor TileType, h *Hand34) [][]TileType {
	switch k {
	case KindPair:
		if h[anchor] >= 2 {
			return [][]TileType{{anchor, anchor}}
		}
	case KindTriplet:
		if h[anchor] >= 3 {
			return [][]TileType{{anchor, anchor, anchor}}
		}
	case KindQuad:
		if h[anchor] >= 4 {
			return [][]TileType{{anchor, anchor, anchor, anchor}}
		}
	case KindSequence:
		if sameSuit(int(anchor), int(anchor)+2) {
			return [][]TileType{{anchor, anchor + 1, anchor + 2}}
		}
	case KindThirteenOrphans:
		if anchor != Man1 || h.total() != 14 {
			return nil
		}
		out := make([][]TileType, 0, len(orphanTypes))
		for i, dup := range orphanTypes {
			if h[dup] < 2 {
				continue
			}
			types := make([]TileType, 0, 14)
			types = append(types, orphanTypes[:i+1]...)
			types = append(types, dup)
			types = append(types, orphanTypes[i+1:]...)
			out = append(out, types)
		}
		return out
	case KindKnittedHonors:
		if h.total() != 14 || knittedArrangementOf(h) < 0 {
			return nil
		}
		types := make([]TileType, 0, 14)
		for t := 0; t < TileTypeCount; t++ {
			if h[t] > 1 {
				return nil
			}
			if h[t] == 1 {
				types = append(types, TileType(t))
			}
		}
		return [][]TileType{types}
	}
	return nil
}
