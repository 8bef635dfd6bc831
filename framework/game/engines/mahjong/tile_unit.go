package mahjong

import (
	"fmt"
	"sort"
	"strings"
)

// UnitKind 牌组（TileUnit）的结构类型
type UnitKind int

const (
	KindPair            UnitKind = iota // 对子（雀头）
	KindTriplet                         // 刻子
	KindSequence                        // 顺子
	KindQuad                            // 杠子
	KindThirteenOrphans                 // 国士无双整组
	KindKnittedHonors                   // 全不靠整组
	kindCount
)

func (k UnitKind) String() string {
	switch k {
	case KindPair:
		return "pair"
	case KindTriplet:
		return "triplet"
	case KindSequence:
		return "sequence"
	case KindQuad:
		return "quad"
	case KindThirteenOrphans:
		return "thirteenOrphans"
	case KindKnittedHonors:
		return "knittedHonors"
	default:
		return "unknown"
	}
}

// TileUnit 一个被识别的牌组，创建后不再修改
type TileUnit struct {
	Kind  UnitKind
	Tiles []Tile
}

// NewTileUnit 校验牌型后创建牌组
func NewTileUnit(kind UnitKind, tiles []Tile) (TileUnit, error) {
	if !kind.accepts(sortedTypes(tiles)) {
		return TileUnit{}, fmt.Errorf("%w: %s cannot hold %s", ErrInvalidUnit, kind, FormatTiles(tiles))
	}
	own := append([]Tile(nil), tiles...)
	SortTiles(own)
	return TileUnit{Kind: kind, Tiles: own}, nil
}

func (u TileUnit) Types() []TileType {
	return sortedTypes(u.Tiles)
}

// Key 牌组去重键：结构类型 + 排好序的牌种类，与实体 ID 无关
func (u TileUnit) Key() string {
	return unitKey(u.Kind, u.Types())
}

func (u TileUnit) String() string {
	return u.Kind.String() + "(" + FormatTiles(u.Tiles) + ")"
}

func unitKey(kind UnitKind, sorted []TileType) string {
	b := make([]byte, 0, len(sorted)+1)
	b = append(b, byte('A'+kind))
	for _, t := range sorted {
		b = append(b, byte(t))
	}
	return string(b)
}

// Decomposition 一种完整的和牌拆分
type Decomposition []TileUnit

// Key 与牌组顺序无关的拆分去重键
func (d Decomposition) Key() string {
	keys := make([]string, len(d))
	for i, u := range d {
		keys[i] = u.Key()
	}
	sort.Strings(keys)
	return strings.Join(keys, "|")
}

// Tiles 拆分覆盖的全部实体牌
func (d Decomposition) Tiles() []Tile {
	var out []Tile
	for _, u := range d {
		out = append(out, u.Tiles...)
	}
	return out
}

// Count 指定结构类型的牌组数量
func (d Decomposition) Count(kind UnitKind) int {
	n := 0
	for _, u := range d {
		if u.Kind == kind {
			n++
		}
	}
	return n
}

func (d Decomposition) String() string {
	parts := make([]string, len(d))
	for i, u := range d {
		parts[i] = u.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// accepts 判断排好序的牌种类是否构成该结构
func (k UnitKind) accepts(types []TileType) bool {
	switch k {
	case KindPair:
		return len(types) == 2 && allSame(types)
	case KindTriplet:
		return len(types) == 3 && allSame(types)
	case KindQuad:
		return len(types) == 4 && allSame(types)
	case KindSequence:
		return isSequence(types)
	case KindThirteenOrphans:
		return isThirteenOrphans(types)
	case KindKnittedHonors:
		return isKnittedHonors(types)
	default:
		return false
	}
}

// classifyUnit 识别普通牌组（对子、刻子、顺子、杠子）
func classifyUnit(sorted []TileType) (UnitKind, bool) {
	for _, k := range []UnitKind{KindPair, KindTriplet, KindSequence, KindQuad} {
		if k.accepts(sorted) {
			return k, true
		}
	}
	return 0, false
}

func allSame(types []TileType) bool {
	for _, t := range types[1:] {
		if t != types[0] {
			return false
		}
	}
	return true
}

func isSequence(types []TileType) bool {
	if len(types) != 3 || !types[0].IsNumbered() || types[0].Number() > 7 {
		return false
	}
	return types[1] == types[0]+1 && types[2] == types[0]+2
}

var orphanTypes = [13]TileType{
	Man1, Man9,
	Pin1, Pin9,
	So1, So9,
	East, South, West, North,
	White, Green, Red,
}

func isThirteenOrphans(types []TileType) bool {
	if len(types) != 14 {
		return false
	}
	var h Hand34
	for _, t := range types {
		if !t.IsTerminalOrHonor() {
			return false
		}
		h[t]++
	}
	for _, t := range orphanTypes {
		if h[t] == 0 {
			return false
		}
	}
	return true
}

// knittedArrangements 组合龙的六种排列：三种花色分别取 147、258、369
var knittedArrangements = func() [6][9]TileType {
	perms := [6][3]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}
	var out [6][9]TileType
	for i, p := range perms {
		n := 0
		for suit := SuitMan; suit <= SuitSo; suit++ {
			for _, num := range []int{1, 4, 7} {
				out[i][n] = TileType(suit*9 + num - 1 + p[suit])
				n++
			}
		}
	}
	return out
}()

// knittedArrangementOf 返回手牌数牌所属的组合龙排列，不属于任何排列返回 -1
func knittedArrangementOf(h *Hand34) int {
	for i, arr := range knittedArrangements {
		var allowed [TileTypeCount]bool
		for _, t := range arr {
			allowed[t] = true
		}
		ok := true
		for t := Man1; t <= So9; t++ {
			if h[t] > 0 && !allowed[t] {
				ok = false
				break
			}
		}
		if ok {
			return i
		}
	}
	return -1
}

func isKnittedHonors(types []TileType) bool {
	if len(types) != 14 {
		return false
	}
	var h Hand34
	for _, t := range types {
		if h[t] > 0 {
			return false
		}
		h[t]++
	}
	return knittedArrangementOf(&h) >= 0
}
