package mahjong

import (
	"fmt"
	"strings"
)

// tileAllocator 按种类依次分配实体牌 ID，保证同一手牌里没有重复实体
type tileAllocator struct {
	used [TileTypeCount]int
}

func (a *tileAllocator) parse(s string) ([]Tile, error) {
	var out []Tile
	var digits []byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ' ' || c == ',':
			continue
		case c >= '0' && c <= '9':
			digits = append(digits, c)
		default:
			suit := strings.IndexByte(string(suitLetters[:]), c)
			if suit < 0 {
				return nil, fmt.Errorf("%w: unexpected %q in %q", ErrInvalidNotation, c, s)
			}
			if len(digits) == 0 {
				return nil, fmt.Errorf("%w: suit %q without numbers in %q", ErrInvalidNotation, c, s)
			}
			for _, d := range digits {
				tile, err := a.next(int(d-'0'), suit)
				if err != nil {
					return nil, fmt.Errorf("%w in %q", err, s)
				}
				out = append(out, tile)
			}
			digits = digits[:0]
		}
	}
	if len(digits) > 0 {
		return nil, fmt.Errorf("%w: trailing numbers without suit in %q", ErrInvalidNotation, s)
	}
	return out, nil
}

func (a *tileAllocator) next(num int, suit int) (Tile, error) {
	red := false
	if num == 0 {
		if suit == SuitHonor {
			return Tile{}, fmt.Errorf("%w: 0z", ErrInvalidNotation)
		}
		num, red = 5, true
	}
	if suit == SuitHonor && num > 7 {
		return Tile{}, fmt.Errorf("%w: %dz", ErrInvalidNotation, num)
	}
	tt := TileType(suit*9 + num - 1)
	if a.used[tt] >= 4 {
		return Tile{}, fmt.Errorf("%w: more than 4 of %s", ErrInvalidNotation, tt)
	}
	tile := Tile{Type: tt, ID: a.used[tt], IsRed: red}
	a.used[tt]++
	return tile, nil
}

// ParseTiles 解析 "123m456p789s11z" 形式的牌串，0 表示赤五
func ParseTiles(s string) ([]Tile, error) {
	var a tileAllocator
	return a.parse(s)
}

// MustParseTiles 解析失败直接 panic，测试与常量场景使用
func MustParseTiles(s string) []Tile {
	tiles, err := ParseTiles(s)
	if err != nil {
		panic(err)
	}
	return tiles
}

// ParseHand 手牌与副露共用 ID 分配，副露按牌型推断类型
func ParseHand(hand string, melds ...string) ([]Tile, []Meld, error) {
	var a tileAllocator
	alive, err := a.parse(hand)
	if err != nil {
		return nil, nil, err
	}
	out := make([]Meld, 0, len(melds))
	for _, m := range melds {
		tiles, err := a.parse(m)
		if err != nil {
			return nil, nil, err
		}
		meld, err := NewMeld(tiles)
		if err != nil {
			return nil, nil, err
		}
		out = append(out, meld)
	}
	return alive, out, nil
}

// NewMeld 根据牌型推断副露类型：顺子为吃，三张为碰，四张为杠
func NewMeld(tiles []Tile) (Meld, error) {
	kind, ok := classifyUnit(sortedTypes(tiles))
	if !ok {
		return Meld{}, fmt.Errorf("%w: %s", ErrInvalidMeld, FormatTiles(tiles))
	}
	meld := Meld{Tiles: append([]Tile(nil), tiles...), From: -1}
	switch kind {
	case KindSequence:
		meld.Type = MeldChi
	case KindTriplet:
		meld.Type = MeldPeng
	case KindQuad:
		meld.Type = MeldGang
	default:
		return Meld{}, fmt.Errorf("%w: %s", ErrInvalidMeld, FormatTiles(tiles))
	}
	return meld, nil
}

// FormatTiles ParseTiles 的逆操作
func FormatTiles(tiles []Tile) string {
	sorted := append([]Tile(nil), tiles...)
	SortTiles(sorted)
	var b strings.Builder
	for suit := SuitMan; suit <= SuitHonor; suit++ {
		wrote := false
		for _, t := range sorted {
			if t.Type.Suit() != suit {
				continue
			}
			if t.IsRed && t.Type.IsFive() {
				b.WriteByte('0')
			} else {
				b.WriteByte(byte('0' + t.Type.Number()))
			}
			wrote = true
		}
		if wrote {
			b.WriteByte(suitLetters[suit])
		}
	}
	return b.String()
}

// FormatTypes 以牌串形式输出种类列表
func FormatTypes(types []TileType) string {
	tiles := make([]Tile, len(types))
	for i, t := range types {
		tiles[i] = Tile{Type: t, ID: i}
	}
	return FormatTiles(tiles)
}
