package mahjong

import "sort"

type Wind int

const (
	WindEast  Wind = iota // 东风
	WindSouth             // 南风
	WindWest              // 西风
	WindNorth             // 北风
)

// TileType 牌的种类，同种类的不同实体牌在结构上等价
type TileType int

const (
	// 万子 (0-8)
	Man1 TileType = iota
	Man2
	Man3
	Man4
	Man5
	Man6
	Man7
	Man8
	Man9

	// 筒子 (9-17)
	Pin1
	Pin2
	Pin3
	Pin4
	Pin5
	Pin6
	Pin7
	Pin8
	Pin9

	// 索子 (18-26)
	So1
	So2
	So3
	So4
	So5
	So6
	So7
	So8
	So9

	// 字牌 (27-33)
	East
	South
	West
	North
	White
	Green
	Red
)

// TileTypeCount 牌种类总数
const TileTypeCount = 34

// 花色
const (
	SuitMan   = 0
	SuitPin   = 1
	SuitSo    = 2
	SuitHonor = 3
)

// Tile 一张实体牌，整个结构体即实体身份
type Tile struct {
	Type  TileType
	ID    int  // 用于区分相同的牌（0-3）
	IsRed bool // 赤五，结构上与普通 5 相同
}

// MeldType 副露类型
type MeldType string

const (
	MeldChi    MeldType = "Chi"
	MeldPeng   MeldType = "Peng"
	MeldGang   MeldType = "Gang"
	MeldAnGang MeldType = "AnGang"
)

type Meld struct {
	Type  MeldType
	Tiles []Tile
	From  int // 从哪个玩家那里获得
}

type TileDeck struct {
	tiles []Tile
}

func NewTileDeck(useRedFives bool) *TileDeck {
	deck := &TileDeck{
		tiles: make([]Tile, 0, 136),
	}
	deck.initializeTiles(useRedFives)
	return deck
}

func (d *TileDeck) initializeTiles(useRedFives bool) {
	d.tiles = d.tiles[:0]
	for tileType := Man1; tileType <= Red; tileType++ {
		for i := 0; i < 4; i++ {
			d.tiles = append(d.tiles, Tile{
				Type:  tileType,
				ID:    i,
				IsRed: useRedFives && tileType.IsFive() && i == 0,
			})
		}
	}
}

// Tiles 返回牌库中全部牌的副本
func (d *TileDeck) Tiles() []Tile {
	out := make([]Tile, len(d.tiles))
	copy(out, d.tiles)
	return out
}

func (t TileType) Valid() bool {
	return t >= Man1 && t <= Red
}

func (t TileType) IsNumbered() bool {
	return t >= Man1 && t <= So9
}

func (t TileType) IsHonor() bool {
	return t >= East && t <= Red
}

func (t TileType) IsFive() bool {
	return t == Man5 || t == Pin5 || t == So5
}

// IsTerminal 幺九数牌
func (t TileType) IsTerminal() bool {
	return t.IsNumbered() && (t.Number() == 1 || t.Number() == 9)
}

func (t TileType) IsTerminalOrHonor() bool {
	return t.IsTerminal() || t.IsHonor()
}

// Suit 花色，字牌为 SuitHonor
func (t TileType) Suit() int {
	return int(t) / 9
}

// Number 数牌为 1-9，字牌为 1-7（东南西北白发中）
func (t TileType) Number() int {
	if t.IsHonor() {
		return int(t-East) + 1
	}
	return int(t)%9 + 1
}

var suitLetters = [4]byte{'m', 'p', 's', 'z'}

func (t TileType) String() string {
	if !t.Valid() {
		return "?"
	}
	return string([]byte{byte('0' + t.Number()), suitLetters[t.Suit()]})
}

func (t Tile) String() string {
	if t.IsRed && t.Type.IsFive() {
		return string([]byte{'0', suitLetters[t.Type.Suit()]})
	}
	return t.Type.String()
}

// instance 实体牌身份，忽略赤牌标记
type instance struct {
	Type TileType
	ID   int
}

func (t Tile) instance() instance {
	return instance{Type: t.Type, ID: t.ID}
}

// SortTiles 按 (种类, ID) 排序
func SortTiles(tiles []Tile) {
	sort.Slice(tiles, func(i, j int) bool {
		if tiles[i].Type != tiles[j].Type {
			return tiles[i].Type < tiles[j].Type
		}
		return tiles[i].ID < tiles[j].ID
	})
}

func sortedTypes(tiles []Tile) []TileType {
	types := make([]TileType, len(tiles))
	for i, t := range tiles {
		types[i] = t.Type
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

func (w Wind) String() string {
	switch w {
	case WindEast:
		return "东"
	case WindSouth:
		return "南"
	case WindWest:
		return "西"
	case WindNorth:
		return "北"
	default:
		return "未知"
	}
}

func (w Wind) Next() Wind {
	return (w + 1) % 4
}
