package mahjong

import "fmt"

// PlayerInfo 和牌判定所需的玩家快照，判定过程只读不写
type PlayerInfo struct {
	UserID      string
	SeatIndex   int
	SeatWind    Wind
	AliveTiles  []Tile // 手中的牌（不含副露）
	Melds       []Meld // 碰、杠、吃的组合
	DiscardPile []Tile // 弃牌堆
	NewestTile  *Tile  // 最新摸的牌
}

// NewPlayerInfo 创建玩家快照，手牌与副露会被复制
func NewPlayerInfo(aliveTiles []Tile, melds ...Meld) *PlayerInfo {
	return &PlayerInfo{
		AliveTiles: append([]Tile(nil), aliveTiles...),
		Melds:      append([]Meld(nil), melds...),
	}
}

// FixedMelds 已副露的面子数，nil 视为没有副露
func (p *PlayerInfo) FixedMelds() int {
	if p == nil {
		return 0
	}
	return len(p.Melds)
}

// CandidatePool 未出现在手牌、副露、弃牌以及 visible 中的全部实体牌
func (p *PlayerInfo) CandidatePool(visible ...Tile) []Tile {
	seen := make(map[instance]struct{}, 64)
	mark := func(tiles []Tile) {
		for _, t := range tiles {
			seen[t.instance()] = struct{}{}
		}
	}
	if p != nil {
		mark(p.AliveTiles)
		mark(p.DiscardPile)
		for _, m := range p.Melds {
			mark(m.Tiles)
		}
	}
	mark(visible)

	var pool []Tile
	for _, t := range NewTileDeck(false).Tiles() {
		if _, ok := seen[t.instance()]; !ok {
			pool = append(pool, t)
		}
	}
	return pool
}

func (p *PlayerInfo) String() string {
	if p == nil {
		return "PlayerInfo(nil)"
	}
	return fmt.Sprintf("PlayerInfo{seat=%d alive=%s melds=%d}", p.SeatIndex, FormatTiles(p.AliveTiles), len(p.Melds))
}

// resolveAliveTiles aliveTiles 非 nil 时替换 player 中的手牌
func resolveAliveTiles(player *PlayerInfo, aliveTiles []Tile) ([]Tile, error) {
	if aliveTiles == nil {
		if player == nil {
			return nil, ErrNilPlayer
		}
		aliveTiles = player.AliveTiles
	}
	if len(aliveTiles) == 0 {
		return nil, ErrNoHand
	}
	if err := checkDistinct(aliveTiles); err != nil {
		return nil, err
	}
	return aliveTiles, nil
}

func checkDistinct(tiles []Tile) error {
	seen := make(map[instance]struct{}, len(tiles))
	for _, t := range tiles {
		if !t.Type.Valid() {
			return fmt.Errorf("%w: tile type %d", ErrInvalidNotation, t.Type)
		}
		if _, ok := seen[t.instance()]; ok {
			return fmt.Errorf("%w: %s#%d", ErrDuplicateTile, t, t.ID)
		}
		seen[t.instance()] = struct{}{}
	}
	return nil
}
