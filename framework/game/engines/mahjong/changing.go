package mahjong

import (
	"fmt"
	"iter"

	"github.com/LXiong/mahjong/common/log"
)

// ChangingForWin 一种结果为和牌的换牌方法：移除 RemovedTiles 并增加 AddedTiles。
// 相等性只看移除、增加的牌种类多重集，与具体是哪一张实体牌无关
type ChangingForWin struct {
	RemovedTiles []Tile
	AddedTiles   []Tile
	key          string
}

// NewChangingForWin 创建时即计算去重键
func NewChangingForWin(removedTiles, addedTiles []Tile) ChangingForWin {
	c := ChangingForWin{
		RemovedTiles: append([]Tile(nil), removedTiles...),
		AddedTiles:   append([]Tile(nil), addedTiles...),
	}
	SortTiles(c.RemovedTiles)
	SortTiles(c.AddedTiles)
	c.key = changingKey(c.RemovedTiles, c.AddedTiles)
	return c
}

func changingKey(removed, added []Tile) string {
	b := make([]byte, 0, len(removed)+len(added)+1)
	for _, t := range sortedTypes(removed) {
		b = append(b, byte(t))
	}
	b = append(b, 0xff)
	for _, t := range sortedTypes(added) {
		b = append(b, byte(t))
	}
	return string(b)
}

// Key 去重键，未经 NewChangingForWin 构造的值会现场计算
func (c ChangingForWin) Key() string {
	if c.key == "" {
		return changingKey(c.RemovedTiles, c.AddedTiles)
	}
	return c.key
}

func (c ChangingForWin) Equal(other ChangingForWin) bool {
	return c.Key() == other.Key()
}

// Apply 在 aliveTiles 上先移除再增加，返回新的手牌，不修改入参
func (c ChangingForWin) Apply(aliveTiles []Tile) []Tile {
	out := withoutTiles(aliveTiles, c.RemovedTiles)
	return append(out, c.AddedTiles...)
}

func (c ChangingForWin) String() string {
	return fmt.Sprintf("ChangingForWin [removedTiles=%s, addedTiles=%s]", FormatTiles(c.RemovedTiles), FormatTiles(c.AddedTiles))
}

// changingPlan 一次换牌枚举的输入，校验通过后才会创建
type changingPlan struct {
	wt          shapeParser
	player      *PlayerInfo
	changeCount int
	alive       []Tile
	aliveHand   Hand34
	alivePools  map[TileType][]Tile
	poolHand    Hand34
	poolPools   map[TileType][]Tile
}

func newChangingPlan(wt shapeParser, player *PlayerInfo, changeCount int, candidates []Tile) (*changingPlan, error) {
	if player == nil {
		return nil, ErrNilPlayer
	}
	if err := checkDistinct(player.AliveTiles); err != nil {
		return nil, err
	}
	if changeCount < 0 || changeCount > len(player.AliveTiles) {
		return nil, fmt.Errorf("%w: %d with %d alive tiles", ErrInvalidChangeCount, changeCount, len(player.AliveTiles))
	}

	inHand := make(map[instance]struct{}, len(player.AliveTiles))
	for _, t := range player.AliveTiles {
		inHand[t.instance()] = struct{}{}
	}
	pool := make([]Tile, 0, len(candidates))
	for _, c := range candidates {
		if !c.Type.Valid() {
			continue
		}
		if _, ok := inHand[c.instance()]; ok {
			continue
		}
		inHand[c.instance()] = struct{}{}
		pool = append(pool, c)
	}
	if len(pool) < changeCount+1 {
		return nil, fmt.Errorf("%w: need %d, got %d", ErrInsufficientCandidates, changeCount+1, len(pool))
	}

	aliveHand, alivePools := Hand34FromTiles(player.AliveTiles)
	poolHand, poolPools := Hand34FromTiles(pool)
	return &changingPlan{
		wt:          wt,
		player:      player,
		changeCount: changeCount,
		alive:       player.AliveTiles,
		aliveHand:   aliveHand,
		alivePools:  alivePools,
		poolHand:    poolHand,
		poolPools:   poolPools,
	}, nil
}

// removals 所有需要移除的牌种类组合
func (p *changingPlan) removals() iter.Seq[Hand34] {
	return multisetCombinations(p.aliveHand, p.changeCount)
}

// tryRemoval 固定移除组合，枚举所有增加组合并逐一判定；返回 false 表示调用方已停止
func (p *changingPlan) tryRemoval(removed Hand34, yield func(ChangingForWin) bool) bool {
	removedTiles := pickTiles(removed, p.alivePools)
	rest := withoutTiles(p.alive, removedTiles)
	hand := make([]Tile, 0, len(rest)+p.changeCount+1)
	for added := range multisetCombinations(p.poolHand, p.changeCount+1) {
		addedTiles := pickTiles(added, p.poolPools)
		hand = append(append(hand[:0], rest...), addedTiles...)
		if _, ok := first(p.wt.ParseWinTileUnits(p.player, hand)); !ok {
			continue
		}
		if !yield(NewChangingForWin(removedTiles, addedTiles)) {
			return false
		}
	}
	return true
}

func (p *changingPlan) all() iter.Seq[ChangingForWin] {
	return func(yield func(ChangingForWin) bool) {
		log.Debug("changings for win: type=%s change=%d hand=%s", p.wt.Name(), p.changeCount, FormatTiles(p.alive))
		seen := make(map[string]struct{})
		for removed := range p.removals() {
			ok := p.tryRemoval(removed, func(c ChangingForWin) bool {
				if _, dup := seen[c.Key()]; dup {
					return true
				}
				seen[c.Key()] = struct{}{}
				return yield(c)
			})
			if !ok {
				return
			}
		}
	}
}

// withoutTiles 按实体身份移除，返回新切片
func withoutTiles(tiles []Tile, removed []Tile) []Tile {
	drop := make(map[instance]struct{}, len(removed))
	for _, t := range removed {
		drop[t.instance()] = struct{}{}
	}
	out := make([]Tile, 0, len(tiles))
	for _, t := range tiles {
		if _, ok := drop[t.instance()]; !ok {
			out = append(out, t)
		}
	}
	return out
}
