package mahjong

import "iter"

// WinType 和牌类型。每种和牌类型对外提供一组完整的能力：拆分、判定、弃牌建议、换牌和牌
type WinType interface {
	Name() string

	// ParseWinTileUnits 全部解析成可以和牌的完整 TileUnit 集合的流，失败返回空流。
	// aliveTiles 非 nil 时代替 player 中的手牌，player 只提供副露等其他信息
	ParseWinTileUnits(player *PlayerInfo, aliveTiles []Tile) iter.Seq[Decomposition]

	// Match 判断指定条件下是否可和牌，找到第一个拆分即返回
	Match(player *PlayerInfo, aliveTiles []Tile) (bool, error)

	// DiscardCandidates 从 candidates 中排除明显不应该打出的牌，按建议优先级从高到低返回
	DiscardCandidates(aliveTiles []Tile, candidates []Tile) []Tile

	// ChangingsForWin 移除 changeCount 张牌、从 candidates 中增加 changeCount+1 张牌后能和牌的所有换法
	ChangingsForWin(player *PlayerInfo, changeCount int, candidates []Tile) (iter.Seq[ChangingForWin], error)

	// Shanten 该牌型的向听数，-1 表示已和牌
	Shanten(h Hand34, fixedMelds int) int
}

// shapeParser 具体和牌类型必须实现的部分，其余能力由 winTypeBase 统一提供
type shapeParser interface {
	Name() string
	ParseWinTileUnits(player *PlayerInfo, aliveTiles []Tile) iter.Seq[Decomposition]
	Shanten(h Hand34, fixedMelds int) int
}

// winTypeBase 建立在 ParseWinTileUnits 之上的公共实现，嵌入到具体和牌类型中
type winTypeBase struct {
	self shapeParser
}

func (b winTypeBase) Match(player *PlayerInfo, aliveTiles []Tile) (bool, error) {
	tiles, err := resolveAliveTiles(player, aliveTiles)
	if err != nil {
		return false, err
	}
	_, ok := first(b.self.ParseWinTileUnits(player, tiles))
	return ok, nil
}

func (b winTypeBase) DiscardCandidates(aliveTiles []Tile, candidates []Tile) []Tile {
	return discardCandidates(b.self.Shanten, aliveTiles, candidates)
}

func (b winTypeBase) ChangingsForWin(player *PlayerInfo, changeCount int, candidates []Tile) (iter.Seq[ChangingForWin], error) {
	plan, err := newChangingPlan(b.self, player, changeCount, candidates)
	if err != nil {
		return nil, err
	}
	return plan.all(), nil
}

// first 取流中的第一个元素，不会继续计算后续元素
func first[T any](seq iter.Seq[T]) (T, bool) {
	for v := range seq {
		return v, true
	}
	var zero T
	return zero, false
}

// aliveOrPlayer ParseWinTileUnits 使用的手牌，aliveTiles 为 nil 时退回 player 的手牌
func aliveOrPlayer(player *PlayerInfo, aliveTiles []Tile) []Tile {
	if aliveTiles != nil || player == nil {
		return aliveTiles
	}
	return player.AliveTiles
}
