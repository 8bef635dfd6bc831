package mahjong

import "iter"

const WinTypeKnittedHonors = "knittedHonors"

// KnittedHonorsWinType 全不靠：14 张互不相同的牌，数牌全部来自同一种组合龙排列
// （三种花色分别取 147、258、369），其余为字牌，不能有副露
type KnittedHonorsWinType struct {
	winTypeBase
}

func NewKnittedHonorsWinType() *KnittedHonorsWinType {
	w := &KnittedHonorsWinType{}
	w.winTypeBase = winTypeBase{self: w}
	return w
}

var knittedHonorsShape = &shape{
	vocabulary: []UnitKind{KindKnittedHonors},
	handSize: func(fixedMelds int) int {
		if fixedMelds > 0 {
			return 0
		}
		return 14
	},
	accept: func(counts *[kindCount]int, fixedMelds int) bool {
		return fixedMelds == 0 && counts[KindKnittedHonors] == 1
	},
}

func (w *KnittedHonorsWinType) Name() string {
	return WinTypeKnittedHonors
}

func (w *KnittedHonorsWinType) ParseWinTileUnits(player *PlayerInfo, aliveTiles []Tile) iter.Seq[Decomposition] {
	return knittedHonorsShape.parse(player.FixedMelds(), aliveOrPlayer(player, aliveTiles))
}

func (w *KnittedHonorsWinType) Shanten(h Hand34, fixedMelds int) int {
	return ShantenKnitted(h, fixedMelds)
}
