package mahjong

import "iter"

const WinTypeThirteenOrphans = "thirteenOrphans"

// ThirteenOrphansWinType 国士无双：13 种幺九牌各一张，其中一种成对，不能有副露
type ThirteenOrphansWinType struct {
	winTypeBase
}

func NewThirteenOrphansWinType() *ThirteenOrphansWinType {
	w := &ThirteenOrphansWinType{}
	w.winTypeBase = winTypeBase{self: w}
	return w
}

var thirteenOrphansShape = &shape{
	vocabulary: []UnitKind{KindThirteenOrphans},
	handSize: func(fixedMelds int) int {
		if fixedMelds > 0 {
			return 0
		}
		return 14
	},
	accept: func(counts *[kindCount]int, fixedMelds int) bool {
		return fixedMelds == 0 && counts[KindThirteenOrphans] == 1
	},
}

func (w *ThirteenOrphansWinType) Name() string {
	return WinTypeThirteenOrphans
}

func (w *ThirteenOrphansWinType) ParseWinTileUnits(player *PlayerInfo, aliveTiles []Tile) iter.Seq[Decomposition] {
	return thirteenOrphansShape.parse(player.FixedMelds(), aliveOrPlayer(player, aliveTiles))
}

func (w *ThirteenOrphansWinType) Shanten(h Hand34, fixedMelds int) int {
	return ShantenKokushi(h, fixedMelds)
}
