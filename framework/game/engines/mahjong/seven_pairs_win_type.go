package mahjong

import "iter"

const WinTypeSevenPairs = "sevenPairs"

// SevenPairsWinType 七对子，不能有副露。
// AllowDuplicatePairs 为 true 时四张同种牌可以算作两个对子
type SevenPairsWinType struct {
	winTypeBase
	AllowDuplicatePairs bool
}

func NewSevenPairsWinType(allowDuplicatePairs bool) *SevenPairsWinType {
	w := &SevenPairsWinType{AllowDuplicatePairs: allowDuplicatePairs}
	w.winTypeBase = winTypeBase{self: w}
	return w
}

func (w *SevenPairsWinType) Name() string {
	return WinTypeSevenPairs
}

func (w *SevenPairsWinType) ParseWinTileUnits(player *PlayerInfo, aliveTiles []Tile) iter.Seq[Decomposition] {
	return w.shape().parse(player.FixedMelds(), aliveOrPlayer(player, aliveTiles))
}

func (w *SevenPairsWinType) shape() *shape {
	allowDup := w.AllowDuplicatePairs
	return &shape{
		vocabulary: []UnitKind{KindPair},
		handSize: func(fixedMelds int) int {
			if fixedMelds > 0 {
				return 0
			}
			return 14
		},
		allow: func(counts *[kindCount]int, kind UnitKind, fixedMelds int) bool {
			return counts[KindPair] < 7
		},
		accept: func(counts *[kindCount]int, fixedMelds int) bool {
			return fixedMelds == 0 && counts[KindPair] == 7
		},
		distinct: !allowDup,
	}
}

func (w *SevenPairsWinType) Shanten(h Hand34, fixedMelds int) int {
	return ShantenChiitoi(h, fixedMelds, w.AllowDuplicatePairs)
}
