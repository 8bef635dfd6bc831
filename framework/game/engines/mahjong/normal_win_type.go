package mahjong

import "iter"

const WinTypeNormal = "normal"

// NormalWinType 一般型：(4 - 副露数) 个面子 + 1 个雀头。
// ConcealedQuads 为 true 时手中的四张同种牌可以作为暗杠形状参与拆分（此时手牌多一张）
type NormalWinType struct {
	winTypeBase
	ConcealedQuads bool
}

func NewNormalWinType(concealedQuads bool) *NormalWinType {
	w := &NormalWinType{ConcealedQuads: concealedQuads}
	w.winTypeBase = winTypeBase{self: w}
	return w
}

var normalShape = &shape{
	vocabulary: []UnitKind{KindPair, KindTriplet, KindSequence},
	handSize: func(fixedMelds int) int {
		return 3*(4-fixedMelds) + 2
	},
	allow: normalAllow,
	accept: func(counts *[kindCount]int, fixedMelds int) bool {
		return counts[KindPair] == 1 && counts[KindTriplet]+counts[KindSequence] == 4-fixedMelds
	},
}

var normalQuadShape = &shape{
	vocabulary: []UnitKind{KindPair, KindTriplet, KindSequence, KindQuad},
	allow:      normalAllow,
	accept: func(counts *[kindCount]int, fixedMelds int) bool {
		return counts[KindPair] == 1 && counts[KindTriplet]+counts[KindSequence]+counts[KindQuad] == 4-fixedMelds
	},
}

func normalAllow(counts *[kindCount]int, kind UnitKind, fixedMelds int) bool {
	if kind == KindPair {
		return counts[KindPair] == 0
	}
	return counts[KindTriplet]+counts[KindSequence]+counts[KindQuad] < 4-fixedMelds
}

func (w *NormalWinType) Name() string {
	return WinTypeNormal
}

func (w *NormalWinType) ParseWinTileUnits(player *PlayerInfo, aliveTiles []Tile) iter.Seq[Decomposition] {
	s := normalShape
	if w.ConcealedQuads {
		s = normalQuadShape
	}
	return s.parse(player.FixedMelds(), aliveOrPlayer(player, aliveTiles))
}

func (w *NormalWinType) Shanten(h Hand34, fixedMelds int) int {
	return ShantenNormal(h, fixedMelds)
}
