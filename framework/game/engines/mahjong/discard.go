package mahjong

import "sort"

type discardScore struct {
	tileType TileType
	shanten  int // 打出后的向听数
	ukeire   int // 打出后的进张数
}

// discardCandidates 按向听数过滤候选弃牌：只保留打出后向听数最小的牌，
// 再按进张数、孤张幺九优先排序。候选里不在手牌中的牌会被忽略，同优先级的牌全部保留
func discardCandidates(shanten func(Hand34, int) int, aliveTiles []Tile, candidates []Tile) []Tile {
	h, _ := Hand34FromTiles(aliveTiles)
	fixedMelds := inferFixedMelds(len(aliveTiles))

	inHand := make(map[instance]struct{}, len(aliveTiles))
	for _, t := range aliveTiles {
		inHand[t.instance()] = struct{}{}
	}

	var scores []discardScore
	var scored [TileTypeCount]bool
	for _, c := range candidates {
		if _, ok := inHand[c.instance()]; !ok || scored[c.Type] {
			continue
		}
		scored[c.Type] = true
		work := h
		work[c.Type]--
		sh := shanten(work, fixedMelds)
		scores = append(scores, discardScore{
			tileType: c.Type,
			shanten:  sh,
			ukeire:   ukeireOf(shanten, work, fixedMelds, sh),
		})
	}
	if len(scores) == 0 {
		return nil
	}

	best := scores[0].shanten
	for _, s := range scores[1:] {
		best = min(best, s.shanten)
	}
	kept := scores[:0]
	for _, s := range scores {
		if s.shanten == best {
			kept = append(kept, s)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		a, b := kept[i], kept[j]
		if a.ukeire != b.ukeire {
			return a.ukeire > b.ukeire
		}
		if a.tileType.IsTerminalOrHonor() != b.tileType.IsTerminalOrHonor() {
			return a.tileType.IsTerminalOrHonor()
		}
		return a.tileType < b.tileType
	})

	out := make([]Tile, 0, len(candidates))
	emitted := make(map[instance]struct{}, len(candidates))
	for _, s := range kept {
		for _, c := range candidates {
			if c.Type != s.tileType {
				continue
			}
			if _, ok := inHand[c.instance()]; !ok {
				continue
			}
			if _, ok := emitted[c.instance()]; ok {
				continue
			}
			emitted[c.instance()] = struct{}{}
			out = append(out, c)
		}
	}
	return out
}

// ukeireOf 摸到后能让向听数前进的牌的剩余张数（只扣除自己手中的张数）
func ukeireOf(shanten func(Hand34, int) int, h Hand34, fixedMelds int, current int) int {
	ukeire := 0
	for t := 0; t < TileTypeCount; t++ {
		if h[t] >= 4 {
			continue
		}
		work := h
		work[t]++
		if shanten(work, fixedMelds) < current {
			ukeire += 4 - int(h[t])
		}
	}
	return ukeire
}

// inferFixedMelds 根据手牌张数推断副露数（每个副露让手牌少 3 张）
func inferFixedMelds(n int) int {
	f := (14 - n) / 3
	if f < 0 {
		return 0
	}
	return min(f, 4)
}
