package mahjong

// shantenUnreachable 该牌型在当前条件下不可能成立（如有副露时的七对子）
const shantenUnreachable = 99

// ShantenNormal 一般型向听数，fixedMelds 为已副露的面子数；-1 表示已和牌
func ShantenNormal(h Hand34, fixedMelds int) int {
	if fixedMelds > 4 {
		return shantenUnreachable
	}
	best := 8 // 一般型最差上界
	work := h
	dfsNormalShanten(&work, fixedMelds, 0, 0, &best)
	return best
}

// ShantenChiitoi 七对子向听数
func ShantenChiitoi(h Hand34, fixedMelds int, allowDuplicatePairs bool) int {
	if fixedMelds > 0 {
		return shantenUnreachable
	}
	pairs := 0
	unique := 0
	for i := 0; i < TileTypeCount; i++ {
		if h[i] > 0 {
			unique++
		}
		if allowDuplicatePairs {
			pairs += int(h[i] / 2)
		} else if h[i] >= 2 {
			pairs++
		}
	}
	sh := 6 - pairs
	if !allowDuplicatePairs && unique < 7 {
		sh += 7 - unique
	}
	return sh
}

// ShantenKokushi 国士无双向听数
func ShantenKokushi(h Hand34, fixedMelds int) int {
	if fixedMelds > 0 {
		return shantenUnreachable
	}
	unique := 0
	pair := false
	for _, idx := range orphanTypes {
		if h[idx] > 0 {
			unique++
			if h[idx] >= 2 {
				pair = true
			}
		}
	}
	sh := 13 - unique
	if pair {
		sh--
	}
	return sh
}

// ShantenKnitted 全不靠向听数：14 张互不相同、来自同一组合龙排列与字牌
func ShantenKnitted(h Hand34, fixedMelds int) int {
	if fixedMelds > 0 {
		return shantenUnreachable
	}
	honors := 0
	for t := East; t <= Red; t++ {
		if h[t] > 0 {
			honors++
		}
	}
	best := 0
	for _, arr := range knittedArrangements {
		n := 0
		for _, t := range arr {
			if h[t] > 0 {
				n++
			}
		}
		best = max(best, n)
	}
	return 13 - best - honors
}

// dfsNormalShanten 普通牌型向听数搜索 m：当前已经形成的面子数(包含 fixedMelds)、p：雀头数（0/1）、t：搭子数（taatsu）、best：全局最小向听
func dfsNormalShanten(h *Hand34, m int, p int, t int, best *int) {
	if m > 4 {
		return
	}

	t2 := t
	if limit := 4 - m; t2 > limit {
		t2 = limit
	}

	sh := 8 - 2*m - t2 - p
	if sh < *best {
		*best = sh
	}

	i := h.firstNonZero()
	if i == -1 {
		return
	}

	if !TileType(i).IsNumbered() {
		if (*h)[i] >= 3 {
			(*h)[i] -= 3
			dfsNormalShanten(h, m+1, p, t, best)
			(*h)[i] += 3
		}

		if p == 0 && (*h)[i] >= 2 {
			(*h)[i] -= 2
			dfsNormalShanten(h, m, 1, t, best)
			(*h)[i] += 2
		}

		if (*h)[i] >= 2 {
			(*h)[i] -= 2
			dfsNormalShanten(h, m, p, t+1, best)
			(*h)[i] += 2
		}

		(*h)[i]--
		dfsNormalShanten(h, m, p, t, best)
		(*h)[i]++
		return
	}

	if (*h)[i] >= 3 {
		(*h)[i] -= 3
		dfsNormalShanten(h, m+1, p, t, best)
		(*h)[i] += 3
	}

	if sameSuit(i, i+2) {
		if (*h)[i] > 0 && (*h)[i+1] > 0 && (*h)[i+2] > 0 {
			(*h)[i]--
			(*h)[i+1]--
			(*h)[i+2]--
			dfsNormalShanten(h, m+1, p, t, best)
			(*h)[i]++
			(*h)[i+1]++
			(*h)[i+2]++
		}
	}

	if p == 0 && (*h)[i] >= 2 {
		(*h)[i] -= 2
		dfsNormalShanten(h, m, 1, t, best)
		(*h)[i] += 2
	}

	// 对子也可作为搭子
	if (*h)[i] >= 2 {
		(*h)[i] -= 2
		dfsNormalShanten(h, m, p, t+1, best)
		(*h)[i] += 2
	}

	if sameSuit(i, i+1) {
		if (*h)[i] > 0 && (*h)[i+1] > 0 {
			(*h)[i]--
			(*h)[i+1]--
			dfsNormalShanten(h, m, p, t+1, best)
			(*h)[i]++
			(*h)[i+1]++
		}
	}

	if sameSuit(i, i+2) {
		if (*h)[i] > 0 && (*h)[i+2] > 0 {
			(*h)[i]--
			(*h)[i+2]--
			dfsNormalShanten(h, m, p, t+1, best)
			(*h)[i]++
			(*h)[i+2]++
		}
	}

	(*h)[i]--
	dfsNormalShanten(h, m, p, t, best)
	(*h)[i]++
}

// sameSuit i 与 j 是否为同一花色的数牌
func sameSuit(i, j int) bool {
	if j >= TileTypeCount {
		return false
	}
	return TileType(i).IsNumbered() && TileType(j).IsNumbered() && TileType(i).Suit() == TileType(j).Suit()
}
