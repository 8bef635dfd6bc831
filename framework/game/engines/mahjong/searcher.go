package mahjong

import (
	"context"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/LXiong/mahjong/common/cache"
	"github.com/LXiong/mahjong/common/log"
)

type Candidate struct {
	DiscardType    TileType
	DiscardOptions []Tile     // 实体牌：红5/普通5供 UI 选择
	Waits          []TileType // 听哪些牌
	Ukeire         int        // 有效张数
}

// Searcher 在和牌类型之上加一层结果缓存，并提供听牌、弃牌、换牌的批量查询
type Searcher struct {
	winTypes []WinType
	cache    *cache.GeneralCache // 可以为 nil，即不缓存
	workers  int
}

type SearcherOption func(*Searcher)

func WithWinTypes(winTypes ...WinType) SearcherOption {
	return func(s *Searcher) {
		s.winTypes = winTypes
	}
}

func WithCache(c *cache.GeneralCache) SearcherOption {
	return func(s *Searcher) {
		s.cache = c
	}
}

// WithWorkers CollectChangings 的最大并发数
func WithWorkers(n int) SearcherOption {
	return func(s *Searcher) {
		if n > 0 {
			s.workers = n
		}
	}
}

func NewSearcher(opts ...SearcherOption) *Searcher {
	s := &Searcher{
		winTypes: DefaultWinTypes(),
		workers:  runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Searcher) WinTypes() []WinType {
	return s.winTypes
}

// WinType 按名称查找本 Searcher 使用的和牌类型
func (s *Searcher) WinType(name string) (WinType, bool) {
	for _, wt := range s.winTypes {
		if wt.Name() == name {
			return wt, true
		}
	}
	return nil, false
}

// Match 带缓存的 wt.Match，是否和牌只取决于牌种类计数与副露数
func (s *Searcher) Match(wt WinType, player *PlayerInfo, aliveTiles []Tile) (bool, error) {
	tiles, err := resolveAliveTiles(player, aliveTiles)
	if err != nil {
		return false, err
	}
	if s.cache == nil {
		return wt.Match(player, tiles)
	}

	h, _ := Hand34FromTiles(tiles)
	key := "match:" + winTypeKey(wt) + ":" + h.keyWithFixedMelds(player.FixedMelds())
	if v, ok := s.cache.GetBool(key); ok {
		return v, nil
	}
	ok, err := wt.Match(player, tiles)
	if err != nil {
		return false, err
	}
	s.cache.Set(key, ok)
	return ok, nil
}

// MatchAny 依次尝试本 Searcher 的全部和牌类型
func (s *Searcher) MatchAny(player *PlayerInfo, aliveTiles []Tile) (WinType, bool, error) {
	var firstErr error
	for _, wt := range s.winTypes {
		ok, err := s.Match(wt, player, aliveTiles)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if ok {
			return wt, true, nil
		}
	}
	return nil, false, firstErr
}

// Waits 摸到后能和牌的牌种类
func (s *Searcher) Waits(wt WinType, player *PlayerInfo) ([]TileType, error) {
	waits, _, err := s.WaitsAndUkeire(wt, player, nil)
	return waits, err
}

// WaitsAndUkeire 枚举听牌 + 计算进张，visible 为场上其他可见牌的计数，可以为 nil
func (s *Searcher) WaitsAndUkeire(wt WinType, player *PlayerInfo, visible *[TileTypeCount]uint8) ([]TileType, int, error) {
	if _, err := resolveAliveTiles(player, nil); err != nil {
		return nil, 0, err
	}

	var used [TileTypeCount][4]bool
	var held Hand34
	markUsed := func(tiles []Tile) {
		for _, t := range tiles {
			if t.ID >= 0 && t.ID < 4 {
				used[t.Type][t.ID] = true
			}
			held[t.Type]++
		}
	}
	markUsed(player.AliveTiles)
	for _, m := range player.Melds {
		markUsed(m.Tiles)
	}

	var waits []TileType
	hand := make([]Tile, len(player.AliveTiles), len(player.AliveTiles)+1)
	copy(hand, player.AliveTiles)
	for t := 0; t < TileTypeCount; t++ {
		id := freeID(used[t])
		if id < 0 {
			continue
		}
		ok, err := s.Match(wt, player, append(hand, Tile{Type: TileType(t), ID: id}))
		if err != nil {
			return nil, 0, err
		}
		if ok {
			waits = append(waits, TileType(t))
		}
	}
	return waits, ukeireByWaits(held, waits, visible), nil
}

func freeID(used [4]bool) int {
	for id, u := range used {
		if !u {
			return id
		}
	}
	return -1
}

// ukeireByWaits 计算听牌的进张数
func ukeireByWaits(held Hand34, waits []TileType, visible *[TileTypeCount]uint8) int {
	ukeire := 0
	for _, tt := range waits {
		add := 4 - int(held[tt])
		if visible != nil {
			add -= int(visible[tt])
		}
		ukeire += max(add, 0)
	}
	return ukeire
}

// SeekCandidates 弃牌后,有哪些牌听牌，是否允许立直由调用方判断
func (s *Searcher) SeekCandidates(wt WinType, player *PlayerInfo, visible *[TileTypeCount]uint8) ([]Candidate, error) {
	if _, err := resolveAliveTiles(player, nil); err != nil {
		return nil, err
	}
	h, discardOpts := Hand34FromTiles(player.AliveTiles)

	var out []Candidate
	for i := 0; i < TileTypeCount; i++ {
		if h[i] == 0 {
			continue
		}
		opts := discardOpts[TileType(i)]
		after := *player
		after.AliveTiles = withoutTiles(player.AliveTiles, opts[:1])

		waits, ukeire, err := s.WaitsAndUkeire(wt, &after, visible)
		if err != nil {
			return nil, err
		}
		if len(waits) == 0 {
			continue
		}
		out = append(out, Candidate{
			DiscardType:    TileType(i),
			DiscardOptions: opts,
			Waits:          waits,
			Ukeire:         ukeire,
		})
	}
	return out, nil
}

// CollectChangings 并行枚举换牌和牌方法：每种移除组合是一个任务，结果去重后按键排序。
// limit > 0 时收集到 limit 个即停止，此时返回哪一部分结果不确定
func (s *Searcher) CollectChangings(ctx context.Context, wt WinType, player *PlayerInfo, changeCount int, candidates []Tile, limit int) ([]ChangingForWin, error) {
	plan, err := newChangingPlan(wt, player, changeCount, candidates)
	if err != nil {
		return nil, err
	}
	log.Debug("collect changings: type=%s change=%d workers=%d", wt.Name(), changeCount, s.workers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	var (
		mu   sync.Mutex
		seen = make(map[string]struct{})
		out  []ChangingForWin
		full bool
	)
	collect := func(c ChangingForWin) bool {
		if gctx.Err() != nil {
			return false
		}
		mu.Lock()
		defer mu.Unlock()
		if full {
			return false
		}
		if _, dup := seen[c.Key()]; dup {
			return true
		}
		seen[c.Key()] = struct{}{}
		out = append(out, c)
		if limit > 0 && len(out) >= limit {
			full = true
			return false
		}
		return true
	}

	for removed := range plan.removals() {
		mu.Lock()
		stop := full
		mu.Unlock()
		if stop || gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			plan.tryRemoval(removed, collect)
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// errgroup 的 ctx 在 Wait 后总会被取消，父 ctx 才能说明调用方是否放弃
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	log.Debug("collect changings done: type=%s found=%d", wt.Name(), len(out))
	return out, nil
}

// winTypeKey 缓存键中的和牌类型部分，同名但规则开关不同的类型不能共用结果
func winTypeKey(wt WinType) string {
	switch w := wt.(type) {
	case *NormalWinType:
		if w.ConcealedQuads {
			return w.Name() + "+quads"
		}
	case *SevenPairsWinType:
		if w.AllowDuplicatePairs {
			return w.Name() + "+dup"
		}
	}
	return wt.Name()
}
