package api

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/LXiong/mahjong/common/http"
	"github.com/LXiong/mahjong/common/log"
	"github.com/LXiong/mahjong/framework/game/engines/mahjong"
)

// HandHandler 手牌分析接口
type HandHandler struct {
	searcher       *mahjong.Searcher
	maxChangeCount atomic.Int64 // 配置热更新时修改
}

func NewHandHandler(searcher *mahjong.Searcher, maxChangeCount int) *HandHandler {
	h := &HandHandler{searcher: searcher}
	h.SetMaxChangeCount(maxChangeCount)
	return h
}

func (h *HandHandler) SetMaxChangeCount(n int) {
	h.maxChangeCount.Store(int64(n))
}

func (h *HandHandler) MaxChangeCount() int {
	return int(h.maxChangeCount.Load())
}

type HandRequest struct {
	Hand     string   `json:"hand" binding:"required"`
	Melds    []string `json:"melds"`
	WinType  string   `json:"winType"`
	WinTypes []string `json:"winTypes"`
	Limit    int      `json:"limit"`
}

type DiscardRequest struct {
	Hand       string `json:"hand" binding:"required"`
	Candidates string `json:"candidates"` // 为空时所有手牌都是候选
	WinType    string `json:"winType"`
}

type ChangingsRequest struct {
	Hand        string   `json:"hand" binding:"required"`
	Melds       []string `json:"melds"`
	WinType     string   `json:"winType"`
	ChangeCount int      `json:"changeCount"`
	Limit       int      `json:"limit"`
}

type UnitView struct {
	Kind  string `json:"kind"`
	Tiles string `json:"tiles"`
}

type ChangingView struct {
	Removed string `json:"removed"`
	Added   string `json:"added"`
}

type CandidateView struct {
	Discard string `json:"discard"`
	Waits   string `json:"waits"`
	Ukeire  int    `json:"ukeire"`
}

// MatchHandler 判断是否和牌，winTypes 为空时尝试全部启用的类型
func (h *HandHandler) MatchHandler(c *http.Context) error {
	var req HandRequest
	if err := c.BindJSON(&req); err != nil {
		return http.InvalidParam(err)
	}
	player, err := parsePlayer(req.Hand, req.Melds)
	if err != nil {
		return err
	}

	winTypes := h.searcher.WinTypes()
	if len(req.WinTypes) > 0 {
		winTypes = make([]mahjong.WinType, 0, len(req.WinTypes))
		for _, name := range req.WinTypes {
			wt, err := h.winType(name)
			if err != nil {
				return err
			}
			winTypes = append(winTypes, wt)
		}
	}

	var firstErr error
	for _, wt := range winTypes {
		ok, err := h.searcher.Match(wt, player, nil)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if ok {
			c.Success(map[string]interface{}{"matched": true, "winType": wt.Name()})
			return nil
		}
	}
	if firstErr != nil {
		return engineError(firstErr)
	}
	c.Success(map[string]interface{}{"matched": false})
	return nil
}

// DecomposeHandler 列出全部和牌拆分，limit > 0 时最多返回 limit 个
func (h *HandHandler) DecomposeHandler(c *http.Context) error {
	var req HandRequest
	if err := c.BindJSON(&req); err != nil {
		return http.InvalidParam(err)
	}
	player, err := parsePlayer(req.Hand, req.Melds)
	if err != nil {
		return err
	}
	wt, err := h.winType(req.WinType)
	if err != nil {
		return err
	}

	out := make([][]UnitView, 0)
	for d := range wt.ParseWinTileUnits(player, nil) {
		units := make([]UnitView, len(d))
		for i, u := range d {
			units[i] = UnitView{Kind: u.Kind.String(), Tiles: mahjong.FormatTiles(u.Tiles)}
		}
		out = append(out, units)
		if req.Limit > 0 && len(out) >= req.Limit {
			break
		}
	}
	c.Success(map[string]interface{}{"winType": wt.Name(), "decompositions": out})
	return nil
}

// DiscardHandler 弃牌建议
func (h *HandHandler) DiscardHandler(c *http.Context) error {
	var req DiscardRequest
	if err := c.BindJSON(&req); err != nil {
		return http.InvalidParam(err)
	}
	alive, err := mahjong.ParseTiles(req.Hand)
	if err != nil {
		return http.InvalidParam(err)
	}
	candidates := alive
	if req.Candidates != "" {
		// 候选与手牌使用同一套 ID 分配，同种牌的第 n 张对应手牌中的第 n 张
		if candidates, err = mahjong.ParseTiles(req.Candidates); err != nil {
			return http.InvalidParam(err)
		}
	}
	wt, err := h.winType(req.WinType)
	if err != nil {
		return err
	}

	advice := wt.DiscardCandidates(alive, candidates)
	tiles := make([]string, len(advice))
	for i, t := range advice {
		tiles[i] = t.String()
	}
	c.Success(map[string]interface{}{"winType": wt.Name(), "tiles": tiles})
	return nil
}

// WaitsHandler 13 张时返回听牌，14 张时返回每种打法的听牌与进张
func (h *HandHandler) WaitsHandler(c *http.Context) error {
	var req HandRequest
	if err := c.BindJSON(&req); err != nil {
		return http.InvalidParam(err)
	}
	player, err := parsePlayer(req.Hand, req.Melds)
	if err != nil {
		return err
	}
	wt, err := h.winType(req.WinType)
	if err != nil {
		return err
	}

	if len(player.AliveTiles)%3 == 2 {
		candidates, err := h.searcher.SeekCandidates(wt, player, nil)
		if err != nil {
			return engineError(err)
		}
		views := make([]CandidateView, len(candidates))
		for i, cand := range candidates {
			views[i] = CandidateView{
				Discard: cand.DiscardType.String(),
				Waits:   mahjong.FormatTypes(cand.Waits),
				Ukeire:  cand.Ukeire,
			}
		}
		c.Success(map[string]interface{}{"winType": wt.Name(), "candidates": views})
		return nil
	}

	waits, ukeire, err := h.searcher.WaitsAndUkeire(wt, player, nil)
	if err != nil {
		return engineError(err)
	}
	c.Success(map[string]interface{}{"winType": wt.Name(), "waits": mahjong.FormatTypes(waits), "ukeire": ukeire})
	return nil
}

// ChangingsHandler 换牌和牌，候选池为手牌与副露以外的全部牌
func (h *HandHandler) ChangingsHandler(c *http.Context) error {
	var req ChangingsRequest
	if err := c.BindJSON(&req); err != nil {
		return http.InvalidParam(err)
	}
	if limit := h.MaxChangeCount(); req.ChangeCount > limit {
		return http.InvalidParam(fmt.Errorf("%w: %d exceeds limit %d", mahjong.ErrInvalidChangeCount, req.ChangeCount, limit))
	}
	player, err := parsePlayer(req.Hand, req.Melds)
	if err != nil {
		return err
	}
	wt, err := h.winType(req.WinType)
	if err != nil {
		return err
	}

	changings, err := h.searcher.CollectChangings(c.Context(), wt, player, req.ChangeCount, player.CandidatePool(), req.Limit)
	if err != nil {
		return engineError(err)
	}
	log.Debug("changings: requestID=%s type=%s found=%d", c.RequestID(), wt.Name(), len(changings))

	views := make([]ChangingView, len(changings))
	for i, ch := range changings {
		views[i] = ChangingView{
			Removed: mahjong.FormatTiles(ch.RemovedTiles),
			Added:   mahjong.FormatTiles(ch.AddedTiles),
		}
	}
	c.Success(map[string]interface{}{"winType": wt.Name(), "changings": views})
	return nil
}

// winType 空名称使用一般型，只允许配置中启用的类型
func (h *HandHandler) winType(name string) (mahjong.WinType, error) {
	if name == "" {
		name = mahjong.WinTypeNormal
	}
	wt, ok := h.searcher.WinType(name)
	if !ok {
		return nil, http.InvalidParam(fmt.Errorf("%w: %s", mahjong.ErrUnknownWinType, name))
	}
	return wt, nil
}

func parsePlayer(hand string, melds []string) (*mahjong.PlayerInfo, error) {
	alive, ms, err := mahjong.ParseHand(hand, melds...)
	if err != nil {
		return nil, http.InvalidParam(err)
	}
	return mahjong.NewPlayerInfo(alive, ms...), nil
}

// engineError 引擎返回的错误都是调用方参数问题，请求被取消除外
func engineError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return http.InvalidParam(err)
}
