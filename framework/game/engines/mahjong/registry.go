package mahjong

import (
	"fmt"
	"strings"
)

// WinTypeOptions 可配置的和牌规则开关
type WinTypeOptions struct {
	AllowDuplicatePairs bool // 七对子允许四张同种牌算两个对子
	ConcealedQuads      bool // 一般型允许手中四张作为杠子
}

// winTypeFactories 名称 -> 构造函数，新增和牌类型在这里注册
var winTypeFactories = map[string]func(opts WinTypeOptions) WinType{
	WinTypeNormal: func(opts WinTypeOptions) WinType {
		return NewNormalWinType(opts.ConcealedQuads)
	},
	WinTypeSevenPairs: func(opts WinTypeOptions) WinType {
		return NewSevenPairsWinType(opts.AllowDuplicatePairs)
	},
	WinTypeThirteenOrphans: func(WinTypeOptions) WinType {
		return NewThirteenOrphansWinType()
	},
	WinTypeKnittedHonors: func(WinTypeOptions) WinType {
		return NewKnittedHonorsWinType()
	},
}

// WinTypeNames 已注册的全部和牌类型名称
func WinTypeNames() []string {
	return []string{WinTypeNormal, WinTypeSevenPairs, WinTypeThirteenOrphans, WinTypeKnittedHonors}
}

// WinTypeByName 按名称创建和牌类型，名称不区分大小写
func WinTypeByName(name string, opts WinTypeOptions) (WinType, error) {
	for registered, factory := range winTypeFactories {
		if strings.EqualFold(registered, name) {
			return factory(opts), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownWinType, name)
}

// NewWinTypes 按顺序创建多个和牌类型
func NewWinTypes(names []string, opts WinTypeOptions) ([]WinType, error) {
	out := make([]WinType, 0, len(names))
	for _, name := range names {
		wt, err := WinTypeByName(name, opts)
		if err != nil {
			return nil, err
		}
		out = append(out, wt)
	}
	return out, nil
}

// DefaultWinTypes 立直麻将常用的三种和牌类型
func DefaultWinTypes() []WinType {
	return []WinType{
		NewNormalWinType(false),
		NewSevenPairsWinType(false),
		NewThirteenOrphansWinType(),
	}
}

// MatchAny 依次独立判定每一种和牌类型，返回第一个能和的类型。
// 某个类型出错不影响其他类型，全部不能和时返回遇到的第一个错误
func MatchAny(winTypes []WinType, player *PlayerInfo, aliveTiles []Tile) (WinType, bool, error) {
	var firstErr error
	for _, wt := range winTypes {
		ok, err := wt.Match(player, aliveTiles)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("%s: %w", wt.Name(), err)
			}
			continue
		}
		if ok {
			return wt, true, nil
		}
	}
	return nil, false, firstErr
}
