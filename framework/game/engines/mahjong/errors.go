package mahjong

import "errors"

// 调用方违反约定时返回的错误；“不能和牌”从来不是错误，只是空结果
var (
	ErrNilPlayer              = errors.New("player info is nil")
	ErrNoHand                 = errors.New("no alive tiles to evaluate")
	ErrDuplicateTile          = errors.New("duplicate tile instance in hand")
	ErrInvalidChangeCount     = errors.New("invalid change count")
	ErrInsufficientCandidates = errors.New("not enough candidate tiles")
)

// 牌串与副露解析错误
var (
	ErrInvalidNotation = errors.New("invalid tile notation")
	ErrInvalidMeld     = errors.New("invalid meld")
	ErrInvalidUnit     = errors.New("invalid tile unit")
)

// 和牌类型注册错误
var (
	ErrUnknownWinType = errors.New("unknown win type")
)
