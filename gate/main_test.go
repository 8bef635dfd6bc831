package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LXiong/mahjong/framework/game/engines/mahjong"
)

func TestRunCheck(t *testing.T) {
	checkLimit = 20
	checkChangeCount = 1
	defer func() { checkChangeCount = -1 }()

	alive, melds, err := mahjong.ParseHand("123m456p789s11z3z5z")
	require.NoError(t, err)

	var out bytes.Buffer
	err = runCheck(context.Background(), &out, mahjong.NewNormalWinType(false), mahjong.NewPlayerInfo(alive, melds...))
	require.NoError(t, err)

	s := out.String()
	assert.Contains(t, s, "和牌: false")
	assert.Contains(t, s, "听牌: ")
	assert.Contains(t, s, "removedTiles=3z, addedTiles=55z")
}

func TestRunCheck_Winning(t *testing.T) {
	checkLimit = 20
	checkChangeCount = -1

	alive, _, err := mahjong.ParseHand("111222333m456p77z")
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, runCheck(context.Background(), &out, mahjong.NewNormalWinType(false), mahjong.NewPlayerInfo(alive)))
	assert.Contains(t, out.String(), "和牌: true")
	assert.Equal(t, 2, bytes.Count(out.Bytes(), []byte("拆分: ")))
	assert.Contains(t, out.String(), "弃牌建议")
}
