package mahjong

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTiles(t *testing.T) {
	got := tiles(t, "1123m 0p,7z")
	require.Len(t, got, 6)

	assert.Equal(t, Tile{Type: Man1, ID: 0}, got[0])
	assert.Equal(t, Tile{Type: Man1, ID: 1}, got[1])
	assert.Equal(t, Tile{Type: Man2, ID: 0}, got[2])
	assert.Equal(t, Tile{Type: Man3, ID: 0}, got[3])
	assert.Equal(t, Tile{Type: Pin5, ID: 0, IsRed: true}, got[4])
	assert.Equal(t, Tile{Type: Red, ID: 0}, got[5])
}

func TestParseTilesErrors(t *testing.T) {
	cases := []string{
		"11111m", // 超过 4 张
		"8z",
		"0z",
		"123",  // 缺少花色
		"12x",  // 非法字符
		"m123", // 花色在前
	}
	for _, s := range cases {
		t.Run(s, func(t *testing.T) {
			_, err := ParseTiles(s)
			assert.ErrorIs(t, err, ErrInvalidNotation)
		})
	}
}

func TestFormatTilesRoundTrip(t *testing.T) {
	for _, s := range []string{"123m456p789s1122z", "055m", "19m19p19s1234567z", ""} {
		assert.Equal(t, s, FormatTiles(tiles(t, s)))
	}
	// 输入顺序不影响输出
	assert.Equal(t, "123m7z", FormatTiles(tiles(t, "7z3m2m1m")))
	assert.Equal(t, "159m", FormatTypes([]TileType{Man9, Man1, Man5}))
}

func TestParseHandSharesInstances(t *testing.T) {
	alive, melds, err := ParseHand("5m11z", "555m", "234p")
	require.NoError(t, err)
	require.Len(t, melds, 2)

	assert.Equal(t, MeldPeng, melds[0].Type)
	assert.Equal(t, MeldChi, melds[1].Type)
	// 手牌已经占用了 3 张 5m，副露里只剩 1 张可分配
	assert.ErrorIs(t, func() error { _, _, err := ParseHand("555m", "55m5m"); return err }(), ErrInvalidNotation)

	ids := map[int]bool{}
	for _, tile := range alive[:1] {
		ids[tile.ID] = true
	}
	for _, tile := range melds[0].Tiles {
		assert.False(t, ids[tile.ID], "meld reuses hand instance %d", tile.ID)
	}
}

func TestNewMeld(t *testing.T) {
	m, err := NewMeld(tiles(t, "7777z"))
	require.NoError(t, err)
	assert.Equal(t, MeldGang, m.Type)
	assert.Equal(t, -1, m.From)

	_, err = NewMeld(tiles(t, "135m"))
	assert.ErrorIs(t, err, ErrInvalidMeld)
	_, err = NewMeld(tiles(t, "11m"))
	assert.ErrorIs(t, err, ErrInvalidMeld)
}

func TestTileTypeClassifiers(t *testing.T) {
	assert.True(t, Man1.IsTerminal())
	assert.True(t, So9.IsTerminalOrHonor())
	assert.False(t, Pin5.IsTerminalOrHonor())
	assert.True(t, Red.IsHonor())
	assert.Equal(t, SuitPin, Pin3.Suit())
	assert.Equal(t, SuitHonor, East.Suit())
	assert.Equal(t, 3, Pin3.Number())
	assert.Equal(t, 7, Red.Number())
	assert.Equal(t, "5s", So5.String())
	assert.Equal(t, "0s", Tile{Type: So5, IsRed: true}.String())
	assert.False(t, TileType(TileTypeCount).Valid())
}

func TestTileDeck(t *testing.T) {
	deck := NewTileDeck(true).Tiles()
	require.Len(t, deck, 136)

	red := 0
	for _, tile := range deck {
		if tile.IsRed {
			red++
			assert.True(t, tile.Type.IsFive())
			assert.Equal(t, 0, tile.ID)
		}
	}
	assert.Equal(t, 3, red)
	assert.Equal(t, WindSouth, WindEast.Next())
	assert.Equal(t, WindEast, WindNorth.Next())
}
