package mahjong

import (
	"iter"
	"testing"

	"github.com/stretchr/testify/require"
)

func tiles(t testing.TB, s string) []Tile {
	t.Helper()
	out, err := ParseTiles(s)
	require.NoError(t, err)
	return out
}

func newPlayer(t testing.TB, hand string, melds ...string) *PlayerInfo {
	t.Helper()
	alive, ms, err := ParseHand(hand, melds...)
	require.NoError(t, err)
	return NewPlayerInfo(alive, ms...)
}

func collect[T any](seq iter.Seq[T]) []T {
	var out []T
	for v := range seq {
		out = append(out, v)
	}
	return out
}

// requirePartition 拆分恰好覆盖手牌中的每一张实体牌一次
func requirePartition(t *testing.T, alive []Tile, d Decomposition) {
	t.Helper()
	want := make(map[instance]int, len(alive))
	for _, tile := range alive {
		want[tile.instance()]++
	}
	got := make(map[instance]int, len(alive))
	for _, u := range d {
		require.NotEmpty(t, u.Tiles, "empty unit in %s", d)
		require.True(t, u.Kind.accepts(u.Types()), "unit %s does not fit its kind", u)
		for _, tile := range u.Tiles {
			got[tile.instance()]++
		}
	}
	require.Equal(t, want, got, "decomposition %s does not partition %s", d, FormatTiles(alive))
}

func changingKeys(cs []ChangingForWin) []string {
	keys := make([]string, len(cs))
	for i, c := range cs {
		keys[i] = c.Key()
	}
	return keys
}
