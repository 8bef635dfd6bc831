package api

import (
	"bytes"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LXiong/mahjong/common/http"
	"github.com/LXiong/mahjong/common/log"
	"github.com/LXiong/mahjong/framework/game/engines/mahjong"
)

type envelope struct {
	Code      int             `json:"code"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	RequestID string          `json:"requestId"`
}

func newTestHandler(t *testing.T) (*HandHandler, *http.HttpServer) {
	t.Helper()
	log.SetOutput(&bytes.Buffer{})
	h := NewHandHandler(mahjong.NewSearcher(mahjong.WithWorkers(2)), 2)
	server := http.NewHttpServer(http.WithMode(gin.TestMode))
	server.Use(http.RequestIDMiddleware())
	RegisterRoutes(server, h)
	return h, server
}

func post(t *testing.T, server *http.HttpServer, path string, body any, data any) (int, envelope) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(nethttp.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if data != nil && w.Code == nethttp.StatusOK {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return w.Code, env
}

func TestMatchHandler(t *testing.T) {
	_, server := newTestHandler(t)

	var got struct {
		Matched bool   `json:"matched"`
		WinType string `json:"winType"`
	}
	code, env := post(t, server, "/api/v1/hand/match", HandRequest{Hand: "111m222p333s444z55z"}, &got)
	require.Equal(t, nethttp.StatusOK, code, env.Message)
	assert.True(t, got.Matched)
	assert.Equal(t, mahjong.WinTypeNormal, got.WinType)
	assert.NotEmpty(t, env.RequestID)

	got.Matched, got.WinType = false, ""
	code, _ = post(t, server, "/api/v1/hand/match", HandRequest{Hand: "1122m3344p5566s77z"}, &got)
	require.Equal(t, nethttp.StatusOK, code)
	assert.Equal(t, mahjong.WinTypeSevenPairs, got.WinType)

	got.Matched = true
	code, _ = post(t, server, "/api/v1/hand/match", HandRequest{
		Hand:     "1122m3344p5566s77z",
		WinTypes: []string{mahjong.WinTypeNormal},
	}, &got)
	require.Equal(t, nethttp.StatusOK, code)
	assert.False(t, got.Matched)
}

func TestMatchHandler_BadRequests(t *testing.T) {
	_, server := newTestHandler(t)

	cases := []struct {
		name string
		body HandRequest
	}{
		{"missing hand", HandRequest{}},
		{"bad notation", HandRequest{Hand: "123x"}},
		{"bad meld", HandRequest{Hand: "11z", Melds: []string{"124m"}}},
		{"disabled win type", HandRequest{Hand: "147m258p369s12345z", WinTypes: []string{mahjong.WinTypeKnittedHonors}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, env := post(t, server, "/api/v1/hand/match", tc.body, nil)
			assert.Equal(t, nethttp.StatusBadRequest, code)
			assert.Equal(t, http.CodeInvalidParam, env.Code)
		})
	}
}

func TestDecomposeHandler(t *testing.T) {
	_, server := newTestHandler(t)

	var got struct {
		WinType        string       `json:"winType"`
		Decompositions [][]UnitView `json:"decompositions"`
	}
	code, _ := post(t, server, "/api/v1/hand/decompose", HandRequest{Hand: "111222333m456p77z"}, &got)
	require.Equal(t, nethttp.StatusOK, code)
	assert.Len(t, got.Decompositions, 2)
	for _, d := range got.Decompositions {
		assert.Len(t, d, 5)
	}

	code, _ = post(t, server, "/api/v1/hand/decompose", HandRequest{Hand: "111222333m456p77z", Limit: 1}, &got)
	require.Equal(t, nethttp.StatusOK, code)
	assert.Len(t, got.Decompositions, 1)

	code, _ = post(t, server, "/api/v1/hand/decompose", HandRequest{Hand: "111m222p333s444z56z"}, &got)
	require.Equal(t, nethttp.StatusOK, code)
	assert.Empty(t, got.Decompositions)
}

func TestDiscardHandler(t *testing.T) {
	_, server := newTestHandler(t)

	var got struct {
		Tiles []string `json:"tiles"`
	}
	code, _ := post(t, server, "/api/v1/hand/discard", DiscardRequest{Hand: "123m456p789s111z35z"}, &got)
	require.Equal(t, nethttp.StatusOK, code)
	assert.Equal(t, []string{mahjong.West.String(), mahjong.White.String()}, got.Tiles)
}

func TestWaitsHandler(t *testing.T) {
	_, server := newTestHandler(t)

	var waits struct {
		Waits  string `json:"waits"`
		Ukeire int    `json:"ukeire"`
	}
	code, _ := post(t, server, "/api/v1/hand/waits", HandRequest{Hand: "19m19p19s1234567z", WinType: mahjong.WinTypeThirteenOrphans}, &waits)
	require.Equal(t, nethttp.StatusOK, code)
	assert.Equal(t, "19m19p19s1234567z", waits.Waits)
	assert.Equal(t, 39, waits.Ukeire)

	var seek struct {
		Candidates []CandidateView `json:"candidates"`
	}
	code, _ = post(t, server, "/api/v1/hand/waits", HandRequest{Hand: "123m123p123s78m11z1s"}, &seek)
	require.Equal(t, nethttp.StatusOK, code)
	require.NotEmpty(t, seek.Candidates)
	found := false
	for _, c := range seek.Candidates {
		if c.Discard == mahjong.So1.String() {
			found = true
			assert.Equal(t, "69m", c.Waits)
			assert.Equal(t, 8, c.Ukeire)
		}
	}
	assert.True(t, found)
}

func TestChangingsHandler(t *testing.T) {
	h, server := newTestHandler(t)

	var got struct {
		Changings []ChangingView `json:"changings"`
	}
	code, env := post(t, server, "/api/v1/hand/changings", ChangingsRequest{Hand: "123m456p789s11z3z5z", ChangeCount: 1}, &got)
	require.Equal(t, nethttp.StatusOK, code, env.Message)
	assert.Contains(t, got.Changings, ChangingView{Removed: "3z", Added: "55z"})
	assert.Contains(t, got.Changings, ChangingView{Removed: "5z", Added: "13z"})

	code, _ = post(t, server, "/api/v1/hand/changings", ChangingsRequest{Hand: "123m456p789s11z3z5z", ChangeCount: 1, Limit: 1}, &got)
	require.Equal(t, nethttp.StatusOK, code)
	assert.Len(t, got.Changings, 1)

	code, _ = post(t, server, "/api/v1/hand/changings", ChangingsRequest{Hand: "123m456p789s11z3z5z", ChangeCount: 3}, nil)
	assert.Equal(t, nethttp.StatusBadRequest, code)

	code, _ = post(t, server, "/api/v1/hand/changings", ChangingsRequest{Hand: "123m456p789s11z3z5z", ChangeCount: -1}, nil)
	assert.Equal(t, nethttp.StatusBadRequest, code)

	// 热更新后的上限立即生效
	h.SetMaxChangeCount(0)
	code, _ = post(t, server, "/api/v1/hand/changings", ChangingsRequest{Hand: "123m456p789s11z3z5z", ChangeCount: 1}, nil)
	assert.Equal(t, nethttp.StatusBadRequest, code)
}

func TestHealthHandler(t *testing.T) {
	_, server := newTestHandler(t)

	req := httptest.NewRequest(nethttp.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)
	require.Equal(t, nethttp.StatusOK, w.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var got struct {
		WinTypes       []string `json:"winTypes"`
		MaxChangeCount int      `json:"maxChangeCount"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, []string{mahjong.WinTypeNormal, mahjong.WinTypeSevenPairs, mahjong.WinTypeThirteenOrphans}, got.WinTypes)
	assert.Equal(t, 2, got.MaxChangeCount)
}
