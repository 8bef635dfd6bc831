package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LXiong/mahjong/common/log"
	"github.com/LXiong/mahjong/common/utils"
)

func newTestServer() *HttpServer {
	log.SetOutput(&bytes.Buffer{})
	s := NewHttpServer(WithMode(gin.TestMode))
	s.Use(RequestIDMiddleware(), CorsMiddleware(), LoggerMiddleware())
	return s
}

func do(t *testing.T, s *HttpServer, req *http.Request) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w, resp
}

func TestRequestIDMiddleware(t *testing.T) {
	s := newTestServer()
	s.GET("/ping", func(c *Context) error {
		c.Success(c.RequestID())
		return nil
	})

	w, resp := do(t, s, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, resp.RequestID)
	assert.Equal(t, resp.RequestID, w.Header().Get(headerRequestID))
	assert.Equal(t, resp.RequestID, resp.Data)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(headerRequestID, "req-42")
	w, resp = do(t, s, req)
	assert.Equal(t, "req-42", resp.RequestID)
	assert.Equal(t, "req-42", w.Header().Get(headerRequestID))
}

func TestFail(t *testing.T) {
	s := newTestServer()
	s.POST("/param", func(c *Context) error {
		return InvalidParam(errors.New("hand is required"))
	})
	s.POST("/internal", func(c *Context) error {
		return errors.New("boom")
	})
	s.POST("/wrapped", func(c *Context) error {
		return errors.Join(errors.New("context"), InvalidParam(errors.New("bad tile")))
	})

	w, resp := do(t, s, httptest.NewRequest(http.MethodPost, "/param", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, CodeInvalidParam, resp.Code)
	assert.Equal(t, "hand is required", resp.Message)
	assert.NotEmpty(t, resp.RequestID)

	w, resp = do(t, s, httptest.NewRequest(http.MethodPost, "/internal", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, CodeServerError, resp.Code)

	w, _ = do(t, s, httptest.NewRequest(http.MethodPost, "/wrapped", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInvalidParamNil(t *testing.T) {
	assert.NoError(t, InvalidParam(nil))
	inner := errors.New("inner")
	assert.ErrorIs(t, InvalidParam(inner), inner)
}

func TestCorsPreflight(t *testing.T) {
	s := newTestServer()
	s.POST("/api", func(c *Context) error {
		c.Success(nil)
		return nil
	})

	req := httptest.NewRequest(http.MethodOptions, "/api", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestGroupMiddlewareAborts(t *testing.T) {
	s := newTestServer()
	called := false
	g := s.Group("/api", func(c *Context) error {
		if c.GetHeader("X-Token") == "" {
			return InvalidParam(errors.New("missing token"))
		}
		return nil
	})
	g.GET("/x", func(c *Context) error {
		called = true
		c.Success(nil)
		return nil
	})

	w, resp := do(t, s, httptest.NewRequest(http.MethodGet, "/api/x", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "missing token", resp.Message)
	assert.False(t, called)

	req := httptest.NewRequest(http.MethodGet, "/api/x", nil)
	req.Header.Set("X-Token", "t")
	w, _ = do(t, s, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, called)
}

func TestRateLimitMiddleware(t *testing.T) {
	s := newTestServer()
	g := s.Group("/api", RateLimitMiddleware(utils.NewRateLimiter(0.001, 2)))
	g.GET("/x", func(c *Context) error {
		c.Success(nil)
		return nil
	})

	for i := 0; i < 2; i++ {
		w, _ := do(t, s, httptest.NewRequest(http.MethodGet, "/api/x", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
	w, resp := do(t, s, httptest.NewRequest(http.MethodGet, "/api/x", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, CodeRateLimited, resp.Code)
	assert.NotEmpty(t, resp.RequestID)
}
