package http

import (
	"errors"
	"net/http"
)

// Response 统一响应结构
type Response struct {
	Code      int         `json:"code"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	RequestID string      `json:"requestId,omitempty"`
}

// 预定义的响应码
const (
	CodeSuccess      = 0     // 成功
	CodeError        = -1    // 通用错误
	CodeInvalidParam = 10001 // 参数错误
	CodeNotFound     = 10004 // 资源不存在
	CodeServerError  = 10005 // 服务器内部错误
	CodeRateLimited  = 10029 // 请求过于频繁
)

// 预定义的响应消息
const (
	MsgSuccess      = "success"
	MsgInvalidParam = "invalid parameters"
	MsgNotFound     = "not found"
	MsgServerError  = "internal server error"
	MsgRateLimited  = "too many requests"
)

// ParamError 调用方参数错误，包装后 Fail 会返回 400
type ParamError struct {
	Err error
}

func (e *ParamError) Error() string {
	return e.Err.Error()
}

func (e *ParamError) Unwrap() error {
	return e.Err
}

// InvalidParam 把 err 标记为参数错误
func InvalidParam(err error) error {
	if err == nil {
		return nil
	}
	return &ParamError{Err: err}
}

// NewResponse 创建响应
func NewResponse(code int, message string, data interface{}) *Response {
	return &Response{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

func (c *Context) respond(status int, resp *Response) {
	resp.RequestID = c.RequestID()
	c.JSON(status, resp)
}

// Success 成功响应
func (c *Context) Success(data interface{}) {
	c.respond(http.StatusOK, NewResponse(CodeSuccess, MsgSuccess, data))
}

// BadRequest 400 错误请求
func (c *Context) BadRequest(message string) {
	if message == "" {
		message = MsgInvalidParam
	}
	c.respond(http.StatusBadRequest, NewResponse(CodeInvalidParam, message, nil))
}

// NotFound 404 资源不存在
func (c *Context) NotFound(message string) {
	if message == "" {
		message = MsgNotFound
	}
	c.respond(http.StatusNotFound, NewResponse(CodeNotFound, message, nil))
}

// InternalServerError 500 服务器内部错误
func (c *Context) InternalServerError(message string) {
	if message == "" {
		message = MsgServerError
	}
	c.respond(http.StatusInternalServerError, NewResponse(CodeServerError, message, nil))
}

// TooManyRequests 429 请求被限流
func (c *Context) TooManyRequests() {
	c.respond(http.StatusTooManyRequests, NewResponse(CodeRateLimited, MsgRateLimited, nil))
}

// Fail 按错误类型选择响应：参数错误 400，其余 500
func (c *Context) Fail(err error) {
	var pe *ParamError
	if errors.As(err, &pe) {
		c.BadRequest(err.Error())
		return
	}
	c.InternalServerError(err.Error())
}
