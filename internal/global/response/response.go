package response

import (
	"encoding/json"
	"errors"
	"fmt"

	"activity-tracker-system/config"
	"activity-tracker-system/internal/global/sentry"

	"github.com/gin-gonic/gin"
)

// 错误码前三位对应 HTTP 状态码，后两位区分具体业务错误
const (
	CodeSuccess int32 = 200
	CodeCreated int32 = 201
)

var (
	ErrInvalidRequest  = newError(42201, "请求参数错误")
	ErrTokenInvalid    = newError(40101, "登录凭证无效或已过期")
	ErrInvalidPassword = newError(40102, "邮箱或密码错误")
	ErrUnauthorized    = newError(40103, "未授权")
	ErrForbidden       = newError(40301, "没有操作权限")
	ErrNotFound        = newError(40401, "资源不存在")
	ErrAlreadyExists   = newError(40901, "资源已存在")
	ErrInternal        = newError(50001, "服务器内部错误")
	ErrDatabase        = newError(50002, "数据库操作失败")
	ErrGenerateID      = newError(50003, "标识符生成失败")
)

// ResponseBody 统一响应体
type ResponseBody struct {
	Code int32           `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data,omitempty"`
}

func httpStatus(code int32) int {
	if code == CodeSuccess || code == CodeCreated {
		return int(code)
	}
	return int(code) / 100
}

func write(c *gin.Context, code int32, msg string, data ...any) {
	body := gin.H{
		"code": code,
		"msg":  msg,
	}
	if len(data) > 0 {
		body["data"] = data[0]
	}
	c.JSON(httpStatus(code), body)
}

// Success 返回成功响应，data 可选
func Success(c *gin.Context, data ...any) {
	write(c, CodeSuccess, "success", data...)
}

// Created 返回创建成功响应
func Created(c *gin.Context, data ...any) {
	write(c, CodeCreated, "created", data...)
}

// Fail 返回失败响应，非 *Error 的错误统一按内部错误处理
func Fail(c *gin.Context, err error) {
	var e *Error
	if !errors.As(err, &e) {
		e = ErrInternal.WithOrigin(err)
	}

	body := gin.H{
		"code": e.Code,
		"msg":  e.Message,
	}
	// 原始错误只在 debug 模式下暴露给前端
	if e.Origin != "" && config.Get().Mode == config.ModeDebug {
		body["origin"] = e.Origin
	}

	c.Set(ErrorContextKey, e)
	sentry.CaptureException(c, e)
	c.JSON(httpStatus(e.Code), body)
}

// ErrorContextKey 是用于在 gin.Context 中存储错误对象的键
const ErrorContextKey = "error"

// Recovery 捕获 handler 中的 panic，转换为 500 响应
func Recovery(c *gin.Context) {
	if r := recover(); r != nil {
		err, ok := r.(error)
		if !ok {
			err = fmt.Errorf("%v", r)
		}
		Fail(c, ErrInternal.WithOrigin(err))
		c.Abort()
	}
}
