package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"activity-tracker-system/internal/global/jwt"
	"activity-tracker-system/internal/global/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// Request 描述一次直接调用 handler 的测试请求
type Request struct {
	Method string            // 默认 POST
	Body   any               // JSON 序列化后作为请求体
	Query  map[string]string // URL 查询参数
	Params gin.Params        // 路径参数，如 {Key: "id", Value: "AB123"}
	User   *jwt.Payload      // 模拟已登录用户，注入 payload
}

// Do 直接调用 handler 并解码统一返回体
func Do(t *testing.T, handlerFunc gin.HandlerFunc, req Request) (resp response.ResponseBody) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	method := req.Method
	if method == "" {
		method = http.MethodPost
	}

	target := "/test"
	if len(req.Query) > 0 {
		values := url.Values{}
		for k, v := range req.Query {
			values.Set(k, v)
		}
		target += "?" + values.Encode()
	}

	var body *bytes.Reader
	if req.Body != nil {
		requestBytes, err := json.Marshal(req.Body)
		require.NoError(t, err)
		body = bytes.NewReader(requestBytes)
	} else {
		body = bytes.NewReader(nil)
	}

	c.Request = httptest.NewRequest(method, target, body)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = req.Params

	if req.User != nil {
		c.Set("payload", &jwt.Claims{Payload: *req.User})
	}

	handlerFunc(c)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return
}

// DoRequest 以默认用户身份发起 POST 请求
func DoRequest(t *testing.T, handlerFunc gin.HandlerFunc, request any) response.ResponseBody {
	return Do(t, handlerFunc, Request{Body: request, User: &jwt.Payload{UserID: "TU100"}})
}

// DecodeData 将返回体的 data 字段解码到 out
func DecodeData(t *testing.T, resp response.ResponseBody, out any) {
	require.NotEmpty(t, resp.Data)
	require.NoError(t, json.Unmarshal(resp.Data, out))
}
