package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	pkgerrors "github.com/pkg/errors"
)

// Client 封装对活动跟踪服务的调用，所有方法返回解码后的 data 字段
type Client struct {
	http *resty.Client
}

// APIError 是服务端返回的业务错误
type APIError struct {
	Code int32  `json:"code"`
	Msg  string `json:"msg"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Code, e.Msg)
}

type envelope struct {
	Code int32           `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// New 创建客户端，baseURL 形如 http://localhost:8080/api
func New(baseURL string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(10 * time.Second).
			SetHeader("Content-Type", "application/json"),
	}
}

// SetToken 设置后续请求的 Bearer 令牌
func (c *Client) SetToken(token string) *Client {
	c.http.SetAuthToken(token)
	return c
}

func (c *Client) do(ctx context.Context, req *resty.Request, method, path string, out any) error {
	resp, err := req.SetContext(ctx).Execute(method, path)
	if err != nil {
		return pkgerrors.Wrapf(err, "request %s %s failed", method, path)
	}

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return pkgerrors.Wrapf(err, "decode response of %s %s failed", method, path)
	}
	if env.Code >= 400 {
		return &APIError{Code: env.Code, Msg: env.Msg}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return pkgerrors.Wrapf(err, "decode data of %s %s failed", method, path)
		}
	}
	return nil
}

func (c *Client) Register(ctx context.Context, req RegisterReq) (*AuthResp, error) {
	var out AuthResp
	if err := c.do(ctx, c.http.R().SetBody(req), resty.MethodPost, "/register", &out); err != nil {
		return nil, err
	}
	c.SetToken(out.Token)
	return &out, nil
}

func (c *Client) Login(ctx context.Context, req LoginReq) (*AuthResp, error) {
	var out AuthResp
	if err := c.do(ctx, c.http.R().SetBody(req), resty.MethodPost, "/login", &out); err != nil {
		return nil, err
	}
	c.SetToken(out.Token)
	return &out, nil
}

// Logout 吊销当前令牌
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, c.http.R(), resty.MethodPost, "/logout", nil)
}

func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var out User
	if err := c.do(ctx, c.http.R(), resty.MethodGet, "/user", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var out []User
	if err := c.do(ctx, c.http.R(), resty.MethodGet, "/users", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetUser(ctx context.Context, userID string) (*User, error) {
	var out User
	if err := c.do(ctx, c.http.R(), resty.MethodGet, "/users/"+userID, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateActivity 创建单个活动
func (c *Client) CreateActivity(ctx context.Context, req ActivityCreateReq) (*Activity, error) {
	activities, err := c.CreateActivities(ctx, []ActivityCreateReq{req})
	if err != nil {
		return nil, err
	}
	if len(activities) == 0 {
		return nil, pkgerrors.New("empty response for created activity")
	}
	return &activities[0], nil
}

// CreateActivities 批量创建活动，整体成功或整体失败
func (c *Client) CreateActivities(ctx context.Context, reqs []ActivityCreateReq) ([]Activity, error) {
	var out []Activity
	if err := c.do(ctx, c.http.R().SetBody(reqs), resty.MethodPost, "/activities", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListActivities(ctx context.Context) ([]Activity, error) {
	var out []Activity
	if err := c.do(ctx, c.http.R(), resty.MethodGet, "/activities", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetActivity(ctx context.Context, activityID string) (*Activity, error) {
	var out Activity
	if err := c.do(ctx, c.http.R(), resty.MethodGet, "/activities/"+activityID, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateActivity(ctx context.Context, activityID string, req ActivityPatchReq) (*Activity, error) {
	var out Activity
	if err := c.do(ctx, c.http.R().SetBody(req), resty.MethodPut, "/activities/"+activityID, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateUpdate(ctx context.Context, req UpdateCreateReq) (*ActivityUpdate, error) {
	updates, err := c.CreateUpdates(ctx, []UpdateCreateReq{req})
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New("empty response for created update")
	}
	return &updates[0], nil
}

func (c *Client) CreateUpdates(ctx context.Context, reqs []UpdateCreateReq) ([]ActivityUpdate, error) {
	var out []ActivityUpdate
	if err := c.do(ctx, c.http.R().SetBody(reqs), resty.MethodPost, "/activity-updates", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListUpdates(ctx context.Context) ([]ActivityUpdate, error) {
	var out []ActivityUpdate
	if err := c.do(ctx, c.http.R(), resty.MethodGet, "/activity-updates", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetUpdate(ctx context.Context, updateID string) (*ActivityUpdate, error) {
	var out ActivityUpdate
	if err := c.do(ctx, c.http.R(), resty.MethodGet, "/activity-updates/"+updateID, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) EditUpdate(ctx context.Context, updateID string, req UpdateEditReq) (*ActivityUpdate, error) {
	var out ActivityUpdate
	if err := c.do(ctx, c.http.R().SetBody(req), resty.MethodPut, "/activity-updates/"+updateID, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Report 查询 [from, to] 范围内的更新记录，日期格式 YYYY-MM-DD
func (c *Client) Report(ctx context.Context, from, to string) ([]ActivityUpdate, error) {
	var out []ActivityUpdate
	req := c.http.R().SetQueryParams(map[string]string{"from": from, "to": to})
	if err := c.do(ctx, req, resty.MethodGet, "/activity-updates/report", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DailyActivities(ctx context.Context, date string) ([]json.RawMessage, error) {
	var out []json.RawMessage
	req := c.http.R().SetQueryParam("date", date)
	if err := c.do(ctx, req, resty.MethodGet, "/activities/daily", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) WeeklyActivities(ctx context.Context) (map[string][]Activity, error) {
	var out map[string][]Activity
	if err := c.do(ctx, c.http.R(), resty.MethodGet, "/activities/weekly", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) HourlyUpdates(ctx context.Context, date string) (map[string][]ActivityUpdate, error) {
	var out map[string][]ActivityUpdate
	req := c.http.R().SetQueryParam("date", date)
	if err := c.do(ctx, req, resty.MethodGet, "/activities/hourly", &out); err != nil {
		return nil, err
	}
	return out, nil
}
