package update_test

import (
	"net/http"
	"regexp"
	"testing"
	"time"

	"activity-tracker-system/internal/global/database"
	"activity-tracker-system/internal/global/jwt"
	"activity-tracker-system/internal/global/response"
	"activity-tracker-system/internal/model"
	"activity-tracker-system/internal/module/update"
	"activity-tracker-system/test"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func seedActivity(t *testing.T, activityID string) {
	require.NoError(t, database.DB.Create(&model.User{
		UserID:   "AS100",
		Name:     "Alice Smith",
		Email:    "alice@example.com",
		Password: "x",
	}).Error)
	require.NoError(t, database.DB.Create(&model.Activity{
		ActivityID: activityID,
		Title:      "Build dashboard",
		CreatedBy:  "AS100",
		Status:     model.StatusPending,
	}).Error)
}

func activityStatus(t *testing.T, activityID string) string {
	var activity model.Activity
	require.NoError(t, database.DB.First(&activity, "activity_id = ?", activityID).Error)
	return activity.Status
}

func TestCreateUpdateSyncsActivityStatus(t *testing.T) {
	test.Setup(t)
	seedActivity(t, "BU123")

	resp := test.Do(t, update.CreateUpdates, test.Request{
		Body: update.UpdateCreateReq{
			ActivityID: "BU123",
			Status:     model.StatusDone,
			Remark:     "finished ahead of time",
		},
		User: &jwt.Payload{UserID: "AS100"},
	})
	require.Equal(t, response.CodeCreated, resp.Code)

	var created []model.ActivityUpdate
	test.DecodeData(t, resp, &created)
	require.Len(t, created, 1)
	require.Regexp(t, regexp.MustCompile(`^BU[1-9]\d{2}$`), created[0].UpdateID)
	require.Equal(t, "AS100", created[0].UpdatedBy)

	// 父活动状态跟随最新更新
	require.Equal(t, model.StatusDone, activityStatus(t, "BU123"))
}

func TestCreateUpdateUnknownActivity(t *testing.T) {
	test.Setup(t)

	resp := test.Do(t, update.CreateUpdates, test.Request{
		Body: update.UpdateCreateReq{
			ActivityID: "ZZ999",
			Status:     model.StatusDone,
		},
		User: &jwt.Payload{UserID: "AS100"},
	})
	test.ErrorEqual(t, response.ErrInvalidRequest.WithTips("activity_id not found"), resp)

	var count int64
	require.NoError(t, database.DB.Model(&model.ActivityUpdate{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestCreateUpdatesBatchLastWins(t *testing.T) {
	test.Setup(t)
	seedActivity(t, "BU123")

	// 同一批次多条指向同一活动，最终状态由最后一条决定
	resp := test.Do(t, update.CreateUpdates, test.Request{
		Body: []update.UpdateCreateReq{
			{ActivityID: "BU123", Status: model.StatusDone},
			{ActivityID: "BU123", Status: model.StatusPending},
		},
		User: &jwt.Payload{UserID: "AS100"},
	})
	require.Equal(t, response.CodeCreated, resp.Code)
	require.Equal(t, model.StatusPending, activityStatus(t, "BU123"))
}

func TestCreateUpdatesBatchAtomic(t *testing.T) {
	test.Setup(t)
	seedActivity(t, "BU123")

	// 第二条指向不存在的活动，第一条也不应落库，活动状态保持不变
	resp := test.Do(t, update.CreateUpdates, test.Request{
		Body: []update.UpdateCreateReq{
			{ActivityID: "BU123", Status: model.StatusDone},
			{ActivityID: "ZZ999", Status: model.StatusDone},
		},
		User: &jwt.Payload{UserID: "AS100"},
	})
	test.ErrorEqual(t, response.ErrInvalidRequest.WithTips("activity_id not found"), resp)

	var count int64
	require.NoError(t, database.DB.Model(&model.ActivityUpdate{}).Count(&count).Error)
	require.Zero(t, count)
	require.Equal(t, model.StatusPending, activityStatus(t, "BU123"))
}

func TestCreateUpdateInvalidStatus(t *testing.T) {
	test.Setup(t)
	seedActivity(t, "BU123")

	resp := test.Do(t, update.CreateUpdates, test.Request{
		Body: update.UpdateCreateReq{
			ActivityID: "BU123",
			Status:     "archived",
		},
		User: &jwt.Payload{UserID: "AS100"},
	})
	test.ErrorEqual(t, response.ErrInvalidRequest.WithTips("status 只能是 pending 或 done"), resp)
}

func TestEditUpdateResyncsActivityStatus(t *testing.T) {
	test.Setup(t)
	seedActivity(t, "BU123")

	createResp := test.Do(t, update.CreateUpdates, test.Request{
		Body: update.UpdateCreateReq{ActivityID: "BU123", Status: model.StatusDone},
		User: &jwt.Payload{UserID: "AS100"},
	})
	var created []model.ActivityUpdate
	test.DecodeData(t, createResp, &created)
	require.Equal(t, model.StatusDone, activityStatus(t, "BU123"))

	remark := "reopened after review"
	resp := test.Do(t, update.EditUpdate, test.Request{
		Method: http.MethodPut,
		Params: gin.Params{{Key: "id", Value: created[0].UpdateID}},
		Body: update.UpdateEditReq{
			Status: model.StatusPending,
			Remark: &remark,
		},
		User: &jwt.Payload{UserID: "AS100"},
	})
	test.NoError(t, resp)

	var edited model.ActivityUpdate
	test.DecodeData(t, resp, &edited)
	require.Equal(t, model.StatusPending, edited.Status)
	require.Equal(t, remark, edited.Remark)

	// 编辑后重新应用同步规则
	require.Equal(t, model.StatusPending, activityStatus(t, "BU123"))
}

func TestEditUpdateNotFound(t *testing.T) {
	test.Setup(t)

	resp := test.Do(t, update.EditUpdate, test.Request{
		Method: http.MethodPut,
		Params: gin.Params{{Key: "id", Value: "ZZ999"}},
		Body:   update.UpdateEditReq{Status: model.StatusDone},
		User:   &jwt.Payload{UserID: "AS100"},
	})
	test.ErrorEqual(t, response.ErrNotFound.WithTips("更新记录不存在"), resp)
}

func seedUpdateAt(t *testing.T, updateID string, at time.Time) {
	require.NoError(t, database.DB.Create(&model.ActivityUpdate{
		UpdateID:   updateID,
		ActivityID: "BU123",
		UpdatedBy:  "AS100",
		Status:     model.StatusDone,
		Model:      model.Model{CreatedAt: at, UpdatedAt: at},
	}).Error)
}

func TestReportRange(t *testing.T) {
	test.Setup(t)
	seedActivity(t, "BU123")

	seedUpdateAt(t, "BU101", time.Date(2026, 3, 14, 23, 59, 0, 0, time.UTC))
	seedUpdateAt(t, "BU102", time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC))
	seedUpdateAt(t, "BU103", time.Date(2026, 3, 15, 18, 30, 0, 0, time.UTC))
	seedUpdateAt(t, "BU104", time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC))

	// from == to 只覆盖那一天，结果按时间升序
	resp := test.Do(t, update.Report, test.Request{
		Method: http.MethodGet,
		Query:  map[string]string{"from": "2026-03-15", "to": "2026-03-15"},
		User:   &jwt.Payload{UserID: "AS100"},
	})
	test.NoError(t, resp)

	var rows []model.ActivityUpdate
	test.DecodeData(t, resp, &rows)
	require.Len(t, rows, 2)
	require.Equal(t, "BU102", rows[0].UpdateID)
	require.Equal(t, "BU103", rows[1].UpdateID)
}

func TestReportMultiDayRange(t *testing.T) {
	test.Setup(t)
	seedActivity(t, "BU123")

	seedUpdateAt(t, "BU101", time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC))
	seedUpdateAt(t, "BU102", time.Date(2026, 3, 16, 23, 59, 59, 0, time.UTC))
	seedUpdateAt(t, "BU103", time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC))

	resp := test.Do(t, update.Report, test.Request{
		Method: http.MethodGet,
		Query:  map[string]string{"from": "2026-03-14", "to": "2026-03-16"},
		User:   &jwt.Payload{UserID: "AS100"},
	})
	test.NoError(t, resp)

	var rows []model.ActivityUpdate
	test.DecodeData(t, resp, &rows)
	require.Len(t, rows, 2)
}

func TestReportInvalidRange(t *testing.T) {
	test.Setup(t)

	resp := test.Do(t, update.Report, test.Request{
		Method: http.MethodGet,
		Query:  map[string]string{"from": "2026-03-16", "to": "2026-03-15"},
		User:   &jwt.Payload{UserID: "AS100"},
	})
	test.ErrorEqual(t, response.ErrInvalidRequest.WithTips("to 不能早于 from"), resp)
}

func TestReportMissingParams(t *testing.T) {
	test.Setup(t)

	resp := test.Do(t, update.Report, test.Request{
		Method: http.MethodGet,
		Query:  map[string]string{"from": "2026-03-15"},
		User:   &jwt.Payload{UserID: "AS100"},
	})
	require.Equal(t, response.ErrInvalidRequest.Code, resp.Code)
}
