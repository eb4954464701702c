package activity_test

import (
	"net/http"
	"regexp"
	"strings"
	"testing"

	"activity-tracker-system/internal/global/database"
	"activity-tracker-system/internal/global/jwt"
	"activity-tracker-system/internal/global/response"
	"activity-tracker-system/internal/model"
	"activity-tracker-system/internal/module/activity"
	"activity-tracker-system/test"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, userID string) {
	require.NoError(t, database.DB.Create(&model.User{
		UserID:   userID,
		Name:     "Alice Smith",
		Email:    userID + "@example.com",
		Password: "x",
	}).Error)
}

func TestCreateActivitySingle(t *testing.T) {
	test.Setup(t)
	seedUser(t, "AS100")

	resp := test.Do(t, activity.CreateActivities, test.Request{
		Body: activity.ActivityCreateReq{Title: "Build dashboard", Description: "Q1 goal"},
		User: &jwt.Payload{UserID: "AS100"},
	})
	require.Equal(t, response.CodeCreated, resp.Code)

	var created []model.Activity
	test.DecodeData(t, resp, &created)
	require.Len(t, created, 1)
	require.Regexp(t, regexp.MustCompile(`^BU[1-9]\d{2}$`), created[0].ActivityID)
	require.Equal(t, "Build dashboard", created[0].Title)
	require.Equal(t, model.StatusPending, created[0].Status)
	require.Equal(t, "AS100", created[0].CreatedBy)
}

func TestCreateActivitiesBatch(t *testing.T) {
	test.Setup(t)
	seedUser(t, "AS100")

	resp := test.Do(t, activity.CreateActivities, test.Request{
		Body: []activity.ActivityCreateReq{
			{Title: "Build dashboard"},
			{Title: "Build pipeline"},
		},
		User: &jwt.Payload{UserID: "AS100"},
	})
	require.Equal(t, response.CodeCreated, resp.Code)

	var created []model.Activity
	test.DecodeData(t, resp, &created)
	require.Len(t, created, 2)
	require.NotEqual(t, created[0].ActivityID, created[1].ActivityID)
}

func TestCreateActivitiesBatchAtomic(t *testing.T) {
	test.Setup(t)
	seedUser(t, "AS100")

	// 第二项非法，整批都不应落库
	resp := test.Do(t, activity.CreateActivities, test.Request{
		Body: []activity.ActivityCreateReq{
			{Title: "Build dashboard"},
			{Title: "   "},
		},
		User: &jwt.Payload{UserID: "AS100"},
	})
	test.ErrorEqual(t, response.ErrInvalidRequest.WithTips("title 不能为空"), resp)

	var count int64
	require.NoError(t, database.DB.Model(&model.Activity{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestCreateActivityTitleLimitCountsCharacters(t *testing.T) {
	test.Setup(t)
	seedUser(t, "AS100")

	// 200 个多字节字符（600 字节）在 255 字符限制内
	longMultibyte := strings.Repeat("报", 200)
	resp := test.Do(t, activity.CreateActivities, test.Request{
		Body: activity.ActivityCreateReq{Title: longMultibyte},
		User: &jwt.Payload{UserID: "AS100"},
	})
	require.Equal(t, response.CodeCreated, resp.Code)

	// 超过 255 个字符才被拒绝
	tooLong := strings.Repeat("报", 256)
	resp = test.Do(t, activity.CreateActivities, test.Request{
		Body: activity.ActivityCreateReq{Title: tooLong},
		User: &jwt.Payload{UserID: "AS100"},
	})
	test.ErrorEqual(t, response.ErrInvalidRequest.WithTips("title 不能超过255个字符"), resp)
}

func TestGetActivityNotFound(t *testing.T) {
	test.Setup(t)

	resp := test.Do(t, activity.GetActivity, test.Request{
		Method: http.MethodGet,
		Params: gin.Params{{Key: "id", Value: "ZZ999"}},
		User:   &jwt.Payload{UserID: "AS100"},
	})
	test.ErrorEqual(t, response.ErrNotFound.WithTips("活动不存在"), resp)
}

func TestUpdateActivityStatusAppendsAuditUpdate(t *testing.T) {
	test.Setup(t)
	seedUser(t, "AS100")

	createResp := test.Do(t, activity.CreateActivities, test.Request{
		Body: activity.ActivityCreateReq{Title: "Build dashboard"},
		User: &jwt.Payload{UserID: "AS100"},
	})
	var created []model.Activity
	test.DecodeData(t, createResp, &created)
	activityID := created[0].ActivityID

	status := model.StatusDone
	resp := test.Do(t, activity.UpdateActivity, test.Request{
		Method: http.MethodPut,
		Params: gin.Params{{Key: "id", Value: activityID}},
		Body:   activity.ActivityUpdateReq{Status: &status},
		User:   &jwt.Payload{UserID: "AS100"},
	})
	test.NoError(t, resp)

	var updated model.Activity
	test.DecodeData(t, resp, &updated)
	require.Equal(t, model.StatusDone, updated.Status)

	// 状态变化自动补一条审计更新记录
	var audits []model.ActivityUpdate
	require.NoError(t, database.DB.Where("activity_id = ?", activityID).Find(&audits).Error)
	require.Len(t, audits, 1)
	require.Regexp(t, regexp.MustCompile(`^UPD[1-9]\d{4}$`), audits[0].UpdateID)
	require.Equal(t, model.StatusDone, audits[0].Status)
	require.Equal(t, "Status changed via parent update", audits[0].Remark)
	require.Equal(t, "AS100", audits[0].UpdatedBy)
}

func TestUpdateActivityWithoutStatusChange(t *testing.T) {
	test.Setup(t)
	seedUser(t, "AS100")

	createResp := test.Do(t, activity.CreateActivities, test.Request{
		Body: activity.ActivityCreateReq{Title: "Build dashboard"},
		User: &jwt.Payload{UserID: "AS100"},
	})
	var created []model.Activity
	test.DecodeData(t, createResp, &created)
	activityID := created[0].ActivityID

	title := "Build better dashboard"
	resp := test.Do(t, activity.UpdateActivity, test.Request{
		Method: http.MethodPut,
		Params: gin.Params{{Key: "id", Value: activityID}},
		Body:   activity.ActivityUpdateReq{Title: &title},
		User:   &jwt.Payload{UserID: "AS100"},
	})
	test.NoError(t, resp)

	// 标题修改不产生审计更新记录
	var count int64
	require.NoError(t, database.DB.Model(&model.ActivityUpdate{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestUpdateActivityInvalidStatus(t *testing.T) {
	test.Setup(t)
	seedUser(t, "AS100")

	status := "archived"
	resp := test.Do(t, activity.UpdateActivity, test.Request{
		Method: http.MethodPut,
		Params: gin.Params{{Key: "id", Value: "AB123"}},
		Body:   activity.ActivityUpdateReq{Status: &status},
		User:   &jwt.Payload{UserID: "AS100"},
	})
	test.ErrorEqual(t, response.ErrInvalidRequest.WithTips("status 只能是 pending 或 done"), resp)
}
