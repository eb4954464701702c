package stats_test

import (
	"net/http"
	"testing"
	"time"

	"activity-tracker-system/internal/global/database"
	"activity-tracker-system/internal/global/jwt"
	"activity-tracker-system/internal/global/response"
	"activity-tracker-system/internal/model"
	"activity-tracker-system/internal/module/stats"
	"activity-tracker-system/test"
	"activity-tracker-system/tools"

	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T) {
	require.NoError(t, database.DB.Create(&model.User{
		UserID:     "AS100",
		Name:       "Alice Smith",
		Email:      "alice@example.com",
		Password:   "x",
		Department: "Engineering",
	}).Error)
}

func seedActivityAt(t *testing.T, activityID string, at time.Time) {
	require.NoError(t, database.DB.Create(&model.Activity{
		ActivityID: activityID,
		Title:      "Build dashboard",
		CreatedBy:  "AS100",
		Status:     model.StatusPending,
		Model:      model.Model{CreatedAt: at, UpdatedAt: at},
	}).Error)
}

func seedUpdateAt(t *testing.T, updateID, activityID string, at time.Time) {
	require.NoError(t, database.DB.Create(&model.ActivityUpdate{
		UpdateID:   updateID,
		ActivityID: activityID,
		UpdatedBy:  "AS100",
		Status:     model.StatusDone,
		Model:      model.Model{CreatedAt: at, UpdatedAt: at},
	}).Error)
}

func TestDaily(t *testing.T) {
	test.Setup(t)
	seedUser(t)

	day := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	seedActivityAt(t, "BU101", day.Add(9*time.Hour))
	seedActivityAt(t, "BU102", day.AddDate(0, 0, 1)) // 次日，应被排除

	// 当天活动下：一条当天的更新、一条次日的更新
	seedUpdateAt(t, "BU201", "BU101", day.Add(10*time.Hour))
	seedUpdateAt(t, "BU202", "BU101", day.AddDate(0, 0, 1).Add(time.Hour))

	resp := test.Do(t, stats.Daily, test.Request{
		Method: http.MethodGet,
		Query:  map[string]string{"date": "2026-03-15"},
		User:   &jwt.Payload{UserID: "AS100"},
	})
	test.NoError(t, resp)

	var rows []struct {
		ActivityID string `json:"activity_id"`
		Creator    struct {
			Name       string `json:"name"`
			Department string `json:"department"`
		} `json:"creator"`
		Updates []struct {
			UpdateID string `json:"update_id"`
		} `json:"updates"`
	}
	test.DecodeData(t, resp, &rows)
	require.Len(t, rows, 1)
	require.Equal(t, "BU101", rows[0].ActivityID)
	require.Equal(t, "Alice Smith", rows[0].Creator.Name)
	require.Equal(t, "Engineering", rows[0].Creator.Department)

	// 只保留当天产生的更新记录
	require.Len(t, rows[0].Updates, 1)
	require.Equal(t, "BU201", rows[0].Updates[0].UpdateID)
}

func TestDailyInvalidDate(t *testing.T) {
	test.Setup(t)

	resp := test.Do(t, stats.Daily, test.Request{
		Method: http.MethodGet,
		Query:  map[string]string{"date": "15/03/2026"},
		User:   &jwt.Payload{UserID: "AS100"},
	})
	test.ErrorEqual(t, response.ErrInvalidRequest.WithTips("date 日期格式错误"), resp)
}

func TestDailyMissingDate(t *testing.T) {
	test.Setup(t)

	resp := test.Do(t, stats.Daily, test.Request{
		Method: http.MethodGet,
		User:   &jwt.Payload{UserID: "AS100"},
	})
	require.Equal(t, response.ErrInvalidRequest.Code, resp.Code)
}

func TestWeekly(t *testing.T) {
	test.Setup(t)
	seedUser(t)

	now := time.Now().UTC()
	weekStart, _ := tools.WeekRange(now)
	seedActivityAt(t, "BU101", now)
	seedActivityAt(t, "BU102", now)
	seedActivityAt(t, "BU103", weekStart.AddDate(0, 0, -1)) // 上周，应被排除

	resp := test.Do(t, stats.Weekly, test.Request{
		Method: http.MethodGet,
		User:   &jwt.Payload{UserID: "AS100"},
	})
	test.NoError(t, resp)

	var grouped map[string][]model.Activity
	test.DecodeData(t, resp, &grouped)

	today := now.Format(tools.DateLayout)
	require.Len(t, grouped, 1)
	require.Len(t, grouped[today], 2)
}

func TestHourly(t *testing.T) {
	test.Setup(t)
	seedUser(t)

	day := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	// 父活动创建于前一天也没关系，按更新记录自身的时间分桶
	seedActivityAt(t, "BU101", day.AddDate(0, 0, -1))

	seedUpdateAt(t, "BU201", "BU101", day.Add(9*time.Hour))
	seedUpdateAt(t, "BU202", "BU101", day.Add(9*time.Hour+30*time.Minute))
	seedUpdateAt(t, "BU203", "BU101", day.Add(15*time.Hour))
	seedUpdateAt(t, "BU204", "BU101", day.AddDate(0, 0, 1)) // 次日，应被排除

	resp := test.Do(t, stats.Hourly, test.Request{
		Method: http.MethodGet,
		Query:  map[string]string{"date": "2026-03-15"},
		User:   &jwt.Payload{UserID: "AS100"},
	})
	test.NoError(t, resp)

	var grouped map[string][]model.ActivityUpdate
	test.DecodeData(t, resp, &grouped)
	require.Len(t, grouped, 2)
	require.Len(t, grouped["09"], 2)
	require.Len(t, grouped["15"], 1)
	require.Equal(t, "BU201", grouped["09"][0].UpdateID)
}
