package stats

import (
	"fmt"
	"time"

	"activity-tracker-system/internal/global/response"
	"activity-tracker-system/internal/model"
	"activity-tracker-system/tools"

	"github.com/gin-gonic/gin"
)

// DateReq 定义按日期查询的参数
type DateReq struct {
	Date string `form:"date" binding:"required"`
}

func bindDate(c *gin.Context) (time.Time, bool) {
	var req DateReq
	if err := c.ShouldBindQuery(&req); err != nil {
		log.Error("绑定日期参数失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return time.Time{}, false
	}

	date, err := tools.ParseDate(req.Date)
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("date 日期格式错误"))
		return time.Time{}, false
	}
	return date, true
}

// Daily 返回指定日期（UTC）创建的活动，升序，附带创建人摘要和当天的更新记录
func Daily(c *gin.Context) {
	date, ok := bindDate(c)
	if !ok {
		return
	}

	start, end := tools.DayRange(date)
	activities, err := selectActivitiesBetween(start, end)
	if err != nil {
		log.Error("查询当日活动失败", "error", err, "date", date.Format(tools.DateLayout))
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	result := make([]gin.H, 0, len(activities))
	for _, a := range activities {
		// 只保留当天产生的更新记录
		updates := make([]gin.H, 0, len(a.Updates))
		for _, u := range a.Updates {
			created := u.CreatedAt.UTC()
			if created.Before(start) || !created.Before(end) {
				continue
			}
			updates = append(updates, gin.H{
				"update_id":  u.UpdateID,
				"status":     u.Status,
				"remark":     u.Remark,
				"progress":   u.Progress,
				"created_at": u.CreatedAt,
			})
		}

		result = append(result, gin.H{
			"activity_id": a.ActivityID,
			"title":       a.Title,
			"description": a.Description,
			"status":      a.Status,
			"created_at":  a.CreatedAt,
			"creator": gin.H{
				"name":       a.Creator.Name,
				"department": a.Creator.Department,
			},
			"updates": updates,
		})
	}

	log.Info("当日活动查询成功", "date", date.Format(tools.DateLayout), "count", len(result))
	response.Success(c, result)
}

// Weekly 返回本 ISO 周（周一零点到周日结束，UTC）创建的活动，
// 按创建日期 YYYY-MM-DD 分组，组内按创建时间升序
func Weekly(c *gin.Context) {
	start, end := tools.WeekRange(time.Now())
	activities, err := selectActivitiesBetween(start, end)
	if err != nil {
		log.Error("查询本周活动失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	grouped := make(map[string][]model.Activity)
	for _, a := range activities {
		key := a.CreatedAt.UTC().Format(tools.DateLayout)
		grouped[key] = append(grouped[key], a)
	}

	log.Info("本周活动查询成功", "count", len(activities), "days", len(grouped))
	response.Success(c, grouped)
}

// Hourly 返回指定日期（UTC）的更新记录，按两位小时 00-23 分组，组内升序。
// 以更新记录自身的创建时间为准，不要求父活动也创建于当天
func Hourly(c *gin.Context) {
	date, ok := bindDate(c)
	if !ok {
		return
	}

	start, end := tools.DayRange(date)
	updates, err := selectUpdatesBetween(start, end)
	if err != nil {
		log.Error("查询当日更新记录失败", "error", err, "date", date.Format(tools.DateLayout))
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	grouped := make(map[string][]model.ActivityUpdate)
	for _, u := range updates {
		key := fmt.Sprintf("%02d", u.CreatedAt.UTC().Hour())
		grouped[key] = append(grouped[key], u)
	}

	log.Info("当日更新记录查询成功", "date", date.Format(tools.DateLayout), "count", len(updates))
	response.Success(c, grouped)
}
