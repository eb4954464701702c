package update

import (
	"time"

	"activity-tracker-system/internal/global/database"
	"activity-tracker-system/internal/global/response"
	"activity-tracker-system/internal/model"
	"activity-tracker-system/tools"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ReportReq 定义报表查询参数
type ReportReq struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
}

// parseReportRange 解析并校验报表区间，返回 [from 当天零点, to 次日零点)
func parseReportRange(c *gin.Context) (time.Time, time.Time, bool) {
	var req ReportReq
	if err := c.ShouldBindQuery(&req); err != nil {
		log.Error("绑定报表查询参数失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return time.Time{}, time.Time{}, false
	}

	from, err := tools.ParseDate(req.From)
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("from 日期格式错误"))
		return time.Time{}, time.Time{}, false
	}
	to, err := tools.ParseDate(req.To)
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("to 日期格式错误"))
		return time.Time{}, time.Time{}, false
	}
	if to.Before(from) {
		log.Warn("报表区间非法", "from", req.From, "to", req.To)
		response.Fail(c, response.ErrInvalidRequest.WithTips("to 不能早于 from"))
		return time.Time{}, time.Time{}, false
	}

	start, _ := tools.DayRange(from)
	_, end := tools.DayRange(to)
	return start, end, true
}

// selectReport 查询区间内的全部更新记录，按创建时间升序
func selectReport(start, end time.Time) ([]model.ActivityUpdate, error) {
	var updates []model.ActivityUpdate
	err := database.DB.
		Preload("Activity").
		Preload("User").
		Where("created_at >= ? AND created_at < ?", start, end).
		Order("created_at ASC").
		Find(&updates).Error
	return updates, err
}

// Report 日期范围报表：from == to 时只覆盖那一天
func Report(c *gin.Context) {
	start, end, ok := parseReportRange(c)
	if !ok {
		return
	}

	updates, err := selectReport(start, end)
	if err != nil {
		log.Error("查询报表失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("报表查询成功", "count", len(updates))
	response.Success(c, updates)
}

type reportRowInExcel struct {
	UpdateID      string `excel:"更新ID"`
	ActivityID    string `excel:"活动ID"`
	ActivityTitle string `excel:"活动标题"`
	Status        string `excel:"状态"`
	Remark        string `excel:"备注"`
	Progress      string `excel:"进度"`
	UpdatedBy     string `excel:"操作人"`
	UserName      string `excel:"操作人姓名"`
	CreatedAt     string `excel:"创建时间"`
}

// ExportReport 将报表导出为表格文件
func ExportReport(c *gin.Context) {
	start, end, ok := parseReportRange(c)
	if !ok {
		return
	}

	updates, err := selectReport(start, end)
	if err != nil {
		log.Error("查询报表失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	rows := make([]reportRowInExcel, 0, len(updates))
	for _, u := range updates {
		rows = append(rows, reportRowInExcel{
			UpdateID:      u.UpdateID,
			ActivityID:    u.ActivityID,
			ActivityTitle: u.Activity.Title,
			Status:        u.Status,
			Remark:        u.Remark,
			Progress:      u.Progress,
			UpdatedBy:     u.UpdatedBy,
			UserName:      u.User.Name,
			CreatedAt:     u.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := tools.ExportToExcel(f, "Report", rows); err != nil {
		log.Error("生成报表文件失败", "error", err)
		response.Fail(c, response.ErrInternal.WithOrigin(err))
		return
	}

	if err := tools.SendExcel(c, f, "activity-updates-report.xlsx"); err != nil {
		log.Error("发送报表文件失败", "error", err)
	}
}
