package activity

import (
	"encoding/json"
	"io"
	"strings"
	"unicode/utf8"

	"activity-tracker-system/internal/global/database"
	"activity-tracker-system/internal/global/idgen"
	"activity-tracker-system/internal/global/jwt"
	"activity-tracker-system/internal/global/response"
	"activity-tracker-system/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ActivityCreateReq 定义创建活动请求的结构体
type ActivityCreateReq struct {
	Title       string `json:"title"`       // 活动标题，必填，最长255
	Description string `json:"description"` // 活动描述，可选
}

// normalizeCreateBody 把请求体统一成数组：单个对象在进入业务逻辑前就被包装成单元素数组
func normalizeCreateBody(c *gin.Context) ([]ActivityCreateReq, error) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(string(body))
	if strings.HasPrefix(trimmed, "[") {
		var reqs []ActivityCreateReq
		if err := json.Unmarshal(body, &reqs); err != nil {
			return nil, err
		}
		return reqs, nil
	}

	var req ActivityCreateReq
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, err
	}
	return []ActivityCreateReq{req}, nil
}

// generateActivityID 用标题前两个非空白字符（大写）+ 3 位随机数字生成活动ID
func generateActivityID(tx *gorm.DB, title string) (string, error) {
	prefix := idgen.PrefixFromSeed(title, 2)
	return idgen.Generate(prefix, 3, func(id string) (bool, error) {
		var count int64
		if err := tx.Model(&model.Activity{}).Where("activity_id = ?", id).Count(&count).Error; err != nil {
			return false, err
		}
		return count > 0, nil
	})
}

// createActivities 批量创建活动，任何一项失败整批回滚
func createActivities(tx *gorm.DB, reqs []ActivityCreateReq, actingUserID string) ([]model.Activity, error) {
	created := make([]model.Activity, 0, len(reqs))
	for _, req := range reqs {
		title := strings.TrimSpace(req.Title)
		if title == "" {
			return nil, response.ErrInvalidRequest.WithTips("title 不能为空")
		}
		if utf8.RuneCountInString(title) > 255 {
			return nil, response.ErrInvalidRequest.WithTips("title 不能超过255个字符")
		}

		activityID, err := generateActivityID(tx, title)
		if err != nil {
			if errors.Is(err, idgen.ErrExhausted) {
				return nil, response.ErrGenerateID.WithOrigin(err)
			}
			return nil, response.ErrDatabase.WithOrigin(err)
		}

		activity := model.Activity{
			ActivityID:  activityID,
			Title:       title,
			Description: req.Description,
			CreatedBy:   actingUserID,
			Status:      model.StatusPending,
		}
		if err := tx.Create(&activity).Error; err != nil {
			return nil, response.ErrDatabase.WithOrigin(err)
		}
		created = append(created, activity)
	}
	return created, nil
}

// CreateActivities 处理创建活动请求，接受单个对象或数组
func CreateActivities(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	reqs, err := normalizeCreateBody(c)
	if err != nil {
		log.Error("绑定创建活动请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	if len(reqs) == 0 {
		response.Fail(c, response.ErrInvalidRequest.WithTips("请求体不能为空"))
		return
	}

	var created []model.Activity
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var txErr error
		created, txErr = createActivities(tx, reqs, payload.UserID)
		return txErr
	})
	if err != nil {
		log.Error("创建活动失败", "error", err, "created_by", payload.UserID)
		response.Fail(c, err)
		return
	}

	log.Info("活动创建成功",
		"count", len(created),
		"created_by", payload.UserID,
	)

	response.Created(c, created)
}

// ListActivities 获取活动列表，附带创建人和更新记录
func ListActivities(c *gin.Context) {
	var activities []model.Activity
	if err := database.DB.
		Preload("Creator").
		Preload("Updates", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Order("created_at ASC").
		Find(&activities).Error; err != nil {
		log.Error("获取活动列表失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, activities)
}

// GetActivity 获取单个活动详情
func GetActivity(c *gin.Context) {
	id := c.Param("id")

	var activity model.Activity
	if err := database.DB.
		Preload("Creator").
		Preload("Updates", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&activity, "activity_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("活动不存在", "activity_id", id)
			response.Fail(c, response.ErrNotFound.WithTips("活动不存在"))
			return
		}
		log.Error("查询活动失败", "error", err, "activity_id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, activity)
}

// ActivityUpdateReq 定义更新活动请求的结构体，使用指针类型支持部分更新
type ActivityUpdateReq struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`   // pending / done
	Remark      *string `json:"remark"`   // 状态变化时写入审计更新记录
	Progress    *string `json:"progress"` // 同上
}

// UpdateActivity 更新活动。状态发生变化时追加一条审计更新记录，
// 保持"活动状态总是镜像最近一条更新记录"的不变量
func UpdateActivity(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	id := c.Param("id")

	var req ActivityUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定更新活动请求失败", "error", err, "activity_id", id)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	if req.Status != nil && *req.Status != model.StatusPending && *req.Status != model.StatusDone {
		response.Fail(c, response.ErrInvalidRequest.WithTips("status 只能是 pending 或 done"))
		return
	}
	if req.Title != nil {
		trimmed := strings.TrimSpace(*req.Title)
		if trimmed == "" || utf8.RuneCountInString(trimmed) > 255 {
			response.Fail(c, response.ErrInvalidRequest.WithTips("title 不能为空且不能超过255个字符"))
			return
		}
		req.Title = &trimmed
	}

	var activity model.Activity
	if err := database.DB.First(&activity, "activity_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("活动不存在", "activity_id", id)
			response.Fail(c, response.ErrNotFound.WithTips("活动不存在"))
			return
		}
		log.Error("查询活动失败", "error", err, "activity_id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	oldStatus := activity.Status

	if req.Title != nil {
		activity.Title = *req.Title
	}
	if req.Description != nil {
		activity.Description = *req.Description
	}
	if req.Status != nil {
		activity.Status = *req.Status
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&activity).Error; err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}

		// 状态变化时补一条审计更新记录，沿用 UPD + 5 位数字的标识方案
		if req.Status != nil && *req.Status != oldStatus {
			updateID, err := idgen.Generate("UPD", 5, func(candidate string) (bool, error) {
				var count int64
				if err := tx.Model(&model.ActivityUpdate{}).Where("update_id = ?", candidate).Count(&count).Error; err != nil {
					return false, err
				}
				return count > 0, nil
			})
			if err != nil {
				if errors.Is(err, idgen.ErrExhausted) {
					return response.ErrGenerateID.WithOrigin(err)
				}
				return response.ErrDatabase.WithOrigin(err)
			}

			remark := "Status changed via parent update"
			if req.Remark != nil {
				remark = *req.Remark
			}
			progress := ""
			if req.Progress != nil {
				progress = *req.Progress
			}

			audit := model.ActivityUpdate{
				UpdateID:   updateID,
				ActivityID: activity.ActivityID,
				UpdatedBy:  payload.UserID,
				Status:     activity.Status,
				Remark:     remark,
				Progress:   progress,
			}
			if err := tx.Create(&audit).Error; err != nil {
				return response.ErrDatabase.WithOrigin(err)
			}
		}
		return nil
	})
	if err != nil {
		log.Error("更新活动失败", "error", err, "activity_id", id)
		response.Fail(c, err)
		return
	}

	log.Info("活动更新成功",
		"activity_id", activity.ActivityID,
		"status", activity.Status,
	)

	response.Success(c, activity)
}
