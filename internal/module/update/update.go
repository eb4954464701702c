package update

import (
	"encoding/json"
	"io"
	"strings"

	"activity-tracker-system/internal/global/database"
	"activity-tracker-system/internal/global/idgen"
	"activity-tracker-system/internal/global/jwt"
	"activity-tracker-system/internal/global/response"
	"activity-tracker-system/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// UpdateCreateReq 定义创建更新记录请求的结构体
type UpdateCreateReq struct {
	ActivityID string `json:"activity_id"` // 必填，必须指向已存在的活动
	Status     string `json:"status"`      // 必填，pending / done
	Remark     string `json:"remark"`      // 可选
	Progress   string `json:"progress"`    // 可选
}

// normalizeCreateBody 把请求体统一成数组后再进入业务逻辑
func normalizeCreateBody(c *gin.Context) ([]UpdateCreateReq, error) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(string(body))
	if strings.HasPrefix(trimmed, "[") {
		var reqs []UpdateCreateReq
		if err := json.Unmarshal(body, &reqs); err != nil {
			return nil, err
		}
		return reqs, nil
	}

	var req UpdateCreateReq
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, err
	}
	return []UpdateCreateReq{req}, nil
}

// generateUpdateID 用所属活动ID的前两个字符 + 3 位随机数字生成更新记录ID
func generateUpdateID(tx *gorm.DB, activityID string) (string, error) {
	prefix := idgen.PrefixFromSeed(activityID, 2)
	return idgen.Generate(prefix, 3, func(id string) (bool, error) {
		var count int64
		if err := tx.Model(&model.ActivityUpdate{}).Where("update_id = ?", id).Count(&count).Error; err != nil {
			return false, err
		}
		return count > 0, nil
	})
}

// createUpdates 按顺序逐条创建更新记录并同步父活动状态，任何一项失败整批回滚。
// 同一批次内多条记录指向同一活动时，活动最终状态由最后处理的那条决定
func createUpdates(tx *gorm.DB, reqs []UpdateCreateReq, actingUserID string) ([]model.ActivityUpdate, error) {
	created := make([]model.ActivityUpdate, 0, len(reqs))
	for _, req := range reqs {
		if req.ActivityID == "" {
			return nil, response.ErrInvalidRequest.WithTips("activity_id 不能为空")
		}
		if req.Status != model.StatusPending && req.Status != model.StatusDone {
			return nil, response.ErrInvalidRequest.WithTips("status 只能是 pending 或 done")
		}

		// 外键校验：活动必须存在
		var count int64
		if err := tx.Model(&model.Activity{}).Where("activity_id = ?", req.ActivityID).Count(&count).Error; err != nil {
			return nil, response.ErrDatabase.WithOrigin(err)
		}
		if count == 0 {
			return nil, response.ErrInvalidRequest.WithTips("activity_id not found")
		}

		updateID, err := generateUpdateID(tx, req.ActivityID)
		if err != nil {
			if errors.Is(err, idgen.ErrExhausted) {
				return nil, response.ErrGenerateID.WithOrigin(err)
			}
			return nil, response.ErrDatabase.WithOrigin(err)
		}

		record := model.ActivityUpdate{
			UpdateID:   updateID,
			ActivityID: req.ActivityID,
			UpdatedBy:  actingUserID,
			Status:     req.Status,
			Remark:     req.Remark,
			Progress:   req.Progress,
		}
		if err := tx.Create(&record).Error; err != nil {
			return nil, response.ErrDatabase.WithOrigin(err)
		}

		// 同步父活动状态
		if err := syncActivityStatus(tx, req.ActivityID, req.Status); err != nil {
			return nil, response.ErrDatabase.WithOrigin(err)
		}

		created = append(created, record)
	}
	return created, nil
}

// CreateUpdates 处理创建更新记录请求，接受单个对象或数组
func CreateUpdates(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	reqs, err := normalizeCreateBody(c)
	if err != nil {
		log.Error("绑定创建更新记录请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}
	if len(reqs) == 0 {
		response.Fail(c, response.ErrInvalidRequest.WithTips("请求体不能为空"))
		return
	}

	var created []model.ActivityUpdate
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var txErr error
		created, txErr = createUpdates(tx, reqs, payload.UserID)
		return txErr
	})
	if err != nil {
		log.Error("创建更新记录失败", "error", err, "updated_by", payload.UserID)
		response.Fail(c, err)
		return
	}

	log.Info("更新记录创建成功",
		"count", len(created),
		"updated_by", payload.UserID,
	)

	response.Created(c, created)
}

// ListUpdates 获取全部更新记录，附带所属活动和操作用户
func ListUpdates(c *gin.Context) {
	var updates []model.ActivityUpdate
	if err := database.DB.
		Preload("Activity").
		Preload("User").
		Order("created_at ASC").
		Find(&updates).Error; err != nil {
		log.Error("获取更新记录列表失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, updates)
}

// GetUpdate 获取单条更新记录
func GetUpdate(c *gin.Context) {
	id := c.Param("id")

	var record model.ActivityUpdate
	if err := database.DB.
		Preload("Activity").
		Preload("User").
		First(&record, "update_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("更新记录不存在", "update_id", id)
			response.Fail(c, response.ErrNotFound.WithTips("更新记录不存在"))
			return
		}
		log.Error("查询更新记录失败", "error", err, "update_id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, record)
}

// UpdateEditReq 定义编辑更新记录请求的结构体，status 必填
type UpdateEditReq struct {
	Status   string  `json:"status" binding:"required,oneof=pending done"`
	Remark   *string `json:"remark"`
	Progress *string `json:"progress"`
}

// EditUpdate 编辑更新记录，保存后重新应用状态同步规则：
// 父活动状态被覆盖为本条记录（可能已变化）的状态
func EditUpdate(c *gin.Context) {
	id := c.Param("id")

	var req UpdateEditReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定编辑更新记录请求失败", "error", err, "update_id", id)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	var record model.ActivityUpdate
	if err := database.DB.First(&record, "update_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("更新记录不存在", "update_id", id)
			response.Fail(c, response.ErrNotFound.WithTips("更新记录不存在"))
			return
		}
		log.Error("查询更新记录失败", "error", err, "update_id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	record.Status = req.Status
	if req.Remark != nil {
		record.Remark = *req.Remark
	}
	if req.Progress != nil {
		record.Progress = *req.Progress
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&record).Error; err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}
		if err := syncActivityStatus(tx, record.ActivityID, record.Status); err != nil {
			return response.ErrDatabase.WithOrigin(err)
		}
		return nil
	})
	if err != nil {
		log.Error("编辑更新记录失败", "error", err, "update_id", id)
		response.Fail(c, err)
		return
	}

	log.Info("更新记录编辑成功",
		"update_id", record.UpdateID,
		"activity_id", record.ActivityID,
		"status", record.Status,
	)

	response.Success(c, record)
}
