package user

import (
	"activity-tracker-system/internal/global/database"
	"activity-tracker-system/internal/global/jwt"
	"activity-tracker-system/internal/global/response"
	"activity-tracker-system/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ListUsers 获取全部用户列表
func ListUsers(c *gin.Context) {
	var users []model.User
	if err := database.DB.Find(&users).Error; err != nil {
		log.Error("获取用户列表失败", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	response.Success(c, users)
}

// GetUser 按ID获取单个用户
func GetUser(c *gin.Context) {
	id := c.Param("id")

	var user model.User
	if err := database.DB.First(&user, "user_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("用户不存在", "user_id", id)
			response.Fail(c, response.ErrNotFound.WithTips("用户不存在"))
			return
		}
		log.Error("查询用户失败", "error", err, "user_id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, user)
}

// UserUpdateReq 定义更新用户请求的结构体，使用指针类型支持部分更新
type UserUpdateReq struct {
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Department *string `json:"department"`
}

// UpdateUser 更新用户信息，只允许本人或管理员操作
func UpdateUser(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	id := c.Param("id")
	if payload.UserID != id && payload.RoleID < 1 {
		log.Warn("无权限更新用户", "user_id", id, "operator", payload.UserID)
		response.Fail(c, response.ErrForbidden.WithTips("只能修改自己的信息"))
		return
	}

	var req UserUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定更新用户请求失败", "error", err, "user_id", id)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	var user model.User
	if err := database.DB.First(&user, "user_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("用户不存在"))
			return
		}
		log.Error("查询用户失败", "error", err, "user_id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil && *req.Email != user.Email {
		// 邮箱唯一性检查
		var count int64
		if err := database.DB.Model(&model.User{}).Where("email = ?", *req.Email).Count(&count).Error; err != nil {
			response.Fail(c, response.ErrDatabase.WithOrigin(err))
			return
		}
		if count > 0 {
			response.Fail(c, response.ErrAlreadyExists.WithTips("邮箱已被注册"))
			return
		}
		user.Email = *req.Email
	}
	if req.Department != nil {
		user.Department = *req.Department
	}

	if err := database.DB.Save(&user).Error; err != nil {
		log.Error("更新用户失败", "error", err, "user_id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("用户更新成功", "user_id", user.UserID)
	response.Success(c, user)
}

// DeleteUser 删除用户，级联删除其创建的活动以及这些活动的全部更新记录
func DeleteUser(c *gin.Context) {
	id := c.Param("id")

	var user model.User
	if err := database.DB.First(&user, "user_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("用户不存在"))
			return
		}
		log.Error("查询用户失败", "error", err, "user_id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	// 显式级联删除，避免依赖具体数据库的外键行为
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var activityIDs []string
		if err := tx.Model(&model.Activity{}).
			Where("created_by = ?", id).
			Pluck("activity_id", &activityIDs).Error; err != nil {
			return err
		}

		if len(activityIDs) > 0 {
			if err := tx.Where("activity_id IN ?", activityIDs).
				Delete(&model.ActivityUpdate{}).Error; err != nil {
				return err
			}
			if err := tx.Where("activity_id IN ?", activityIDs).
				Delete(&model.Activity{}).Error; err != nil {
				return err
			}
		}

		// 该用户写在别人活动上的更新记录也一并删除
		if err := tx.Where("updated_by = ?", id).
			Delete(&model.ActivityUpdate{}).Error; err != nil {
			return err
		}

		return tx.Delete(&model.User{}, "user_id = ?", id).Error
	})
	if err != nil {
		log.Error("删除用户失败", "error", err, "user_id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("用户删除成功", "user_id", id)
	response.Success(c)
}
