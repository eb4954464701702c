package user

import (
	"strings"
	"time"

	"activity-tracker-system/internal/global/database"
	"activity-tracker-system/internal/global/idgen"
	"activity-tracker-system/internal/global/jwt"
	"activity-tracker-system/internal/global/response"
	"activity-tracker-system/internal/model"
	"activity-tracker-system/tools"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// RegisterReq 定义注册请求的结构体
type RegisterReq struct {
	Name                 string `json:"name" binding:"required,max=255"`
	Email                string `json:"email" binding:"required,email"`
	Password             string `json:"password" binding:"required,min=6"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=Password"`
	Department           string `json:"department"`
}

// generateUserID 按姓名首尾两个词的首字母 + 3 位随机数字生成用户ID
// 单个词的姓名首字母出现两次，与观察到的历史数据保持一致
func generateUserID(db *gorm.DB, name string) (string, error) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		parts = []string{"U"}
	}
	prefix := idgen.PrefixFromSeed(parts[0], 1) + idgen.PrefixFromSeed(parts[len(parts)-1], 1)

	return idgen.Generate(prefix, 3, func(id string) (bool, error) {
		var count int64
		if err := db.Model(&model.User{}).Where("user_id = ?", id).Count(&count).Error; err != nil {
			return false, err
		}
		return count > 0, nil
	})
}

// Register 处理用户注册请求，注册成功后直接签发令牌
func Register(c *gin.Context) {
	var req RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定注册请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	// 检查邮箱是否已被注册
	var existingUser model.User
	err := database.DB.Where("email = ?", req.Email).First(&existingUser).Error
	if err == nil {
		log.Warn("邮箱已被注册", "email", req.Email)
		response.Fail(c, response.ErrAlreadyExists.WithTips("邮箱已被注册"))
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error("数据库查询失败", "error", err, "email", req.Email)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	userID, err := generateUserID(database.DB, req.Name)
	if err != nil {
		log.Error("生成用户ID失败", "error", err, "name", req.Name)
		response.Fail(c, response.ErrGenerateID.WithOrigin(err))
		return
	}

	user := model.User{
		UserID:     userID,
		Name:       req.Name,
		Email:      req.Email,
		Password:   tools.PasswordEncrypt(req.Password),
		Department: req.Department,
	}

	if err := database.DB.Create(&user).Error; err != nil {
		log.Error("创建用户失败", "error", err, "user_id", userID, "email", req.Email)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("用户注册成功",
		"user_id", user.UserID,
		"email", user.Email,
	)

	response.Created(c, gin.H{
		"user": user,
		"token": jwt.CreateToken(jwt.Payload{
			UserID: user.UserID,
			RoleID: user.RoleID,
		}),
	})
}

// LoginReq 定义登录请求的结构体
type LoginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login 处理用户登录请求
func Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定登录请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	var user model.User
	err := database.DB.Where("email = ?", req.Email).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		log.Warn("用户不存在", "email", req.Email)
		response.Fail(c, response.ErrInvalidPassword)
		return
	case err != nil:
		log.Error("数据库查询失败", "error", err, "email", req.Email)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	if !tools.PasswordCompare(req.Password, user.Password) {
		log.Warn("密码错误", "email", req.Email)
		response.Fail(c, response.ErrInvalidPassword)
		return
	}

	log.Info("用户登录成功",
		"user_id", user.UserID,
		"email", user.Email,
	)

	response.Success(c, gin.H{
		"user": user,
		"token": jwt.CreateToken(jwt.Payload{
			UserID: user.UserID,
			RoleID: user.RoleID,
		}),
	})
}

// Logout 将当前令牌加入吊销名单，剩余有效期内不再可用
func Logout(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	token := c.GetString("token")
	ttl := time.Until(time.Unix(payload.ExpiresAt, 0))
	if err := database.DenyToken(c.Request.Context(), token, ttl); err != nil {
		log.Error("吊销令牌失败", "error", err, "user_id", payload.UserID)
		response.Fail(c, response.ErrInternal.WithOrigin(err))
		return
	}

	log.Info("用户登出成功", "user_id", payload.UserID)
	response.Success(c)
}

// Me 返回当前登录用户信息
func Me(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	var user model.User
	if err := database.DB.First(&user, "user_id = ?", payload.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("用户不存在"))
			return
		}
		log.Error("查询用户失败", "error", err, "user_id", payload.UserID)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	response.Success(c, user)
}
