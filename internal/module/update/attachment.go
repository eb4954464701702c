package update

import (
	"activity-tracker-system/internal/global/attachment"
	"activity-tracker-system/internal/global/database"
	"activity-tracker-system/internal/global/jwt"
	"activity-tracker-system/internal/global/response"
	"activity-tracker-system/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// PresignReq 定义预签名上传请求
type PresignReq struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// PresignAttachment 生成进度附件的预签名上传 URL，前端可直传对象存储
func PresignAttachment(c *gin.Context) {
	var req PresignReq
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("绑定预签名请求失败", "error", err)
		response.Fail(c, response.ErrInvalidRequest.WithOrigin(err))
		return
	}

	storage := attachment.NewStorage()
	if !storage.S3Enabled() {
		response.Fail(c, response.ErrInvalidRequest.WithTips("对象存储未配置"))
		return
	}

	presigned, err := storage.GeneratePresignedUploadURL(c.Request.Context(), attachment.PresignedUploadRequest{
		Filename:    req.Filename,
		ContentType: req.ContentType,
		ExpiresIn:   req.ExpiresIn,
	})
	if err != nil {
		log.Error("生成预签名 URL 失败", "error", err, "filename", req.Filename)
		response.Fail(c, response.ErrInternal.WithOrigin(err))
		return
	}

	response.Success(c, presigned)
}

// UploadAttachment 服务端中转上传进度附件，保存后写入该条更新记录的 progress 字段
func UploadAttachment(c *gin.Context) {
	payload, exists := jwt.GetUserPayload(c)
	if !exists {
		response.Fail(c, response.ErrUnauthorized)
		return
	}

	id := c.Param("id")

	var record model.ActivityUpdate
	if err := database.DB.First(&record, "update_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c, response.ErrNotFound.WithTips("更新记录不存在"))
			return
		}
		log.Error("查询更新记录失败", "error", err, "update_id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	// 只有记录作者或管理员可以补充附件
	if record.UpdatedBy != payload.UserID && payload.RoleID < 1 {
		response.Fail(c, response.ErrForbidden.WithTips("只能为自己的更新记录上传附件"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Fail(c, response.ErrInvalidRequest.WithTips("缺少上传文件"))
		return
	}

	storage := attachment.NewStorage()
	var url string
	if storage.S3Enabled() {
		url, err = storage.UploadFile(c.Request.Context(), fileHeader)
	} else {
		url, err = storage.SaveFile(fileHeader)
	}
	if err != nil {
		log.Error("保存附件失败", "error", err, "update_id", id)
		response.Fail(c, response.ErrInternal.WithOrigin(err))
		return
	}

	record.Progress = url
	if err := database.DB.Save(&record).Error; err != nil {
		log.Error("写入附件地址失败", "error", err, "update_id", id)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}

	log.Info("附件上传成功", "update_id", id, "url", url)
	response.Success(c, record)
}
