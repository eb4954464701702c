package update

import (
	"activity-tracker-system/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (m *ModuleUpdate) InitRouter(r *gin.RouterGroup) {
	updateGroup := r.Group("/activity-updates")

	updateGroup.Use(middleware.Auth(0))
	{
		// 创建更新记录（单个对象或数组），创建后同步父活动状态
		updateGroup.POST("", CreateUpdates)

		// 获取更新记录列表
		updateGroup.GET("", ListUpdates)

		// 日期范围报表与导出
		updateGroup.GET("/report", Report)
		updateGroup.GET("/report/export", ExportReport)

		// 进度附件
		updateGroup.POST("/attachments/presign", PresignAttachment)
		updateGroup.POST("/:id/attachments", UploadAttachment)

		// 获取、编辑单条更新记录
		updateGroup.GET("/:id", GetUpdate)
		updateGroup.PUT("/:id", EditUpdate)
	}
}
