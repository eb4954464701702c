package activity

import (
	"activity-tracker-system/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (a *ModuleActivity) InitRouter(r *gin.RouterGroup) {
	// 活动相关端点全部需要登录
	activityGroup := r.Group("/activities")

	activityGroup.Use(middleware.Auth(0))
	{
		// 创建活动（单个对象或数组）
		activityGroup.POST("", CreateActivities)

		// 获取活动列表
		activityGroup.GET("", ListActivities)

		// 获取单个活动
		activityGroup.GET("/:id", GetActivity)

		// 更新活动
		activityGroup.PUT("/:id", UpdateActivity)
	}
}
