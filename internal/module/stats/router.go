package stats

import (
	"activity-tracker-system/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (*ModuleStats) InitRouter(r *gin.RouterGroup) {
	statsGroup := r.Group("/activities")
	statsGroup.Use(middleware.Auth(0))
	{
		// 按天：指定日期创建的活动及其当天的更新记录
		statsGroup.GET("/daily", Daily)

		// 按周：本 ISO 周（UTC）的活动，按日期分组
		statsGroup.GET("/weekly", Weekly)

		// 按小时：指定日期的更新记录，按两位小时分组
		statsGroup.GET("/hourly", Hourly)
	}
}
