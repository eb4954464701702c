package user

import (
	"activity-tracker-system/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (u *ModuleUser) InitRouter(r *gin.RouterGroup) {
	// 注册与登录不需要鉴权
	r.POST("/register", Register)
	r.POST("/login", Login)

	authGroup := r.Group("")
	authGroup.Use(middleware.Auth(0))
	{
		authGroup.POST("/logout", Logout)
		authGroup.GET("/user", Me)
		authGroup.GET("/users", ListUsers)
		authGroup.GET("/users/:id", GetUser)
		authGroup.PUT("/users/:id", UpdateUser)
	}

	adminGroup := r.Group("")
	adminGroup.Use(middleware.Auth(1))
	{
		// 删除用户会级联删除其活动与更新记录，仅限管理员
		adminGroup.DELETE("/users/:id", DeleteUser)
	}
}
