package module

import (
	"activity-tracker-system/internal/module/activity"
	"activity-tracker-system/internal/module/ping"
	"activity-tracker-system/internal/module/stats"
	"activity-tracker-system/internal/module/update"
	"activity-tracker-system/internal/module/user"

	"github.com/gin-gonic/gin"
)

type Module interface {
	GetName() string
	Init()
	InitRouter(r *gin.RouterGroup)
}

var Modules []Module

func registerModule(m []Module) {
	Modules = append(Modules, m...)
}

func init() {
	// Register your module here
	registerModule([]Module{
		&ping.ModulePing{},
		&user.ModuleUser{},
		&activity.ModuleActivity{},
		&update.ModuleUpdate{},
		&stats.ModuleStats{},
	})
}
