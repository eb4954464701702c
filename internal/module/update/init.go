package update

import (
	"activity-tracker-system/internal/global/logger"
	"log/slog"
)

var log *slog.Logger

type ModuleUpdate struct{}

func (m *ModuleUpdate) GetName() string {
	return "Update"
}

func (m *ModuleUpdate) Init() {
	log = logger.New("Update")
}
