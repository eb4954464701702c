package stats

import (
	"time"

	"activity-tracker-system/internal/global/database"
	"activity-tracker-system/internal/model"

	"gorm.io/gorm"
)

// selectActivitiesBetween 查询 [start, end) 内创建的活动，附带创建人和升序的更新记录
func selectActivitiesBetween(start, end time.Time) ([]model.Activity, error) {
	var activities []model.Activity
	err := database.DB.
		Preload("Creator").
		Preload("Updates", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("created_at >= ? AND created_at < ?", start, end).
		Order("created_at ASC").
		Find(&activities).Error
	return activities, err
}

// selectUpdatesBetween 查询 [start, end) 内创建的更新记录，升序
func selectUpdatesBetween(start, end time.Time) ([]model.ActivityUpdate, error) {
	var updates []model.ActivityUpdate
	err := database.DB.
		Preload("Activity").
		Preload("User").
		Where("created_at >= ? AND created_at < ?", start, end).
		Order("created_at ASC").
		Find(&updates).Error
	return updates, err
}
