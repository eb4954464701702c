package update

import (
	"activity-tracker-system/internal/model"

	"gorm.io/gorm"
)

// syncActivityStatus 状态同步规则：任何一条更新记录写入成功后，
// 父活动的状态被无条件覆盖为该更新的状态（最后写入者胜出）。
// 这里刻意不加锁、不做版本控制：并发写同一活动时以存储层最后落盘的为准
func syncActivityStatus(tx *gorm.DB, activityID, status string) error {
	return tx.Model(&model.Activity{}).
		Where("activity_id = ?", activityID).
		Update("status", status).Error
}
