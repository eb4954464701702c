package model

type ActivityUpdate struct {
	UpdateID   string `gorm:"type:varchar(20);primaryKey" json:"update_id"`      // 活动ID前缀 + 随机数字，审计记录为 UPD + 随机数字
	ActivityID string `gorm:"type:varchar(20);not null;index" json:"activity_id"` // 外键指向活动表
	UpdatedBy  string `gorm:"type:varchar(20);not null;index" json:"updated_by"`  // 外键指向用户表
	Status     string `gorm:"type:varchar(10);not null" json:"status"`            // pending / done
	Remark     string `gorm:"type:text" json:"remark"`
	Progress   string `gorm:"type:text" json:"progress"`
	Model
	// 关联
	Activity Activity `gorm:"foreignKey:ActivityID;references:ActivityID;constraint:OnDelete:CASCADE" json:"activity"`
	User     User     `gorm:"foreignKey:UpdatedBy;references:UserID;constraint:OnDelete:CASCADE" json:"user"`
}
