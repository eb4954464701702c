package model

type Activity struct {
	ActivityID  string `gorm:"type:varchar(20);primaryKey" json:"activity_id"`   // 标题前缀 + 随机数字
	Title       string `gorm:"type:varchar(255);not null" json:"title"`          // 活动标题
	Description string `gorm:"type:text" json:"description"`                     // 活动描述
	CreatedBy   string `gorm:"type:varchar(20);not null;index" json:"created_by"` // 创建人，外键指向用户表
	Status      string `gorm:"type:varchar(10);not null;default:pending" json:"status"` // pending / done，始终镜像最近一条更新记录的状态
	Model
	// 关联
	Creator User             `gorm:"foreignKey:CreatedBy;references:UserID;constraint:OnDelete:CASCADE" json:"creator"`
	Updates []ActivityUpdate `gorm:"foreignKey:ActivityID;references:ActivityID" json:"updates,omitempty"`
}
