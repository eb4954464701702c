package model

type User struct {
	UserID     string `gorm:"type:varchar(20);primaryKey" json:"user_id"` // 姓名首字母 + 随机数字
	Name       string `gorm:"type:varchar(255);not null" json:"name"`
	Email      string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password   string `gorm:"type:varchar(255);not null" json:"-"`
	Department string `gorm:"type:varchar(255)" json:"department"`
	RoleID     int    `gorm:"default:0;not null" json:"role_id"`
	Model
}
