package model

import (
	"time"
)

// 所有实体都使用生成的字符串主键，不使用自增 ID，也不做软删除：
// 删除用户会级联删除其活动及活动下的更新记录
type Model struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// 活动与更新记录共用的状态枚举
const (
	StatusPending = "pending"
	StatusDone    = "done"
)
