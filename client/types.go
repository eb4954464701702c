package client

import "time"

// User 是接口返回的用户信息
type User struct {
	UserID     string    `json:"user_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	RoleID     int       `json:"role_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Activity 是接口返回的活动信息
type Activity struct {
	ActivityID  string           `json:"activity_id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	CreatedBy   string           `json:"created_by"`
	Status      string           `json:"status"`
	Creator     User             `json:"creator"`
	Updates     []ActivityUpdate `json:"updates,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// ActivityUpdate 是接口返回的活动更新记录
type ActivityUpdate struct {
	UpdateID   string    `json:"update_id"`
	ActivityID string    `json:"activity_id"`
	UpdatedBy  string    `json:"updated_by"`
	Status     string    `json:"status"`
	Remark     string    `json:"remark"`
	Progress   string    `json:"progress"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type RegisterReq struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
	Department           string `json:"department"`
}

type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResp 是注册和登录接口的返回体
type AuthResp struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type ActivityCreateReq struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
}

type ActivityPatchReq struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	Remark      *string `json:"remark,omitempty"`
	Progress    *string `json:"progress,omitempty"`
}

type UpdateCreateReq struct {
	ActivityID string `json:"activity_id"`
	Status     string `json:"status"`
	Remark     string `json:"remark,omitempty"`
	Progress   string `json:"progress,omitempty"`
}

type UpdateEditReq struct {
	Status   string  `json:"status"`
	Remark   *string `json:"remark,omitempty"`
	Progress *string `json:"progress,omitempty"`
}
