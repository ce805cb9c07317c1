package model

// 系统级角色
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User 平台用户
type User struct {
	BaseModel
	Username string `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Email    string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"` // 哈希密码

	// user (普通用户), admin (审核管理员)
	Role string `gorm:"size:20;default:'user'" json:"role"`

	IsActive bool `gorm:"default:true" json:"is_active"`
}

func (User) TableName() string {
	return "users"
}
