package models

type User struct {
	Base
	Username string `json:"username" gorm:"uniqueIndex;size:191;not null"`
	Password string `json:"-" gorm:"not null"`
	Email    string `json:"email" gorm:"uniqueIndex;size:191;not null"`
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	IsAdmin  bool   `json:"isAdmin" gorm:"not null;default:false"`
}

type LoginData struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
