package models

import "time"

// UserModel represents a registered user. Admins post topics; everyone
// else answers them under generated pseudonyms.
type UserModel struct {
	Base
	Username      string     `json:"username" gorm:"uniqueIndex;not null"`
	Name          string     `json:"name"`
	Mail          string     `json:"mail"`
	Avatar        string     `json:"avatar"`
	Password      string     `json:"-"        gorm:"not null"`
	IsAdmin       bool       `json:"isAdmin"  gorm:"default:false;index"`
	LastLoginTime *time.Time `json:"lastLoginTime"`
	LastLoginIP   string     `json:"-"`
}

func (UserModel) TableName() string { return "users" }
