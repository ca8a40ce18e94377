package models

import "gorm.io/gorm"

// User rows are provisioned by the identity provider sync, not by this service.
type User struct {
	gorm.Model
	FirstName string `json:"first_name" gorm:"not null"`
	LastName  string `json:"last_name" gorm:"not null"`
	Email     string `json:"email" gorm:"unique;not null"`
	Phone     string `json:"phone" gorm:"default:''"`
	Verified  bool   `json:"verified" gorm:"default:false"`
	Active    bool   `json:"active" gorm:"default:false"`
}
