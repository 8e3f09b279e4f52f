package model

import "time"

type User struct {
	EmployeeId   string    `gorm:"type:varchar(50);primaryKey"`
	Name         string    `gorm:"type:varchar(100);not null"`
	Surname      string    `gorm:"type:varchar(100);not null"`
	// Email is optional; accounts are keyed by employee id.
	Email        string    `gorm:"type:varchar(150)"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Role         string    `gorm:"type:varchar(50);not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}
