package entity

import "time"

type User struct {
	EmployeeId   string
	Name         string
	Surname      string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}
