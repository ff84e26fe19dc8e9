package entity

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User представляет зарегистрированного пользователя
type User struct {
	ID           uint      `gorm:"primaryKey" db:"id" json:"id"`
	Username     string    `gorm:"size:50;not null;uniqueIndex" db:"username" json:"username"`
	PasswordHash string    `gorm:"column:password_hash;size:100;not null" db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (User) TableName() string {
	return "users"
}

// CheckPassword проверяет, соответствует ли переданный пароль хешу
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}
