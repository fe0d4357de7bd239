package user

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	util "github.com/quizmaster-app/backend/internal/utils"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusActive   Status = "active"
	StatusDisabled Status = "disabled"
)

var AllStatuses = []Status{StatusPending, StatusActive, StatusDisabled}

func (s Status) IsValid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// User is an end-user principal. Admins live in their own table; the two kinds
// share nothing but the login endpoint.
type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Email         string    `gorm:"size:50;uniqueIndex;not null" json:"email"`
	Password      string    `gorm:"size:128;not null" json:"-"`
	FullName      string    `gorm:"size:50;not null" json:"full_name"`
	Qualification string    `gorm:"size:50" json:"qualification,omitempty"`
	DOB           util.Date `gorm:"type:date" json:"dob,omitempty"`
	Status        Status    `gorm:"size:10;not null;default:pending" json:"status"`
	LastSeen      time.Time `gorm:"not null;autoCreateTime" json:"last_seen"`
	ReminderTime  string    `gorm:"size:5;not null;default:'19:00'" json:"reminder_time"`
}

type Admin struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:50;not null" json:"name"`
	Email    string `gorm:"size:50;uniqueIndex;not null" json:"email"`
	Password string `gorm:"size:128;not null" json:"-"`
}

func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}

func (a *Admin) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(plain)) == nil
}
