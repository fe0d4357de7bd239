package user

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type UserRepository interface {
	CreateUser(u *User) error
	FindUserByID(id uint) (*User, error)
	FindUserByEmail(email string) (*User, error)
	FindAllUsers() ([]User, error)
	UpdateUserStatus(id uint, status Status) error
	UpdateStatusBulk(ids []uint, status Status) (int64, error)
	TouchLastSeen(id uint, at time.Time) error

	CreateAdmin(a *Admin) error
	FindAdminByID(id uint) (*Admin, error)
	FindAdminByEmail(email string) (*Admin, error)
	CountAdmins() (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(u *User) error {
	return r.db.Create(u).Error
}

func (r *userRepository) FindUserByID(id uint) (*User, error) {
	var u User
	if err := r.db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) FindUserByEmail(email string) (*User, error) {
	var u User
	if err := r.db.First(&u, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) FindAllUsers() ([]User, error) {
	var users []User
	if err := r.db.Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) UpdateUserStatus(id uint, status Status) error {
	return r.db.Model(&User{}).Where("id = ?", id).Update("status", status).Error
}

func (r *userRepository) UpdateStatusBulk(ids []uint, status Status) (int64, error) {
	result := r.db.Model(&User{}).Where("id IN ?", ids).Update("status", status)
	return result.RowsAffected, result.Error
}

func (r *userRepository) TouchLastSeen(id uint, at time.Time) error {
	return r.db.Model(&User{}).Where("id = ?", id).Update("last_seen", at).Error
}

func (r *userRepository) CreateAdmin(a *Admin) error {
	return r.db.Create(a).Error
}

func (r *userRepository) FindAdminByID(id uint) (*Admin, error) {
	var a Admin
	if err := r.db.First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *userRepository) FindAdminByEmail(email string) (*Admin, error) {
	var a Admin
	if err := r.db.First(&a, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *userRepository) CountAdmins() (int64, error) {
	var count int64
	err := r.db.Model(&Admin{}).Count(&count).Error
	return count, err
}
