package user

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/quizmaster-app/backend/internal/apperror"
	"github.com/quizmaster-app/backend/internal/auth"
	"github.com/quizmaster-app/backend/internal/config"
	util "github.com/quizmaster-app/backend/internal/utils"
)

const tokenLifetime = 10 * time.Hour

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type UserService interface {
	Signup(ctx context.Context, req SignupRequest) (*User, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	ListUsers(ctx context.Context) ([]UserResponse, error)
	Profile(ctx context.Context, claims *auth.Claims) (*ProfileResponse, error)
	UpdateStatus(ctx context.Context, userID uint, status string) (string, error)
	BulkUpdateStatus(ctx context.Context, req BulkUpdateRequest) (int64, error)
	SeedAdmin(ctx context.Context) error
}

type userService struct {
	repo UserRepository
}

func NewService(repo UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) Signup(ctx context.Context, req SignupRequest) (*User, error) {
	log := config.WithContext(ctx)

	email := strings.TrimSpace(strings.ToLower(req.Email))
	fullName := strings.TrimSpace(req.FullName)

	if email == "" || req.Password == "" || fullName == "" {
		return nil, apperror.Validation("Email, password and full name are required")
	}
	if !emailPattern.MatchString(email) {
		return nil, apperror.Validation("Invalid email address")
	}
	if len(req.Password) < 4 {
		return nil, apperror.Validation("Password must be at least 4 characters")
	}

	u := &User{
		Email:         email,
		FullName:      fullName,
		Qualification: strings.TrimSpace(req.Qualification),
		Status:        StatusPending,
		LastSeen:      time.Now(),
		ReminderTime:  "19:00",
	}

	if req.DOB != "" {
		dob, err := util.ParseDate(req.DOB)
		if err != nil {
			return nil, apperror.Validation("Invalid date format. Use YYYY-MM-DD")
		}
		u.DOB = dob
	}
	if req.ReminderTime != "" {
		if _, _, err := util.ParseClock(req.ReminderTime); err != nil {
			return nil, apperror.Validation("Reminder time must be in 'hh:mm' format")
		}
		u.ReminderTime = req.ReminderTime
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		log.WithError(err).Error("Failed to hash password")
		return nil, apperror.Internal("Signup failed", err)
	}
	u.Password = hash

	if err := s.repo.CreateUser(u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict("User with this email already exists")
		}
		log.WithError(err).Error("Failed to create user")
		return nil, apperror.Internal("Signup failed", err)
	}

	log.WithField("user_id", u.ID).Info("User registered")
	return u, nil
}

// Login matches the credentials against the user table first, then the admin
// table. The two principal kinds never share a row.
func (s *userService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	log := config.WithContext(ctx)

	u, err := s.repo.FindUserByEmail(req.Email)
	if err != nil {
		log.WithError(err).Error("Failed to look up user")
		return nil, apperror.Internal("Login failed", err)
	}
	if u != nil && u.CheckPassword(req.Password) {
		if u.Status != StatusActive {
			return nil, &apperror.Error{
				Kind:    apperror.KindAccessDenied,
				Message: "Your account is inactive. Contact the administrator!",
			}
		}

		if err := s.repo.TouchLastSeen(u.ID, time.Now()); err != nil {
			log.WithError(err).Warn("Failed to update last_seen")
		}

		token, err := auth.GenerateJWT(u.ID, auth.RoleUser, tokenLifetime)
		if err != nil {
			log.WithError(err).Error("Failed to issue token")
			return nil, apperror.Internal("Login failed", err)
		}
		return &LoginResponse{
			Message:  "User login successful",
			Role:     auth.RoleUser,
			Username: u.FullName,
			Token:    token,
		}, nil
	}

	a, err := s.repo.FindAdminByEmail(req.Email)
	if err != nil {
		log.WithError(err).Error("Failed to look up admin")
		return nil, apperror.Internal("Login failed", err)
	}
	if a != nil && a.CheckPassword(req.Password) {
		token, err := auth.GenerateJWT(a.ID, auth.RoleAdmin, tokenLifetime)
		if err != nil {
			log.WithError(err).Error("Failed to issue token")
			return nil, apperror.Internal("Login failed", err)
		}
		return &LoginResponse{
			Message:  "Admin login successful",
			Role:     auth.RoleAdmin,
			Username: a.Name,
			Token:    token,
		}, nil
	}

	return nil, &apperror.Error{Kind: apperror.KindValidation, Message: "Invalid credentials"}
}

func (s *userService) ListUsers(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.FindAllUsers()
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list users")
		return nil, apperror.Internal("Failed to fetch users", err)
	}

	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, UserResponse{
			ID:            u.ID,
			FullName:      u.FullName,
			Email:         u.Email,
			Qualification: u.Qualification,
			DOB:           u.DOB.String(),
			LastSeen:      u.LastSeen.Format(time.RFC3339),
			ReminderTime:  u.ReminderTime,
			Status:        u.Status,
		})
	}
	return out, nil
}

func (s *userService) Profile(ctx context.Context, claims *auth.Claims) (*ProfileResponse, error) {
	log := config.WithContext(ctx)

	if claims.IsAdmin() {
		a, err := s.repo.FindAdminByID(claims.ID)
		if err != nil {
			log.WithError(err).Error("Failed to load admin profile")
			return nil, apperror.Internal("Failed to fetch profile", err)
		}
		if a == nil {
			return nil, apperror.NotFound("User not found")
		}
		return &ProfileResponse{ID: a.ID, Email: a.Email, Role: auth.RoleAdmin, Name: a.Name}, nil
	}

	u, err := s.repo.FindUserByID(claims.ID)
	if err != nil {
		log.WithError(err).Error("Failed to load user profile")
		return nil, apperror.Internal("Failed to fetch profile", err)
	}
	if u == nil {
		return nil, apperror.NotFound("User not found")
	}
	return &ProfileResponse{
		ID:            u.ID,
		Email:         u.Email,
		Role:          auth.RoleUser,
		FullName:      u.FullName,
		Qualification: u.Qualification,
		DOB:           u.DOB.String(),
		ReminderTime:  u.ReminderTime,
	}, nil
}

func (s *userService) UpdateStatus(ctx context.Context, userID uint, status string) (string, error) {
	log := config.WithContext(ctx)

	next := Status(strings.ToLower(strings.TrimSpace(status)))
	if !next.IsValid() {
		return "", apperror.Validation("Invalid status. Must be 'active', 'pending', or 'disabled'.")
	}

	u, err := s.repo.FindUserByID(userID)
	if err != nil {
		log.WithError(err).Error("Failed to load user")
		return "", apperror.Internal("Failed to update status", err)
	}
	if u == nil {
		return "", apperror.NotFound("User not found")
	}
	if u.Status == next {
		return fmt.Sprintf("User is already %s", next), nil
	}

	if err := s.repo.UpdateUserStatus(userID, next); err != nil {
		log.WithError(err).Error("Failed to update user status")
		return "", apperror.Internal("Failed to update status", err)
	}

	log.WithField("user_id", userID).Infof("User status updated to %s", next)
	return fmt.Sprintf("User status updated to %s successfully", next), nil
}

func (s *userService) BulkUpdateStatus(ctx context.Context, req BulkUpdateRequest) (int64, error) {
	next := Status(strings.ToLower(strings.TrimSpace(req.Status)))
	if !next.IsValid() {
		return 0, apperror.Validation("Invalid status. Must be 'active', 'pending', or 'disabled'.")
	}
	if len(req.UserIDs) == 0 {
		return 0, apperror.Validation("user_ids is required")
	}

	updated, err := s.repo.UpdateStatusBulk(req.UserIDs, next)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to bulk-update user status")
		return 0, apperror.Internal("Failed to update users", err)
	}
	return updated, nil
}

// SeedAdmin creates the initial administrator from ADMIN_EMAIL/ADMIN_PASSWORD
// when the admins table is empty.
func (s *userService) SeedAdmin(ctx context.Context) error {
	log := config.WithContext(ctx)

	count, err := s.repo.CountAdmins()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Warn("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}

	admin := &Admin{Name: "admin", Email: email, Password: hash}
	if err := s.repo.CreateAdmin(admin); err != nil {
		return err
	}

	log.WithField("email", email).Info("Administrator initialized")
	return nil
}
