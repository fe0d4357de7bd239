package user

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/quizmaster-app/backend/internal/apperror"
	"github.com/quizmaster-app/backend/internal/auth"
)

type fakeUserRepo struct {
	users  map[uint]*User
	admins map[uint]*Admin
	nextID uint

	createUserErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:  make(map[uint]*User),
		admins: make(map[uint]*Admin),
		nextID: 1,
	}
}

func (f *fakeUserRepo) CreateUser(u *User) error {
	if f.createUserErr != nil {
		return f.createUserErr
	}
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	u.ID = f.nextID
	f.nextID++
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) FindUserByID(id uint) (*User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) FindUserByEmail(email string) (*User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindAllUsers() ([]User, error) {
	out := make([]User, 0, len(f.users))
	for id := uint(1); id < f.nextID; id++ {
		if u, ok := f.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) UpdateUserStatus(id uint, status Status) error {
	if u, ok := f.users[id]; ok {
		u.Status = status
	}
	return nil
}

func (f *fakeUserRepo) UpdateStatusBulk(ids []uint, status Status) (int64, error) {
	var n int64
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			u.Status = status
			n++
		}
	}
	return n, nil
}

func (f *fakeUserRepo) TouchLastSeen(id uint, at time.Time) error {
	if u, ok := f.users[id]; ok {
		u.LastSeen = at
	}
	return nil
}

func (f *fakeUserRepo) CreateAdmin(a *Admin) error {
	a.ID = f.nextID
	f.nextID++
	f.admins[a.ID] = a
	return nil
}

func (f *fakeUserRepo) FindAdminByID(id uint) (*Admin, error) {
	return f.admins[id], nil
}

func (f *fakeUserRepo) FindAdminByEmail(email string) (*Admin, error) {
	for _, a := range f.admins {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) CountAdmins() (int64, error) {
	return int64(len(f.admins)), nil
}

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "user-service-test-secret")
	auth.Init()
	os.Exit(m.Run())
}

func seedUser(t *testing.T, repo *fakeUserRepo, email, password string, status Status) *User {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)
	u := &User{Email: email, Password: hash, FullName: "Test User", Status: status, ReminderTime: "19:00"}
	require.NoError(t, repo.CreateUser(u))
	return u
}

func TestSignup(t *testing.T) {
	ctx := context.Background()

	t.Run("Valid", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewService(repo)

		u, err := svc.Signup(ctx, SignupRequest{
			Email:    "new@example.com",
			Password: "secret",
			FullName: "New User",
			DOB:      "1999-04-21",
		})
		require.NoError(t, err)
		assert.Equal(t, StatusPending, u.Status)
		assert.Equal(t, "19:00", u.ReminderTime)
		assert.NotEqual(t, "secret", u.Password)
		assert.True(t, u.CheckPassword("secret"))
	})

	t.Run("MissingFields", func(t *testing.T) {
		svc := NewService(newFakeUserRepo())
		_, err := svc.Signup(ctx, SignupRequest{Email: "a@b.co"})
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})

	t.Run("BadEmail", func(t *testing.T) {
		svc := NewService(newFakeUserRepo())
		_, err := svc.Signup(ctx, SignupRequest{Email: "nope", Password: "secret", FullName: "X"})
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewService(repo)
		seedUser(t, repo, "dup@example.com", "pw1234", StatusActive)

		_, err := svc.Signup(ctx, SignupRequest{Email: "dup@example.com", Password: "pw1234", FullName: "Dup"})
		assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("ActiveUser", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewService(repo)
		u := seedUser(t, repo, "u@example.com", "secret", StatusActive)
		before := u.LastSeen

		resp, err := svc.Login(ctx, LoginRequest{Email: "u@example.com", Password: "secret"})
		require.NoError(t, err)
		assert.Equal(t, auth.RoleUser, resp.Role)
		assert.Equal(t, "User login successful", resp.Message)

		claims, err := auth.ValidateJWT(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, u.ID, claims.ID)
		assert.False(t, claims.IsAdmin())
		assert.True(t, u.LastSeen.After(before) || u.LastSeen.Equal(before))
	})

	t.Run("PendingUserRejected", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewService(repo)
		seedUser(t, repo, "p@example.com", "secret", StatusPending)

		_, err := svc.Login(ctx, LoginRequest{Email: "p@example.com", Password: "secret"})
		assert.Equal(t, apperror.KindAccessDenied, apperror.KindOf(err))
	})

	t.Run("Admin", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewService(repo)
		hash, err := HashPassword("adminpw")
		require.NoError(t, err)
		require.NoError(t, repo.CreateAdmin(&Admin{Name: "admin", Email: "a@example.com", Password: hash}))

		resp, err := svc.Login(ctx, LoginRequest{Email: "a@example.com", Password: "adminpw"})
		require.NoError(t, err)
		assert.Equal(t, auth.RoleAdmin, resp.Role)

		claims, err := auth.ValidateJWT(resp.Token)
		require.NoError(t, err)
		assert.True(t, claims.IsAdmin())
	})

	t.Run("WrongPassword", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewService(repo)
		seedUser(t, repo, "u@example.com", "secret", StatusActive)

		_, err := svc.Login(ctx, LoginRequest{Email: "u@example.com", Password: "wrong"})
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Transition", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewService(repo)
		u := seedUser(t, repo, "u@example.com", "secret", StatusPending)

		msg, err := svc.UpdateStatus(ctx, u.ID, "active")
		require.NoError(t, err)
		assert.Equal(t, "User status updated to active successfully", msg)
		assert.Equal(t, StatusActive, repo.users[u.ID].Status)
	})

	t.Run("AlreadyInState", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewService(repo)
		u := seedUser(t, repo, "u@example.com", "secret", StatusActive)

		msg, err := svc.UpdateStatus(ctx, u.ID, "active")
		require.NoError(t, err)
		assert.Equal(t, "User is already active", msg)
	})

	t.Run("InvalidStatus", func(t *testing.T) {
		svc := NewService(newFakeUserRepo())
		_, err := svc.UpdateStatus(ctx, 1, "frozen")
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})

	t.Run("UnknownUser", func(t *testing.T) {
		svc := NewService(newFakeUserRepo())
		_, err := svc.UpdateStatus(ctx, 99, "active")
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})
}

func TestBulkUpdateStatus(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := NewService(repo)
	u1 := seedUser(t, repo, "a@example.com", "secret", StatusPending)
	u2 := seedUser(t, repo, "b@example.com", "secret", StatusPending)

	updated, err := svc.BulkUpdateStatus(ctx, BulkUpdateRequest{UserIDs: []uint{u1.ID, u2.ID, 999}, Status: "active"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)
	assert.Equal(t, StatusActive, repo.users[u1.ID].Status)
	assert.Equal(t, StatusActive, repo.users[u2.ID].Status)
}

func TestSeedAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("CreatesWhenEmpty", func(t *testing.T) {
		os.Setenv("ADMIN_EMAIL", "root@example.com")
		os.Setenv("ADMIN_PASSWORD", "rootpw")
		repo := newFakeUserRepo()
		svc := NewService(repo)

		require.NoError(t, svc.SeedAdmin(ctx))
		a, err := repo.FindAdminByEmail("root@example.com")
		require.NoError(t, err)
		require.NotNil(t, a)
		assert.True(t, a.CheckPassword("rootpw"))
	})

	t.Run("SkipsWhenPresent", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewService(repo)
		require.NoError(t, repo.CreateAdmin(&Admin{Name: "admin", Email: "x@example.com", Password: "h"}))

		require.NoError(t, svc.SeedAdmin(ctx))
		count, _ := repo.CountAdmins()
		assert.Equal(t, int64(1), count)
	})
}
