package service

import (
	"testing"
	"time"

	"github.com/Iwamergun/dentalmarket-backend/internal/app/model"
	"github.com/Iwamergun/dentalmarket-backend/internal/app/repository"
	"github.com/Iwamergun/dentalmarket-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthServiceTest(t *testing.T) AuthService {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	return NewAuthService(
		userRepo,
		"test-jwt-secret",
		15*time.Minute,
		7*24*time.Hour,
	)
}

func TestAuthService_Register(t *testing.T) {
	authService := setupAuthServiceTest(t)

	tests := []struct {
		name        string
		email       string
		password    string
		userName    string
		companyName string
		taxNumber   string
		wantErr     error
	}{
		{
			name:        "Valid registration",
			email:       "klinik@example.com",
			password:    "password123",
			userName:    "Ayşe Yılmaz",
			companyName: "Yılmaz Dental Klinik",
			taxNumber:   "1234567890",
			wantErr:     nil,
		},
		{
			name:        "Duplicate email",
			email:       "klinik@example.com",
			password:    "password456",
			userName:    "Başka Kullanıcı",
			companyName: "Başka Klinik",
			taxNumber:   "0987654321",
			wantErr:     ErrEmailAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, tokens, err := authService.Register(
				tt.email,
				tt.password,
				tt.userName,
				tt.companyName,
				tt.taxNumber,
				"0212 555 00 00",
			)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				assert.Nil(t, tokens)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				require.NotNil(t, tokens)
				assert.Equal(t, tt.email, user.Email)
				assert.Equal(t, tt.userName, user.Name)
				assert.Equal(t, tt.companyName, user.CompanyName)
				assert.Equal(t, model.RoleDealer, user.Role)
				assert.NotEqual(t, tt.password, user.PasswordHash)
				assert.NotEmpty(t, tokens.AccessToken)
				assert.NotEmpty(t, tokens.RefreshToken)
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	authService := setupAuthServiceTest(t)

	email := "klinik@example.com"
	password := "password123"
	_, _, err := authService.Register(email, password, "Ayşe Yılmaz", "Yılmaz Dental", "1234567890", "")
	require.NoError(t, err)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "Valid login",
			email:    email,
			password: password,
			wantErr:  nil,
		},
		{
			name:     "Wrong password",
			email:    email,
			password: "wrongpassword",
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "Non-existing user",
			email:    "yok@example.com",
			password: password,
			wantErr:  ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, tokens, err := authService.Login(tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				assert.Nil(t, tokens)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				require.NotNil(t, tokens)
				assert.Equal(t, tt.email, user.Email)
				assert.NotEmpty(t, tokens.AccessToken)
			}
		})
	}
}

func TestAuthService_GetUserByID(t *testing.T) {
	authService := setupAuthServiceTest(t)

	registered, _, err := authService.Register("klinik@example.com", "password123", "Ayşe Yılmaz", "Yılmaz Dental", "1234567890", "")
	require.NoError(t, err)

	user, err := authService.GetUserByID(registered.ID)
	assert.NoError(t, err)
	assert.Equal(t, registered.Email, user.Email)

	_, err = authService.GetUserByID(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	authService := setupAuthServiceTest(t)

	registered, _, err := authService.Register("klinik@example.com", "password123", "Ayşe Yılmaz", "Yılmaz Dental", "1234567890", "0212 555 00 00")
	require.NoError(t, err)

	// Empty fields keep their current values
	updated, err := authService.UpdateProfile(registered.ID, "Ayşe Kaya", "", "")
	require.NoError(t, err)
	assert.Equal(t, "Ayşe Kaya", updated.Name)
	assert.Equal(t, "Yılmaz Dental", updated.CompanyName)
	assert.Equal(t, "0212 555 00 00", updated.Phone)

	_, err = authService.UpdateProfile(9999, "Kimse", "", "")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
