package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/Iwamergun/dentalmarket-backend/internal/app/model"
	"github.com/Iwamergun/dentalmarket-backend/internal/app/service"
	apperrors "github.com/Iwamergun/dentalmarket-backend/internal/errors"
	"github.com/Iwamergun/dentalmarket-backend/internal/middleware"
	"github.com/Iwamergun/dentalmarket-backend/pkg/redis"
	"github.com/Iwamergun/dentalmarket-backend/pkg/util"
	"github.com/gin-gonic/gin"
)

type AuthController struct {
	authService service.AuthService
	jwtSecret   string
	useRedis    bool
}

func NewAuthController(authService service.AuthService, jwtSecret string, useRedis bool) *AuthController {
	return &AuthController{
		authService: authService,
		jwtSecret:   jwtSecret,
		useRedis:    useRedis,
	}
}

type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	Name        string `json:"name" binding:"required"`
	CompanyName string `json:"company_name" binding:"required"`
	TaxNumber   string `json:"tax_number" binding:"required"`
	Phone       string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Name        string `json:"name"`
	CompanyName string `json:"company_name"`
	Phone       string `json:"phone"`
}

// UserResponse hides password hash and other internal fields
type UserResponse struct {
	ID          uint           `json:"id"`
	Email       string         `json:"email"`
	Name        string         `json:"name"`
	CompanyName string         `json:"company_name"`
	TaxNumber   string         `json:"tax_number"`
	Phone       string         `json:"phone"`
	Role        model.UserRole `json:"role"`
}

func toUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		Name:        user.Name,
		CompanyName: user.CompanyName,
		TaxNumber:   user.TaxNumber,
		Phone:       user.Phone,
		Role:        user.Role,
	}
}

// Register creates a new dealer account
// POST /api/v1/auth/register
func (ctrl *AuthController) Register(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid register request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Girilen bilgiler geçerli değil")
		return
	}

	user, tokens, err := ctrl.authService.Register(req.Email, req.Password, req.Name, req.CompanyName, req.TaxNumber, req.Phone)
	if err != nil {
		if errors.Is(err, service.ErrEmailAlreadyExists) {
			log.Warn("Registration with existing email", map[string]interface{}{
				"email": req.Email,
			})
			apperrors.Conflict(c, apperrors.AuthEmailAlreadyExists, "Bu e-posta adresi zaten kayıtlı")
			return
		}
		log.Error("Failed to register user", err, map[string]interface{}{
			"email": req.Email,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "user")
		return
	}

	log.Info("User registered", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})

	c.JSON(http.StatusCreated, gin.H{
		"user":          toUserResponse(user),
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
	})
}

// Login authenticates a user and issues a token pair
// POST /api/v1/auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Girilen bilgiler geçerli değil")
		return
	}

	user, tokens, err := ctrl.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			log.Warn("Failed login attempt", map[string]interface{}{
				"email": req.Email,
			})
			apperrors.Unauthorized(c, "E-posta veya şifre hatalı")
			return
		}
		log.Error("Login failed", err, map[string]interface{}{
			"email": req.Email,
		})
		apperrors.InternalError(c, "")
		return
	}

	log.Info("User logged in", map[string]interface{}{
		"user_id": user.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"user":          toUserResponse(user),
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
	})
}

// Logout blacklists the presented access token for its remaining lifetime
// POST /api/v1/auth/logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	authHeader := c.GetHeader("Authorization")
	if len(authHeader) < 8 || authHeader[:7] != "Bearer " {
		apperrors.Unauthorized(c, "")
		return
	}
	token := authHeader[7:]

	claims, err := util.ValidateToken(token, ctrl.jwtSecret)
	if err != nil {
		// Already invalid; nothing to revoke
		c.JSON(http.StatusOK, gin.H{"message": "Çıkış yapıldı"})
		return
	}

	if ctrl.useRedis && claims.ExpiresAt != nil {
		ttl := time.Until(claims.ExpiresAt.Time)
		if ttl > 0 {
			if err := redis.BlacklistToken(c.Request.Context(), token, ttl); err != nil {
				log.Error("Failed to blacklist token", err, map[string]interface{}{
					"user_id": claims.UserID,
				})
			}
		}
	}

	log.Info("User logged out", map[string]interface{}{
		"user_id": claims.UserID,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Çıkış yapıldı"})
}

// GetProfile returns the authenticated user's profile
// GET /api/v1/auth/me
func (ctrl *AuthController) GetProfile(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	user, err := ctrl.authService.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Kullanıcı bulunamadı")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "user")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": toUserResponse(user),
	})
}

// UpdateProfile updates the authenticated user's profile fields
// PUT /api/v1/auth/me
func (ctrl *AuthController) UpdateProfile(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Girilen bilgiler geçerli değil")
		return
	}

	user, err := ctrl.authService.UpdateProfile(userID, req.Name, req.CompanyName, req.Phone)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Kullanıcı bulunamadı")
			return
		}
		log.Error("Failed to update profile", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "user")
		return
	}

	log.Info("Profile updated", map[string]interface{}{
		"user_id": userID,
	})

	c.JSON(http.StatusOK, gin.H{
		"user": toUserResponse(user),
	})
}
