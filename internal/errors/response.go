package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse standart hata gövdesi
type ErrorResponse struct {
	Error   string `json:"error"`   // hata kodu (codes.go)
	Message string `json:"message"` // kullanıcıya gösterilecek Türkçe mesaj
}

// RespondWithError writes the standard error body with the given status.
func RespondWithError(c *gin.Context, statusCode int, errorCode string, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   errorCode,
		Message: message,
	})
}

// Sık kullanılan kısayollar

func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Giriş yapmanız gerekiyor"
	}
	RespondWithError(c, http.StatusUnauthorized, AuthUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Bu işlem için yetkiniz yok"
	}
	RespondWithError(c, http.StatusForbidden, AuthzForbidden, message)
}

func BadRequest(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusBadRequest, errorCode, message)
}

func NotFound(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusNotFound, errorCode, message)
}

func Conflict(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusConflict, errorCode, message)
}

func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Sunucu hatası oluştu. Lütfen daha sonra tekrar deneyin"
	}
	RespondWithError(c, http.StatusInternalServerError, InternalServerError, message)
}

// ValidationError alan bazlı doğrulama hataları için
type ValidationError struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func RespondWithValidationError(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusBadRequest, ValidationError{
		Error:   ValidationInvalidInput,
		Message: "Girilen bilgiler geçerli değil",
		Fields:  fields,
	})
}
