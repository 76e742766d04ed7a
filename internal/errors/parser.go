package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo kod + kullanıcı mesajı ikilisi
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError maps a database error to a user-presentable code and message.
// Raw driver messages never reach the client; context picks the wording
// ("product", "category", "order", "redirect_rule", ...).
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Sunucu hatası oluştu",
		}
	}

	errStrLower := strings.ToLower(err.Error())

	// GORM temel hataları
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: notFoundMessage(context),
		}
	}

	// PostgreSQL kısıt ihlalleri

	// unique_violation (23505)
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return duplicateMessage(errStrLower, context)
	}

	// foreign_key_violation (23503)
	if strings.Contains(errStrLower, "foreign key constraint") {
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "Bu kayıt başka kayıtlar tarafından kullanılıyor",
		}
	}

	// not_null_violation (23502)
	if strings.Contains(errStrLower, "null value") && strings.Contains(errStrLower, "not-null constraint") {
		return ErrorInfo{
			Code:    ValidationInvalidInput,
			Message: "Zorunlu bir alan boş bırakılmış",
		}
	}

	// Bağlantı hataları
	if strings.Contains(errStrLower, "connection refused") || strings.Contains(errStrLower, "connection reset") {
		return ErrorInfo{
			Code:    InternalDatabaseError,
			Message: "Veritabanına ulaşılamıyor. Lütfen daha sonra tekrar deneyin",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: "Sunucu hatası oluştu. Lütfen daha sonra tekrar deneyin",
	}
}

// ParseAndRespond parses the error and writes the standard error body.
func ParseAndRespond(c interface{ JSON(int, interface{}) }, statusCode int, err error, context string) {
	errorInfo := ParseError(err, context)
	c.JSON(statusCode, ErrorResponse{
		Error:   errorInfo.Code,
		Message: errorInfo.Message,
	})
}

func notFoundMessage(context string) string {
	switch context {
	case "product":
		return "Ürün bulunamadı"
	case "category":
		return "Kategori bulunamadı"
	case "brand":
		return "Marka bulunamadı"
	case "order":
		return "Sipariş bulunamadı"
	case "cart_item":
		return "Sepet satırı bulunamadı"
	case "redirect_rule":
		return "Yönlendirme kuralı bulunamadı"
	case "user":
		return "Kullanıcı bulunamadı"
	default:
		return "Kayıt bulunamadı"
	}
}

func duplicateMessage(errStr, context string) ErrorInfo {
	if strings.Contains(errStr, "email") {
		return ErrorInfo{Code: AuthEmailAlreadyExists, Message: "Bu e-posta adresi zaten kayıtlı"}
	}
	if strings.Contains(errStr, "slug") {
		return ErrorInfo{Code: CatalogSlugExists, Message: "Bu slug zaten kullanımda"}
	}
	if strings.Contains(errStr, "sku") {
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "Bu stok kodu zaten kayıtlı"}
	}
	if context == "redirect_rule" {
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "Bu yol için kural zaten tanımlı"}
	}
	return ErrorInfo{Code: ResourceAlreadyExists, Message: "Bu kayıt zaten mevcut"}
}
