package errors

// Hata kodu sabitleri
// Biçim: KATEGORI_AYRINTI
// Ön yüz bu kodları kullanıcı mesajlarına eşler.

const (
	// ==================== Kimlik doğrulama (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // giriş gerekli
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // hatalı e-posta/şifre
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"       // token süresi doldu
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"       // geçersiz token
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"       // token iptal edildi
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"        // e-posta zaten kayıtlı

	// ==================== Yetkilendirme (AUTHZ_) ====================
	AuthzForbidden = "AUTHZ_FORBIDDEN" // erişim yetkisi yok
	AuthzAdminOnly = "AUTHZ_ADMIN_ONLY"

	// ==================== Doğrulama (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"
	ValidationInvalidRange = "VALIDATION_INVALID_RANGE"

	// ==================== Kaynak (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Katalog (CATALOG_) ====================
	CatalogProductNotFound  = "CATALOG_PRODUCT_NOT_FOUND"
	CatalogCategoryNotFound = "CATALOG_CATEGORY_NOT_FOUND"
	CatalogBrandNotFound    = "CATALOG_BRAND_NOT_FOUND"
	CatalogSlugExists       = "CATALOG_SLUG_EXISTS"     // slug çakışması
	CatalogInvalidVariant   = "CATALOG_INVALID_VARIANT" // varyant ürüne ait değil

	// ==================== Sepet (CART_) ====================
	CartItemNotFound      = "CART_ITEM_NOT_FOUND"
	CartInsufficientStock = "CART_INSUFFICIENT_STOCK"
	CartEmpty             = "CART_EMPTY"

	// ==================== Sipariş (ORDER_) ====================
	OrderNotFound          = "ORDER_NOT_FOUND"
	OrderInvalidStatus     = "ORDER_INVALID_STATUS"
	OrderInvalidTransition = "ORDER_INVALID_TRANSITION" // geçersiz durum geçişi

	// ==================== Yönlendirme kuralları (REDIRECT_) ====================
	RedirectRuleNotFound      = "REDIRECT_RULE_NOT_FOUND"
	RedirectInvalidStatusCode = "REDIRECT_INVALID_STATUS_CODE" // yalnızca 301/302/410
	RedirectMissingTarget     = "REDIRECT_MISSING_TARGET"      // 301/302 için to_path zorunlu

	// ==================== Yükleme (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== İç hata (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
)
