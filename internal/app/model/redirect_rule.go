package model

import (
	"net/http"
	"time"

	"gorm.io/gorm"
)

// RedirectRule maps one incoming request path to an action: a 301/302 redirect
// to ToPath, or a 410 Gone. Rules are created from the admin panel, typically
// after a product or category slug changes.
type RedirectRule struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	FromPath   string         `gorm:"not null;index" json:"from_path"`
	ToPath     string         `json:"to_path"`                     // 410 kurallarında boş kalır
	StatusCode int            `gorm:"not null" json:"status_code"` // 301, 302 veya 410
	IsActive   bool           `gorm:"index" json:"is_active"`
	ExpiresAt  *time.Time     `json:"expires_at,omitempty"`        // nil = süresiz
	Priority   int            `gorm:"default:100" json:"priority"` // küçük değer önce uygulanır
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (RedirectRule) TableName() string {
	return "redirect_rules"
}

// IsGone reports whether the rule terminates the request instead of redirecting.
func (r *RedirectRule) IsGone() bool {
	return r.StatusCode == http.StatusGone
}

// ValidStatusCode reports whether the rule carries one of the three supported
// status codes.
func (r *RedirectRule) ValidStatusCode() bool {
	switch r.StatusCode {
	case http.StatusMovedPermanently, http.StatusFound, http.StatusGone:
		return true
	}
	return false
}
