package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Iwamergun/dentalmarket-backend/internal/app/model"
	"github.com/Iwamergun/dentalmarket-backend/internal/app/service"
	apperrors "github.com/Iwamergun/dentalmarket-backend/internal/errors"
	"github.com/Iwamergun/dentalmarket-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// RedirectController is the admin CRUD surface for redirect rules. Rule
// resolution itself happens in the edge middleware, not here.
type RedirectController struct {
	redirectService service.RedirectService
}

func NewRedirectController(redirectService service.RedirectService) *RedirectController {
	return &RedirectController{
		redirectService: redirectService,
	}
}

type RedirectRuleRequest struct {
	FromPath   string     `json:"from_path" binding:"required"`
	ToPath     string     `json:"to_path"`
	StatusCode int        `json:"status_code" binding:"required"`
	IsActive   *bool      `json:"is_active"`
	ExpiresAt  *time.Time `json:"expires_at"`
	Priority   int        `json:"priority"`
}

func (req *RedirectRuleRequest) toModel() *model.RedirectRule {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	priority := req.Priority
	if priority == 0 {
		priority = 100
	}
	return &model.RedirectRule{
		FromPath:   req.FromPath,
		ToPath:     req.ToPath,
		StatusCode: req.StatusCode,
		IsActive:   isActive,
		ExpiresAt:  req.ExpiresAt,
		Priority:   priority,
	}
}

// ListRules returns paginated redirect rules
// GET /api/v1/admin/redirects
func (ctrl *RedirectController) ListRules(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "50"))

	rules, total, err := ctrl.redirectService.ListRules(page, pageSize)
	if err != nil {
		apperrors.InternalError(c, "Yönlendirme kuralları yüklenemedi")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rules": rules,
		"total": total,
		"page":  page,
	})
}

// GetRule returns one rule
// GET /api/v1/admin/redirects/:id
func (ctrl *RedirectController) GetRule(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Geçersiz kural numarası")
		return
	}

	rule, err := ctrl.redirectService.GetRule(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrRedirectRuleNotFound) {
			apperrors.NotFound(c, apperrors.RedirectRuleNotFound, "Yönlendirme kuralı bulunamadı")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "redirect_rule")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rule": rule,
	})
}

// CreateRule creates a redirect rule
// POST /api/v1/admin/redirects
func (ctrl *RedirectController) CreateRule(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RedirectRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Girilen bilgiler geçerli değil")
		return
	}

	rule := req.toModel()
	if err := ctrl.redirectService.CreateRule(rule); err != nil {
		switch {
		case errors.Is(err, service.ErrRedirectInvalidStatusCode):
			apperrors.BadRequest(c, apperrors.RedirectInvalidStatusCode, "Durum kodu 301, 302 veya 410 olmalıdır")
		case errors.Is(err, service.ErrRedirectMissingTarget):
			apperrors.BadRequest(c, apperrors.RedirectMissingTarget, "301/302 kuralları için hedef yol zorunludur")
		default:
			log.Error("Failed to create redirect rule", err, map[string]interface{}{
				"from_path": req.FromPath,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "redirect_rule")
		}
		return
	}

	log.Info("Redirect rule created", map[string]interface{}{
		"rule_id":     rule.ID,
		"from_path":   rule.FromPath,
		"status_code": rule.StatusCode,
	})

	c.JSON(http.StatusCreated, gin.H{
		"rule": rule,
	})
}

// UpdateRule updates a redirect rule
// PUT /api/v1/admin/redirects/:id
func (ctrl *RedirectController) UpdateRule(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Geçersiz kural numarası")
		return
	}

	var req RedirectRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Girilen bilgiler geçerli değil")
		return
	}

	rule := req.toModel()
	rule.ID = uint(id)

	if err := ctrl.redirectService.UpdateRule(rule); err != nil {
		switch {
		case errors.Is(err, service.ErrRedirectRuleNotFound):
			apperrors.NotFound(c, apperrors.RedirectRuleNotFound, "Yönlendirme kuralı bulunamadı")
		case errors.Is(err, service.ErrRedirectInvalidStatusCode):
			apperrors.BadRequest(c, apperrors.RedirectInvalidStatusCode, "Durum kodu 301, 302 veya 410 olmalıdır")
		case errors.Is(err, service.ErrRedirectMissingTarget):
			apperrors.BadRequest(c, apperrors.RedirectMissingTarget, "301/302 kuralları için hedef yol zorunludur")
		default:
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "redirect_rule")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rule": rule,
	})
}

// DeleteRule deletes a redirect rule
// DELETE /api/v1/admin/redirects/:id
func (ctrl *RedirectController) DeleteRule(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Geçersiz kural numarası")
		return
	}

	if err := ctrl.redirectService.DeleteRule(uint(id)); err != nil {
		if errors.Is(err, service.ErrRedirectRuleNotFound) {
			apperrors.NotFound(c, apperrors.RedirectRuleNotFound, "Yönlendirme kuralı bulunamadı")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "redirect_rule")
		return
	}

	log.Info("Redirect rule deleted", map[string]interface{}{
		"rule_id": id,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Yönlendirme kuralı silindi",
	})
}
