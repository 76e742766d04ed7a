package repository

import (
	"time"

	"github.com/Iwamergun/dentalmarket-backend/internal/app/model"
	"github.com/Iwamergun/dentalmarket-backend/pkg/logger"
	"gorm.io/gorm"
)

type RedirectRuleRepository interface {
	Create(rule *model.RedirectRule) error
	FindByID(id uint) (*model.RedirectRule, error)
	FindAll(page, pageSize int) ([]model.RedirectRule, int64, error)
	// FindActiveByPath returns the applicable rule for the given request path:
	// exact path match, active, not expired at now, lowest priority first.
	FindActiveByPath(path string, now time.Time) (*model.RedirectRule, error)
	Update(rule *model.RedirectRule) error
	Delete(id uint) error
	// DeactivateExpired flips is_active off for every rule whose expiry has
	// passed, returning the number of rules touched.
	DeactivateExpired(now time.Time) (int64, error)
}

type redirectRuleRepository struct {
	db *gorm.DB
}

func NewRedirectRuleRepository(db *gorm.DB) RedirectRuleRepository {
	return &redirectRuleRepository{db: db}
}

func (r *redirectRuleRepository) Create(rule *model.RedirectRule) error {
	logger.Debug("Creating redirect rule in database", map[string]interface{}{
		"from_path":   rule.FromPath,
		"to_path":     rule.ToPath,
		"status_code": rule.StatusCode,
	})

	if err := r.db.Create(rule).Error; err != nil {
		logger.Error("Failed to create redirect rule in database", err, map[string]interface{}{
			"from_path": rule.FromPath,
		})
		return err
	}

	return nil
}

func (r *redirectRuleRepository) FindByID(id uint) (*model.RedirectRule, error) {
	var rule model.RedirectRule
	if err := r.db.First(&rule, id).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *redirectRuleRepository) FindAll(page, pageSize int) ([]model.RedirectRule, int64, error) {
	var rules []model.RedirectRule
	var total int64

	if err := r.db.Model(&model.RedirectRule{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Order("priority ASC, from_path ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rules).Error
	if err != nil {
		logger.Error("Failed to list redirect rules", err, nil)
		return nil, 0, err
	}

	return rules, total, nil
}

func (r *redirectRuleRepository) FindActiveByPath(path string, now time.Time) (*model.RedirectRule, error) {
	var rule model.RedirectRule
	err := r.db.
		Where("from_path = ? AND is_active = ?", path, true).
		Where("expires_at IS NULL OR expires_at > ?", now).
		Order("priority ASC").
		First(&rule).Error
	if err != nil {
		// ErrRecordNotFound is the normal outcome for almost every request;
		// the caller distinguishes it from real lookup failures.
		return nil, err
	}

	return &rule, nil
}

func (r *redirectRuleRepository) Update(rule *model.RedirectRule) error {
	logger.Debug("Updating redirect rule in database", map[string]interface{}{
		"rule_id":   rule.ID,
		"from_path": rule.FromPath,
	})

	if err := r.db.Save(rule).Error; err != nil {
		logger.Error("Failed to update redirect rule in database", err, map[string]interface{}{
			"rule_id": rule.ID,
		})
		return err
	}

	return nil
}

func (r *redirectRuleRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.RedirectRule{}, id).Error; err != nil {
		logger.Error("Failed to delete redirect rule from database", err, map[string]interface{}{
			"rule_id": id,
		})
		return err
	}
	return nil
}

func (r *redirectRuleRepository) DeactivateExpired(now time.Time) (int64, error) {
	result := r.db.Model(&model.RedirectRule{}).
		Where("is_active = ? AND expires_at IS NOT NULL AND expires_at <= ?", true, now).
		Update("is_active", false)
	if result.Error != nil {
		logger.Error("Failed to deactivate expired redirect rules", result.Error, nil)
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
