package service

import (
	"errors"
	"net/http"
	"time"

	"github.com/Iwamergun/dentalmarket-backend/internal/app/model"
	"github.com/Iwamergun/dentalmarket-backend/internal/app/repository"
	"github.com/Iwamergun/dentalmarket-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrRedirectRuleNotFound      = errors.New("redirect rule not found")
	ErrRedirectInvalidStatusCode = errors.New("status code must be 301, 302 or 410")
	ErrRedirectMissingTarget     = errors.New("redirect target path is required for 301/302 rules")
)

// DecisionKind classifies the outcome of a single rule lookup.
type DecisionKind int

const (
	// DecisionNotFound: no applicable rule, the request passes through.
	DecisionNotFound DecisionKind = iota
	// DecisionApplied: Rule carries the redirect or gone action to perform.
	DecisionApplied
	// DecisionLookupError: the rules store failed. The caller maps this to the
	// same pass-through behavior as DecisionNotFound; the distinction exists so
	// that failing open is a visible choice at the call site, not a swallowed
	// catch-all.
	DecisionLookupError
)

// Decision is the typed result of resolving one request path.
type Decision struct {
	Kind DecisionKind
	Rule *model.RedirectRule
	Err  error // set only for DecisionLookupError
}

type RedirectService interface {
	// Resolve evaluates the rule set for one request path. Stateless:
	// identical path and rule set produce identical decisions.
	Resolve(path string, now time.Time) Decision

	// Admin surface
	CreateRule(rule *model.RedirectRule) error
	UpdateRule(rule *model.RedirectRule) error
	DeleteRule(id uint) error
	GetRule(id uint) (*model.RedirectRule, error)
	ListRules(page, pageSize int) ([]model.RedirectRule, int64, error)
	DeactivateExpiredRules(now time.Time) (int64, error)
}

type redirectService struct {
	ruleRepo repository.RedirectRuleRepository
}

func NewRedirectService(ruleRepo repository.RedirectRuleRepository) RedirectService {
	return &redirectService{ruleRepo: ruleRepo}
}

func (s *redirectService) Resolve(path string, now time.Time) Decision {
	rule, err := s.ruleRepo.FindActiveByPath(path, now)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Normal outcome for nearly every request
			return Decision{Kind: DecisionNotFound}
		}
		logger.Error("Redirect rule lookup failed", err, map[string]interface{}{
			"path": path,
		})
		return Decision{Kind: DecisionLookupError, Err: err}
	}

	if !rule.ValidStatusCode() {
		// Malformed row; treat like a store fault rather than guessing
		logger.Error("Redirect rule carries unsupported status code", nil, map[string]interface{}{
			"rule_id":     rule.ID,
			"status_code": rule.StatusCode,
		})
		return Decision{Kind: DecisionLookupError, Err: ErrRedirectInvalidStatusCode}
	}

	logger.Debug("Redirect rule applied", map[string]interface{}{
		"rule_id":     rule.ID,
		"from_path":   rule.FromPath,
		"to_path":     rule.ToPath,
		"status_code": rule.StatusCode,
	})
	return Decision{Kind: DecisionApplied, Rule: rule}
}

func (s *redirectService) CreateRule(rule *model.RedirectRule) error {
	logger.Info("Creating redirect rule", map[string]interface{}{
		"from_path":   rule.FromPath,
		"to_path":     rule.ToPath,
		"status_code": rule.StatusCode,
	})

	if err := validateRule(rule); err != nil {
		logger.Warn("Invalid redirect rule rejected", map[string]interface{}{
			"from_path": rule.FromPath,
			"error":     err.Error(),
		})
		return err
	}

	return s.ruleRepo.Create(rule)
}

func (s *redirectService) UpdateRule(rule *model.RedirectRule) error {
	logger.Info("Updating redirect rule", map[string]interface{}{
		"rule_id": rule.ID,
	})

	if err := validateRule(rule); err != nil {
		return err
	}

	existing, err := s.ruleRepo.FindByID(rule.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRedirectRuleNotFound
		}
		return err
	}

	rule.CreatedAt = existing.CreatedAt
	return s.ruleRepo.Update(rule)
}

func (s *redirectService) DeleteRule(id uint) error {
	logger.Info("Deleting redirect rule", map[string]interface{}{
		"rule_id": id,
	})

	if _, err := s.ruleRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRedirectRuleNotFound
		}
		return err
	}

	return s.ruleRepo.Delete(id)
}

func (s *redirectService) GetRule(id uint) (*model.RedirectRule, error) {
	rule, err := s.ruleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRedirectRuleNotFound
		}
		return nil, err
	}
	return rule, nil
}

func (s *redirectService) ListRules(page, pageSize int) ([]model.RedirectRule, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}
	return s.ruleRepo.FindAll(page, pageSize)
}

func (s *redirectService) DeactivateExpiredRules(now time.Time) (int64, error) {
	count, err := s.ruleRepo.DeactivateExpired(now)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		logger.Info("Deactivated expired redirect rules", map[string]interface{}{
			"count": count,
		})
	}
	return count, nil
}

func validateRule(rule *model.RedirectRule) error {
	if !rule.ValidStatusCode() {
		return ErrRedirectInvalidStatusCode
	}
	if rule.StatusCode != http.StatusGone && rule.ToPath == "" {
		return ErrRedirectMissingTarget
	}
	return nil
}
