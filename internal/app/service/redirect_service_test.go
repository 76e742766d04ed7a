package service

import (
	"net/http"
	"testing"
	"time"

	"github.com/Iwamergun/dentalmarket-backend/internal/app/model"
	"github.com/Iwamergun/dentalmarket-backend/internal/app/repository"
	"github.com/Iwamergun/dentalmarket-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRedirectServiceTest(t *testing.T) (RedirectService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	ruleRepo := repository.NewRedirectRuleRepository(testDB)
	return NewRedirectService(ruleRepo), testDB
}

func TestRedirectService_Resolve_NoRule(t *testing.T) {
	svc, _ := setupRedirectServiceTest(t)

	decision := svc.Resolve("/bilinmeyen", time.Now())
	assert.Equal(t, DecisionNotFound, decision.Kind)
	assert.Nil(t, decision.Rule)
}

func TestRedirectService_Resolve_ActiveRule(t *testing.T) {
	svc, testDB := setupRedirectServiceTest(t)

	testDB.Create(&model.RedirectRule{
		FromPath:   "/eski-katalog",
		ToPath:     "/urunler",
		StatusCode: http.StatusMovedPermanently,
		IsActive:   true,
		Priority:   100,
	})

	decision := svc.Resolve("/eski-katalog", time.Now())
	assert.Equal(t, DecisionApplied, decision.Kind)
	require.NotNil(t, decision.Rule)
	assert.Equal(t, "/urunler", decision.Rule.ToPath)
	assert.Equal(t, http.StatusMovedPermanently, decision.Rule.StatusCode)
}

func TestRedirectService_Resolve_InactiveRuleIgnored(t *testing.T) {
	svc, testDB := setupRedirectServiceTest(t)

	testDB.Create(&model.RedirectRule{
		FromPath:   "/eski-katalog",
		ToPath:     "/urunler",
		StatusCode: http.StatusMovedPermanently,
		IsActive:   false,
		Priority:   100,
	})

	decision := svc.Resolve("/eski-katalog", time.Now())
	assert.Equal(t, DecisionNotFound, decision.Kind)
}

func TestRedirectService_Resolve_ExpiredRuleIgnored(t *testing.T) {
	svc, testDB := setupRedirectServiceTest(t)

	past := time.Now().Add(-time.Hour)
	testDB.Create(&model.RedirectRule{
		FromPath:   "/kampanya",
		ToPath:     "/urunler",
		StatusCode: http.StatusFound,
		IsActive:   true,
		ExpiresAt:  &past,
		Priority:   100,
	})

	decision := svc.Resolve("/kampanya", time.Now())
	assert.Equal(t, DecisionNotFound, decision.Kind)
}

func TestRedirectService_Resolve_FutureExpiryStillActive(t *testing.T) {
	svc, testDB := setupRedirectServiceTest(t)

	future := time.Now().Add(time.Hour)
	testDB.Create(&model.RedirectRule{
		FromPath:   "/kampanya",
		ToPath:     "/urunler",
		StatusCode: http.StatusFound,
		IsActive:   true,
		ExpiresAt:  &future,
		Priority:   100,
	})

	decision := svc.Resolve("/kampanya", time.Now())
	assert.Equal(t, DecisionApplied, decision.Kind)
}

func TestRedirectService_Resolve_LowestPriorityWins(t *testing.T) {
	svc, testDB := setupRedirectServiceTest(t)

	testDB.Create(&model.RedirectRule{
		FromPath:   "/eski",
		ToPath:     "/kaybeden",
		StatusCode: http.StatusMovedPermanently,
		IsActive:   true,
		Priority:   200,
	})
	testDB.Create(&model.RedirectRule{
		FromPath:   "/eski",
		ToPath:     "/kazanan",
		StatusCode: http.StatusMovedPermanently,
		IsActive:   true,
		Priority:   10,
	})

	decision := svc.Resolve("/eski", time.Now())
	assert.Equal(t, DecisionApplied, decision.Kind)
	assert.Equal(t, "/kazanan", decision.Rule.ToPath)
}

func TestRedirectService_Resolve_GoneRule(t *testing.T) {
	svc, testDB := setupRedirectServiceTest(t)

	testDB.Create(&model.RedirectRule{
		FromPath:   "/kaldirilan-urun",
		StatusCode: http.StatusGone,
		IsActive:   true,
		Priority:   100,
	})

	decision := svc.Resolve("/kaldirilan-urun", time.Now())
	assert.Equal(t, DecisionApplied, decision.Kind)
	assert.True(t, decision.Rule.IsGone())
}

func TestRedirectService_Resolve_MalformedStatusCodeIsLookupError(t *testing.T) {
	svc, testDB := setupRedirectServiceTest(t)

	// Row written past validation, e.g. by hand
	testDB.Create(&model.RedirectRule{
		FromPath:   "/bozuk",
		ToPath:     "/hedef",
		StatusCode: 307,
		IsActive:   true,
		Priority:   100,
	})

	decision := svc.Resolve("/bozuk", time.Now())
	assert.Equal(t, DecisionLookupError, decision.Kind)
	assert.ErrorIs(t, decision.Err, ErrRedirectInvalidStatusCode)
}

func TestRedirectService_Resolve_Stateless(t *testing.T) {
	svc, testDB := setupRedirectServiceTest(t)

	testDB.Create(&model.RedirectRule{
		FromPath:   "/eski",
		ToPath:     "/yeni",
		StatusCode: http.StatusMovedPermanently,
		IsActive:   true,
		Priority:   100,
	})

	now := time.Now()
	first := svc.Resolve("/eski", now)
	second := svc.Resolve("/eski", now)

	assert.Equal(t, first.Kind, second.Kind)
	assert.Equal(t, first.Rule.ID, second.Rule.ID)
}

func TestRedirectService_CreateRule_Validation(t *testing.T) {
	svc, _ := setupRedirectServiceTest(t)

	err := svc.CreateRule(&model.RedirectRule{
		FromPath:   "/a",
		ToPath:     "/b",
		StatusCode: 307,
	})
	assert.ErrorIs(t, err, ErrRedirectInvalidStatusCode)

	err = svc.CreateRule(&model.RedirectRule{
		FromPath:   "/a",
		StatusCode: http.StatusMovedPermanently,
	})
	assert.ErrorIs(t, err, ErrRedirectMissingTarget)

	// Gone rules need no target
	err = svc.CreateRule(&model.RedirectRule{
		FromPath:   "/a",
		StatusCode: http.StatusGone,
		IsActive:   true,
		Priority:   100,
	})
	assert.NoError(t, err)
}

func TestRedirectService_UpdateRule_NotFound(t *testing.T) {
	svc, _ := setupRedirectServiceTest(t)

	rule := &model.RedirectRule{
		FromPath:   "/a",
		ToPath:     "/b",
		StatusCode: http.StatusMovedPermanently,
	}
	rule.ID = 9999

	err := svc.UpdateRule(rule)
	assert.ErrorIs(t, err, ErrRedirectRuleNotFound)
}

func TestRedirectService_DeactivateExpiredRules(t *testing.T) {
	svc, testDB := setupRedirectServiceTest(t)

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	testDB.Create(&model.RedirectRule{
		FromPath:   "/suresi-dolan",
		ToPath:     "/yeni",
		StatusCode: http.StatusFound,
		IsActive:   true,
		ExpiresAt:  &past,
		Priority:   100,
	})
	testDB.Create(&model.RedirectRule{
		FromPath:   "/devam-eden",
		ToPath:     "/yeni",
		StatusCode: http.StatusFound,
		IsActive:   true,
		ExpiresAt:  &future,
		Priority:   100,
	})

	count, err := svc.DeactivateExpiredRules(time.Now())
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	var expired model.RedirectRule
	testDB.Where("from_path = ?", "/suresi-dolan").First(&expired)
	assert.False(t, expired.IsActive)

	var active model.RedirectRule
	testDB.Where("from_path = ?", "/devam-eden").First(&active)
	assert.True(t, active.IsActive)
}
