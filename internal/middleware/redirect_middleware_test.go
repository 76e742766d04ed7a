package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Iwamergun/dentalmarket-backend/internal/app/model"
	"github.com/Iwamergun/dentalmarket-backend/internal/app/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// stubRedirectService returns a canned decision and records lookups.
type stubRedirectService struct {
	decision service.Decision
	resolved []string
}

func (s *stubRedirectService) Resolve(path string, now time.Time) service.Decision {
	s.resolved = append(s.resolved, path)
	return s.decision
}

func (s *stubRedirectService) CreateRule(rule *model.RedirectRule) error { return nil }
func (s *stubRedirectService) UpdateRule(rule *model.RedirectRule) error { return nil }
func (s *stubRedirectService) DeleteRule(id uint) error                  { return nil }
func (s *stubRedirectService) GetRule(id uint) (*model.RedirectRule, error) {
	return nil, nil
}
func (s *stubRedirectService) ListRules(page, pageSize int) ([]model.RedirectRule, int64, error) {
	return nil, 0, nil
}
func (s *stubRedirectService) DeactivateExpiredRules(now time.Time) (int64, error) {
	return 0, nil
}

func setupRedirectRouter(svc service.RedirectService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RedirectMiddleware(svc))
	router.NoRoute(func(c *gin.Context) {
		c.String(http.StatusOK, "storefront")
	})
	return router
}

func TestRedirectMiddleware_AppliesPermanentRedirect(t *testing.T) {
	svc := &stubRedirectService{
		decision: service.Decision{
			Kind: service.DecisionApplied,
			Rule: &model.RedirectRule{
				FromPath:   "/eski-katalog",
				ToPath:     "/urunler",
				StatusCode: http.StatusMovedPermanently,
				IsActive:   true,
			},
		},
	}
	router := setupRedirectRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/eski-katalog", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "/urunler", w.Header().Get("Location"))
}

func TestRedirectMiddleware_PreservesQueryString(t *testing.T) {
	svc := &stubRedirectService{
		decision: service.Decision{
			Kind: service.DecisionApplied,
			Rule: &model.RedirectRule{
				FromPath:   "/kampanya",
				ToPath:     "/urunler",
				StatusCode: http.StatusMovedPermanently,
				IsActive:   true,
			},
		},
	}
	router := setupRedirectRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/kampanya?ref=ad&utm_source=mail", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "/urunler?ref=ad&utm_source=mail", w.Header().Get("Location"))
}

func TestRedirectMiddleware_AppendsQueryToExistingTarget(t *testing.T) {
	svc := &stubRedirectService{
		decision: service.Decision{
			Kind: service.DecisionApplied,
			Rule: &model.RedirectRule{
				FromPath:   "/indirim",
				ToPath:     "/urunler?kategori=dolgu",
				StatusCode: http.StatusFound,
				IsActive:   true,
			},
		},
	}
	router := setupRedirectRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/indirim?ref=ad", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/urunler?kategori=dolgu&ref=ad", w.Header().Get("Location"))
}

func TestRedirectMiddleware_GoneReturnsEmptyBody(t *testing.T) {
	svc := &stubRedirectService{
		decision: service.Decision{
			Kind: service.DecisionApplied,
			Rule: &model.RedirectRule{
				FromPath:   "/kaldirilan-urun",
				StatusCode: http.StatusGone,
				IsActive:   true,
			},
		},
	}
	router := setupRedirectRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/kaldirilan-urun", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusGone, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Empty(t, w.Header().Get("Location"))
}

func TestRedirectMiddleware_NotFoundPassesThrough(t *testing.T) {
	svc := &stubRedirectService{
		decision: service.Decision{Kind: service.DecisionNotFound},
	}
	router := setupRedirectRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/herhangi-bir-sayfa", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "storefront", w.Body.String())
	assert.Equal(t, []string{"/herhangi-bir-sayfa"}, svc.resolved)
}

func TestRedirectMiddleware_LookupErrorFailsOpen(t *testing.T) {
	svc := &stubRedirectService{
		decision: service.Decision{
			Kind: service.DecisionLookupError,
			Err:  assert.AnError,
		},
	}
	router := setupRedirectRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/eski-katalog", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "storefront", w.Body.String())
}

func TestRedirectMiddleware_SkipListBypassesLookup(t *testing.T) {
	skipPaths := []string{
		"/api/products",
		"/api/v1/cart/items",
		"/uploads/urun-gorseli.jpg",
		"/static/css/site.css",
		"/health",
		"/favicon.ico",
		"/robots.txt",
		"/sitemap.xml",
		"/sitemap-products.xml",
	}

	for _, path := range skipPaths {
		svc := &stubRedirectService{
			decision: service.Decision{
				Kind: service.DecisionApplied,
				Rule: &model.RedirectRule{
					FromPath:   path,
					ToPath:     "/tuzak",
					StatusCode: http.StatusMovedPermanently,
				},
			},
		}
		router := setupRedirectRouter(svc)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", path, nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, "path %s should bypass redirect", path)
		assert.Empty(t, svc.resolved, "path %s should not hit the rule store", path)
	}
}

func TestShouldSkipRedirect(t *testing.T) {
	tests := []struct {
		path string
		skip bool
	}{
		{"/api/products", true},
		{"/uploads/foto.png", true},
		{"/static/js/app.js", true},
		{"/health", true},
		{"/favicon.ico", true},
		{"/robots.txt", true},
		{"/sitemap.xml", true},
		{"/sitemap-kategoriler.xml", true},
		{"/sitemap/index.xml", false},
		{"/healthcheck", false},
		{"/urunler", false},
		{"/", false},
		{"/api", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.skip, ShouldSkipRedirect(tt.path), "path %s", tt.path)
	}
}
