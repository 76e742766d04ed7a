package middleware

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/Iwamergun/dentalmarket-backend/internal/app/service"
	"github.com/gin-gonic/gin"
)

// Paths that never go through redirect resolution. The skip check runs
// before any store access, so API and asset traffic pays no lookup cost.
var (
	redirectSkipPrefixes = []string{"/api/", "/uploads/", "/static/"}
	redirectSkipExact    = map[string]struct{}{
		"/health":      {},
		"/favicon.ico": {},
		"/robots.txt":  {},
	}
	sitemapPattern = regexp.MustCompile(`^/sitemap[^/]*\.xml$`)
)

// ShouldSkipRedirect reports whether the path is exempt from rule lookup.
func ShouldSkipRedirect(path string) bool {
	if _, ok := redirectSkipExact[path]; ok {
		return true
	}
	for _, prefix := range redirectSkipPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return sitemapPattern.MatchString(path)
}

// RedirectMiddleware resolves storefront paths against the redirect rule
// table before routing. A matching 301/302 rule sends the client to the
// target with the original query string preserved; a 410 rule answers
// Gone with an empty body. Anything else falls through to the router,
// including lookup failures - a broken rule store must never take the
// storefront down.
func RedirectMiddleware(redirectService service.RedirectService) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if ShouldSkipRedirect(path) {
			c.Next()
			return
		}

		decision := redirectService.Resolve(path, time.Now())

		switch decision.Kind {
		case service.DecisionApplied:
			rule := decision.Rule
			if rule.IsGone() {
				c.AbortWithStatus(http.StatusGone)
				return
			}

			target := rule.ToPath
			if rawQuery := c.Request.URL.RawQuery; rawQuery != "" {
				if strings.Contains(target, "?") {
					target += "&" + rawQuery
				} else {
					target += "?" + rawQuery
				}
			}
			c.Redirect(rule.StatusCode, target)
			c.Abort()
			return

		case service.DecisionLookupError:
			log := GetLoggerFromContext(c)
			log.Error("Redirect lookup failed - passing request through", decision.Err, map[string]interface{}{
				"path": path,
			})
			c.Next()
			return

		default: // DecisionNotFound
			c.Next()
			return
		}
	}
}
