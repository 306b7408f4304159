package csrf

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

type Config struct {
	CookieName string
	HeaderName string
	CookiePath string
	Secure     bool
	SameSite   http.SameSite
	MaxAge     time.Duration

	SkipPaths []string
}

func DefaultConfig() Config {
	return Config{
		CookieName: "XSRF-TOKEN",
		HeaderName: "X-CSRF-Token",
		CookiePath: "/",
		SameSite:   http.SameSiteLaxMode,
		MaxAge:     24 * time.Hour,
		SkipPaths:  []string{"/health/live", "/health/ready"},
	}
}

// Middleware enforces the double-submit token on cookie-authenticated writes. Requests
// that authenticate with a bearer header carry no ambient credentials and are skipped.
func Middleware(cfg Config) echo.MiddlewareFunc {
	def := DefaultConfig()
	if cfg.CookieName == "" {
		cfg.CookieName = def.CookieName
	}
	if cfg.HeaderName == "" {
		cfg.HeaderName = def.HeaderName
	}
	if cfg.CookiePath == "" {
		cfg.CookiePath = def.CookiePath
	}
	if cfg.SameSite == 0 {
		cfg.SameSite = def.SameSite
	}
	if cfg.MaxAge == 0 {
		cfg.MaxAge = def.MaxAge
	}

	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return echomw.CSRFWithConfig(echomw.CSRFConfig{
		Skipper: func(c echo.Context) bool {
			req := c.Request()
			if _, ok := skip[req.URL.Path]; ok {
				return true
			}
			return strings.HasPrefix(req.Header.Get(echo.HeaderAuthorization), "Bearer ")
		},
		TokenLookup:    "header:" + cfg.HeaderName,
		CookieName:     cfg.CookieName,
		CookiePath:     cfg.CookiePath,
		CookieSecure:   cfg.Secure,
		CookieSameSite: cfg.SameSite,
		CookieMaxAge:   int(cfg.MaxAge.Seconds()),
		ContextKey:     "csrf_token",
	})
}
