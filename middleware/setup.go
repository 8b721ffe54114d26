package middleware

import (
	"fmt"
	"net"

	"github.com/Madhav-Gupta-28/storefront-backend-go/config"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// SetupMiddleware configures error handling, client IP extraction and the
// middleware chain shared by every route.
func SetupMiddleware(e *echo.Echo, logger *zap.Logger, cfg config.ServerConfig) error {
	extractor, err := IPExtractor(cfg.TrustedProxies)
	if err != nil {
		return err
	}
	e.IPExtractor = extractor
	e.HTTPErrorHandler = ErrorHandler(logger)

	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(RequestID())
	// Metrics wraps the logger so it reads the status committed for errors.
	e.Use(Metrics())
	e.Use(RequestLogger(logger))
	if cfg.RequestTimeout > 0 {
		e.Use(echomw.ContextTimeout(cfg.RequestTimeout))
	}
	return nil
}

// IPExtractor uses the socket peer address unless trusted proxies are
// configured, in which case X-Forwarded-For is honored only through them.
func IPExtractor(trusted []string) (echo.IPExtractor, error) {
	if len(trusted) == 0 {
		return echo.ExtractIPDirect(), nil
	}

	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, cidr := range trusted {
		_, ipNet, err := net.ParseCIDR(cidr)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", cidr, err)
		}
		opts = append(opts, echo.TrustIPRange(ipNet))
	}
	return echo.ExtractIPFromXFFHeader(opts...), nil
}
