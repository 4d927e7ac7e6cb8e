// Package gateway fronts the product and order services under a single
// origin so the storefront client only needs one base URL.
package gateway

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"sort"

	"github.com/ridloal/saas-storefront/internal/platform/config"
	"github.com/ridloal/saas-storefront/internal/platform/logger"
)

func newSingleHostReverseProxy(targetHost string) (*httputil.ReverseProxy, error) {
	targetURL, err := url.Parse(targetHost)
	if err != nil {
		return nil, fmt.Errorf("failed to parse target URL '%s': %w", targetHost, err)
	}
	if targetURL.Scheme == "" || targetURL.Host == "" {
		return nil, fmt.Errorf("target URL '%s' must be absolute", targetHost)
	}

	proxy := httputil.NewSingleHostReverseProxy(targetURL)
	proxy.ErrorHandler = func(rw http.ResponseWriter, req *http.Request, err error) {
		logger.Error(fmt.Sprintf("Gateway: proxy error for %s %s to %s", req.Method, req.URL.Path, targetURL), err)
		http.Error(rw, "Service unavailable or proxy error", http.StatusBadGateway)
	}
	return proxy, nil
}

// Routes maps path prefixes to upstream base URLs. Paths are forwarded
// unchanged.
func Routes(cfg config.GatewayConfig) map[string]string {
	return map[string]string{
		"/api/health":    cfg.ProductServiceURL,
		"/api/products":  cfg.ProductServiceURL,
		"/api/products/": cfg.ProductServiceURL,
		"/api/orders":    cfg.OrderServiceURL,
	}
}

// NewHandler builds the gateway mux. Any unparsable upstream fails the
// whole build rather than leaving a route silently unserved.
func NewHandler(cfg config.GatewayConfig) (http.Handler, error) {
	routes := Routes(cfg)
	prefixes := make([]string, 0, len(routes))
	for p := range routes {
		prefixes = append(prefixes, p)
	}
	sort.Strings(prefixes)

	mux := http.NewServeMux()
	for _, prefix := range prefixes {
		target := routes[prefix]
		proxy, err := newSingleHostReverseProxy(target)
		if err != nil {
			return nil, fmt.Errorf("route %s: %w", prefix, err)
		}
		mux.Handle(prefix, proxy)
		logger.Info(fmt.Sprintf("Routing %s to %s", prefix, target))
	}
	return mux, nil
}
