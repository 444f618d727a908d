package providers

import (
	"net/http"
	"sort"
	"strings"

	"fihealth/internal/structures"

	json "github.com/goccy/go-json"
)

type RouterProviderInterface interface {
	Get(path string, handler http.Handler)
	Post(path string, handler http.Handler)
	GetRoutes() []structures.Route
}

// RouterProvider mounts dashboard routes under the configured web context.
// Handlers registered for the same path with different methods share one route.
type RouterProvider struct {
	webContext string
	paths      []string
	handlers   map[string]map[string]http.Handler
}

func (rp *RouterProvider) Get(path string, handler http.Handler) {
	rp.handle(http.MethodGet, path, handler)
}

func (rp *RouterProvider) Post(path string, handler http.Handler) {
	rp.handle(http.MethodPost, path, handler)
}

func (rp *RouterProvider) handle(method string, path string, handler http.Handler) {
	url := rp.webContext + strings.TrimPrefix(path, "/")
	methods, ok := rp.handlers[url]
	if !ok {
		methods = make(map[string]http.Handler)
		rp.handlers[url] = methods
		rp.paths = append(rp.paths, url)
	}
	methods[method] = handler
}

// GetRoutes returns one route per path, in registration order.
func (rp *RouterProvider) GetRoutes() []structures.Route {
	routes := make([]structures.Route, 0, len(rp.paths))
	for _, url := range rp.paths {
		routes = append(routes, structures.Route{
			Url:     url,
			Handler: methodHandler(rp.handlers[url]),
		})
	}
	return routes
}

// NewRouterProvider normalizes webContext to a path with leading and trailing slashes.
func NewRouterProvider(webContext string) RouterProviderInterface {
	webContext = "/" + strings.Trim(webContext, "/") + "/"
	if webContext == "//" {
		webContext = "/"
	}
	return &RouterProvider{
		webContext: webContext,
		handlers:   make(map[string]map[string]http.Handler),
	}
}

func methodHandler(handlers map[string]http.Handler) http.Handler {
	byMethod := make(map[string]http.Handler, len(handlers))
	allowed := make([]string, 0, len(handlers))
	for method, handler := range handlers {
		byMethod[method] = handler
		allowed = append(allowed, method)
	}
	sort.Strings(allowed)
	allow := strings.Join(allowed, ", ")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler, ok := byMethod[r.Method]
		if !ok {
			w.Header().Set("Allow", allow)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusMethodNotAllowed)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "Method " + r.Method + " not allowed, use " + allow})
			return
		}
		handler.ServeHTTP(w, r)
	})
}
