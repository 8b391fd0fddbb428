package router

import (
	"github.com/gin-gonic/gin"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// PublicRouteRegistrar registers routes that bypass tenant authentication
type PublicRouteRegistrar interface {
	RegisterPublicRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration
type Router struct {
	engine           *gin.Engine
	apiVersion       string
	registrars       []RouteRegistrar
	publicRegistrars []PublicRouteRegistrar
	authMiddleware   []gin.HandlerFunc
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// WithAuthMiddleware sets the middleware applied to authenticated routes
func WithAuthMiddleware(mw ...gin.HandlerFunc) RouterOption {
	return func(r *Router) {
		r.authMiddleware = mw
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
		registrars: make([]RouteRegistrar, 0),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register adds a RouteRegistrar whose routes require tenant authentication
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// RegisterPublic adds a registrar whose routes are reachable without a credential
func (r *Router) RegisterPublic(registrar PublicRouteRegistrar) *Router {
	r.publicRegistrars = append(r.publicRegistrars, registrar)
	return r
}

// Setup registers all routes with the engine
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)

	for _, registrar := range r.publicRegistrars {
		registrar.RegisterPublicRoutes(api)
	}

	protected := api.Group("", r.authMiddleware...)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(protected)
	}
}
