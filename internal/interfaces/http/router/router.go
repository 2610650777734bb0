package router

import (
	"github.com/gin-gonic/gin"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router mounts route registrars at the site root. Registrars are
// split into a public set and a set behind the session guard.
type Router struct {
	engine  *gin.Engine
	guard   gin.HandlerFunc
	public  []RouteRegistrar
	guarded []RouteRegistrar
}

// NewRouter creates a new Router. guard is the middleware applied to
// the guarded group.
func NewRouter(engine *gin.Engine, guard gin.HandlerFunc) *Router {
	return &Router{
		engine:  engine,
		guard:   guard,
		public:  make([]RouteRegistrar, 0),
		guarded: make([]RouteRegistrar, 0),
	}
}

// Public adds a registrar whose routes need no session
func (r *Router) Public(registrar RouteRegistrar) *Router {
	r.public = append(r.public, registrar)
	return r
}

// Guarded adds a registrar whose routes require a valid session
func (r *Router) Guarded(registrar RouteRegistrar) *Router {
	r.guarded = append(r.guarded, registrar)
	return r
}

// Setup registers all routes with the engine
func (r *Router) Setup() {
	root := r.engine.Group("/")
	for _, registrar := range r.public {
		registrar.RegisterRoutes(root)
	}

	protected := r.engine.Group("/")
	if r.guard != nil {
		protected.Use(r.guard)
	}
	for _, registrar := range r.guarded {
		registrar.RegisterRoutes(protected)
	}
}
