package router

import "github.com/gin-gonic/gin"

// Registry collects feature modules and mounts them all under /api once the
// wiring phase is done.
type Registry struct {
	Engine  *gin.Engine
	API     *gin.RouterGroup
	shared  []gin.HandlerFunc
	modules []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	return &Registry{Engine: engine, API: engine.Group("/api")}
}

// Use attaches middleware that applies to every registered module.
func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.shared = append(r.shared, mw...)
}

func (r *Registry) Add(mods ...Module) {
	r.modules = append(r.modules, mods...)
}

// RegisterAll mounts shared middleware first, then every module's routes.
func (r *Registry) RegisterAll() {
	if len(r.shared) > 0 {
		r.API.Use(r.shared...)
	}
	for _, m := range r.modules {
		m.Register(r.API)
	}
}
