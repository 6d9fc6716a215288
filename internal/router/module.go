package router

import "github.com/gin-gonic/gin"

// Module is one routable feature area. Each module mounts its own routes
// and middleware on the shared /api group.
type Module interface {
	Register(api *gin.RouterGroup)
}
