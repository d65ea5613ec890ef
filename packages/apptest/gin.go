package apptest

import "github.com/gin-gonic/gin"

// GinApp adapts a gin engine to the in-process transport.
type GinApp struct {
	*gin.Engine
}

// Gin wraps engine. The wrapper serves requests exactly like the engine.
func Gin(engine *gin.Engine) *GinApp {
	return &GinApp{Engine: engine}
}

// EnableTestMode switches gin into its test mode. gin keeps the mode
// process-wide, so this affects every engine in the binary.
func (a *GinApp) EnableTestMode() {
	gin.SetMode(gin.TestMode)
}
