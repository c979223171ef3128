package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"
)

// PathID binds the numeric path parameter name (for example ":id").
func PathID(c *gin.Context, name string) (uint, error) {
	var id int64
	err := runtime.BindStyledParameterWithLocation("simple", false, name, runtime.ParamLocationPath, c.Param(name), &id)
	if err != nil {
		return 0, fmt.Errorf("invalid format for parameter %s: %w", name, err)
	}
	if id < 0 {
		return 0, fmt.Errorf("invalid format for parameter %s: must not be negative", name)
	}
	return uint(id), nil
}
