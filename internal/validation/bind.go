package validation

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// BindJSON binds the JSON body into `out`.
// If binding fails, it writes a 400 response and returns an error for the handler to short-circuit.
func BindJSON(c *gin.Context, out interface{}) error {
	if err := c.ShouldBindJSON(out); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "invalid_request_body",
			"msg":   err.Error(),
		})
		return err
	}
	return nil
}

// WriteError writes a 400 validation_failed response when err carries field
// errors and reports whether it did.
func WriteError(c *gin.Context, err error) bool {
	var ve *Error
	if !errors.As(err, &ve) {
		return false
	}
	c.JSON(http.StatusBadRequest, gin.H{
		"error":  "validation_failed",
		"fields": ve.Fields,
	})
	return true
}
