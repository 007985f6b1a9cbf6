package handler

import "github.com/gin-gonic/gin"

// respond writes the standard success envelope.
func respond(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

// fail records a typed failure for the centralized error responder and
// stops the chain. No body is written here.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
