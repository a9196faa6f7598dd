// Package response writes the API's JSON envelope. Every handler replies
// with either {success:true, data} or {success:false, error:{code,message}}
// so clients switch on one shape and machine-readable codes, never on
// message text.
package response

import "github.com/gin-gonic/gin"

// Success writes the data envelope.
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

// Error writes the error envelope with a stable machine-readable code.
func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// ErrorWithDetails is Error plus a structured details payload, used where
// the caller needs context to retry (e.g. the conflicting booking range).
func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}
