package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/lms-ai-api/pkg/errors"
)

// MetaKey is the gin context key holding response metadata collected during a request.
const MetaKey = "response_meta"

// Envelope represents the common response contract.
type Envelope struct {
	Data  interface{}            `json:"data,omitempty"`
	Error *appErrors.Error       `json:"error,omitempty"`
	Meta  map[string]interface{} `json:"meta,omitempty"`
}

// JSON sends a success response, merging any metadata collected on the context.
func JSON(c *gin.Context, status int, data interface{}, meta ...map[string]interface{}) {
	noStore(c)
	envelope := Envelope{Data: data, Meta: collectMeta(c, meta...)}
	c.JSON(status, envelope)
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	noStore(c)
	_ = c.Error(err)
	c.JSON(appErr.Status, Envelope{Error: appErr, Meta: collectMeta(c)})
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// AddMeta records a metadata entry that the next JSON response will carry.
func AddMeta(c *gin.Context, key string, value interface{}) {
	if c == nil {
		return
	}
	meta := contextMeta(c)
	if meta == nil {
		meta = map[string]interface{}{}
		c.Set(MetaKey, meta)
	}
	meta[key] = value
}

func contextMeta(c *gin.Context) map[string]interface{} {
	if c == nil {
		return nil
	}
	if value, ok := c.Get(MetaKey); ok {
		if typed, ok := value.(map[string]interface{}); ok {
			return typed
		}
	}
	return nil
}

func collectMeta(c *gin.Context, extra ...map[string]interface{}) map[string]interface{} {
	merged := map[string]interface{}{}
	for k, v := range contextMeta(c) {
		merged[k] = v
	}
	for _, m := range extra {
		for k, v := range m {
			merged[k] = v
		}
	}
	if len(merged) == 0 {
		return nil
	}
	return merged
}

func noStore(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
}
