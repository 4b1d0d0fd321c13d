package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/mysticmart/internal/domain/errors"
	"github.com/polkiloo/mysticmart/internal/domain/model"
	"github.com/polkiloo/mysticmart/internal/server/http/dto"
	"github.com/polkiloo/mysticmart/internal/server/http/middleware"
)

// CurrentPrincipal extracts the authenticated principal from context, or nil for guests.
func CurrentPrincipal(c *gin.Context) model.Principal {
	return middleware.CurrentPrincipal(c)
}

// Health handles GET /health.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// bindJSON decodes the body into v. An empty body is accepted when optional is set.
func bindJSON(c *gin.Context, v any, optional bool) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		if optional && errors.Is(err, io.EOF) {
			return true
		}
		respondInvalidRequest(c, err)
		return false
	}
	return true
}

// recordID resolves the target id from the first set body field, falling back to the query key.
func recordID(c *gin.Context, queryKey string, body ...dto.ID) (int64, error) {
	for _, id := range body {
		if id.Set() {
			return parseID(id)
		}
	}
	if raw := strings.TrimSpace(c.Query(queryKey)); raw != "" {
		return parseID(dto.NewID(raw))
	}
	return 0, domainErrors.ErrMissingFields
}

func parseID(id dto.ID) (int64, error) {
	v, ok := id.Int64()
	if !ok {
		return 0, domainErrors.ErrInvalidID
	}
	return v, nil
}

// queryID returns the optional ?key= id. ok is false when the key is absent.
func queryID(c *gin.Context, key string) (id int64, ok bool, err error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, false, nil
	}
	id, err = parseID(dto.NewID(raw))
	return id, true, err
}

func pageQuery(c *gin.Context) model.Page {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	return model.NewPage(limit, offset)
}

func boolQuery(c *gin.Context, key string) bool {
	v, err := strconv.ParseBool(c.Query(key))
	return err == nil && v
}
