package controller

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/residence-hub/backend/internal/integration/entrypoint/dto"
)

// parseDate parses a YYYY-MM-DD value as a UTC calendar day.
func parseDate(value string) (time.Time, error) {
	return time.ParseInLocation(dto.DateLayout, strings.TrimSpace(value), time.UTC)
}

// optionalDateQuery reads an optional YYYY-MM-DD query parameter.
// ok is false when the value is present but malformed.
func optionalDateQuery(ctx *gin.Context, name string) (t *time.Time, ok bool) {
	raw := strings.TrimSpace(ctx.Query(name))
	if raw == "" {
		return nil, true
	}
	parsed, err := parseDate(raw)
	if err != nil {
		return nil, false
	}
	return &parsed, true
}
