package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"portfolio/internal/apperr"
)

// respondError maps domain errors to HTTP codes; internal errors are logged and hidden.
func respondError(c *gin.Context, tag string, err error) {
	status := apperr.Status(err)
	if status == http.StatusInternalServerError {
		log.Printf("%s[err] %v", tag, err)
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	log.Printf("%s[%d] %v", tag, status, err)
	c.JSON(status, gin.H{"error": err.Error()})
}

func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid %s", name)})
		return 0, false
	}
	return id, true
}

func bindJSON(c *gin.Context, tag string, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		log.Printf("%s[bind][err] %v", tag, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

var errBadDate = errors.New("expected YYYY-MM-DD or RFC3339")

// parseDate accepts a calendar date or a full RFC3339 timestamp; "" yields nil.
func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, errBadDate
	}
	return &t, nil
}

func dateField(c *gin.Context, field, value string) (*time.Time, bool) {
	t, err := parseDate(value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid %s: %v", field, err)})
		return nil, false
	}
	return t, true
}

func optionalInt64Query(c *gin.Context, name string) (*int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid %s", name)})
		return nil, false
	}
	return &v, true
}
