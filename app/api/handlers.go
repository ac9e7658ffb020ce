package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lysyi3m/tsib-catalog/app/feed"
)

// statusClientClosedRequest is recorded when the caller went away before the
// catalog was ready. Nobody reads the response.
const statusClientClosedRequest = 499

func NewHandler(catalogCache CatalogCacheInterface, version string) *Handler {
	return &Handler{
		catalogCache: catalogCache,
		version:      version,
	}
}

func (h *Handler) GetCatalog(c *gin.Context) {
	catalog, err := h.catalogCache.Get(c.Request.Context())
	if errors.Is(err, context.Canceled) {
		slog.Debug("Catalog request canceled", "request_id", c.GetString(requestIDKey))
		c.Status(statusClientClosedRequest)
		return
	}
	if err != nil {
		status, response := errorResponse(err)
		slog.Error("Catalog unavailable",
			"request_id", c.GetString(requestIDKey),
			"status", status,
			"error", err)
		c.JSON(status, response)
		return
	}

	body, err := encodeCatalog(catalog)
	if err != nil {
		slog.Error("Catalog encoding error", "request_id", c.GetString(requestIDKey), "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal", Message: "failed to encode catalog"})
		return
	}

	c.Data(http.StatusOK, "application/json", body)
}

func (h *Handler) GetHealth(c *gin.Context) {
	stats := h.catalogCache.Stats()

	catalog := gin.H{
		"cached": stats.Populated,
		"fresh":  stats.Fresh,
	}
	if stats.Populated {
		catalog["built_at"] = stats.BuiltAt.In(time.Local).Format(time.RFC3339)
		catalog["age"] = stats.Age.Round(time.Second).String()
	}

	health := gin.H{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"version":   h.version,
		"catalog":   catalog,
	}

	c.JSON(http.StatusOK, health)
}

// errorResponse maps pipeline failures to an upstream error status.
func errorResponse(err error) (int, ErrorResponse) {
	var fetchErr *feed.FetchError
	var parseErr *feed.ParseError

	switch {
	case errors.As(err, &fetchErr) && fetchErr.Timeout():
		return http.StatusGatewayTimeout, ErrorResponse{Error: "feed_timeout", Message: "catalog feed did not respond in time"}
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway, ErrorResponse{Error: "feed_unavailable", Message: "catalog feed is unavailable"}
	case errors.As(err, &parseErr):
		return http.StatusBadGateway, ErrorResponse{Error: "feed_malformed", Message: "catalog feed could not be parsed"}
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: "internal", Message: "internal error"}
	}
}

// encodeCatalog renders the catalog without HTML escaping, so descriptions
// and Cyrillic text come out as written.
func encodeCatalog(catalog feed.Catalog) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(catalog); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
