package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"forgebase.backend/internal/domain/entities"
	"forgebase.backend/internal/usecases"
)

// UsageRecorder records one usage entry per completed request that
// resolved a key and project. Recording runs detached from the request
// and can never change the response.
func UsageRecorder(usageUsecase *usecases.UsageStatsUsecase) gin.HandlerFunc {
	return recordUsage(usageUsecase, nil)
}

// UsageRecorderWithMetadata is UsageRecorder with fixed metadata stamped
// on every record. Caller-supplied entries win over anything the
// recorder would derive itself.
func UsageRecorderWithMetadata(usageUsecase *usecases.UsageStatsUsecase, metadata map[string]string) gin.HandlerFunc {
	return recordUsage(usageUsecase, metadata)
}

func recordUsage(usageUsecase *usecases.UsageStatsUsecase, metadata map[string]string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestSize := c.Request.ContentLength

		c.Next()

		key, ok := GetAPIKey(c)
		if !ok {
			return
		}
		project, ok := GetProject(c)
		if !ok {
			return
		}

		record := &entities.UsageRecord{
			ApiKeyID:       key.ID,
			ProjectID:      project.ID,
			Endpoint:       c.FullPath(),
			Method:         c.Request.Method,
			StatusCode:     c.Writer.Status(),
			ResponseTimeMS: int(time.Since(start).Milliseconds()),
			UserAgent:      c.Request.UserAgent(),
			IPAddress:      c.ClientIP(),
			RequestSize:    requestSize,
			ResponseSize:   int64(c.Writer.Size()),
			CreatedAt:      time.Now(),
		}
		if record.Endpoint == "" {
			record.Endpoint = c.Request.URL.Path
		}
		if record.RequestSize < 0 {
			record.RequestSize = 0
		}
		if record.ResponseSize < 0 {
			record.ResponseSize = 0
		}
		if record.StatusCode >= http.StatusBadRequest {
			record.ErrorMessage = errorMessage(c)
		}
		if len(metadata) > 0 {
			record.Metadata = make(map[string]string, len(metadata))
			for k, v := range metadata {
				record.Metadata[k] = v
			}
		}

		go usageUsecase.RecordUsage(context.Background(), record)
	}
}

func errorMessage(c *gin.Context) string {
	if len(c.Errors) > 0 {
		return c.Errors.Last().Error()
	}
	return http.StatusText(c.Writer.Status())
}
