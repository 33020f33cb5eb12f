package controllers

import (
	"beedu/beedu/sources/psql"
	"beedu/beedu/types"
	"context"
	"errors"
	"strings"
	"time"
)

const statusPingTimeout = 10 * time.Second

type HealthController struct {
	db *psql.Database
}

func NewHealthController(db *psql.Database) *HealthController {
	return &HealthController{db: db}
}

func (c *HealthController) Health() map[string]string {
	return map[string]string{
		"message": "BEE EDU RAG Application is live!",
		"version": "v1",
	}
}

// Status probes the database without blocking other routes for long.
func (c *HealthController) Status(ctx context.Context) types.StatusResponse {
	resp := types.StatusResponse{DBConfigured: c.db.Configured()}
	if !resp.DBConfigured {
		return resp
	}

	ctx, cancel := context.WithTimeout(ctx, statusPingTimeout)
	defer cancel()

	if err := c.db.Ping(ctx); err != nil {
		resp.Error = classifyDBError(err)
		return resp
	}
	resp.DB = true
	return resp
}

// classifyDBError maps connection failures to short diagnostic labels so
// the status payload never echoes connection strings.
func classifyDBError(err error) string {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "auth"):
		return "auth_failed"
	case errors.Is(err, context.DeadlineExceeded) || strings.Contains(msg, "timeout"):
		return "timeout"
	case strings.Contains(msg, "no such host"):
		return "dns_error"
	default:
		return "connection_failed"
	}
}
