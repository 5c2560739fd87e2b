package service

import (
	"context"
	"strings"

	"github.com/blizon/ops-dashboard/internal/auth"
)

// containsFold reports whether any field contains the already lower-cased term
func containsFold(term string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// actor names the authenticated user for log lines
func actor(ctx context.Context) string {
	if userCtx, ok := auth.FromContext(ctx); ok {
		return userCtx.Username
	}
	return "system"
}
