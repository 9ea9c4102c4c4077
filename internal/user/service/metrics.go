package service

import "github.com/recipevault/backend/internal/observability/metrics"

func incrementUsersCreated() {
	metrics.UsersCreated.Inc()
}
