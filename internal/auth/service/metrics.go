package service

import "github.com/recipevault/backend/internal/observability/metrics"

func incrementAuthTokensIssued() {
	metrics.AuthTokensIssued.Inc()
}

func incrementAuthFailures() {
	metrics.AuthFailuresTotal.Inc()
}

func incrementTokenResolveRejected() {
	metrics.TokenResolveRejected.Inc()
}
