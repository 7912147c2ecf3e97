// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Authentication metrics.

var (
	// TokensIssued counts signed session tokens.
	TokensIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_tokens_issued_total",
			Help: "Total number of session tokens issued",
		},
	)

	// TokenVerifications counts token verifications.
	// Labels:
	//   - result: "ok", "missing_credential", "invalid_signature", "expired"
	TokenVerifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_token_verifications_total",
			Help: "Total number of session token verifications by result",
		},
		[]string{"result"},
	)

	// GateDecisions counts Edge Gate outcomes.
	// Labels:
	//   - decision: "admit", "redirect_login", "redirect_dashboard"
	GateDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_gate_decisions_total",
			Help: "Total number of edge gate decisions",
		},
		[]string{"decision"},
	)

	// GuardOutcomes counts Route Guard outcomes.
	// Labels:
	//   - outcome: "ok", "missing_credential", "invalid_signature", "expired", "forbidden"
	GuardOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_guard_outcomes_total",
			Help: "Total number of route guard checks by outcome",
		},
		[]string{"outcome"},
	)

	// LoginAttempts counts password logins.
	// Labels:
	//   - outcome: "success", "failure", "throttled"
	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_login_attempts_total",
			Help: "Total number of password login attempts",
		},
		[]string{"outcome"},
	)
)

// RecordLogin records a login attempt outcome.
func RecordLogin(outcome string) {
	LoginAttempts.WithLabelValues(outcome).Inc()
}
