// BeyLog - Beyblade Collection Catalog
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/beylog

package logging

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// SecurityEvent is an authentication or authorization event for the audit log.
type SecurityEvent struct {
	// Event is the event type, e.g. "login_success" or "access_denied".
	Event     string
	UserID    int64
	Email     string
	IPAddress string
	UserAgent string
	Path      string
	Success   bool
	// Reason is a short machine-friendly cause for failures.
	Reason string
}

// SecurityLogger writes security events with sensitive fields masked.
type SecurityLogger struct {
	logger zerolog.Logger
}

// NewSecurityLogger creates a security logger on top of the global logger.
func NewSecurityLogger() *SecurityLogger {
	return &SecurityLogger{logger: WithComponent("auth")}
}

// NewSecurityLoggerWithLogger creates a security logger with a custom zerolog logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewSecurityLoggerWithLogger(logger zerolog.Logger) *SecurityLogger {
	return &SecurityLogger{logger: logger.With().Str("component", "auth").Logger()}
}

// LogEvent writes one security event.
func (l *SecurityLogger) LogEvent(event *SecurityEvent) {
	e := l.logger.Info()
	if !event.Success {
		e = l.logger.Warn()
	}
	e = e.Str("event", event.Event).Bool("success", event.Success)

	if event.UserID > 0 {
		e = e.Str("user_id", SanitizeUserID(strconv.FormatInt(event.UserID, 10)))
	}
	if event.Email != "" {
		e = e.Str("email", SanitizeEmail(event.Email))
	}
	if event.IPAddress != "" {
		e = e.Str("ip", event.IPAddress)
	}
	if event.UserAgent != "" {
		e = e.Str("user_agent", truncateString(event.UserAgent, 100))
	}
	if event.Path != "" {
		e = e.Str("path", event.Path)
	}
	if event.Reason != "" {
		e = e.Str("reason", event.Reason)
	}
	e.Msg("security event")
}

// LogLoginSuccess records a successful password login.
func (l *SecurityLogger) LogLoginSuccess(userID int64, email, ip, userAgent string) {
	l.LogEvent(&SecurityEvent{
		Event: "login_success", UserID: userID, Email: email,
		IPAddress: ip, UserAgent: userAgent, Success: true,
	})
}

// LogLoginFailure records a failed login. reason is never echoed to the client.
func (l *SecurityLogger) LogLoginFailure(email, ip, userAgent, reason string) {
	l.LogEvent(&SecurityEvent{
		Event: "login_failure", Email: email,
		IPAddress: ip, UserAgent: userAgent, Reason: reason,
	})
}

// LogLogout records a logout.
func (l *SecurityLogger) LogLogout(userID int64, ip string) {
	l.LogEvent(&SecurityEvent{Event: "logout", UserID: userID, IPAddress: ip, Success: true})
}

// LogAccessDenied records a Route Guard or Edge Gate denial.
func (l *SecurityLogger) LogAccessDenied(userID int64, path, ip, reason string) {
	l.LogEvent(&SecurityEvent{
		Event: "access_denied", UserID: userID, Path: path, IPAddress: ip, Reason: reason,
	})
}

// SanitizeToken masks a token, keeping the first and last 4 characters.
func SanitizeToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 12 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

// SanitizeUserID masks long user identifiers. Short numeric ids are kept.
func SanitizeUserID(userID string) string {
	if len(userID) <= 8 {
		return userID
	}
	return userID[:4] + "..." + userID[len(userID)-4:]
}

// SanitizeEmail masks the local part of an email address.
// Example: "john.doe@example.com" -> "jo***@example.com"
func SanitizeEmail(email string) string {
	if email == "" {
		return ""
	}
	at := strings.Index(email, "@")
	if at <= 0 {
		return "***"
	}
	local, domain := email[:at], email[at:]
	if len(local) <= 2 {
		return "***" + domain
	}
	return local[:2] + "***" + domain
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
