// Cradlecart - Baby Products Storefront and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cradlecart

package models

import (
	"time"
)

// APIResponse is the standardized response wrapper used by all HTTP
// endpoints, for both successful and error responses.
//
// Status field values:
//   - "success": request completed, see Data
//   - "error": request failed, see Error
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"count": 4, "products": [...]},
//	  "metadata": {"timestamp": "2026-02-11T12:00:00Z", "query_time_ms": 1}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
type Metadata struct {
	// Timestamp is when the response was generated.
	Timestamp time.Time `json:"timestamp"`

	// QueryTimeMS is the server-side processing time in milliseconds.
	QueryTimeMS int64 `json:"query_time_ms,omitempty"`

	// RequestID echoes the request's tracing ID when available.
	RequestID string `json:"request_id,omitempty"`
}

// APIError carries machine-readable error details in an error response.
type APIError struct {
	// Code is a stable machine-readable error code such as
	// "VALIDATION_ERROR" or "NOT_FOUND".
	Code string `json:"code"`

	// Message is a human-readable description.
	Message string `json:"message"`

	// Details holds optional structured context, such as per-field
	// validation failures.
	Details interface{} `json:"details,omitempty"`
}

// Error codes shared by all endpoints.
const (
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeInternal        = "INTERNAL_ERROR"
	ErrCodeUnavailable     = "SERVICE_UNAVAILABLE"
	ErrCodeExternalService = "EXTERNAL_SERVICE_FAILED"
)
