// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /reports/age", middleware.WithLogging(h.AgeReport))

Logs request start (method, path, query, remote) and completion
(status, duration_ms).

# Access Keys

Downloads of voter-level rows and feed refreshes need a scoped key in the
X-Access-Key header:

	mux.HandleFunc("GET /exports/{file}",
		middleware.RequireAccessKey(auth.ScopeExport, cfg.AccessSecret, h.Export))

Missing or wrong keys get 401 before the handler runs.

# CORS Middleware

Enable cross-origin requests for dashboard access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, OPTIONS with headers Content-Type and
X-Access-Key, and exposes Content-Disposition so browsers can name
downloaded CSV files.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Export audit rows store only a salted hash of it.
*/
package middleware
