// Package server provides the HTTP API for the marketplace chat backend.
//
// # Routes
//
// Unauthenticated:
//
//   - GET  /health                        liveness probe
//   - POST /api/auth/register             create an account, returns a JWT
//   - POST /api/auth/login                exchange credentials for a JWT
//
// Behind bearer-token auth:
//
//   - GET  /api/chat/conversations                 recency-ordered summaries
//   - POST /api/chat/conversations                 resolve or create a conversation
//   - GET  /api/chat/conversations/{id}/messages   messages oldest first
//   - POST /api/chat/conversations/{id}/messages   send a message
//
// The authenticated caller is always the sender; their identity comes from the
// verified token, never from the request body.
//
// # Error Responses
//
// Errors are JSON objects with an "error" field. Engine errors map onto 404
// (unknown conversation) and 400 (non-participant sender, blank or oversized
// text); everything unexpected is an opaque 500 with the detail logged
// server-side.
package server
