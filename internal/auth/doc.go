// Package auth provides authentication for the HTTP API.
//
// Tokens are HS256 JWTs carrying the numeric user id in the "sub" claim.
// JWTVerifier issues and verifies them; HTTPAuthMiddleware resolves the
// Authorization header to a user id and stores it in the request context via
// WithIdentity. The chat engine itself never sees tokens, only resolved ids.
//
// Password hashing for registration and login uses bcrypt.
package auth
