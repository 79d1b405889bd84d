// Package dto contains Data Transfer Objects for HTTP requests and responses.
//
// DTOs are separate from domain entities so the wire format stays stable
// while domain types evolve. Request types carry gin binding tags; response
// types are built from domain values with a From* constructor.
//
// Naming convention:
//   - Request types: <Action>Request (e.g., VerifyCodeRequest)
//   - Response types: <Resource>Response (e.g., LoginResponse)
package dto
