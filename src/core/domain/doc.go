// Package domain contains the core domain model for the reporting API.
//
// This package defines:
//   - Entities returned by the reporting database (sessions, permissions, records)
//   - The reporting entity catalogue binding each entity to its procedures
//   - Domain errors used across the application
//
// Rules for this package:
//   - No external dependencies except the standard library
//   - No infrastructure concerns (database, HTTP, etc.)
package domain
