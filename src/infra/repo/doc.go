// Package repo implements the ports in src/core/ports on top of the
// reporting database.
//
// All data access goes through stored procedures. Each call checks out one
// connection from the db pool for its unit of work and hands it back when
// done:
//
//	rows, err := r.Records(ctx, domain.ProcBusinessUnits, userID)
//
// Procedures are Postgres set returning functions, called as
// SELECT * FROM proc($1, ..., $n). Rows come back as domain.Record keyed by
// column name; the decoders in record.go turn them into domain types.
package repo
