// Package db provides the database connection pool.
//
// This package is responsible for:
//   - A bounded pool of single connections with a liveness probe on checkout
//   - Transparent replacement of stale connections
//   - Scoped checkout via Pool.With
//   - The pgx connection factory built from configuration
//
// Example usage:
//
//	pg, err := db.New(ctx, cfg.Database, log)
//	if err != nil {
//	    return err
//	}
//	defer pg.Close()
//
//	err = pg.Pool.With(ctx, func(conn *pgx.Conn) error {
//	    _, err := conn.Exec(ctx, "SELECT 1")
//	    return err
//	})
package db
