// Package pg provides PostgreSQL helpers built on pgx: pool creation
// with retry (Connect), a readiness probe (Healthcheck), goose schema
// migrations routed through slog (Migrate), and error classifiers for
// common SQLSTATE conditions.
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, slog.Default()); err != nil {
//	    log.Fatal(err)
//	}
//
// IsUniqueViolation plus ConstraintName let storage code translate a
// duplicate-key insert into a field-specific domain error.
package pg
