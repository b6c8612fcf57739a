// Package config provides configuration loading and connection factories for
// the lending service's infrastructure: PostgreSQL connections with different
// drivers (pgxpool, sql.DB, sqlx.DB), a MySQL connection via GORM, and the
// OpenTelemetry providers for the observability stack.
//
// Configuration is read from a YAML file with environment variable overrides
// for the connection strings.
package config
