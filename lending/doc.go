// Package lending contains the core contracts and pure business logic of the
// library lending system: the catalog and borrow-record types, input
// validation, the late-fee calculator, the result shapes returned to callers,
// and the interfaces for the persistence store and the external payment
// gateway.
//
// The package is dependency-free by design. Concrete store implementations
// live in the postgresstore, gormstore and memorystore subpackages, and
// OpenTelemetry implementations of the observability interfaces live in
// oteladapters. The service package composes all of them into the
// user-facing operations.
package lending
