// Package service composes the lending core into the user-facing library
// operations: catalog management, borrowing and returning, late-fee
// calculation, late-fee payment and refund, catalog search, and the patron
// status report.
//
// Every operation returns a result shape carrying a success flag and a
// human-readable message; the service never panics and never propagates a
// payment gateway fault to its caller. The persistence store and the payment
// gateway are injected dependencies, so the service can be exercised against
// the in-memory store and a substitute gateway without any real
// infrastructure.
package service
