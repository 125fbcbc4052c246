// Package report turns a webinar platform's raw attendance export into a
// continuing-education credit report.
//
// This package contains all domain logic independent of any transport or
// storage layer. It can be used by the HTTP handlers, the CLI, or tests
// without modification.
//
// # Pipeline
//
// An export blob flows through six stages, each a separate file:
//
//  1. Section splitting: the blob holds several concatenated CSV tables,
//     each introduced by a title line ("Attendee Details," etc.). See
//     [SplitSections].
//  2. Table parsing: each section becomes a [Table] with case-folded
//     column names and a name-to-index map. See [ParseTable].
//  3. Timeline building: the host/attendee/panelist tables are scanned
//     into per-email [Attendee] records, each owning raw attendance
//     intervals. See [BuildTimelines].
//  4. Reconciliation: near-adjacent intervals (reconnects, role
//     promotions) are merged into continuous spans. See [Reconcile].
//  5. Credit calculation: reconciled spans are measured against the
//     business window and converted to a capped, quarter-rounded credit
//     value. See [ComputeCredit].
//  6. Assembly: rows are ordered, certificate ids normalized, and
//     attendees without a usable certificate id are skipped with a logged
//     reason. See [Assemble].
//
// [Generate] runs the whole pipeline.
//
// # Error Handling
//
// Structural problems (unparseable timestamps, a missing required table
// or column) abort the run with a wrapped error; no partial report is
// produced. Data-quality problems (an attendee without a certificate id)
// are reported on the skip list and logged, never fatal.
package report
