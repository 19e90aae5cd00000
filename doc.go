// Package kinvalidator validates family-tree dataset documents.
//
// A dataset is the JSON document a genealogy editor writes at export
// time and reads back on import: a versioned, timestamped container of
// person records (members) and typed edges between them
// (relationships). This package is the sole gate between untrusted
// bytes and the application's data model: it decides whether a parsed
// JSON value is a well-formed, internally consistent dataset and
// returns either a typed Dataset or an ordered, path-qualified list of
// issues.
//
// # Quick Start
//
//	import (
//	    kv "github.com/gokin/validator"
//	    "github.com/gokin/validator/engine"
//	)
//
//	validator, err := engine.New(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := validator.Validate(ctx, datasetJSON)
//	if result.HasErrors() {
//	    for _, msg := range result.Messages() {
//	        fmt.Println(msg)
//	    }
//	}
//	result.Release() // Return to pool for better performance
//
// # Validation Phases
//
// Validation runs in a fixed sequence so that issue ordering is
// deterministic across runs:
//
//   - Root: version, export timestamp, members/relationships arrays
//   - Members: per-member field and format checks, duplicate ids
//   - Relationships: type set, endpoint resolution, duplicate ids
//
// Issues accumulate: beyond the two structural gates (a non-object
// candidate, or a missing/non-array members or relationships field)
// every defect found in one pass is reported together.
//
// # Export
//
// The export package produces documents guaranteed to pass validation
// unchanged (the round-trip guarantee):
//
//	doc := export.CreateExport(members, relationships)
//
// # Concurrency
//
// The engine is stateless across calls. Validate and CreateExport may
// be invoked concurrently without coordination; each invocation
// operates only on its own arguments and local accumulator state.
package kinvalidator
