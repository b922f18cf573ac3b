// Package services implements the aggregation engine: the resource
// ledger that folds occurrences into deduplicated records, the view
// builders that project a ledger snapshot into grouped presentations,
// and the run metadata summariser.
//
// Services contain the core business logic. They never perform I/O;
// connectors feed them and adapters render their output.
package services
