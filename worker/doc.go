// Package worker provides bounded parallel fan-out for phase-two batch
// validation.
//
// Phase two of a validation pass is embarrassingly parallel: each record
// reads the frozen identifier index and writes only to its own result, so
// records fan out across workers with no locking. Result order always
// matches input order.
//
// Example usage:
//
//	runner := worker.NewRunner(8)
//	batch := runner.Run(ctx, len(records), func(ctx context.Context, i int) *bv.Result {
//	    return validate(ctx, records[i])
//	})
//	for _, res := range batch.Results {
//	    // res is nil if the batch was cancelled before this item ran
//	}
package worker
