// Package async runs functions in goroutines and hands back typed futures.
//
//	futures := make([]*async.Future[Receipt], 0, len(channels))
//	for _, ch := range channels {
//		futures = append(futures, async.Async(ctx, ch, send))
//	}
//	for i, s := range async.Settle(futures...) {
//		// s.Value, s.Err for channels[i]
//	}
//
// Settle never short-circuits: one failing future does not hide the others.
package async
