// Package retry decides whether and when to retry failed operations.
//
// A Policy answers two questions about the attempt that just failed: should
// another attempt be made, and how long to wait first. Three policies are
// provided:
//
//	retry.Never()                                 // fail on first error
//	retry.Fixed(3, 200*time.Millisecond)          // 200ms, 200ms
//	retry.Exponential(5, 100*time.Millisecond)    // 100ms, 200ms, 400ms, 800ms
//
// maxAttempts counts every attempt, including the first.
//
// An Executor runs an operation under a policy:
//
//	err := retry.New(policy).Do(ctx, func(ctx context.Context) error {
//	    return client.Call(ctx)
//	})
//
// When retries are exhausted the operation's own error is returned
// unchanged. Cancelling ctx aborts any wait immediately, and Do returns a
// *CancelledError matching ErrCancelled; no attempt starts after ctx is done.
package retry
