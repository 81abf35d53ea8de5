// Package httputil fetches remote datasets over HTTP.
//
// [Client.Get] downloads a URL with retries: network failures, 5xx
// responses and 429 are wrapped in [RetryableError] and attempted again with
// exponential backoff by [Retry]; other 4xx responses fail immediately with
// a [StatusError]. Every attempt is reported to the registered
// observability HTTP hooks.
//
//	c := httputil.NewClient()
//	data, err := c.Get(ctx, "https://example.com/colleges.csv")
//
// [Retry] is also usable on its own for any operation that marks transient
// failures with [Retryable].
package httputil
