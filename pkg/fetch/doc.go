// Package fetch retrieves published documents over HTTP.
//
// [Client] wraps net/http with the conventions every caller needs:
// default request headers, status classification, retry of transient
// failures via [cache.RetryWithBackoff], and cache-aside storage of
// response bodies in a [cache.Cache].
//
// # Errors
//
//   - [ErrNotFound]: the server answered 404
//   - [ErrNetwork]: transport failures and other non-200 statuses;
//     transport failures and 5xx responses are additionally wrapped in
//     [cache.RetryableError] so that they are retried
//
// # Usage
//
//	c := fetch.NewClient(fileCache, "doc:", cache.TTLDocument, nil)
//	body, hit, err := c.FetchDocument(ctx, url, false)
package fetch
