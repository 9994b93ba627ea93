package common

import "time"

const (
	// MaxRequestBody limits JSON request bodies for listing and application endpoints.
	MaxRequestBody = 1 << 20
	// RequestTimeout bounds store calls made on behalf of a single request.
	RequestTimeout = 5 * time.Second

	HeaderSession        = "X-Listings-Session"
	HeaderIdempotencyKey = "Idempotency-Key"
)
