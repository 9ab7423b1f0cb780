package marketdata

import "errors"

// ErrNoQuote means no provider is configured or none returned a usable price.
var ErrNoQuote = errors.New("no quote available")
