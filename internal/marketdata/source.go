package marketdata

import "context"

// Source resolves a quote from the stream cache first and falls back to a
// direct HTTP fetch. Either half may be nil.
type Source struct {
	cache  *Cache
	client *Client
}

func NewSource(cache *Cache, client *Client) *Source {
	return &Source{cache: cache, client: client}
}

func (s *Source) GetQuote(ctx context.Context, symbol string) (Quote, error) {
	if s.cache != nil {
		if q, ok := s.cache.Get(symbol); ok {
			return q, nil
		}
	}
	if s.client == nil {
		return Quote{}, ErrNoQuote
	}
	return s.client.GetQuote(ctx, symbol)
}
