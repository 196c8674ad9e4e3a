package placafipe

import "time"

type Option func(c *Client)

// WithToken specifies the API token used for every request
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithTimeout specifies the HTTP client timeout. Defaults to 30s
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.client.Timeout = timeout
	}
}

// WithGET switches plate lookups to the GET variant of the endpoint,
// which carries the plate and token in the path.
// POST is the default, as it is the more stable of the two upstream
func WithGET() Option {
	return func(c *Client) {
		c.useGET = true
	}
}
