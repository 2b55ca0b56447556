package earl

import (
	"fmt"
)

// Endpoint is the fixed configuration of one third-party api. It is a
// value and is never mutated, so it can live in a package variable and be
// opened concurrently.
type Endpoint struct {
	// Name identifies the endpoint in errors and reports.
	Name          string
	Origin        string
	BasicPathname string
	Query         map[string]string
	// Secrets are query parameters that must be non-empty once overrides are
	// applied, their values are masked whenever the url is reported.
	Secrets []string
}

// Open builds a fresh Earl for `ep` with `overrides` applied on top of its
// default query.
func (c *Client) Open(ep Endpoint, overrides map[string]string) (*Earl, error) {
	query := make(map[string]string, len(ep.Query)+len(overrides))
	for k, v := range ep.Query {
		query[k] = v
	}
	for k, v := range overrides {
		query[k] = v
	}

	for _, key := range ep.Secrets {
		if query[key] == "" {
			return nil, &ConfigurationError{
				Endpoint: ep.Name,
				Reason:   fmt.Sprintf("missing required parameter %q", key),
			}
		}
	}

	e, err := c.New(ep.Origin, ep.BasicPathname, query)
	if err != nil {
		return nil, err
	}
	if ep.Name != "" {
		e.name = ep.Name
	}
	e.secrets = append([]string(nil), ep.Secrets...)
	return e, nil
}
