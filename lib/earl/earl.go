package earl

import (
	"net/url"
	"strings"

	"chatbot-backend/internal/telemetry"
)

// Earl is an absolute url under construction: a fixed origin, a basic
// pathname that per-call suffixes are appended to, the current pathname and
// the query parameters.
//
// An Earl is mutated in place and must not be shared between goroutines,
// open a new one per call instead (see Client.Open).
type Earl struct {
	client        *Client
	name          string
	origin        url.URL
	basicPathname string
	pathname      string
	query         url.Values
	secrets       []string
}

// New builds an Earl for `origin` (ex. "https://api.github.com"). The
// pathname starts as `basicPathname`, "/" when empty, and `query` seeds the
// query parameters.
func (c *Client) New(origin, basicPathname string, query map[string]string) (*Earl, error) {
	parsed, err := parseOrigin(origin)
	if err != nil {
		return nil, err
	}
	if basicPathname == "" {
		basicPathname = "/"
	}
	if !strings.HasPrefix(basicPathname, "/") {
		basicPathname = "/" + basicPathname
	}

	values := url.Values{}
	for k, v := range query {
		values.Set(k, v)
	}

	return &Earl{
		client:        c,
		name:          parsed.Host,
		origin:        *parsed,
		basicPathname: basicPathname,
		pathname:      basicPathname,
		query:         values,
	}, nil
}

func parseOrigin(origin string) (*url.URL, error) {
	fail := func(reason string) error {
		return &ConfigurationError{Endpoint: origin, Reason: reason}
	}

	parsed, err := url.Parse(origin)
	if err != nil {
		return nil, &ConfigurationError{Endpoint: origin, Reason: "invalid url", Err: err}
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fail("origin must be an absolute url")
	}
	if parsed.Path != "" && parsed.Path != "/" {
		return nil, fail("origin must not have a path")
	}
	if parsed.RawQuery != "" || parsed.Fragment != "" {
		return nil, fail("origin must not have a query or fragment")
	}
	parsed.Path = ""
	parsed.RawPath = ""
	return parsed, nil
}

// SetPathname replaces the current pathname, the basic pathname is kept.
func (e *Earl) SetPathname(pathname string) *Earl {
	if !strings.HasPrefix(pathname, "/") {
		pathname = "/" + pathname
	}
	e.pathname = pathname
	return e
}

// SetLastPathSegment sets the pathname to the basic pathname followed by
// `segment`. Existing %XX escapes in the segment are kept as they are, other
// reserved characters are percent-encoded when the url is rendered.
func (e *Earl) SetLastPathSegment(segment string) *Earl {
	e.pathname = e.basicPathname + segment
	return e
}

// SetSearchParam sets a query parameter, replacing any previous value.
func (e *Earl) SetSearchParam(key, value string) *Earl {
	e.query.Set(key, value)
	return e
}

// DeleteSearchParam removes a query parameter.
func (e *Earl) DeleteSearchParam(key string) *Earl {
	e.query.Del(key)
	return e
}

func (e *Earl) Pathname() string {
	return e.pathname
}

func (e *Earl) BasicPathname() string {
	return e.basicPathname
}

func (e *Earl) SearchParam(key string) string {
	return e.query.Get(key)
}

// String renders the absolute, percent-encoded url.
func (e *Earl) String() string {
	u := e.origin
	setPath(&u, e.pathname)
	u.RawQuery = e.query.Encode()
	return u.String()
}

// setPath sets a pathname that may already contain escapes. net/url only
// uses RawPath when it is a valid encoding of Path, otherwise Path is
// escaped as a whole.
func setPath(u *url.URL, pathname string) {
	decoded, err := url.PathUnescape(pathname)
	if err != nil {
		u.Path = pathname
		u.RawPath = ""
		return
	}
	u.Path = decoded
	u.RawPath = pathname
}

// Redacted renders the url with the values of secret parameters masked, it is
// what gets reported.
func (e *Earl) Redacted() string {
	if len(e.secrets) == 0 {
		return telemetry.RedactURL(e.String())
	}
	clone := e.Clone()
	for _, key := range e.secrets {
		if clone.query.Has(key) {
			clone.query.Set(key, "REDACTED")
		}
	}
	return telemetry.RedactURL(clone.String())
}

// Clone returns an independent copy.
func (e *Earl) Clone() *Earl {
	clone := *e
	clone.query = url.Values{}
	for k, v := range e.query {
		clone.query[k] = append([]string(nil), v...)
	}
	clone.secrets = append([]string(nil), e.secrets...)
	return &clone
}
