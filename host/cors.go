package host

import (
	"net/http"
	"strconv"
	"strings"
)

const (
	AllowOriginHeader      = "Access-Control-Allow-Origin"
	AllowHeadersHeader     = "Access-Control-Allow-Headers"
	AllowMethodsHeader     = "Access-Control-Allow-Methods"
	AllowCredentialsHeader = "Access-Control-Allow-Credentials"
	ExposeHeadersHeader    = "Access-Control-Expose-Headers"
	MaxAgeHeader           = "Access-Control-Max-Age"
	VaryHeader             = "Vary"
)

// Cors configures the CORS headers the HTTP transports emit.
type Cors struct {
	AllowCredentials *bool    `yaml:"allowCredentials,omitempty" json:"allowCredentials,omitempty"`
	AllowHeaders     []string `yaml:"allowHeaders,omitempty" json:"allowHeaders,omitempty"`
	AllowMethods     []string `yaml:"allowMethods,omitempty" json:"allowMethods,omitempty"`
	AllowOrigins     []string `yaml:"allowOrigins,omitempty" json:"allowOrigins,omitempty"`
	ExposeHeaders    []string `yaml:"exposeHeaders,omitempty" json:"exposeHeaders,omitempty"`
	MaxAge           *int64   `yaml:"maxAge,omitempty" json:"maxAge,omitempty"`
}

// allowsOrigin reports whether origin may read bridge responses.
func (c *Cors) allowsOrigin(origin string) bool {
	for _, candidate := range c.AllowOrigins {
		if candidate == "*" || candidate == origin {
			return true
		}
	}
	return false
}

// corsMiddleware writes the configured headers on every response and answers
// preflight requests itself. A nil config passes requests through untouched.
func corsMiddleware(cors *Cors) Middleware {
	return func(next http.Handler) http.Handler {
		if cors == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cors.writeHeaders(w.Header(), r.Header.Get("Origin"))
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (c *Cors) writeHeaders(header http.Header, origin string) {
	switch {
	case origin == "" && c.allowsOrigin("*"):
		header.Set(AllowOriginHeader, "*")
	case origin != "" && c.allowsOrigin(origin):
		header.Set(AllowOriginHeader, origin)
		header.Add(VaryHeader, "Origin")
	}
	setJoined(header, AllowMethodsHeader, c.AllowMethods)
	setJoined(header, AllowHeadersHeader, c.AllowHeaders)
	setJoined(header, ExposeHeadersHeader, c.ExposeHeaders)
	if c.AllowCredentials != nil {
		header.Set(AllowCredentialsHeader, strconv.FormatBool(*c.AllowCredentials))
	}
	if c.MaxAge != nil {
		header.Set(MaxAgeHeader, strconv.FormatInt(*c.MaxAge, 10))
	}
}

func setJoined(header http.Header, name string, values []string) {
	if len(values) > 0 {
		header.Set(name, strings.Join(values, ", "))
	}
}
