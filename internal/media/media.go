// Package media resolves stored image references to absolute URLs on the
// external media host. Nothing is stored or fetched locally; the host's
// availability is the storefront's problem, not ours.
package media

import "strings"

type Resolver struct {
	BaseURL string
}

func NewResolver(baseURL string) *Resolver {
	if baseURL != "" && !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Resolver{BaseURL: baseURL}
}

// URL turns a stored reference ("products/2026/01/stapler.jpg") into an
// absolute URL. Already-absolute references pass through untouched.
func (r *Resolver) URL(ref string) string {
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	return r.BaseURL + strings.TrimPrefix(ref, "/")
}

// URLPtr is URL for nullable image columns; nil maps to the empty string.
func (r *Resolver) URLPtr(ref *string) string {
	if ref == nil {
		return ""
	}
	return r.URL(*ref)
}
