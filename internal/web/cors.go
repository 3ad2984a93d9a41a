package web

import "net/http"

const (
	corsAllowMethods = "GET, OPTIONS"
	corsAllowHeaders = "Content-Type, Authorization"
)

// CORSPolicy checks request origins against a fixed allow-list.
type CORSPolicy struct {
	allowed map[string]struct{}
}

func NewCORSPolicy(origins []string) *CORSPolicy {
	allowed := make(map[string]struct{}, len(origins))
	for _, origin := range origins {
		if origin != "" {
			allowed[origin] = struct{}{}
		}
	}
	return &CORSPolicy{allowed: allowed}
}

func (p *CORSPolicy) IsAllowed(origin string) bool {
	if origin == "" {
		return false
	}
	_, ok := p.allowed[origin]
	return ok
}

// Apply sets the CORS headers for an actual request. Allow-Origin echoes the
// origin only when it is allowed and is left unset otherwise.
func (p *CORSPolicy) Apply(h http.Header, origin string) {
	h.Add("Vary", "Origin")
	if p.IsAllowed(origin) {
		h.Set("Access-Control-Allow-Origin", origin)
	}
	h.Set("Access-Control-Allow-Methods", corsAllowMethods)
	h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
}

// ApplyPreflight sets the permissive headers returned to OPTIONS requests.
func (p *CORSPolicy) ApplyPreflight(h http.Header) {
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", corsAllowMethods)
	h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
}
