package http

import "strings"

// Requirement is the authentication state a route demands.
type Requirement int

const (
	Public Requirement = iota
	Authenticated
	Admin
)

type routeRule struct {
	method      string // "*" matches any method
	pattern     string // exact path, or prefix when ending in "/*"
	requirement Requirement
}

// Policy is a fixed ordered rule table evaluated first-match-wins. It is
// consulted by the authorization middleware before any handler runs.
type Policy struct {
	rules []routeRule
}

// NewPolicy returns the application's authorization table: auth, password
// reset and poster serving are public; movie mutation is admin-only;
// everything else requires a valid token.
func NewPolicy() *Policy {
	return &Policy{rules: []routeRule{
		{"*", "/api/v1/auth/*", Public},
		{"*", "/forgotPassword/*", Public},
		{"*", "/file/*", Public},
		{"POST", "/api/v1/movie/add-movie", Admin},
		{"PUT", "/api/v1/movie/update/*", Admin},
		{"DELETE", "/api/v1/movie/delete/*", Admin},
		{"*", "*", Authenticated},
	}}
}

func (p *Policy) RequirementFor(method, path string) Requirement {
	for _, rule := range p.rules {
		if rule.method != "*" && rule.method != method {
			continue
		}
		if matchPath(rule.pattern, path) {
			return rule.requirement
		}
	}
	return Authenticated
}

func matchPath(pattern, path string) bool {
	if pattern == "*" {
		return true
	}
	if prefix, ok := strings.CutSuffix(pattern, "/*"); ok {
		return strings.HasPrefix(path, prefix+"/")
	}
	return pattern == path
}
