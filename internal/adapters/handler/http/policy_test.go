package http

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolicyRequirementFor(t *testing.T) {
	policy := NewPolicy()

	tests := []struct {
		name     string
		method   string
		path     string
		expected Requirement
	}{
		{"register is public", "POST", "/api/v1/auth/register", Public},
		{"login is public", "POST", "/api/v1/auth/login", Public},
		{"refresh is public", "POST", "/api/v1/auth/refresh", Public},
		{"password reset is public", "POST", "/forgotPassword/verifyMail/a@x.com", Public},
		{"poster serving is public", "GET", "/file/dune.png", Public},
		{"add movie is admin", "POST", "/api/v1/movie/add-movie", Admin},
		{"update movie is admin", "PUT", "/api/v1/movie/update/Dune", Admin},
		{"delete movie is admin", "DELETE", "/api/v1/movie/delete/Dune", Admin},
		{"read movie is authenticated", "GET", "/api/v1/movie/Dune", Authenticated},
		{"list movies is authenticated", "GET", "/api/v1/movie/all", Authenticated},
		{"paged list is authenticated", "GET", "/api/v1/movie/allMoviesPage", Authenticated},
		{"unknown route is authenticated", "GET", "/api/v1/something-else", Authenticated},
		{"method matters for admin rules", "GET", "/api/v1/movie/add-movie", Authenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, policy.RequirementFor(tt.method, tt.path))
		})
	}
}

func TestMatchPath(t *testing.T) {
	assert.True(t, matchPath("*", "/anything"))
	assert.True(t, matchPath("/api/v1/auth/*", "/api/v1/auth/login"))
	assert.False(t, matchPath("/api/v1/auth/*", "/api/v1/authx"))
	assert.True(t, matchPath("/api/v1/movie/add-movie", "/api/v1/movie/add-movie"))
	assert.False(t, matchPath("/api/v1/movie/add-movie", "/api/v1/movie/add-movie/extra"))
}
