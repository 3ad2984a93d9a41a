package web

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORSPolicyIsAllowed(t *testing.T) {
	p := NewCORSPolicy([]string{"https://a.example", "", "http://localhost:3000"})

	assert.True(t, p.IsAllowed("https://a.example"))
	assert.True(t, p.IsAllowed("http://localhost:3000"))
	assert.False(t, p.IsAllowed(""))
	assert.False(t, p.IsAllowed("https://A.example"))
	assert.False(t, p.IsAllowed("http://localhost:3001"))
}

func TestCORSPolicyEmptyAllowList(t *testing.T) {
	p := NewCORSPolicy(nil)
	h := http.Header{}
	p.Apply(h, "https://a.example")

	assert.Empty(t, h.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, OPTIONS", h.Get("Access-Control-Allow-Methods"))
}

func TestCORSPolicyApplyPreflight(t *testing.T) {
	h := http.Header{}
	NewCORSPolicy([]string{"https://a.example"}).ApplyPreflight(h)

	assert.Equal(t, "*", h.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, OPTIONS", h.Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type, Authorization", h.Get("Access-Control-Allow-Headers"))
}
