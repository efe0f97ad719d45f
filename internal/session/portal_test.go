package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPortalPath(t *testing.T) {
	cases := []struct {
		usertype string
		want     string
	}{
		{"buyer", "/buyer"},
		{"seller", "/"},
		{"agent", "/agent/dashboard"},
		{"admin", "/"},
		{"", "/"},
		{"unknown-role", "/"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, PortalPath(tc.usertype), "usertype %q", tc.usertype)
	}
}
