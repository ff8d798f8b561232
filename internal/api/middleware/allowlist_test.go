package middleware

import "testing"

func TestAllowList_Match(t *testing.T) {
	allow := NewAllowList("/", "/api/user/**", "/health", "/static/**")

	cases := []struct {
		path string
		want bool
	}{
		{"/", true},
		{"/api/user", true},
		{"/api/user/login", true},
		{"/api/user/kakao/callback", true},
		{"/api/user-info", false},
		{"/api/userland", false},
		{"/health", true},
		{"/health/ready", false},
		{"/static/css/app.css", true},
		{"/api/folders", false},
	}
	for _, tc := range cases {
		if got := allow.Match(tc.path); got != tc.want {
			t.Errorf("Match(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}
