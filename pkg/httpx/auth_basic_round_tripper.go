package httpx

import (
	"fmt"
	"net/http"
)

// BasicAuthRoundTripper sets HTTP basic credentials on every outgoing request.
type BasicAuthRoundTripper struct {
	next     http.RoundTripper
	username string
	password string
}

func NewBasicAuthRoundTripper(
	next http.RoundTripper,
	username string,
	password string,
) BasicAuthRoundTripper {
	return BasicAuthRoundTripper{
		next:     next,
		username: username,
		password: password,
	}
}

func (rt BasicAuthRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrip must not modify the caller's request.
	req = req.Clone(req.Context())
	req.SetBasicAuth(rt.username, rt.password)

	resp, err := rt.next.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("next.RoundTrip: %w", err)
	}

	return resp, nil
}
