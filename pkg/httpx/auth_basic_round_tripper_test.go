package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"dealflow/pkg/httpx"
)

func TestBasicAuthRoundTripper(t *testing.T) {
	rq := require.New(t)

	var (
		gotUser, gotPass string
		gotOK            bool
	)

	httpServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, gotOK = r.BasicAuth()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer httpServer.Close()

	client := &http.Client{
		Transport: httpx.NewBasicAuthRoundTripper(http.DefaultTransport, "AC123", "secret"),
	}

	req, err := http.NewRequest(http.MethodGet, httpServer.URL, http.NoBody)
	rq.NoError(err)

	resp, err := client.Do(req)
	rq.NoError(err)

	defer resp.Body.Close()

	rq.Equal(http.StatusNoContent, resp.StatusCode)
	rq.True(gotOK)
	rq.Equal("AC123", gotUser)
	rq.Equal("secret", gotPass)
	rq.Empty(req.Header.Get("Authorization"))
}
