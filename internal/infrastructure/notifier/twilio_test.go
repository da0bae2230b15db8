package notifier_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"dealflow/internal/infrastructure/notifier"
)

func TestTwilioSender(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name     string
		status   int
		response string
		wantErr  string
	}{
		{name: "Accepted", status: http.StatusCreated, response: `{"sid":"SM1","status":"queued"}`},
		{name: "Invalid number", status: http.StatusBadRequest, response: `{"code":21211,"message":"Invalid 'To' Phone Number"}`, wantErr: "21211 Invalid 'To' Phone Number"},
		{name: "Gateway failure", status: http.StatusBadGateway, response: `<html>bad gateway</html>`, wantErr: "unexpected status 502"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			var got *http.Request
			var form map[string][]string

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				rq.NoError(r.ParseForm())
				got, form = r, r.PostForm
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.response))
			}))
			defer srv.Close()

			sender := notifier.NewTwilioSender(notifier.TwilioConfig{
				AccountSID: "AC123",
				AuthToken:  "secret",
				From:       "+15550000",
				BaseURL:    srv.URL,
			})

			err := sender.SendSMS(context.Background(), "+15550100", "New real estate deal")
			if tc.wantErr != "" {
				rq.ErrorContains(err, tc.wantErr)
			} else {
				rq.NoError(err)
			}

			rq.Equal("/2010-04-01/Accounts/AC123/Messages.json", got.URL.Path)
			user, pass, ok := got.BasicAuth()
			rq.True(ok)
			rq.Equal("AC123", user)
			rq.Equal("secret", pass)
			rq.Equal([]string{"+15550100"}, form["To"])
			rq.Equal([]string{"+15550000"}, form["From"])
			rq.Equal([]string{"New real estate deal"}, form["Body"])
		})
	}
}
