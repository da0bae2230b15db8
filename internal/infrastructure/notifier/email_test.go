package notifier

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmailSenderMessage(t *testing.T) {
	rq := require.New(t)

	sender := NewEmailSender(SMTPConfig{
		Host: "smtp.example.com",
		Port: 587,
		From: "deals@example.com",
	})

	msg, err := sender.message("ana@example.com", "New deal", "Hi Ana")
	rq.NoError(err)

	recipients, err := msg.GetRecipients()
	rq.NoError(err)
	rq.Equal([]string{"ana@example.com"}, recipients)

	_, err = sender.message("not an address", "New deal", "Hi")
	rq.Error(err)
}
