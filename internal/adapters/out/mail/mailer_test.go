package mail_test

import (
	"testing"

	"fieldservice/internal/adapters/out/mail"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSMTPMailer_ValidConfig_Success(t *testing.T) {
	mailer, err := mail.NewSMTPMailer("smtp.example.com", 587, "dispatch", "secret", "dispatch@example.com")

	require.NoError(t, err)
	assert.NotNil(t, mailer)
}

func TestNewSMTPMailer_NoAuth_Success(t *testing.T) {
	mailer, err := mail.NewSMTPMailer("localhost", 25, "", "", "dispatch@example.com")

	require.NoError(t, err)
	assert.NotNil(t, mailer)
}

func TestNewSMTPMailer_MissingHost_ReturnsError(t *testing.T) {
	mailer, err := mail.NewSMTPMailer("", 587, "", "", "dispatch@example.com")

	require.Error(t, err)
	assert.Nil(t, mailer)
	assert.Contains(t, err.Error(), "host")
}

func TestNewSMTPMailer_MissingFrom_ReturnsError(t *testing.T) {
	mailer, err := mail.NewSMTPMailer("smtp.example.com", 587, "", "", "")

	require.Error(t, err)
	assert.Nil(t, mailer)
	assert.Contains(t, err.Error(), "from")
}

func TestSend_MissingRecipient_ReturnsError(t *testing.T) {
	mailer, err := mail.NewSMTPMailer("smtp.example.com", 587, "", "", "dispatch@example.com")
	require.NoError(t, err)

	err = mailer.Send(t.Context(), "", "subject", "body")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "to")
}
