package mailer

import (
	"context"
	"testing"

	"github.com/5pponent/diary-server/api/config"

	"github.com/matcornic/hermes/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderAuthCode(t *testing.T) {
	h := hermes.Hermes{Product: hermes.Product{Name: "Diary", Link: "http://localhost"}}

	subject, html, text, err := renderAuthCode(h, "123456", PurposeJoin)
	require.NoError(t, err)
	assert.Contains(t, subject, "Verify")
	assert.Contains(t, html, "123456")
	assert.NotEmpty(t, text)

	subject, _, text, err = renderAuthCode(h, "654321", PurposeLogin)
	require.NoError(t, err)
	assert.Contains(t, subject, "login")
	assert.Contains(t, text, "new location")
}

func TestNewWithoutAPIKeyLogs(t *testing.T) {
	sender := New(config.MailConfig{ProductName: "Diary", ProductLink: "http://localhost"})
	require.IsType(t, &LogSender{}, sender)
	assert.NoError(t, sender.SendAuthCode(context.Background(), "a@example.com", "123456", PurposeJoin))
}

func TestNewWithAPIKeyUsesSendGrid(t *testing.T) {
	sender := New(config.MailConfig{SendGridAPIKey: "SG.test", From: "no-reply@diary.local", ProductName: "Diary"})
	assert.IsType(t, &SendGridSender{}, sender)
}
