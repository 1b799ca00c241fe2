package notify

import (
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/vulture/pkg/config"
	"github.com/wonny/vulture/pkg/logger"
)

func TestSendEmailDisabledIsNoop(t *testing.T) {
	n := New(config.NotifyConfig{EmailEnabled: false}, logger.NewNop())
	called := false
	n.send = func(string, smtp.Auth, string, []string, []byte) error {
		called = true
		return nil
	}

	require.NoError(t, n.SendEmail("subject", "body"))
	assert.False(t, called)
}

func TestSendEmailBuildsMessage(t *testing.T) {
	n := New(config.NotifyConfig{
		EmailEnabled: true,
		EmailTo:      "a@example.com, b@example.com",
		SMTPHost:     "smtp.example.com",
		SMTPPort:     587,
		SMTPUser:     "bot@example.com",
	}, logger.NewNop())

	var gotAddr string
	var gotTo []string
	var gotMsg []byte
	n.send = func(addr string, _ smtp.Auth, _ string, to []string, msg []byte) error {
		gotAddr, gotTo, gotMsg = addr, to, msg
		return nil
	}

	require.NoError(t, n.SendEmail("🎯 락온 알림", "테스트 본문"))
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, gotTo)
	assert.Contains(t, string(gotMsg), "Subject: 🎯 락온 알림")
	assert.Contains(t, string(gotMsg), "테스트 본문")
}

func TestSendEmailNoRecipients(t *testing.T) {
	n := New(config.NotifyConfig{EmailEnabled: true, EmailTo: " , "}, logger.NewNop())
	assert.Error(t, n.SendEmail("s", "b"))
}
