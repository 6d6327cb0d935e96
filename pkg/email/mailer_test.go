package email_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyrdhq/authcore/pkg/email"
)

func validParams() email.SendEmailParams {
	return email.SendEmailParams{
		SendTo:   "user@example.com",
		Subject:  "Please verify your account",
		BodyHTML: "<p>483921</p>",
		Tag:      email.TagVerificationCode,
	}
}

func TestSendEmailParamsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*email.SendEmailParams)
		ok     bool
	}{
		{"valid", func(p *email.SendEmailParams) {}, true},
		{"empty recipient", func(p *email.SendEmailParams) { p.SendTo = "" }, false},
		{"recipient without domain", func(p *email.SendEmailParams) { p.SendTo = "user@" }, false},
		{"recipient with spaces", func(p *email.SendEmailParams) { p.SendTo = "user name@example.com" }, false},
		{"empty subject", func(p *email.SendEmailParams) { p.Subject = "" }, false},
		{"empty body", func(p *email.SendEmailParams) { p.BodyHTML = "" }, false},
		{"tag optional", func(p *email.SendEmailParams) { p.Tag = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := validParams()
			tt.mutate(&p)
			err := p.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, email.ErrInvalidParams)
			}
		})
	}
}

func TestNewPostmarkClientConfigValidation(t *testing.T) {
	t.Parallel()

	valid := email.Config{
		PostmarkServerToken:  "server-token",
		PostmarkAccountToken: "account-token",
		SenderEmail:          "noreply@example.com",
		ReplyToEmail:         "support@example.com",
	}

	_, err := email.NewPostmarkClient(valid)
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*email.Config)
	}{
		{"missing server token", func(c *email.Config) { c.PostmarkServerToken = "" }},
		{"missing account token", func(c *email.Config) { c.PostmarkAccountToken = "" }},
		{"missing sender", func(c *email.Config) { c.SenderEmail = "" }},
		{"invalid sender", func(c *email.Config) { c.SenderEmail = "not-an-email" }},
		{"invalid reply-to", func(c *email.Config) { c.ReplyToEmail = "not-an-email" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := valid
			tt.mutate(&cfg)
			_, err := email.NewPostmarkClient(cfg)
			assert.ErrorIs(t, err, email.ErrInvalidConfig)
		})
	}
}

func TestDevSenderWritesFiles(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	sender := email.NewDevSender(dir)

	require.NoError(t, sender.SendEmail(context.Background(), validParams()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	var htmlPath, jsonPath string
	for _, e := range entries {
		switch filepath.Ext(e.Name()) {
		case ".html":
			htmlPath = filepath.Join(dir, e.Name())
		case ".json":
			jsonPath = filepath.Join(dir, e.Name())
		}
	}
	require.NotEmpty(t, htmlPath)
	require.NotEmpty(t, jsonPath)

	body, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Equal(t, "<p>483921</p>", string(body))

	raw, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var meta map[string]string
	require.NoError(t, json.Unmarshal(raw, &meta))
	assert.Equal(t, "user@example.com", meta["send_to"])
	assert.Equal(t, email.TagVerificationCode, meta["tag"])
}

func TestDevSenderRejectsInvalidParams(t *testing.T) {
	t.Parallel()
	sender := email.NewDevSender(t.TempDir())

	p := validParams()
	p.SendTo = ""
	assert.ErrorIs(t, sender.SendEmail(context.Background(), p), email.ErrInvalidParams)
}

func TestVerificationCodeEmail(t *testing.T) {
	t.Parallel()

	params, err := email.VerificationCodeEmail("Wyrd", "Ada", "ada@example.com", "483921", 90)
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", params.SendTo)
	assert.Equal(t, "Please verify your account", params.Subject)
	assert.Equal(t, email.TagVerificationCode, params.Tag)
	assert.Contains(t, params.BodyHTML, "Welcome Ada!")
	assert.Contains(t, params.BodyHTML, "Wyrd")
	assert.Contains(t, params.BodyHTML, "483921")
	assert.Contains(t, params.BodyHTML, "90 seconds")
	require.NoError(t, params.Validate())
}

func TestVerificationCodeEmailEscapesName(t *testing.T) {
	t.Parallel()

	params, err := email.VerificationCodeEmail("Wyrd", `<script>alert(1)</script>`, "x@example.com", "000000", 300)
	require.NoError(t, err)
	assert.False(t, strings.Contains(params.BodyHTML, "<script>"), "user-supplied name must be HTML-escaped")
	assert.Contains(t, params.BodyHTML, "5 minutes")
}
