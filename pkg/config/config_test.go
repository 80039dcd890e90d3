package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  listen: ":3000"
  timeout: 15s
websub:
  channel_id: UC12345
  public_base_url: https://bot.example.com
  secret: s3cret
  renewal_interval: 6h
discord:
  token: bot-token
  channel_id: "424242"
database:
  dsn: "file:test.db?mode=rwc"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.Server.Listen)
	assert.Equal(t, 15*time.Second, cfg.Server.Timeout)
	assert.Equal(t, "UC12345", cfg.WebSub.ChannelID)
	assert.Equal(t, "s3cret", cfg.WebSub.Secret)
	assert.Equal(t, 6*time.Hour, cfg.WebSub.RenewalInterval)
	assert.Equal(t, "bot-token", cfg.Discord.Token)
	assert.Equal(t, "424242", cfg.Discord.ChannelID)
	assert.Equal(t, "file:test.db?mode=rwc", cfg.Database.DSN)

	// defaults filled in
	assert.Equal(t, "https://pubsubhubbub.appspot.com/subscribe", cfg.WebSub.HubURL)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)
	assert.Equal(t, 10*time.Second, cfg.Discord.Timeout)
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
websub:
  channel_id: UC12345
  public_base_url: https://bot.example.com
discord:
  token: bot-token
  channel_id: "424242"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
	assert.Equal(t, 12*time.Hour, cfg.WebSub.RenewalInterval)
	assert.Equal(t, 30*time.Second, cfg.WebSub.Timeout)
	assert.Empty(t, cfg.WebSub.Secret, "secret is optional")
	assert.Empty(t, cfg.Database.DSN, "history is optional")
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_DISCORD_TOKEN", "from-env")

	path := writeConfig(t, `
websub:
  channel_id: UC12345
  public_base_url: https://bot.example.com
discord:
  token: ${TEST_DISCORD_TOKEN}
  channel_id: "424242"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Discord.Token)
}

func TestLoad_DerivedURLs(t *testing.T) {
	path := writeConfig(t, `
websub:
  channel_id: UC12345
  public_base_url: https://bot.example.com/
discord:
  token: bot-token
  channel_id: "424242"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://www.youtube.com/feeds/videos.xml?channel_id=UC12345", cfg.TopicURL())
	assert.Equal(t, "https://bot.example.com/websub", cfg.CallbackURL(), "trailing slash folded")
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{
			name: "missing channel id",
			content: `
websub:
  public_base_url: https://bot.example.com
discord: {token: t, channel_id: "1"}
`,
			errMsg: "websub.channel_id is required",
		},
		{
			name: "missing public base url",
			content: `
websub:
  channel_id: UC12345
discord: {token: t, channel_id: "1"}
`,
			errMsg: "websub.public_base_url is required",
		},
		{
			name: "relative public base url",
			content: `
websub:
  channel_id: UC12345
  public_base_url: bot.example.com
discord: {token: t, channel_id: "1"}
`,
			errMsg: "must be an absolute http(s) URL",
		},
		{
			name: "missing discord token",
			content: `
websub:
  channel_id: UC12345
  public_base_url: https://bot.example.com
discord: {channel_id: "1"}
`,
			errMsg: "discord.token is required",
		},
		{
			name: "missing discord channel",
			content: `
websub:
  channel_id: UC12345
  public_base_url: https://bot.example.com
discord: {token: t}
`,
			errMsg: "discord.channel_id is required",
		},
		{
			name: "renewal interval too short",
			content: `
websub:
  channel_id: UC12345
  public_base_url: https://bot.example.com
  renewal_interval: 5s
discord: {token: t, channel_id: "1"}
`,
			errMsg: "renewal_interval must be at least 1 minute",
		},
		{
			name:    "invalid yaml",
			content: "invalid: yaml: content: [",
			errMsg:  "parse config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("does-not-exist.yml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestGenerateSchema(t *testing.T) {
	schema, err := GenerateSchema()
	require.NoError(t, err)
	assert.NotNil(t, schema)
}
