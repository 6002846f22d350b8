package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out

	err := app.Run(append([]string{"guildctl", "--log-level", "silence"}, args...))
	return out.String(), err
}

func TestPermissions(t *testing.T) {
	tests := []struct {
		name     string
		snapshot string
		member   string
		want     string
	}{
		{
			name:     "everyone overwrite removes the role grant",
			snapshot: "testdata/guild.json",
			member:   "175928847299117063",
			want:     "allow: 1024\nviewChannel\n",
		},
		{
			name:     "member overwrite from events",
			snapshot: "testdata/events.json",
			member:   "175928847299117063",
			want:     "allow: 3072\nviewChannel\nsendMessages\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, "permissions",
				"--snapshot", tt.snapshot,
				"--channel", "381870553235193857",
				"--member", tt.member,
			)
			require.NoError(t, err)
			require.Equal(t, tt.want, out)
		})
	}

	t.Run("owner", func(t *testing.T) {
		out, err := run(t, "permissions",
			"--snapshot", "testdata/guild.json",
			"--channel", "381870553235193857",
			"--member", "80351110224678912",
		)
		require.NoError(t, err)
		require.Contains(t, out, "allow: 2147483647\n")
		require.Contains(t, out, "manageEmojis\n")
	})

	t.Run("unknown member", func(t *testing.T) {
		_, err := run(t, "permissions",
			"--snapshot", "testdata/guild.json",
			"--channel", "381870553235193857",
			"--member", "1",
		)
		require.ErrorContains(t, err, "member 1 not found")
	})
}

func TestInspect(t *testing.T) {
	out, err := run(t, "inspect", "--snapshot", "testdata/guild.json")
	require.NoError(t, err)

	var guilds map[string]map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &guilds))
	require.Contains(t, guilds, "81384788765712384")

	guild := guilds["81384788765712384"]
	require.Equal(t, "fixture guild", guild["name"])
	require.Len(t, guild["members"], 2)
	require.Len(t, guild["channels"], 1)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guildctl.toml")
	require.NoError(t, os.WriteFile(path, []byte("[cache]\nmessage_limit = 10\n[log]\nlevel = \"silence\"\n"), 0o600))

	_, err := run(t, "--config", path, "inspect", "--snapshot", "testdata/guild.json")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("[cache]\nguild_limit = 1\n"), 0o600))
	_, err = run(t, "--config", path, "inspect", "--snapshot", "testdata/guild.json")
	require.ErrorContains(t, err, "unknown config keys")
}

func TestMissingSnapshot(t *testing.T) {
	_, err := run(t, "inspect", "--snapshot", "testdata/missing.json")
	require.ErrorContains(t, err, "cannot read snapshot")
}
