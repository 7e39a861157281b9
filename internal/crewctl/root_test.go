package crewctl

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmd := NewRootCommand()

	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}

	for _, want := range []string{"challenge", "login", "account", "team"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
}

func TestChallengeCommand_PrintsChallenge(t *testing.T) {
	srv := newFakeAPI(t)

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"challenge", "--server", srv.URL})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "nonce:  abc")
	assert.Contains(t, out.String(), "realm:  realm")
}

func TestAccountCreateCommand_RequiresEmail(t *testing.T) {
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"account", "create", "u1", "--password", "pw"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")
}

func TestAccountCreateCommand_AgainstFakeAPI(t *testing.T) {
	srv := newFakeAPI(t)

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{
		"account", "create", "u1",
		"--email", "u1@x.com", "--password", "pw",
		"--server", srv.URL,
	})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Created account u1 <u1@x.com>")
}
