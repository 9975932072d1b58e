package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	cmds := rootCmd.Commands()

	names := make(map[string]bool)
	for _, c := range cmds {
		names[c.Name()] = true
	}

	expected := []string{"load", "query", "serve", "status"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "nearby-cli", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestQueryCommand_RequiredFlags(t *testing.T) {
	latFlag := queryCmd.Flags().Lookup("lat")
	require.NotNil(t, latFlag, "query command should have --lat flag")

	lngFlag := queryCmd.Flags().Lookup("lng")
	require.NotNil(t, lngFlag, "query command should have --lng flag")

	noLoad := queryCmd.Flags().Lookup("no-load")
	require.NotNil(t, noLoad, "query command should have --no-load flag")
	assert.Equal(t, "false", noLoad.DefValue)
}

func TestServeCommand_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("no-load")
	require.NotNil(t, flag, "serve command should have --no-load flag")
	assert.Equal(t, "false", flag.DefValue)
}
