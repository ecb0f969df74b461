package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/prospect-cli/internal/model"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	expected := []string{"discover", "prospects", "init"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "prospect-cli", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestDiscoverCommand_Flags(t *testing.T) {
	for _, flagName := range []string{"location", "category", "region", "hint", "limit"} {
		flag := discoverCmd.Flags().Lookup(flagName)
		assert.NotNil(t, flag, "discover should have --%s flag", flagName)
	}

	limit := discoverCmd.Flags().Lookup("limit")
	require.NotNil(t, limit)
	assert.Equal(t, "0", limit.DefValue)
}

func TestDiscoverCommand_HintNames(t *testing.T) {
	assert.Equal(t, model.HintUnknown, hintNames[""])
	assert.Equal(t, model.HintDirectoryProfile, hintNames["directory"])
	assert.Equal(t, model.HintClinicalRegistry, hintNames["registry"])
	assert.Equal(t, model.HintTreatmentProgram, hintNames["treatment"])
	assert.Equal(t, model.HintDiplomaticMission, hintNames["diplomatic"])
	assert.Equal(t, model.HintYouthActivityOrg, hintNames["youth"])

	_, ok := hintNames["bogus"]
	assert.False(t, ok)
}

func TestProspectsListCommand_Flags(t *testing.T) {
	flag := prospectsListCmd.Flags().Lookup("limit")
	require.NotNil(t, flag, "prospects list should have --limit flag")
	assert.Equal(t, "50", flag.DefValue)

	assert.NotNil(t, prospectsListCmd.Flags().Lookup("source-type"))
	assert.NotNil(t, prospectsListCmd.Flags().Lookup("min-score"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly-ten", truncate("exactly-ten", 11))

	out := truncate("a considerably longer organization name", 20)
	assert.True(t, len(out) <= 20+len("…"))
	assert.Equal(t, "a considerably long…", out)
}
