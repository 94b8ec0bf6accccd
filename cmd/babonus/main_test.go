package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("BABONUS_STORE", "memory")
	t.Setenv("BABONUS_SRD_ENABLED", "false")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestProficiencyCommand(t *testing.T) {
	out, err := execute(t, "proficiency", "smith", "--category", "tool", "--store", "memory")
	require.NoError(t, err)

	var resp struct {
		Path []string `json:"path"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, []string{"art", "smith"}, resp.Path)
}

func TestDistanceCommand_UnknownToken(t *testing.T) {
	_, err := execute(t, "distance", "--from", "a", "--to", "b", "--store", "memory")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token a not found")
}

func TestRollCommand_MalformedDetails(t *testing.T) {
	_, err := execute(t, "roll", "--actor", "Actor.x", "--details", "{", "--store", "memory")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--details must be a JSON object")
}

func TestInvalidStoreFlag(t *testing.T) {
	_, err := execute(t, "bonus", "list", "Actor.x", "--store", "bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Store")
}
