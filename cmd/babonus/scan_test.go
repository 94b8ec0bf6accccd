package main

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/babonus/internal/repositories/bonuses"
)

func TestScanBonuses(t *testing.T) {
	ctx := context.Background()
	repo := bonuses.NewInMemory(nil)

	seed := map[string]string{
		"abcdefghijklmnop": `{"name":"Bless","type":"attack","enabled":true,"bonuses":{"bonus":"1d4"}}`,
		"ABCDEFGHIJKLMNOP": `{"name":"Broken","type":"sorcery"}`,
		"bad":              `{"name":"Short id","type":"damage"}`,
	}
	for id, data := range seed {
		_, err := repo.Replace(ctx, &bonuses.ReplaceInput{
			ParentUUID: "Actor.fighter0000000001",
			ID:         id,
			Data:       json.RawMessage(data),
		})
		require.NoError(t, err)
	}

	t.Run("reports without deleting", func(t *testing.T) {
		report, err := scanBonuses(ctx, repo, false)
		require.NoError(t, err)
		assert.Equal(t, 3, report.Checked)
		require.Len(t, report.Corrupt, 2)
		assert.Equal(t, "ABCDEFGHIJKLMNOP", report.Corrupt[0].ID)
		assert.Equal(t, "bad", report.Corrupt[1].ID)
		assert.Zero(t, report.Deleted)
	})

	t.Run("fix deletes corrupted definitions", func(t *testing.T) {
		report, err := scanBonuses(ctx, repo, true)
		require.NoError(t, err)
		assert.Equal(t, 2, report.Deleted)

		stored, err := repo.Get(ctx, &bonuses.GetInput{ParentUUID: "Actor.fighter0000000001"})
		require.NoError(t, err)
		assert.Len(t, stored.Bonuses, 1)
		assert.Contains(t, stored.Bonuses, "abcdefghijklmnop")
	})
}
