package main

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/babonus/internal/entities/babonus"
	"github.com/KirkDiggler/babonus/internal/errors"
	"github.com/KirkDiggler/babonus/internal/repositories/bonuses"
)

var scanFix bool

var bonusScanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Find stored bonuses that no longer parse",
	Long: `Scan every stored parent for bonus definitions that fail to parse,
such as unknown types or invalid ids. With --fix they are deleted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		report, err := scanBonuses(cmd.Context(), a.repo, scanFix)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), report)
	},
}

func init() {
	bonusScanCmd.Flags().BoolVar(&scanFix, "fix", false, "delete corrupted definitions")
	bonusCmd.AddCommand(bonusScanCmd)
}

type corruptBonus struct {
	ParentUUID string `json:"parentUuid"`
	ID         string `json:"id"`
	Error      string `json:"error"`
}

type scanReport struct {
	Checked int            `json:"checked"`
	Corrupt []corruptBonus `json:"corrupt"`
	Deleted int            `json:"deleted"`
}

func scanBonuses(ctx context.Context, repo bonuses.Repository, fix bool) (*scanReport, error) {
	parents, err := repo.ListParents(ctx, &bonuses.ListParentsInput{})
	if err != nil {
		return nil, err
	}

	report := &scanReport{Corrupt: []corruptBonus{}}
	for _, parent := range parents.ParentUUIDs {
		stored, err := repo.Get(ctx, &bonuses.GetInput{ParentUUID: parent})
		if err != nil {
			if errors.IsNotFound(err) {
				continue
			}
			return nil, err
		}

		ids := make([]string, 0, len(stored.Bonuses))
		for id := range stored.Bonuses {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		for _, id := range ids {
			report.Checked++
			if _, err := babonus.Materialize(nil, id, stored.Bonuses[id]); err != nil {
				slog.Warn("corrupted bonus", "parent", parent, "bonus_id", id, "error", err)
				report.Corrupt = append(report.Corrupt, corruptBonus{ParentUUID: parent, ID: id, Error: err.Error()})
			}
		}
	}

	if !fix {
		return report, nil
	}
	for _, c := range report.Corrupt {
		if _, err := repo.Delete(ctx, &bonuses.DeleteInput{ParentUUID: c.ParentUUID, ID: c.ID}); err != nil {
			if errors.IsNotFound(err) {
				continue
			}
			return nil, fmt.Errorf("failed to delete %s on %s: %w", c.ID, c.ParentUUID, err)
		}
		report.Deleted++
	}
	return report, nil
}
