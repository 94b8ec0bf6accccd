package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/babonus/internal/entities/babonus"
	"github.com/KirkDiggler/babonus/internal/orchestrators/bonus"
)

var bonusCmd = &cobra.Command{
	Use:   "bonus",
	Short: "Manage the bonuses embedded on documents",
	Long: `Manage the bonuses embedded on actors, items, effects and templates.
Changes persist only with the redis store.`,
}

var listType string

var bonusListCmd = &cobra.Command{
	Use:   "list <parent-uuid>",
	Short: "List the bonuses on a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBonuses(cmd, func(svc bonus.Service) error {
			if listType != "" {
				out, err := svc.GetType(cmd.Context(), &bonus.GetTypeInput{
					ParentUUID: args[0],
					Type:       babonus.Type(listType),
				})
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), out.Bonuses)
			}

			out, err := svc.GetCollection(cmd.Context(), &bonus.GetCollectionInput{UUID: args[0]})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out.Collection.All())
		})
	},
}

var toggleState string

var bonusToggleCmd = &cobra.Command{
	Use:   "toggle <bonus-uuid>",
	Short: "Enable, disable or flip a bonus",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var state *bool
		switch toggleState {
		case "":
		case "on":
			state = ptr(true)
		case "off":
			state = ptr(false)
		default:
			return fmt.Errorf("--state must be on or off, got %q", toggleState)
		}

		return withBonuses(cmd, func(svc bonus.Service) error {
			out, err := svc.Toggle(cmd.Context(), &bonus.ToggleInput{UUID: args[0], State: state})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out.Bonus)
		})
	},
}

var bonusDeleteCmd = &cobra.Command{
	Use:   "delete <bonus-uuid>",
	Short: "Delete a bonus",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBonuses(cmd, func(svc bonus.Service) error {
			out, err := svc.Delete(cmd.Context(), &bonus.DeleteInput{UUID: args[0]})
			if err != nil {
				return err
			}
			if !out.Deleted {
				return fmt.Errorf("bonus %s not found", args[0])
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return err
		})
	},
}

var transferFlags struct {
	to     string
	keepID bool
}

var bonusCopyCmd = &cobra.Command{
	Use:   "copy <bonus-uuid>",
	Short: "Copy a bonus to another document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBonuses(cmd, func(svc bonus.Service) error {
			out, err := svc.Copy(cmd.Context(), &bonus.CopyInput{
				UUID:       args[0],
				TargetUUID: transferFlags.to,
				KeepID:     transferFlags.keepID,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out.Bonus)
		})
	},
}

var bonusMoveCmd = &cobra.Command{
	Use:   "move <bonus-uuid>",
	Short: "Move a bonus to another document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBonuses(cmd, func(svc bonus.Service) error {
			out, err := svc.Move(cmd.Context(), &bonus.MoveInput{
				UUID:       args[0],
				TargetUUID: transferFlags.to,
				KeepID:     transferFlags.keepID,
			})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out.Bonus)
		})
	},
}

var bonusFindCmd = &cobra.Command{
	Use:   "find <actor-uuid>",
	Short: "List an actor's items and effects that carry bonuses",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBonuses(cmd, func(svc bonus.Service) error {
			out, err := svc.FindEmbeddedDocumentsWithBonuses(cmd.Context(),
				&bonus.FindEmbeddedDocumentsWithBonusesInput{ActorUUID: args[0]})
			if err != nil {
				return err
			}
			uuids := make([]string, 0, len(out.Items)+len(out.Effects))
			for _, item := range out.Items {
				uuids = append(uuids, item.GetUUID())
			}
			for _, effect := range out.Effects {
				uuids = append(uuids, effect.GetUUID())
			}
			return printJSON(cmd.OutOrStdout(), uuids)
		})
	},
}

func init() {
	bonusListCmd.Flags().StringVar(&listType, "type", "", "only list bonuses of this type")
	bonusToggleCmd.Flags().StringVar(&toggleState, "state", "", "on or off, flips when empty")

	for _, c := range []*cobra.Command{bonusCopyCmd, bonusMoveCmd} {
		c.Flags().StringVar(&transferFlags.to, "to", "", "target document uuid")
		c.Flags().BoolVar(&transferFlags.keepID, "keep-id", false, "keep the bonus id")
		_ = c.MarkFlagRequired("to")
	}

	bonusCmd.AddCommand(bonusListCmd, bonusToggleCmd, bonusDeleteCmd, bonusCopyCmd, bonusMoveCmd, bonusFindCmd)
}

func withBonuses(cmd *cobra.Command, fn func(svc bonus.Service) error) error {
	a, err := newApp(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a.bonuses)
}

func ptr[T any](v T) *T { return &v }
