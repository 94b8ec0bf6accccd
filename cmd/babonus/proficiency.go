package main

import (
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/babonus/internal/handlers/babonus/v1alpha1"
	"github.com/KirkDiggler/babonus/internal/proficiency"
)

var proficiencyCategory string

var proficiencyCmd = &cobra.Command{
	Use:   "proficiency <key>",
	Short: "Resolve the tree path down to a proficiency key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := map[string]any{
			"key":      args[0],
			"category": proficiencyCategory,
		}
		return runHandler(cmd, req, func(h *v1alpha1.Handler) handlerCall { return h.ResolveProficiencyPath })
	},
}

func init() {
	proficiencyCmd.Flags().StringVar(&proficiencyCategory, "category", string(proficiency.CategoryWeapon),
		"languages, weapon, armor or tool")
}
