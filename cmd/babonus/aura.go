package main

import (
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/babonus/internal/handlers/babonus/v1alpha1"
	"github.com/KirkDiggler/babonus/internal/spatial"
)

var auraFlags struct {
	token        string
	rng          float64
	shape        string
	restrictions []string
}

var auraCmd = &cobra.Command{
	Use:   "aura",
	Short: "List the tokens within range of a token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		restrictions := make([]any, 0, len(auraFlags.restrictions))
		for _, r := range auraFlags.restrictions {
			restrictions = append(restrictions, r)
		}
		req := map[string]any{
			"tokenId":      auraFlags.token,
			"range":        auraFlags.rng,
			"shape":        auraFlags.shape,
			"restrictions": restrictions,
		}
		return runHandler(cmd, req, func(h *v1alpha1.Handler) handlerCall { return h.TokensInRange })
	},
}

var distanceFlags struct {
	from string
	to   string
}

var distanceCmd = &cobra.Command{
	Use:   "distance",
	Short: "Measure the distance between two tokens",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		req := map[string]any{
			"tokenA": distanceFlags.from,
			"tokenB": distanceFlags.to,
		}
		return runHandler(cmd, req, func(h *v1alpha1.Handler) handlerCall { return h.MinimumDistance })
	},
}

func init() {
	auraCmd.Flags().StringVar(&auraFlags.token, "token", "", "source token id")
	auraCmd.Flags().Float64Var(&auraFlags.rng, "range", 0, "aura range in grid units, -1 for the whole scene")
	auraCmd.Flags().StringVar(&auraFlags.shape, "shape", string(spatial.ShapeCircle), "aura shape, circle or rect")
	auraCmd.Flags().StringSliceVar(&auraFlags.restrictions, "restrictions", nil, "wall restrictions blocking the aura")
	_ = auraCmd.MarkFlagRequired("token")

	distanceCmd.Flags().StringVar(&distanceFlags.from, "from", "", "first token id")
	distanceCmd.Flags().StringVar(&distanceFlags.to, "to", "", "second token id")
	_ = distanceCmd.MarkFlagRequired("from")
	_ = distanceCmd.MarkFlagRequired("to")
}
