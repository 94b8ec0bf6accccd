package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/babonus/internal/handlers/babonus/v1alpha1"
)

var rollFlags struct {
	hook       string
	actor      string
	item       string
	target     string
	details    string
	parameters string
}

var rollCmd = &cobra.Command{
	Use:   "roll",
	Short: "Evaluate the bonuses that apply to a roll",
	Example: `  babonus roll --scene scene.json --hook attack --item Actor.abc.Item.def
  babonus roll --scene scene.json --hook save --actor Actor.abc --details '{"abilityId":"con"}'`,
	Args: cobra.NoArgs,
	RunE: runRoll,
}

func init() {
	f := rollCmd.Flags()
	f.StringVar(&rollFlags.hook, "hook", v1alpha1.HookAttack, "roll hook")
	f.StringVar(&rollFlags.actor, "actor", "", "rolling actor uuid")
	f.StringVar(&rollFlags.item, "item", "", "rolling item uuid")
	f.StringVar(&rollFlags.target, "target", "", "targeted token id")
	f.StringVar(&rollFlags.details, "details", "", "roll details as JSON")
	f.StringVar(&rollFlags.parameters, "parameters", "", "starting roll parameters as JSON")
}

func runRoll(cmd *cobra.Command, _ []string) error {
	req := map[string]any{
		"hook":          rollFlags.hook,
		"actorUuid":     rollFlags.actor,
		"itemUuid":      rollFlags.item,
		"targetTokenId": rollFlags.target,
	}
	if err := jsonFlag(req, "details", rollFlags.details); err != nil {
		return err
	}
	if err := jsonFlag(req, "parameters", rollFlags.parameters); err != nil {
		return err
	}

	return runHandler(cmd, req, func(h *v1alpha1.Handler) handlerCall { return h.EvaluateRoll })
}

func jsonFlag(req map[string]any, name, value string) error {
	if value == "" {
		return nil
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(value), &decoded); err != nil {
		return fmt.Errorf("--%s must be a JSON object: %w", name, err)
	}
	req[name] = decoded
	return nil
}
