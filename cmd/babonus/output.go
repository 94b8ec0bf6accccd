package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/babonus/internal/handlers/babonus/v1alpha1"
)

type handlerCall func(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)

// runHandler builds the app, sends req through one handler method and prints
// the response as JSON.
func runHandler(cmd *cobra.Command, req map[string]any, pick func(h *v1alpha1.Handler) handlerCall) error {
	a, err := newApp(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		RollService:  a.rolls,
		BonusService: a.bonuses,
		Resolver:     a.index,
		Aura:         a.aura,
		Trees:        a.trees,
	})
	if err != nil {
		return fmt.Errorf("failed to create bonus handler: %w", err)
	}

	in, err := structpb.NewStruct(req)
	if err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}

	out, err := pick(handler)(cmd.Context(), in)
	if err != nil {
		return err
	}

	raw, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(out)
	if err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(raw))
	return err
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
