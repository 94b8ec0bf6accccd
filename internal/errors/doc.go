// Package errors provides the structured error type used across the bonus engine.
//
// Errors carry a Code, a message, an optional wrapped cause and metadata:
//
//	err := errors.NotFound("bonus not found").
//	    WithMeta("parent_uuid", parentUUID).
//	    WithMeta("bonus_id", id)
//
// Wrapping keeps the code of an existing *Error:
//
//	if err := repo.Replace(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to embed bonus")
//	}
//
// Config validation uses the builder:
//
//	vb := errors.NewValidationBuilder()
//	if cfg.Repository == nil {
//	    vb.RequiredField("Repository")
//	}
//	return vb.Build()
//
// The engine itself never returns errors for a single malformed definition, a bad
// formula or an unresolvable reference. Those are logged and skipped. Only structurally
// invalid caller input (an unregistered bonus type, a document that cannot own
// bonuses, missing required arguments) is returned, and handlers convert it with
// ToGRPCError.
package errors
