// Package errors provides structured errors for the loot generator.
//
// Errors carry a Code, a message, an optional cause and metadata:
//
//	err := errors.NotFound("loot item not found").WithMeta("item_id", id)
//
// Wrapping keeps the code of the wrapped error:
//
//	if err := repo.GetByHash(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to look up item")
//	}
//
// Use WrapWithCode to change semantics, for example when a store error
// must surface as unavailable:
//
//	return errors.WrapWithCode(err, errors.CodeUnavailable, "loot store unavailable")
//
// # Generation failures
//
// A single generation attempt can fail in three ways: the text generation
// service rejects the call (Unavailable or DeadlineExceeded), the response
// is not parseable (MalformedResponse), or the assembled item breaks the
// item schema (SchemaViolation). Orchestrators collapse all three into
// GenerationFailed, keeping the original code in the "cause_code" metadata.
//
// # Validation
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("name", input.Name, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// # Exit codes
//
// Code.ExitCode maps codes onto process exit statuses for the CLI.
package errors
