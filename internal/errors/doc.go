// Package errors provides the structured error type used across the dice
// companion.
//
// Every error carries a Code, a user-facing Message, an optional Cause and
// optional metadata. Codes map onto HTTP statuses so handlers can translate
// errors without inspecting messages.
//
// # Basic Usage
//
// Creating errors:
//
//	err := errors.InvalidArgumentf("unknown game phase: %s", phase)
//	err := errors.NotFound("table not found").WithMeta("table_id", id)
//
// Wrapping errors keeps the original code:
//
//	if err := repo.Append(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to record roll")
//	}
//
// # Error Checking
//
//	if errors.IsInvalidArgument(err) {
//	    // reject the request
//	}
//	status := errors.GetCode(err).HTTPStatus()
//
// # Validation Errors
//
// Config structs validate their dependencies with the builder:
//
//	vb := errors.NewValidationBuilder()
//	if c.Roller == nil {
//	    vb.RequiredField("Roller")
//	}
//	return vb.Build()
//
// # Layer-Specific Guidelines
//
// Repository layer:
//   - Return NotFound for missing keys
//   - Wrap Redis errors with context
//
// Orchestrator layer:
//   - Validate inputs and return InvalidArgument errors
//   - Report a busy roll session as a refusal, not an error
//
// Handler layer:
//   - Convert codes with Code.HTTPStatus
//   - Log internal errors before responding
package errors
