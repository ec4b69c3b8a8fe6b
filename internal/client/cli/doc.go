// Package cli provides the interactive GlucoTrack command-line client.
//
// It wires configuration, local session storage, the API services, and an
// interactive REPL. Typical flow: restore the previous session from disk,
// prompt for credentials when needed, and execute user commands.
//
// Key features:
//   - Register / Login / Logout with a persisted 24-hour session
//   - Predict: interactive diabetes risk assessment
//   - History / Dashboard: past assessments and the latest readings
//   - Diet: personalized meal plans derived from the last prediction
//   - Chat: free-form questions to the diabetes assistant
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
