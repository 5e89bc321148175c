// Package cli provides the interactive CareSupport command-line client.
//
// It wires configuration, the identity provider, local storage and the
// caregiver report sink, then runs a REPL. Session changes are observed
// through session.Manager.Subscribe; each signed-in user gets their own
// diary.Store, opened on sign-in and dropped on sign-out.
//
// Commands:
//   - register, login, logout, delete
//   - checkin, recent [n]
//   - diary [symptom numbers...], entries, symptoms, measure [kind value]
//   - tasks, toggle <task>
//   - tips [guide], report
//   - help, exit
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
