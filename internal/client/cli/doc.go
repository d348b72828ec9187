// Package cli provides the interactive promptkeeper command-line client.
//
// It wires configuration, the local SQLite store, the catalog and transfer
// services, and an interactive REPL. A background watcher probes a
// configured URL and reloads the catalog when connectivity comes back.
//
// Key features:
//   - List / Show / Add / Edit / Delete prompts
//   - Search text, tag selection and sort order
//   - Export to and import from JSON backup files
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
