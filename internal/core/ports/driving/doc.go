// Package driving provides interfaces for user-facing entry points
// (primary/inbound ports) consumed by the CLI.
package driving
