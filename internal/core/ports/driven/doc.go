// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): text extractors, the relevance oracle,
// the OCR engine, configuration and run-history storage.
package driven
