// Package domain contains the core business entities for document
// search: file descriptors, extracted documents, relevance verdicts
// and the finalised search run. Types here have no dependencies on
// adapters or services.
package domain
