// Package extractors provides implementations of the Extractor
// interface for the supported document formats, plus the
// extension-keyed registry that dispatches files to them.
//
// Extractors are registered with the Registry at startup. Adding a
// format is a local, additive change: implement driven.Extractor and
// register it.
package extractors
