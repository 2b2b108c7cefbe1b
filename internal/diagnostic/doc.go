// Package diagnostic provides structured errors for the cachediff
// generator.
//
// Every generation-time failure (malformed annotation, unsupported record
// shape, configuration referring to unknown fields) is recorded with the type
// and field it concerns, so the CLI can print precise messages. Diagnostics
// never degrade into partial output: any error aborts generation.
package diagnostic
