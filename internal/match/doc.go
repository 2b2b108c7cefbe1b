// Package match suggests the closest known name for a misspelled one. It
// backs the "did you mean" hints of unknown annotation keys, config fields
// and --type names.
//
// Key functions:
//   - Normalize: folds case and drops separators before comparing
//   - Levenshtein: computes edit distance between strings
//   - Closest: picks the best candidate above a similarity threshold
package match
