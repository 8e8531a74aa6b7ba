// Package locale normalizes client-supplied locale hints into the canonical
// BCP-47-style tags the remote speech service accepts, and builds the ordered
// candidate list offered for automatic language identification.
//
// Mobile OS locale APIs emit a mess of shapes: underscores instead of
// hyphens, bare 2-letter language codes, script subtags without regions,
// inconsistent casing, or the literal "und". Normalization is an ordered
// sequence of fallback rules rather than a single clean algorithm; each rule
// is independently testable.
package locale
