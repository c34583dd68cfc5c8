// Package match decides which live window a stored pin reference denotes.
//
// FindBestMatch evaluates four strategy tiers in strict priority order:
// cached runtime ID, OS window number, structural signature, and a weighted
// scored fallback for legacy references with no usable identity signals. The
// first tier producing an unambiguous result wins and its confidence tier is
// reported alongside the match.
//
// The matcher's failure policy is deliberate: whenever evidence is ambiguous
// (two siblings sharing a signature, a positional fallback ID without
// corroboration, an unresolved scoring tie) it returns nothing. Binding a pin
// to the wrong window silently activates an unrelated window later, which is
// strictly worse than reporting the pin missing until a cleaner pass or a
// user reassignment resolves it.
package match
