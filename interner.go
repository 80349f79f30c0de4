package flatfiles

// interner is the seam between the tokenizer and the interning trie.
// Identifier 0 always names the empty sequence; non-empty sequences get
// dense identifiers in first-seen order.
type interner interface {
	// Intern returns the identifier for a byte span, assigning a fresh
	// one on first sight. The span may be reused by the caller.
	Intern(span []byte) uint32

	// Count returns the number of distinct contents, including the
	// empty sequence.
	Count() int

	// Freeze hands the ordered content table over to the caller and
	// releases interning state.
	Freeze() [][]byte
}
