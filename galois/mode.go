package galois

// Mode selects how a multi-step column rotation chains its key-switches.
type Mode string

const (
	// Hybrid key-switches each rotation directly from the ciphertext it
	// rotates: within a RotateCols sub-step chain that is the previous
	// sub-step's result, and in AdvancedRotateCols it is the input itself.
	Hybrid Mode = "hybrid"
	// Hoisted inserts an RnsSpDecomp node and rotates from its decomposed
	// output. AdvancedRotateCols decomposes the input once and every
	// requested step rotates from that one node. RotateCols decomposes
	// each distinct ciphertext a sub-step rotates from (the input and every
	// intermediate of the chain) once, so a chain of k sub-steps carries up
	// to k RnsSpDecomp nodes rather than a single one.
	Hoisted Mode = "hoisted"
)
