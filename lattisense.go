/*
Package lattisense is a front-end computation-graph builder and compiler for
Fully Homomorphic Encryption (FHE) tasks. It lets a caller script an FHE
computation by composing typed operators (addition, ciphertext-ciphertext
multiplication, relinearization, rescaling, rotations, bootstrapping,
vectorized inner products) over the github.com/cipherflow-fhe/lattisense/graph
package, and incrementally builds a typed directed acyclic graph of data and
compute nodes.

The builder automatically materializes the cryptographic key dependencies a
script implies - relinearization keys, Galois/automorphism keys for every
distinct rotation, bootstrap switch keys - deduplicating them across the
task. github.com/cipherflow-fhe/lattisense/task then walks the finished graph
and serializes it, together with its parameters and its external I/O
contract, into two JSON artifacts consumed by a downstream evaluation
backend (CPU, GPU or FPGA runtime), which is outside the scope of this
module.

This module performs no encryption, decryption or homomorphic evaluation: it
only plans the shape of a computation and the keys it requires.
*/
package lattisense
