package graph

// DataKind tags the variant of a [DataNode].
type DataKind string

const (
	DataPlaintext      DataKind = "pt"
	DataPlaintextRingT DataKind = "pt_ringt"
	DataPlaintextMul   DataKind = "pt_mul"
	DataCiphertext     DataKind = "ct"
	DataCiphertext3    DataKind = "ct3"
	DataSwitchKey      DataKind = "swk"
	DataRelinKey       DataKind = "rlk"
	DataGaloisKey      DataKind = "glk"
)

// ComputeKind tags the variant of a [ComputeNode].
type ComputeKind string

const (
	OpAdd         ComputeKind = "add"
	OpSub         ComputeKind = "sub"
	OpNeg         ComputeKind = "neg"
	OpMult        ComputeKind = "mult"
	OpRelin       ComputeKind = "relin"
	OpRescale     ComputeKind = "rescale"
	OpDropLevel   ComputeKind = "drop_level"
	OpRnsSpDecomp ComputeKind = "rns_sp_decomp"
	OpRotateCol   ComputeKind = "rotate_col"
	OpRotateRow   ComputeKind = "rotate_row"
	OpToNtt       ComputeKind = "to_ntt"
	OpToMForm     ComputeKind = "to_mf"
	OpToMul       ComputeKind = "to_mul"
	OpToInvNtt    ComputeKind = "to_inv_ntt"
	OpCmpacSum    ComputeKind = "cmpac_sum"
	OpCmpSum      ComputeKind = "cmp_sum"
	OpBootstrap   ComputeKind = "bootstrap"
)

// Lib labels which backend's rotation-key naming convention a RotateCol
// or RotateRow compute node was generated under.
type Lib string

const (
	Lattigo Lib = "lattigo"
	SEAL    Lib = "seal"
)

// OutCtType selects the output domain flags for AdvancedRotateCols.
type OutCtType string

const (
	OutCt      OutCtType = "ct"
	OutCtNTT   OutCtType = "ct-ntt"
	OutCtNTTMF OutCtType = "ct-ntt-mf"
)
