package param

// NewCKKSBootstrapToy returns a small CKKS bootstrap parameter set
// (N16QP1546H192H32 scaled down to n=8192), suitable for exercising the
// bootstrap operator in tests without the cost of a production-sized ring.
func NewCKKSBootstrapToy() Param {
	return ckksBootstrapParam(1 << 13)
}

// NewCKKSBootstrapDefault returns the production-sized CKKS bootstrap
// parameter set N16QP1546H192H32 at n=65536.
func NewCKKSBootstrapDefault() Param {
	return ckksBootstrapParam(1 << 16)
}

// ckksBtpQ and ckksBtpP are the N16QP1546H192H32 moduli chains shared by the
// toy and production bootstrap parameter sets; only the ring dimension
// differs between the two.
var (
	ckksBtpQ = []uint64{
		0x10000000006E0001,
		0x10000140001,
		0xFFFFE80001,
		0xFFFFC40001,
		0x100003E0001,
		0xFFFFB20001,
		0x10000500001,
		0xFFFF940001,
		0xFFFF8A0001,
		0xFFFF820001,
		0x7FFFE60001,
		0x7FFFE40001,
		0x7FFFE00001,
		0xFFFFFFFFF840001,
		0x1000000000860001,
		0xFFFFFFFFF6A0001,
		0x1000000000980001,
		0xFFFFFFFFF5A0001,
		0x1000000000B00001,
		0x1000000000CE0001,
		0xFFFFFFFFF2A0001,
		0x100000000060001,
		0xFFFFFFFFF00001,
		0xFFFFFFFFD80001,
		0x1000000002A0001,
	}
	ckksBtpP = []uint64{
		0x1FFFFFFFFFE00001,
		0x1FFFFFFFFFC80001,
		0x1FFFFFFFFFB40001,
		0x1FFFFFFFFF500001,
		0x1FFFFFFFFF420001,
	}
)

func ckksBootstrapParam(n int) Param {
	return Param{
		Scheme:   CKKS,
		N:        n,
		Q:        append([]uint64(nil), ckksBtpQ...),
		P:        append([]uint64(nil), ckksBtpP...),
		MaxLevel: len(ckksBtpQ) - 1,
		Scale:    1 << 40,
		Bootstrap: &BootstrapLevels{
			OutputLevel:       9,
			CtsStartLevel:     24,
			EvalModStartLevel: 20,
			StcStartLevel:     12,
		},
	}
}
