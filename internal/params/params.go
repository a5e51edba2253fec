package params

const (
	SecParam = 256
	SecBytes = SecParam / 8

	// StatParam is the number of extra bits sampled when reducing uniform bytes
	// modulo a group order.
	StatParam  = 128
	StatBytes  = StatParam / 8
	NonceBytes = SecBytes + StatBytes // = 48

	// BlindingBits is the number of bits of a blinding scalar handled by the
	// ring proof. It covers the Bandersnatch scalar field.
	BlindingBits = 253
)
