package a2a

// Mode selects the shape of every transfer in an all-to-all run.
//
// Copy transfers read from the source device and write to the destination device.
// ReadOnly transfers only read from the source; WriteOnly transfers only write to the
// destination. The engine still associates each transfer with its (source, destination)
// pair, so the bandwidth matrix keeps the same shape in all three modes.
type Mode int

//go:generate go tool enumer -type=Mode -trimprefix=Mode -output=gen_mode_enumer.go mode.go

const (
	ModeCopy Mode = iota
	ModeReadOnly
	ModeWriteOnly
)

// HasSrc reports whether transfers in this mode carry a source endpoint.
func (m Mode) HasSrc() bool { return m != ModeWriteOnly }

// HasDst reports whether transfers in this mode carry a destination endpoint.
func (m Mode) HasDst() bool { return m != ModeReadOnly }
