package config

// EncoderParams configures a basen.Encoder — spec.md §4.E
// initialize(alphabet, bits_per_char, padding?).
type EncoderParams struct {
	Alphabet    []byte `mapstructure:"alphabet"`
	BitsPerChar int    `mapstructure:"bits_per_char"`
	PaddingByte byte   `mapstructure:"padding_byte"`
	Pad         bool   `mapstructure:"pad"`
}

// DecoderParams configures a basen.Decoder — spec.md §4.F
// initialize(lookup, bits_per_char), expressed here in terms of the
// alphabet the lookup table is built from rather than the raw table,
// since the table itself is a derived value.
type DecoderParams struct {
	Alphabet        []byte `mapstructure:"alphabet"`
	BitsPerChar     int    `mapstructure:"bits_per_char"`
	CaseInsensitive bool   `mapstructure:"case_insensitive"`
}

// GrouperParams configures a basen.Grouper — spec.md §4.G
// initialize(group_size, separator?, terminator?).
type GrouperParams struct {
	GroupSize  int    `mapstructure:"group_size"`
	Separator  []byte `mapstructure:"separator"`
	Terminator []byte `mapstructure:"terminator"`
}

// KeyParams configures an aes.Cipher from a host framework's dynamic
// parameter bag.
type KeyParams struct {
	Key []byte `mapstructure:"key"`
}
