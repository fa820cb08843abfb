package usecase

// Export for testing
var (
	Truncate    = truncate
	EncodeValue = encodeValue
	FormatText  = formatText
)
