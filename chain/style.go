package chain

// Style configures the layout of one kind of chain
type Style struct {
	// BreakSingle keeps a chain with a single link flat regardless of width
	BreakSingle bool
	// SpaceAroundSeparator surrounds the separator with spaces
	SpaceAroundSeparator bool
}

var (
	// DotStyle lays out field access and method call chains
	DotStyle = Style{BreakSingle: true}
	// BinaryStyle lays out runs of same-precedence binary operators
	BinaryStyle = Style{SpaceAroundSeparator: true}
)
