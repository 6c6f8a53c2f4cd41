package render

// DefaultPrecision is the number of decimals used for scores and ratios.
const DefaultPrecision = 3

// RenderOptions carries per-call presentation settings.
type RenderOptions struct {
	// Precision is the number of decimals for scores; zero means
	// DefaultPrecision.
	Precision int
}

// Decimals returns the effective precision.
func (o RenderOptions) Decimals() int {
	if o.Precision <= 0 {
		return DefaultPrecision
	}
	return o.Precision
}
