package matrix

// Loader is the write side of a system as seen by an equation parser.
// Rows and columns are 0-based.
type Loader interface {
	Size() int
	AddCoefficient(row, col int, value float64) // accumulates
	SetCoefficient(row, col int, value float64) // overwrites
	SetConstant(row int, value float64)         // overwrites
}
