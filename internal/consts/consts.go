package consts

const (
	MaxEquations = 10 // Upper bound on unknowns accepted from input

	ResidualAbsTol = 1e-9 // Absolute residual tolerance (|Ax-b|)
	ResidualRelTol = 1e-9 // Relative residual tolerance, scaled by |b|
)

const (
	NodalSelector = 'A' // Nodal analysis, unknowns V1..Vn
	MeshSelector  = 'B' // Mesh analysis, unknowns I1..In
)
