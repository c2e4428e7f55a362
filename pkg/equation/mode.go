package equation

import (
	"fmt"
	"strings"

	"github.com/edp1096/nodemesh/internal/consts"
)

// Mode selects which unknown kind an equation set is written in.
type Mode byte

const (
	Nodal Mode = 'V' // node voltages, volts
	Mesh  Mode = 'I' // loop currents, amps
)

// ParseMode accepts the selector characters A (nodal) and B (mesh) in
// either case, or the unknown tags V and I.
func ParseMode(s string) (Mode, error) {
	s = strings.TrimSpace(s)
	if len(s) != 1 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}

	switch strings.ToUpper(s)[0] {
	case consts.NodalSelector, byte(Nodal):
		return Nodal, nil
	case consts.MeshSelector, byte(Mesh):
		return Mesh, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

func (m Mode) Valid() bool {
	return m == Nodal || m == Mesh
}

// Tag is the letter written in front of an unknown index.
func (m Mode) Tag() string {
	return string(rune(m))
}

// Unit is the physical unit of the unknowns.
func (m Mode) Unit() string {
	if m == Mesh {
		return "A"
	}
	return "V"
}

// Name returns the display name of unknown i (1-based), e.g. "V3".
func (m Mode) Name(i int) string {
	return fmt.Sprintf("%s%d", m.Tag(), i)
}

func (m Mode) String() string {
	switch m {
	case Nodal:
		return "nodal"
	case Mesh:
		return "mesh"
	}
	return fmt.Sprintf("Mode(%d)", byte(m))
}
