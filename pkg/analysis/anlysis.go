package analysis

import (
	"log"
	"math"

	"github.com/edp1096/nodemesh/internal/consts"
	"github.com/edp1096/nodemesh/pkg/circuit"
	"github.com/edp1096/nodemesh/pkg/util"
)

type Analysis interface {
	Setup(ckt *circuit.Circuit) error
	Execute() error
	GetResults() map[string][]float64
}

type BaseAnalysis struct {
	Circuit   *circuit.Circuit
	results   map[string][]float64 // key: unknown name, value: solved value
	logger    *log.Logger
	tolerance struct {
		abstol float64
		reltol float64
	}
}

func NewBaseAnalysis() *BaseAnalysis {
	ba := &BaseAnalysis{results: make(map[string][]float64)}

	ba.tolerance.abstol = consts.ResidualAbsTol
	ba.tolerance.reltol = consts.ResidualRelTol

	return ba
}

// SetLogger enables warnings such as a residual above tolerance.
func (a *BaseAnalysis) SetLogger(l *log.Logger) {
	a.logger = l
}

// CheckResidual reports whether residual is acceptable for right-hand
// side b.
func (a *BaseAnalysis) CheckResidual(residual float64, b []float64) bool {
	if math.IsNaN(residual) {
		return false
	}
	return residual <= a.tolerance.abstol+a.tolerance.reltol*util.AbsMax(b)
}

func (a *BaseAnalysis) storeResult(name string, value float64) {
	a.results[name] = []float64{value}
}

func (a *BaseAnalysis) GetResults() map[string][]float64 {
	return a.results
}
