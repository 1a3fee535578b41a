// gridgroup.go --  This file is part of goHF project.
// Mirzaeva Irina, 2023
//
//	goHF is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
//	You should have received a copy of the GNU General Public License
//	along with this program.  If not, see http://www.gnu.org/licenses/
//
// ------------------------------------------------
package meanfield

import (
	"fmt"
	"reflect"
	"strings"

	"example.com/gohf/cache"
	"example.com/gohf/linalg"
)

// Grid is a molecular integration grid.
type Grid interface {
	Points() [][3]float64
	Weights() []float64
	Integrate(values ...[]float64) float64
}

// GridBasis maps density matrices to densities on grid points and
// potentials on grid points back to Fock operators.
type GridBasis interface {
	NBasis() int
	ComputeGridDensity(dm *linalg.TwoIndex, points [][3]float64, rho []float64)
	// ComputeGridFock adds sum_g w_g pot_g phi_i(r_g) phi_j(r_g) to fock.
	ComputeGridFock(points [][3]float64, weights, pot []float64, fock *linalg.TwoIndex)
}

// Functional is a local density functional. Compute adds the energy density
// and the potentials of each spin channel to the output slices.
type Functional interface {
	Label() string
	Compute(rhoAlpha, rhoBeta, edens, potAlpha, potBeta []float64)
}

// GridGroup evaluates several functionals on a shared density.
// The density on the grid is computed at most once per reset.
type GridGroup struct {
	basis       GridBasis
	grid        Grid
	functionals []Functional
	label       string
}

func NewGridGroup(basis GridBasis, grid Grid, functionals ...Functional) *GridGroup {
	labels := make([]string, len(functionals))
	for i, f := range functionals {
		labels[i] = f.Label()
	}
	return &GridGroup{
		basis:       basis,
		grid:        grid,
		functionals: functionals,
		label:       "grid_" + strings.Join(labels, "_"),
	}
}

func (g *GridGroup) Label() string { return g.label }

func (g *GridGroup) Check() (int, error) {
	switch {
	case isNil(g.basis):
		return 0, fmt.Errorf("%s: no basis: %w", g.label, ErrMissingOperator)
	case isNil(g.grid):
		return 0, fmt.Errorf("%s: no grid: %w", g.label, ErrMissingOperator)
	case len(g.functionals) == 0:
		return 0, fmt.Errorf("%s: no functionals: %w", g.label, ErrMissingOperator)
	}
	return g.basis.NBasis(), nil
}

// isNil also catches a nil pointer stored in an interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

func (g *GridGroup) density(st *State, spin int) []float64 {
	points := g.grid.Points()
	rho, fresh := cache.Acquire(st.cache, g.label+"_rho_"+spinNames[spin], func() []float64 {
		return make([]float64, len(points))
	})
	if fresh {
		g.basis.ComputeGridDensity(st.DM(spin), points, rho)
	}
	return rho
}

// evaluate returns the energy density and the potentials of both spin
// channels; for a restricted state only pots[0] is meaningful.
func (g *GridGroup) evaluate(st *State) (edens []float64, pots [2][]float64) {
	npoint := len(g.grid.Weights())
	alloc := func() []float64 { return make([]float64, npoint) }
	edens, fresh := cache.Acquire(st.cache, g.label+"_edens", alloc)
	for spin := range pots {
		pots[spin], _ = cache.Acquire(st.cache, g.label+"_pot_"+spinNames[spin], alloc)
	}
	if !fresh {
		return edens, pots
	}
	clear(edens)
	clear(pots[0])
	clear(pots[1])
	rhoA := g.density(st, 0)
	rhoB := rhoA
	if !st.Restricted() {
		rhoB = g.density(st, 1)
	}
	for _, f := range g.functionals {
		f.Compute(rhoA, rhoB, edens, pots[0], pots[1])
	}
	return edens, pots
}

func (g *GridGroup) ComputeEnergy(st *State) float64 {
	edens, _ := g.evaluate(st)
	return g.grid.Integrate(edens)
}

func (g *GridGroup) AddFock(st *State, focks []*linalg.TwoIndex) {
	_, pots := g.evaluate(st)
	for spin, fock := range focks {
		op, fresh := cache.Acquire(st.cache, "op_"+g.label+"_"+spinNames[spin], st.alloc)
		if fresh {
			op.Reset()
			g.basis.ComputeGridFock(g.grid.Points(), g.grid.Weights(), pots[spin], op)
		}
		fock.AddScaled(op, 1)
	}
}
