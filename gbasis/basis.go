// basis.go --  This file is part of goHF project.
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

// Package gbasis provides contracted s-type Gaussian basis functions, their
// one- and two-electron integrals and their values on grid points.
package gbasis

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrUnknownBasis   = errors.New("gbasis: unknown basis set")
	ErrUnknownElement = errors.New("gbasis: element not available in basis set")
)

type PrimitiveGaussian struct {
	Alpha float64
	Coeff float64
}

// NormCoeff is the normalization constant of an s-type primitive.
func (p PrimitiveGaussian) NormCoeff() float64 {
	return math.Pow(2*p.Alpha/math.Pi, 0.75)
}

// AO is one contracted s-type atomic orbital.
type AO struct {
	Center [3]float64
	PGs    []PrimitiveGaussian
}

// Basis is an ordered set of AOs. It is immutable once built and may be
// shared between concurrent calculations.
type Basis struct {
	Name string
	AOs  []AO
}

// New places the contractions of basis set name on every center.
// Coordinates are in bohr.
func New(name string, centers [][3]float64, numbers []int) (*Basis, error) {
	if len(centers) != len(numbers) {
		return nil, fmt.Errorf("gbasis: %d centers but %d atomic numbers", len(centers), len(numbers))
	}
	b := &Basis{Name: strings.ToLower(name)}
	for i, z := range numbers {
		shells, err := Lookup(name, z)
		if err != nil {
			return nil, err
		}
		for _, pgs := range shells {
			b.AOs = append(b.AOs, AO{Center: centers[i], PGs: normalize(pgs)})
		}
	}
	return b, nil
}

func (b *Basis) NBasis() int { return len(b.AOs) }

// normalize scales the contraction coefficients so that <ao|ao> = 1.
func normalize(pgs []PrimitiveGaussian) []PrimitiveGaussian {
	res := make([]PrimitiveGaussian, len(pgs))
	copy(res, pgs)
	ao := AO{PGs: res}
	norm := overlapAO(ao, ao)
	for i := range res {
		res[i].Coeff /= math.Sqrt(norm)
	}
	return res
}

// Evaluate writes the value of every AO at point into out.
func (b *Basis) Evaluate(point [3]float64, out []float64) {
	for mu, ao := range b.AOs {
		r2 := dist2(point, ao.Center)
		val := 0.0
		for _, pg := range ao.PGs {
			val += pg.Coeff * pg.NormCoeff() * math.Exp(-pg.Alpha*r2)
		}
		out[mu] = val
	}
}
