// becke.go --  This file is part of goHF project.
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

// Package grid builds molecular integration grids: atom-centered spherical
// product grids glued together with Becke's fuzzy cell partition.
package grid

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate/quad"
)

const a_B = 0.52917720859

var ErrBadConfig = errors.New("grid: invalid configuration")

// Bragg-Slater radii in angstrom; H uses Becke's 0.35.
var braggSlater = map[int]float64{
	1: 0.35, 2: 0.35, 3: 1.45, 4: 1.05, 5: 0.85, 6: 0.70, 7: 0.65, 8: 0.60, 9: 0.50, 10: 0.45,
}

type Config struct {
	NRadial int // radial shells per atom
	NTheta  int // polar nodes; the azimuth gets twice as many
}

func DefaultConfig() Config { return Config{NRadial: 50, NTheta: 16} }

type Becke struct {
	points  [][3]float64
	weights []float64
}

// NewBecke builds the grid for atoms at centers (bohr) with atomic numbers.
func NewBecke(centers [][3]float64, numbers []int, cfg Config) (*Becke, error) {
	if cfg.NRadial < 2 || cfg.NTheta < 2 {
		return nil, fmt.Errorf("%+v: %w", cfg, ErrBadConfig)
	}
	if len(centers) != len(numbers) || len(centers) == 0 {
		return nil, fmt.Errorf("%d centers, %d numbers: %w", len(centers), len(numbers), ErrBadConfig)
	}

	rx := make([]float64, cfg.NRadial)
	rw := make([]float64, cfg.NRadial)
	quad.Legendre{}.FixedLocations(rx, rw, -1, 1)
	tx := make([]float64, cfg.NTheta)
	tw := make([]float64, cfg.NTheta)
	quad.Legendre{}.FixedLocations(tx, tw, -1, 1)
	nphi := 2 * cfg.NTheta
	dphi := 2 * math.Pi / float64(nphi)

	g := &Becke{}
	for a, c := range centers {
		rm := 1.0
		if r, ok := braggSlater[numbers[a]]; ok {
			rm = r / a_B
			if numbers[a] != 1 {
				rm *= 0.5
			}
		}
		for ir, x := range rx {
			r := rm * (1 + x) / (1 - x)
			wr := rw[ir] * 2 * rm / ((1 - x) * (1 - x)) * r * r
			for it, ct := range tx {
				st := math.Sqrt(1 - ct*ct)
				for ip := 0; ip < nphi; ip++ {
					phi := (float64(ip) + 0.5) * dphi
					p := [3]float64{
						c[0] + r*st*math.Cos(phi),
						c[1] + r*st*math.Sin(phi),
						c[2] + r*ct,
					}
					w := wr * tw[it] * dphi * partition(p, a, centers)
					if w == 0 {
						continue
					}
					g.points = append(g.points, p)
					g.weights = append(g.weights, w)
				}
			}
		}
	}
	return g, nil
}

// partition is Becke's cell function of atom a at point p.
func partition(p [3]float64, a int, centers [][3]float64) float64 {
	if len(centers) == 1 {
		return 1
	}
	dist := make([]float64, len(centers))
	for i, c := range centers {
		dist[i] = math.Sqrt(sqdist(p, c))
	}
	total, own := 0.0, 0.0
	for i := range centers {
		cell := 1.0
		for j := range centers {
			if i == j {
				continue
			}
			mu := (dist[i] - dist[j]) / math.Sqrt(sqdist(centers[i], centers[j]))
			cell *= 0.5 * (1 - step(step(step(mu))))
			if cell == 0 {
				break
			}
		}
		total += cell
		if i == a {
			own = cell
		}
	}
	if total == 0 {
		return 0
	}
	return own / total
}

func step(mu float64) float64 { return 1.5*mu - 0.5*mu*mu*mu }

func sqdist(a, b [3]float64) float64 {
	dx, dy, dz := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return dx*dx + dy*dy + dz*dz
}

func (g *Becke) Size() int { return len(g.points) }

func (g *Becke) Points() [][3]float64 { return g.points }

func (g *Becke) Weights() []float64 { return g.weights }

// Integrate returns sum_g w_g prod_k values[k][g].
func (g *Becke) Integrate(values ...[]float64) float64 {
	if len(values) == 0 {
		return floats.Sum(g.weights)
	}
	prod := make([]float64, len(g.weights))
	copy(prod, g.weights)
	for _, v := range values {
		floats.Mul(prod, v)
	}
	return floats.Sum(prod)
}
