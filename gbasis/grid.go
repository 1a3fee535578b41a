// grid.go --  This file is part of goHF project.
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
package gbasis

import (
	"example.com/gohf/linalg"
)

// ComputeGridDensity writes rho(r) = sum_ij dm_ij phi_i(r) phi_j(r) for
// every point into rho.
func (b *Basis) ComputeGridDensity(dm *linalg.TwoIndex, points [][3]float64, rho []float64) {
	n := b.NBasis()
	phi := make([]float64, n)
	for g, point := range points {
		b.Evaluate(point, phi)
		val := 0.0
		for i := 0; i < n; i++ {
			if phi[i] == 0 {
				continue
			}
			row := 0.0
			for j := 0; j < n; j++ {
				row += dm.At(i, j) * phi[j]
			}
			val += phi[i] * row
		}
		rho[g] = val
	}
}

// ComputeGridFock adds sum_g w_g pot_g phi_i(r_g) phi_j(r_g) to fock.
func (b *Basis) ComputeGridFock(points [][3]float64, weights, pot []float64, fock *linalg.TwoIndex) {
	n := b.NBasis()
	phi := make([]float64, n)
	acc := make([]float64, n*n)
	for g, point := range points {
		wv := weights[g] * pot[g]
		if wv == 0 {
			continue
		}
		b.Evaluate(point, phi)
		for i := 0; i < n; i++ {
			f := wv * phi[i]
			for j := 0; j <= i; j++ {
				acc[i*n+j] += f * phi[j]
			}
		}
	}
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			v := acc[i*n+j]
			fock.Set(i, j, fock.At(i, j)+v)
			if i != j {
				fock.Set(j, i, fock.At(j, i)+v)
			}
		}
	}
}
