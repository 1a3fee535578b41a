// integrals.go --  This file is part of goHF project.
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

// По мотивам https://github.com/nickelandcopper/HartreeFockPythonProgram/blob/main/Hartree_Fock_Program.ipynb

import (
	"math"

	"gonum.org/v1/gonum/mathext"

	"example.com/gohf/linalg"
)

func dist2(a, b [3]float64) float64 {
	dx, dy, dz := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return dx*dx + dy*dy + dz*dz
}

// gaussian product center (a1*A + a2*B)/(a1+a2)
func center(a1, a2 float64, v1, v2 [3]float64) [3]float64 {
	var res [3]float64
	for i := range res {
		res[i] = (a1*v1[i] + a2*v2[i]) / (a1 + a2)
	}
	return res
}

func boys(x float64, n int) float64 {
	nf := float64(n)
	if x < 1e-12 {
		return 1.0/(2.0*nf+1) - x/(2.0*nf+3)
	}
	return mathext.GammaIncReg(nf+0.5, x) * math.Gamma(nf+0.5) * (1.0 / (2.0 * math.Pow(x, nf+0.5)))
}

func overlapAO(a, b AO) float64 {
	res := 0.0
	q2 := dist2(a.Center, b.Center)
	for _, pa := range a.PGs {
		for _, pb := range b.PGs {
			N := pa.NormCoeff() * pb.NormCoeff()
			p := pa.Alpha + pb.Alpha
			q := pa.Alpha * pb.Alpha / p
			res += N * pa.Coeff * pb.Coeff * math.Exp(-q*q2) * math.Pow(math.Pi/p, 1.5)
		}
	}
	return res
}

func kineticAO(a, b AO) float64 {
	res := 0.0
	q2 := dist2(a.Center, b.Center)
	for _, pa := range a.PGs {
		for _, pb := range b.PGs {
			N := pa.NormCoeff() * pb.NormCoeff()
			p := pa.Alpha + pb.Alpha
			q := pa.Alpha * pb.Alpha / p
			s := N * pa.Coeff * pb.Coeff * math.Exp(-q*q2) * math.Pow(math.Pi/p, 1.5)
			res += q * (3 - 2*q*q2) * s
		}
	}
	return res
}

func nuclearAO(a, b AO, c [3]float64, charge float64) float64 {
	res := 0.0
	q2 := dist2(a.Center, b.Center)
	for _, pa := range a.PGs {
		for _, pb := range b.PGs {
			N := pa.NormCoeff() * pb.NormCoeff()
			p := pa.Alpha + pb.Alpha
			q := pa.Alpha * pb.Alpha / p
			P := center(pa.Alpha, pb.Alpha, a.Center, b.Center)
			res += -charge * N * pa.Coeff * pb.Coeff * math.Exp(-q*q2) * (2.0 * math.Pi / p) * boys(p*dist2(P, c), 0)
		}
	}
	return res
}

func repulsionAO(a, b, c, d AO) float64 {
	res := 0.0
	q2ab := dist2(a.Center, b.Center)
	q2cd := dist2(c.Center, d.Center)
	for _, pa := range a.PGs {
		for _, pb := range b.PGs {
			pij := pa.Alpha + pb.Alpha
			qij := pa.Alpha * pb.Alpha / pij
			Pij := center(pa.Alpha, pb.Alpha, a.Center, b.Center)
			nab := pa.NormCoeff() * pb.NormCoeff() * pa.Coeff * pb.Coeff * math.Exp(-qij*q2ab)
			for _, pc := range c.PGs {
				for _, pd := range d.PGs {
					pkl := pc.Alpha + pd.Alpha
					qkl := pc.Alpha * pd.Alpha / pkl
					Pkl := center(pc.Alpha, pd.Alpha, c.Center, d.Center)
					ncd := pc.NormCoeff() * pd.NormCoeff() * pc.Coeff * pd.Coeff * math.Exp(-qkl*q2cd)

					term1 := 2.0 * math.Pi * math.Pi / (pij * pkl)
					term2 := math.Sqrt(math.Pi / (pij + pkl))
					denom := 1.0/pij + 1.0/pkl
					res += nab * ncd * term1 * term2 * boys(dist2(Pij, Pkl)/denom, 0)
				}
			}
		}
	}
	return res
}

func (b *Basis) oneBody(f func(a, b AO) float64) *linalg.TwoIndex {
	res := linalg.NewTwoIndex(b.NBasis())
	for i := range b.AOs {
		for j := 0; j <= i; j++ {
			res.SetSymmetric(i, j, f(b.AOs[i], b.AOs[j]))
		}
	}
	return res
}

func (b *Basis) Overlap() *linalg.TwoIndex { return b.oneBody(overlapAO) }

func (b *Basis) Kinetic() *linalg.TwoIndex { return b.oneBody(kineticAO) }

// NuclearAttraction sums the attraction to point charges at centers.
func (b *Basis) NuclearAttraction(centers [][3]float64, charges []float64) *linalg.TwoIndex {
	return b.oneBody(func(x, y AO) float64 {
		res := 0.0
		for at := range centers {
			res += nuclearAO(x, y, centers[at], charges[at])
		}
		return res
	})
}

// ElectronRepulsion computes every unique (ij|kl) once and stores it with
// its eight symmetric partners.
func (b *Basis) ElectronRepulsion() *linalg.FourIndex {
	n := b.NBasis()
	res := linalg.NewFourIndex(n)
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			ij := i*(i+1)/2 + j
			for k := 0; k < n; k++ {
				for l := 0; l <= k; l++ {
					if k*(k+1)/2+l > ij {
						continue
					}
					res.SetSymmetric(i, j, k, l, repulsionAO(b.AOs[i], b.AOs[j], b.AOs[k], b.AOs[l]))
				}
			}
		}
	}
	return res
}

// NuclearRepulsion returns the nucleus-nucleus repulsion energy.
func NuclearRepulsion(centers [][3]float64, charges []float64) float64 {
	res := 0.0
	for i := range centers {
		for j := 0; j < i; j++ {
			res += charges[i] * charges[j] / math.Sqrt(dist2(centers[i], centers[j]))
		}
	}
	return res
}
