// functionals.go --  This file is part of goHF project.
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

import "math"

const rhoCutoff = 1e-14

// DiracExchange is the spin-polarized Slater-Dirac exchange of the uniform
// electron gas, scaled by Scale.
type DiracExchange struct {
	Scale float64
}

func NewDiracExchange(scale float64) *DiracExchange { return &DiracExchange{Scale: scale} }

func (x *DiracExchange) Label() string { return "x" }

func (x *DiracExchange) Compute(rhoAlpha, rhoBeta, edens, potAlpha, potBeta []float64) {
	// e = -(3/4) (6/pi)^(1/3) sum_s rho_s^(4/3)
	cv := math.Cbrt(6 / math.Pi)
	ce := 0.75 * cv
	for g := range edens {
		ra, rb := rhoAlpha[g], rhoBeta[g]
		if ra > rhoCutoff {
			c := math.Cbrt(ra)
			edens[g] -= x.Scale * ce * ra * c
			potAlpha[g] -= x.Scale * cv * c
		}
		if rb > rhoCutoff {
			c := math.Cbrt(rb)
			edens[g] -= x.Scale * ce * rb * c
			potBeta[g] -= x.Scale * cv * c
		}
	}
}

// pwParams are the fit parameters of one PW92 interpolation function G.
type pwParams struct {
	a, alpha1, beta1, beta2, beta3, beta4 float64
}

var (
	pwParamagnetic  = pwParams{0.0310907, 0.21370, 7.5957, 3.5876, 1.6382, 0.49294}
	pwFerromagnetic = pwParams{0.01554535, 0.20548, 14.1189, 6.1977, 3.3662, 0.62517}
	// minus the spin stiffness
	pwStiffness = pwParams{0.0168869, 0.11125, 10.357, 3.6231, 0.88026, 0.49671}
)

const pwFpp0 = 1.709921

// g returns G(rs) and dG/drs.
func (p pwParams) g(rs float64) (float64, float64) {
	srs := math.Sqrt(rs)
	q0 := -2 * p.a * (1 + p.alpha1*rs)
	q1 := 2 * p.a * (p.beta1*srs + p.beta2*rs + p.beta3*rs*srs + p.beta4*rs*rs)
	dq1 := p.a * (p.beta1/srs + 2*p.beta2 + 3*p.beta3*srs + 4*p.beta4*rs)
	lg := math.Log1p(1 / q1)
	return q0 * lg, -2*p.a*p.alpha1*lg - q0*dq1/(q1*q1+q1)
}

// PW92Correlation is the Perdew-Wang 1992 parametrization of the uniform
// electron gas correlation energy.
type PW92Correlation struct{}

func NewPW92Correlation() *PW92Correlation { return &PW92Correlation{} }

func (c *PW92Correlation) Label() string { return "c_pw92" }

func (c *PW92Correlation) Compute(rhoAlpha, rhoBeta, edens, potAlpha, potBeta []float64) {
	fdenom := math.Pow(2, 4.0/3) - 2
	for g := range edens {
		ra, rb := math.Max(rhoAlpha[g], 0), math.Max(rhoBeta[g], 0)
		rho := ra + rb
		if rho < rhoCutoff {
			continue
		}
		zeta := math.Max(-1, math.Min(1, (ra-rb)/rho))
		rs := math.Cbrt(3 / (4 * math.Pi * rho))

		e0, de0 := pwParamagnetic.g(rs)
		e1, de1 := pwFerromagnetic.g(rs)
		ga, dga := pwStiffness.g(rs)

		zp, zm := math.Cbrt(1+zeta), math.Cbrt(1-zeta)
		f := ((1+zeta)*zp + (1-zeta)*zm - 2) / fdenom
		df := 4.0 / 3 * (zp - zm) / fdenom
		z3 := zeta * zeta * zeta
		z4 := z3 * zeta

		ec := e0 + ga*f/pwFpp0*(1-z4) + (e1-e0)*f*z4
		decdrs := de0*(1-f*z4) + de1*f*z4 + dga*f/pwFpp0*(1-z4)
		decdz := 4*z3*f*(e1-e0-ga/pwFpp0) + df*(z4*(e1-e0)+(1-z4)*ga/pwFpp0)

		common := ec - rs/3*decdrs
		edens[g] += rho * ec
		potAlpha[g] += common - (zeta-1)*decdz
		potBeta[g] += common - (zeta+1)*decdz
	}
}
