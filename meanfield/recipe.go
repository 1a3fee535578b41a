// recipe.go --  This file is part of goHF project.
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
	"strings"

	"example.com/gohf/linalg"
)

// Integrals holds the operators the standard recipes are built from.
// Basis and Grid are only needed by recipes with a density functional.
type Integrals struct {
	Kinetic           *linalg.TwoIndex
	NuclearAttraction *linalg.TwoIndex
	Repulsion         *linalg.FourIndex
	Basis             GridBasis
	Grid              Grid
}

var recipes = map[string]func(ints Integrals) []Term{
	"hf": func(ints Integrals) []Term {
		return []Term{NewExchangeTerm(ints.Repulsion, "x_hf", 1)}
	},
	"hfs": func(ints Integrals) []Term {
		return []Term{NewGridGroup(ints.Basis, ints.Grid, NewDiracExchange(1))}
	},
	"lda": func(ints Integrals) []Term {
		return []Term{NewGridGroup(ints.Basis, ints.Grid, NewDiracExchange(1), NewPW92Correlation())}
	},
	"halfhalf": func(ints Integrals) []Term {
		return []Term{
			NewExchangeTerm(ints.Repulsion, "x_hf", 0.5),
			NewGridGroup(ints.Basis, ints.Grid, NewDiracExchange(0.5), NewPW92Correlation()),
		}
	},
}

// Recipes lists the names accepted by NewFromRecipe.
func Recipes() []string { return []string{"hf", "hfs", "lda", "halfhalf"} }

// NewFromRecipe builds the Hamiltonian of a named method: kinetic energy,
// nuclear attraction and Hartree terms plus the method's exchange and
// correlation.
func NewFromRecipe(recipe string, ndm int, ints Integrals, external map[string]float64) (*EffHam, error) {
	xc, ok := recipes[strings.ToLower(strings.TrimSpace(recipe))]
	if !ok {
		return nil, fmt.Errorf("%q: %w", recipe, ErrUnknownRecipe)
	}
	terms := []Term{
		NewTwoIndexTerm(ints.Kinetic, "kin"),
		NewTwoIndexTerm(ints.NuclearAttraction, "ne"),
		NewDirectTerm(ints.Repulsion, "hartree"),
	}
	return New(ndm, append(terms, xc(ints)...), external)
}
