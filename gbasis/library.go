// library.go --  This file is part of goHF project.
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
	"fmt"
	"strings"
)

// contractions per basis set and atomic number, one slice per AO
var library = map[string]map[int][][]PrimitiveGaussian{
	"sto-3g": {
		1: {
			{{0.3425250914e+01, 0.1543289673e+00}, {0.6239137298e+00, 0.5353281423e+00}, {0.1688554040e+00, 0.4446345422e+00}},
		},
		2: {
			{{0.6362421394e+01, 0.1543289673e+00}, {0.1158922999e+01, 0.5353281423e+00}, {0.3136497915e+00, 0.4446345422e+00}},
		},
	},
	"6-31g": {
		1: {
			{{0.1873113696e+02, 0.3349460434e-01}, {0.2825394365e+01, 0.2347269535e+00}, {0.6401216923e+00, 0.8137573261e+00}},
			{{0.1612777588e+00, 1.0000000}},
		},
		2: {
			{{0.3842163400e+02, 0.4013973935e-01}, {0.5778030000e+01, 0.2612460970e+00}, {0.1241774000e+01, 0.7931846246e+00}},
			{{0.2979640000e+00, 1.0000000}},
		},
	},
}

// Lookup returns the contractions of basis set name for element z.
func Lookup(name string, z int) ([][]PrimitiveGaussian, error) {
	set, ok := library[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownBasis)
	}
	shells, ok := set[z]
	if !ok {
		return nil, fmt.Errorf("%s, Z=%d: %w", name, z, ErrUnknownElement)
	}
	return shells, nil
}
