// errors.go --  This file is part of goHF project.
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

import "errors"

// Configuration errors are returned by the constructors and by Reset.
var (
	ErrNoTerms           = errors.New("meanfield: no energy terms")
	ErrSpinArity         = errors.New("meanfield: wrong number of spin channels")
	ErrMissingOperator   = errors.New("meanfield: required operator not supplied")
	ErrDimensionMismatch = errors.New("meanfield: basis dimension mismatch")
	ErrDuplicateLabel    = errors.New("meanfield: duplicate term label")
	ErrUnknownRecipe     = errors.New("meanfield: unknown recipe")
)

// ErrAsymmetricFock means a term produced a non-symmetric Fock contribution.
// It points at a bug in a term, not at bad input data.
var ErrAsymmetricFock = errors.New("meanfield: fock operator is not symmetric")
