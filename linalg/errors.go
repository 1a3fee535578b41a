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
package linalg

import "errors"

var (
	// ErrDimensionMismatch is raised when two operators do not share the
	// same basis dimension.
	ErrDimensionMismatch = errors.New("linalg: dimension mismatch")

	// ErrAsymmetry signals that an operator expected to be symmetric is not.
	ErrAsymmetry = errors.New("linalg: operator is not symmetric")

	// ErrEigenFailed is returned when a symmetric eigendecomposition fails or
	// the overlap operator is not positive definite.
	ErrEigenFailed = errors.New("linalg: eigen decomposition failed")
)
