// becke_test.go --  This file is part of goHF project.
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
package grid

import (
	"errors"
	"math"
	"testing"
)

func gaussian(g *Becke, alpha float64, c [3]float64) []float64 {
	res := make([]float64, g.Size())
	norm := math.Pow(alpha/math.Pi, 1.5)
	for i, p := range g.Points() {
		res[i] = norm * math.Exp(-alpha*sqdist(p, c))
	}
	return res
}

func TestIntegrateGaussians(t *testing.T) {
	centers := [][3]float64{{0, 0, 0}, {0, 0, 1.4}}
	g, err := NewBecke(centers, []int{1, 1}, Config{NRadial: 40, NTheta: 12})
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		alpha float64
		c     [3]float64
	}{
		{0.5, centers[0]},
		{3.0, centers[1]},
		{0.17, [3]float64{0, 0, 0.7}},
	}
	for _, test := range tests {
		got := g.Integrate(gaussian(g, test.alpha, test.c))
		if math.Abs(got-1) > 1e-3 {
			t.Errorf("alpha %v: got %v, wanted 1\n", test.alpha, got)
		}
	}
}

func TestIntegrateProduct(t *testing.T) {
	g, err := NewBecke([][3]float64{{0, 0, 0}}, []int{2}, Config{NRadial: 40, NTheta: 8})
	if err != nil {
		t.Fatal(err)
	}
	a := gaussian(g, 1.0, [3]float64{})
	ones := make([]float64, g.Size())
	for i := range ones {
		ones[i] = 1
	}
	if got, want := g.Integrate(a, ones), g.Integrate(a); got != want {
		t.Errorf("got %v, wanted %v\n", got, want)
	}
	// int (1/pi)^3 exp(-2 r^2) = (1/pi)^3 (pi/2)^1.5
	want := math.Pow(1/math.Pi, 3) * math.Pow(math.Pi/2, 1.5)
	if got := g.Integrate(a, a); math.Abs(got-want) > 1e-6 {
		t.Errorf("got %v, wanted %v\n", got, want)
	}
}

func TestPartitionOfUnity(t *testing.T) {
	centers := [][3]float64{{0, 0, 0}, {1, 0, 0}, {0, 1.5, 0}}
	p := [3]float64{0.3, 0.4, 0.1}
	sum := 0.0
	for a := range centers {
		sum += partition(p, a, centers)
	}
	if math.Abs(sum-1) > 1e-14 {
		t.Errorf("got %v, wanted 1\n", sum)
	}
}

func TestBadConfig(t *testing.T) {
	_, err := NewBecke([][3]float64{{0, 0, 0}}, []int{1}, Config{NRadial: 1, NTheta: 8})
	if !errors.Is(err, ErrBadConfig) {
		t.Errorf("got %v, wanted %v\n", err, ErrBadConfig)
	}
}
