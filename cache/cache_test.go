// cache_test.go --  This file is part of goHF project.
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
package cache

import (
	"reflect"
	"testing"
)

func TestStoreLoad(t *testing.T) {
	c := New()
	c.Store("energy_kin", 1.5)
	got, ok := Load[float64](c, "energy_kin")
	if !ok || got != 1.5 {
		t.Errorf("got %v %v, wanted 1.5 true\n", got, ok)
	}
	if _, ok := Load[[]float64](c, "energy_kin"); ok {
		t.Errorf("got ok for wrong type, wanted false\n")
	}
	if _, ok := Load[float64](c, "missing"); ok {
		t.Errorf("got ok for missing key, wanted false\n")
	}
}

func TestResetInvalidates(t *testing.T) {
	c := New()
	c.Store("a", 1.0)
	epoch := c.Epoch()
	c.Reset()
	if c.Epoch() != epoch+1 {
		t.Errorf("got epoch %v, wanted %v\n", c.Epoch(), epoch+1)
	}
	if c.Valid("a") {
		t.Errorf("got valid entry after reset\n")
	}
	if _, ok := Load[float64](c, "a"); ok {
		t.Errorf("got stale value from Load\n")
	}
	c.Store("a", 2.0)
	if got, _ := Load[float64](c, "a"); got != 2.0 {
		t.Errorf("got %v, wanted 2\n", got)
	}
}

func TestAcquire(t *testing.T) {
	c := New()
	allocs := 0
	alloc := func() []float64 {
		allocs++
		return make([]float64, 3)
	}
	buf, fresh := Acquire(c, "rho_alpha", alloc)
	if !fresh || allocs != 1 {
		t.Fatalf("got fresh=%v allocs=%d, wanted true 1\n", fresh, allocs)
	}
	buf[0] = 7
	again, fresh := Acquire(c, "rho_alpha", alloc)
	if fresh || again[0] != 7 {
		t.Errorf("got fresh=%v value=%v, wanted cached value\n", fresh, again)
	}
	c.Reset()
	reused, fresh := Acquire(c, "rho_alpha", alloc)
	if !fresh || allocs != 1 || &reused[0] != &buf[0] {
		t.Errorf("got fresh=%v allocs=%d, wanted stale buffer reused\n", fresh, allocs)
	}
	if !c.Valid("rho_alpha") {
		t.Errorf("acquired entry not stamped with current epoch\n")
	}
}

func TestKeys(t *testing.T) {
	c := New()
	c.Store("b", 1)
	c.Store("a", 2)
	c.Store("old", 3)
	c.Reset()
	c.Store("b", 1)
	c.Store("a", 2)
	got := c.Keys()
	want := []string{"a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, wanted %v\n", got, want)
	}
	c.Discard("a")
	if c.Valid("a") {
		t.Errorf("got discarded key still valid\n")
	}
}
