// cache.go --  This file is part of goHF project.
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

// Package cache stores intermediate quantities of one density-matrix
// evaluation point. Every entry carries the epoch it was stored in; Reset
// starts a new epoch and thereby invalidates all entries at once. Stale
// values are kept so that their buffers can be reused by Acquire.
package cache

import (
	"golang.org/x/exp/slices"
)

type entry struct {
	epoch uint64
	value any
}

type Cache struct {
	epoch   uint64
	entries map[string]*entry
}

func New() *Cache {
	return &Cache{epoch: 1, entries: make(map[string]*entry)}
}

// Reset invalidates every entry.
func (c *Cache) Reset() { c.epoch++ }

func (c *Cache) Epoch() uint64 { return c.epoch }

// Store sets key to value in the current epoch.
func (c *Cache) Store(key string, value any) {
	if e, ok := c.entries[key]; ok {
		e.epoch, e.value = c.epoch, value
		return
	}
	c.entries[key] = &entry{epoch: c.epoch, value: value}
}

// Valid reports whether key was stored in the current epoch.
func (c *Cache) Valid(key string) bool {
	e, ok := c.entries[key]
	return ok && e.epoch == c.epoch
}

// Discard drops key, valid or not.
func (c *Cache) Discard(key string) { delete(c.entries, key) }

// Keys lists the valid keys in sorted order.
func (c *Cache) Keys() []string {
	var keys []string
	for k, e := range c.entries {
		if e.epoch == c.epoch {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}

// Load returns the value of a valid entry. The second result is false when
// the key is missing, stale or holds a different type.
func Load[T any](c *Cache, key string) (T, bool) {
	var zero T
	e, ok := c.entries[key]
	if !ok || e.epoch != c.epoch {
		return zero, false
	}
	v, ok := e.value.(T)
	if !ok {
		return zero, false
	}
	return v, true
}

// Acquire returns the value stored under key and whether it still has to be
// computed. A valid entry is returned as is with fresh == false. A stale entry
// of the right type is handed back for reuse, a missing one is created with
// alloc; both are stamped with the current epoch and fresh is true, so the
// caller must fill the value before anybody else reads it.
func Acquire[T any](c *Cache, key string, alloc func() T) (value T, fresh bool) {
	if e, ok := c.entries[key]; ok {
		if v, ok := e.value.(T); ok {
			if e.epoch == c.epoch {
				return v, false
			}
			e.epoch = c.epoch
			return v, true
		}
	}
	v := alloc()
	c.Store(key, v)
	return v, true
}
