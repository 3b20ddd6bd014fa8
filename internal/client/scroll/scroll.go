// Package scroll remembers per-navigation-entry scroll positions for the
// life of the process.
package scroll

import "sync"

// Position is a recorded scroll offset.
type Position struct {
	X int
	Y int
}

// Cache maps opaque navigation keys to positions. Keys identify a navigation
// entry, not a URL: revisiting the "same" view through a new navigation gets
// a fresh key and therefore starts at the top. Entries are never evicted.
type Cache struct {
	mu        sync.Mutex
	positions map[string]Position
}

func NewCache() *Cache {
	return &Cache{positions: make(map[string]Position)}
}

// Leave records the position for key on the way out of a view.
func (c *Cache) Leave(key string, x, y int) {
	c.mu.Lock()
	c.positions[key] = Position{X: x, Y: y}
	c.mu.Unlock()
}

// Arrive returns the position recorded for key. ok is false when the key was
// never left from, in which case the caller scrolls to the top.
func (c *Cache) Arrive(key string) (Position, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	pos, ok := c.positions[key]
	return pos, ok
}
