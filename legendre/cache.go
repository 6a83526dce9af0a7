package legendre

import "sync"

// Cache memoizes canonical rules by order. It is safe for concurrent use.
// Rules returned by a Cache are shared and must not be modified.
type Cache struct {
	mu    sync.RWMutex
	rules map[int]Rule
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return &Cache{rules: map[int]Rule{}}
}

// Rule returns the n-point rule, generating it on the first request.
func (c *Cache) Rule(n int) (Rule, error) {

	c.mu.RLock()
	r, ok := c.rules[n]
	c.mu.RUnlock()

	if ok {
		return r, nil
	}

	r, err := NewRule(n)
	if err != nil {
		return Rule{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another goroutine may have won the race, keep its rule.
	if cached, ok := c.rules[n]; ok {
		return cached, nil
	}

	c.rules[n] = r

	return r, nil
}

// Len returns the number of cached rules.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.rules)
}
