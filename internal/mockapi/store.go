package mockapi

import (
	"strings"

	"github.com/InsulaLabs/counsel/models"
)

// collection is an in-memory table keyed by an int64 id inside T.
type collection[T any] struct {
	items  []T
	nextID int64
	idOf   func(*T) *int64
}

func newCollection[T any](idOf func(*T) *int64, seed ...T) *collection[T] {
	c := &collection[T]{idOf: idOf}
	for _, v := range seed {
		c.insert(v)
	}
	return c
}

func (c *collection[T]) insert(v T) int64 {
	c.nextID++
	*c.idOf(&v) = c.nextID
	c.items = append(c.items, v)
	return c.nextID
}

func (c *collection[T]) find(id int64) (*T, bool) {
	for i := range c.items {
		if *c.idOf(&c.items[i]) == id {
			return &c.items[i], true
		}
	}
	return nil, false
}

func (c *collection[T]) remove(id int64) bool {
	for i := range c.items {
		if *c.idOf(&c.items[i]) == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// page returns the p-th page of the items keep accepts. keep may be nil.
func (c *collection[T]) page(p models.Page, keep func(*T) bool) models.List[T] {
	var matched []T
	for i := range c.items {
		if keep == nil || keep(&c.items[i]) {
			matched = append(matched, c.items[i])
		}
	}

	out := models.List[T]{List: []T{}, Total: len(matched)}
	size := p.Size
	if size <= 0 {
		size = 10
	}
	start := (max(p.Page, 1) - 1) * size
	if start >= len(matched) {
		return out
	}
	out.List = matched[start:min(start+size, len(matched))]
	return out
}

func contains(field, filter string) bool {
	return filter == "" || strings.Contains(strings.ToLower(field), strings.ToLower(filter))
}
