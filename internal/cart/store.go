package cart

import (
	"fmt"
	"sync"

	pkgerrors "github.com/museshop/backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// Line is a single cart entry for one product.
type Line struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	Quantity  int             `json:"quantity"`
	Selected  bool            `json:"selected"`
}

// LineTotal returns price multiplied by quantity.
func (l Line) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Snapshot is an immutable view of the cart handed to watchers and read paths.
type Snapshot struct {
	Lines    []Line          `json:"lines"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// Watcher receives a snapshot after every mutation.
type Watcher interface {
	CartChanged(snapshot Snapshot)
}

// WatcherFunc adapts a function to the Watcher interface.
type WatcherFunc func(Snapshot)

// CartChanged implements Watcher.
func (f WatcherFunc) CartChanged(snapshot Snapshot) { f(snapshot) }

// ProductInfo is the product data the cart needs to build or refresh a line.
type ProductInfo struct {
	ID    int64
	Name  string
	Price decimal.Decimal
	Stock int
}

// Store holds one user's cart lines in memory, keyed by product and kept in
// insertion order. All mutations run under the store mutex; watcher callbacks
// fire outside it.
type Store struct {
	mu       sync.Mutex
	order    []int64
	lines    map[int64]*Line
	watchers map[int]Watcher
	nextSub  int
}

// NewStore returns an empty cart store.
func NewStore() *Store {
	return &Store{
		lines:    make(map[int64]*Line),
		watchers: make(map[int]Watcher),
	}
}

// Watch registers a watcher and returns its cancel function.
func (s *Store) Watch(w Watcher) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.watchers[id] = w
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.watchers, id)
		s.mu.Unlock()
	}
}

// AddItem merges the requested quantity into the cart. A new line starts at
// min(requested, stock) and is selected. An existing line grows by the request
// but is clamped to stock and never decreases.
func (s *Store) AddItem(product ProductInfo, quantity int) (Line, error) {
	if quantity < 1 {
		return Line{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if product.Stock < 1 {
		return Line{}, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("product %q is out of stock", product.Name))
	}

	s.mu.Lock()
	line, ok := s.lines[product.ID]
	if ok {
		line.Name = product.Name
		line.Price = product.Price
		line.Stock = product.Stock
		next := line.Quantity + quantity
		if next > product.Stock {
			next = product.Stock
		}
		if next > line.Quantity {
			line.Quantity = next
		}
	} else {
		qty := quantity
		if qty > product.Stock {
			qty = product.Stock
		}
		line = &Line{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Stock:     product.Stock,
			Quantity:  qty,
			Selected:  true,
		}
		s.lines[product.ID] = line
		s.order = append(s.order, product.ID)
	}
	result := *line
	snapshot, watchers := s.snapshotLocked()
	s.mu.Unlock()

	notify(watchers, snapshot)
	return result, nil
}

// SetQuantity sets the quantity of an existing line, clamped to [1, stock].
// It reports whether the line exists; missing lines are a no-op.
func (s *Store) SetQuantity(productID int64, quantity int) (Line, bool) {
	s.mu.Lock()
	line, ok := s.lines[productID]
	if !ok {
		s.mu.Unlock()
		return Line{}, false
	}
	if quantity < 1 {
		quantity = 1
	}
	if line.Stock > 0 && quantity > line.Stock {
		quantity = line.Stock
	}
	line.Quantity = quantity
	result := *line
	snapshot, watchers := s.snapshotLocked()
	s.mu.Unlock()

	notify(watchers, snapshot)
	return result, true
}

// SetSelected toggles whether a line participates in checkout.
func (s *Store) SetSelected(productID int64, selected bool) (Line, bool) {
	s.mu.Lock()
	line, ok := s.lines[productID]
	if !ok {
		s.mu.Unlock()
		return Line{}, false
	}
	line.Selected = selected
	result := *line
	snapshot, watchers := s.snapshotLocked()
	s.mu.Unlock()

	notify(watchers, snapshot)
	return result, true
}

// RemoveItem drops a line from the cart. Removing an absent product is a no-op.
func (s *Store) RemoveItem(productID int64) {
	s.mu.Lock()
	if _, ok := s.lines[productID]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.lines, productID)
	s.order = removeID(s.order, productID)
	snapshot, watchers := s.snapshotLocked()
	s.mu.Unlock()

	notify(watchers, snapshot)
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	s.lines = make(map[int64]*Line)
	s.order = nil
	snapshot, watchers := s.snapshotLocked()
	s.mu.Unlock()

	notify(watchers, snapshot)
}

// ClearSelected removes only the selected lines, leaving unselected ones in
// place. Checkout calls this after a settlement commits.
func (s *Store) ClearSelected() {
	s.mu.Lock()
	kept := s.order[:0]
	for _, id := range s.order {
		if s.lines[id].Selected {
			delete(s.lines, id)
			continue
		}
		kept = append(kept, id)
	}
	s.order = kept
	snapshot, watchers := s.snapshotLocked()
	s.mu.Unlock()

	notify(watchers, snapshot)
}

// Snapshot returns the current lines and selected subtotal.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	snapshot, _ := s.snapshotLocked()
	s.mu.Unlock()
	return snapshot
}

// SelectedLines returns the selected lines in insertion order.
func (s *Store) SelectedLines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	var selected []Line
	for _, id := range s.order {
		if line := s.lines[id]; line.Selected {
			selected = append(selected, *line)
		}
	}
	return selected
}

// Subtotal returns the sum of price times quantity over selected lines.
func (s *Store) Subtotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subtotalLocked()
}

func (s *Store) snapshotLocked() (Snapshot, []Watcher) {
	lines := make([]Line, 0, len(s.order))
	for _, id := range s.order {
		lines = append(lines, *s.lines[id])
	}
	snapshot := Snapshot{
		Lines:    lines,
		Subtotal: s.subtotalLocked(),
	}

	watchers := make([]Watcher, 0, len(s.watchers))
	for _, w := range s.watchers {
		watchers = append(watchers, w)
	}
	return snapshot, watchers
}

func (s *Store) subtotalLocked() decimal.Decimal {
	total := decimal.Zero
	for _, id := range s.order {
		if line := s.lines[id]; line.Selected {
			total = total.Add(line.LineTotal())
		}
	}
	return total
}

func notify(watchers []Watcher, snapshot Snapshot) {
	for _, w := range watchers {
		w.CartChanged(snapshot)
	}
}

func removeID(ids []int64, target int64) []int64 {
	for i, id := range ids {
		if id == target {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
