package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Line is one purchasable unit in the cart. A line is identified by
// (ProductID, SelectedSize, SelectedColor); at most one line exists per
// identity at any time.
type Line struct {
	ProductID     string   `json:"id"`
	Name          string   `json:"name"`
	UnitPrice     float64  `json:"price"`
	OriginalPrice *float64 `json:"original_price"`
	ImageURLs     []string `json:"image_urls"`
	Quantity      int      `json:"quantity"`
	SelectedSize  *string  `json:"selected_size"`
	SelectedColor *string  `json:"selected_color"`
}

// Subtotal returns UnitPrice * Quantity
func (l Line) Subtotal() float64 {
	return l.UnitPrice * float64(l.Quantity)
}

// ProductInfo is the product descriptor callers pass to AddItem
type ProductInfo struct {
	ProductID     string
	Name          string
	UnitPrice     float64
	OriginalPrice *float64
	ImageURLs     []string
}

// Store holds the cart lines for one shopping session. Every mutation writes
// the full serialized state back through the Storage; construction loads it
// once. A missing or corrupt stored value means an empty cart.
type Store struct {
	mu      sync.Mutex
	key     string
	lines   []Line
	storage Storage
	logger  *zap.Logger
}

// NewStore loads the cart for a session from storage. Load failures are
// swallowed: the shopper gets an empty cart, never an error page.
func NewStore(ctx context.Context, storage Storage, sessionID string, logger *zap.Logger) *Store {
	s := &Store{
		key:     fmt.Sprintf("cart:%s", sessionID),
		storage: storage,
		logger:  logger,
	}

	raw, ok, err := storage.Get(ctx, s.key)
	if err != nil {
		logger.Warn("Failed to load cart from storage, starting empty",
			zap.String("key", s.key), zap.Error(err))
		return s
	}
	if !ok {
		return s
	}
	if err := json.Unmarshal([]byte(raw), &s.lines); err != nil {
		logger.Warn("Corrupt cart in storage, starting empty",
			zap.String("key", s.key), zap.Error(err))
		s.lines = nil
	}
	return s
}

// AddItem merges the product into the cart: an existing line with the same
// (product, size, color) gets its quantity incremented by one, otherwise a
// new line with quantity 1 is appended. Always succeeds.
func (s *Store) AddItem(ctx context.Context, p ProductInfo, size, color *string) {
	size = normalizeVariant(size)
	color = normalizeVariant(color)

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == p.ProductID &&
			sameVariant(s.lines[i].SelectedSize, size) &&
			sameVariant(s.lines[i].SelectedColor, color) {
			s.lines[i].Quantity++
			s.persist(ctx)
			return
		}
	}

	s.lines = append(s.lines, Line{
		ProductID:     p.ProductID,
		Name:          p.Name,
		UnitPrice:     p.UnitPrice,
		OriginalPrice: p.OriginalPrice,
		ImageURLs:     p.ImageURLs,
		Quantity:      1,
		SelectedSize:  size,
		SelectedColor: color,
	})
	s.persist(ctx)
}

// UpdateQuantity sets the quantity of the matching line. A quantity of zero
// or less removes the line. No matching line is a no-op.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int, size, color *string) {
	if quantity <= 0 {
		s.RemoveItem(ctx, productID, size, color)
		return
	}

	size = normalizeVariant(size)
	color = normalizeVariant(color)

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == productID &&
			sameVariant(s.lines[i].SelectedSize, size) &&
			sameVariant(s.lines[i].SelectedColor, color) {
			s.lines[i].Quantity = quantity
			s.persist(ctx)
			return
		}
	}
}

// RemoveItem deletes the matching line. A line for the same product with a
// different size or color is untouched. No matching line is a no-op.
func (s *Store) RemoveItem(ctx context.Context, productID string, size, color *string) {
	size = normalizeVariant(size)
	color = normalizeVariant(color)

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == productID &&
			sameVariant(s.lines[i].SelectedSize, size) &&
			sameVariant(s.lines[i].SelectedColor, color) {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			s.persist(ctx)
			return
		}
	}
}

// Clear empties the cart unconditionally
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
	s.persist(ctx)
}

// Lines returns a copy of the cart lines in insertion order
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// TotalItems returns the sum of quantities across all lines
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, l := range s.lines {
		total += l.Quantity
	}
	return total
}

// TotalPrice returns the sum of unit price times quantity across all lines
func (s *Store) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0.0
	for _, l := range s.lines {
		total += l.Subtotal()
	}
	return total
}

// persist writes the full state to storage. Callers hold the mutex.
// Write failures only lose cross-session durability, so they are logged and
// the mutation stands.
func (s *Store) persist(ctx context.Context) {
	data, err := json.Marshal(s.lines)
	if err != nil {
		s.logger.Warn("Failed to serialize cart", zap.String("key", s.key), zap.Error(err))
		return
	}
	if err := s.storage.Set(ctx, s.key, string(data)); err != nil {
		s.logger.Warn("Failed to persist cart", zap.String("key", s.key), zap.Error(err))
	}
}

// normalizeVariant maps an absent or empty selector to nil
func normalizeVariant(v *string) *string {
	if v == nil || *v == "" {
		return nil
	}
	return v
}

func sameVariant(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
