package service

import (
	"backoffice-service/internal/model"
	"context"
	"sort"
	"time"
)

// fakeStore is an in-memory model.Repository keyed by ID
type fakeStore[T any] struct {
	rows   map[uint]*T
	nextID uint
	id     func(*T) *uint
	column func(*T, string) string
	err    error
}

func newFakeStore[T any](id func(*T) *uint, column func(*T, string) string) *fakeStore[T] {
	return &fakeStore[T]{rows: map[uint]*T{}, nextID: 1, id: id, column: column}
}

func (s *fakeStore[T]) Create(_ context.Context, record *T) error {
	if s.err != nil {
		return s.err
	}
	*s.id(record) = s.nextID
	s.nextID++
	stored := *record
	s.rows[*s.id(record)] = &stored
	return nil
}

func (s *fakeStore[T]) Update(_ context.Context, record *T) error {
	if s.err != nil {
		return s.err
	}
	if _, ok := s.rows[*s.id(record)]; !ok {
		return model.ErrNotFound
	}
	stored := *record
	s.rows[*s.id(record)] = &stored
	return nil
}

func (s *fakeStore[T]) Find(_ context.Context, id uint) (*T, error) {
	if s.err != nil {
		return nil, s.err
	}
	row, ok := s.rows[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	found := *row
	return &found, nil
}

func (s *fakeStore[T]) Delete(_ context.Context, id uint) error {
	if _, ok := s.rows[id]; !ok {
		return model.ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

func (s *fakeStore[T]) Count(context.Context) (int64, error) {
	return int64(len(s.rows)), s.err
}

func (s *fakeStore[T]) Taken(_ context.Context, column, value string, exceptID uint) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	for id, row := range s.rows {
		if id != exceptID && s.column(row, column) == value {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore[T]) sorted() []T {
	ids := make([]uint, 0, len(s.rows))
	for id := range s.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, *s.rows[id])
	}
	return out
}

type fakeBrands struct {
	*fakeStore[model.Brand]
	withProducts map[uint]bool
}

func newFakeBrands() *fakeBrands {
	return &fakeBrands{
		fakeStore: newFakeStore(func(b *model.Brand) *uint { return &b.ID }, func(b *model.Brand, column string) string {
			switch column {
			case "name":
				return b.Name
			case "slug":
				return b.Slug
			case "url":
				return b.URL
			}
			return ""
		}),
		withProducts: map[uint]bool{},
	}
}

func (r *fakeBrands) List(context.Context, model.CatalogFilter) ([]model.Brand, error) {
	return r.sorted(), nil
}

func (r *fakeBrands) HasProducts(_ context.Context, id uint) (bool, error) {
	return r.withProducts[id], nil
}

type fakeCategories struct {
	*fakeStore[model.Category]
	withProducts map[uint]bool
}

func newFakeCategories() *fakeCategories {
	return &fakeCategories{
		fakeStore: newFakeStore(func(c *model.Category) *uint { return &c.ID }, func(c *model.Category, column string) string {
			switch column {
			case "name":
				return c.Name
			case "slug":
				return c.Slug
			}
			return ""
		}),
		withProducts: map[uint]bool{},
	}
}

func (r *fakeCategories) List(context.Context, model.CatalogFilter) ([]model.Category, error) {
	return r.sorted(), nil
}

func (r *fakeCategories) FindMany(_ context.Context, ids []uint) ([]model.Category, error) {
	var out []model.Category
	for _, id := range ids {
		if row, ok := r.rows[id]; ok {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (r *fakeCategories) HasProducts(_ context.Context, id uint) (bool, error) {
	return r.withProducts[id], nil
}

func (r *fakeCategories) HasChildren(_ context.Context, id uint) (bool, error) {
	for _, row := range r.rows {
		if row.ParentID != nil && *row.ParentID == id {
			return true, nil
		}
	}
	return false, nil
}

type fakeProducts struct {
	*fakeStore[model.Product]
	createdAt []time.Time
	from, to  time.Time
}

func newFakeProducts() *fakeProducts {
	return &fakeProducts{
		fakeStore: newFakeStore(func(p *model.Product) *uint { return &p.ID }, func(p *model.Product, column string) string {
			switch column {
			case "name":
				return p.Name
			case "slug":
				return p.Slug
			}
			return ""
		}),
	}
}

func (r *fakeProducts) List(_ context.Context, filter model.ProductFilter) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.sorted() {
		if filter.BrandID != nil && p.BrandID != *filter.BrandID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProducts) FindMany(_ context.Context, ids []uint) ([]model.Product, error) {
	var out []model.Product
	for _, id := range ids {
		if row, ok := r.rows[id]; ok {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (r *fakeProducts) CreatedBetween(_ context.Context, from, to time.Time) ([]time.Time, error) {
	r.from, r.to = from, to
	var out []time.Time
	for _, t := range r.createdAt {
		if !t.Before(from) && t.Before(to) {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeCustomers struct {
	*fakeStore[model.Customer]
	withOrders map[uint]bool
}

func newFakeCustomers() *fakeCustomers {
	return &fakeCustomers{
		fakeStore: newFakeStore(func(c *model.Customer) *uint { return &c.ID }, func(c *model.Customer, column string) string {
			if column == "email" {
				return c.Email
			}
			return ""
		}),
		withOrders: map[uint]bool{},
	}
}

func (r *fakeCustomers) List(context.Context, model.CatalogFilter) ([]model.Customer, error) {
	return r.sorted(), nil
}

func (r *fakeCustomers) HasOrders(_ context.Context, id uint) (bool, error) {
	return r.withOrders[id], nil
}

// fakeOrders keeps orders with their items and applies the version check
type fakeOrders struct {
	rows       map[uint]*model.Order
	nextID     uint
	nextItemID uint
	taken      map[string]bool
	statuses   []model.StatusCount
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{rows: map[uint]*model.Order{}, nextID: 1, nextItemID: 1, taken: map[string]bool{}}
}

func (r *fakeOrders) store(order *model.Order) {
	stored := *order
	stored.Items = make([]model.OrderItem, len(order.Items))
	for i, item := range order.Items {
		if item.ID == 0 {
			item.ID = r.nextItemID
			r.nextItemID++
		}
		item.OrderID = order.ID
		stored.Items[i] = item
	}
	r.rows[order.ID] = &stored
}

func (r *fakeOrders) Create(_ context.Context, order *model.Order) error {
	order.ID = r.nextID
	r.nextID++
	r.taken[order.Number] = true
	r.store(order)
	return nil
}

func (r *fakeOrders) Find(_ context.Context, id uint) (*model.Order, error) {
	row, ok := r.rows[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	found := *row
	found.Items = append([]model.OrderItem(nil), row.Items...)
	return &found, nil
}

func (r *fakeOrders) List(_ context.Context, filter model.OrderFilter) ([]model.Order, int64, error) {
	var out []model.Order
	for id := r.nextID; id > 0; id-- {
		row, ok := r.rows[id]
		if !ok || (filter.Status != nil && row.Status != *filter.Status) {
			continue
		}
		out = append(out, *row)
	}
	total := int64(len(out))
	if filter.Offset > len(out) {
		return []model.Order{}, total, nil
	}
	out = out[filter.Offset:]
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, total, nil
}

func (r *fakeOrders) Update(_ context.Context, order *model.Order, expectedVersion int) error {
	row, ok := r.rows[order.ID]
	if !ok {
		return model.ErrNotFound
	}
	if row.Version != expectedVersion {
		return model.ErrOptimisticLock
	}
	order.Version = expectedVersion + 1
	r.store(order)
	return nil
}

func (r *fakeOrders) Delete(_ context.Context, id uint) error {
	if _, ok := r.rows[id]; !ok {
		return model.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *fakeOrders) NumberTaken(_ context.Context, number string) (bool, error) {
	return r.taken[number], nil
}

func (r *fakeOrders) CountByStatus(context.Context) ([]model.StatusCount, error) {
	return r.statuses, nil
}

func (r *fakeOrders) CountWithStatus(_ context.Context, status model.OrderStatus) (int64, error) {
	for _, row := range r.statuses {
		if row.Status == status {
			return row.Count, nil
		}
	}
	return 0, nil
}
