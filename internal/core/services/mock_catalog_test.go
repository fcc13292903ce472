package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/partfinder-cli/internal/core/domain"
	"github.com/custodia-labs/partfinder-cli/internal/core/ports/driven"
	"github.com/custodia-labs/partfinder-cli/internal/core/ports/driving"
)

var _ driven.CatalogService = (*mockCatalog)(nil)

// mockCatalog is a hand-written CatalogService whose behaviour is set per test.
// Unset functions return empty results.
type mockCatalog struct {
	mu    sync.Mutex
	calls []string

	categoriesFn  func() ([]string, error)
	makesFn       func(term string) ([]string, error)
	modelsFn      func(mk, year string) ([]string, error)
	yearRangeFn   func(ctx context.Context, mk string) (domain.YearRange, error)
	suggestionsFn func(term string) ([]string, error)
	productsFn    func(ctx context.Context, q domain.ProductQuery) ([]domain.Product, error)
	productFn     func(id string) (*domain.Product, error)
}

func (m *mockCatalog) record(format string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, fmt.Sprintf(format, args...))
}

func (m *mockCatalog) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *mockCatalog) Categories(_ context.Context) ([]string, error) {
	m.record("categories")
	if m.categoriesFn == nil {
		return nil, nil
	}
	return m.categoriesFn()
}

func (m *mockCatalog) Makes(_ context.Context, term string) ([]string, error) {
	m.record("makes %s", term)
	if m.makesFn == nil {
		return nil, nil
	}
	return m.makesFn(term)
}

func (m *mockCatalog) Models(_ context.Context, mk, year string) ([]string, error) {
	m.record("models %s %s", mk, year)
	if m.modelsFn == nil {
		return nil, nil
	}
	return m.modelsFn(mk, year)
}

func (m *mockCatalog) YearRange(ctx context.Context, mk string) (domain.YearRange, error) {
	m.record("years %s", mk)
	if m.yearRangeFn == nil {
		return domain.YearRange{}, nil
	}
	return m.yearRangeFn(ctx, mk)
}

func (m *mockCatalog) Suggestions(_ context.Context, term string) ([]string, error) {
	m.record("suggestions %s", term)
	if m.suggestionsFn == nil {
		return nil, nil
	}
	return m.suggestionsFn(term)
}

func (m *mockCatalog) Products(ctx context.Context, q domain.ProductQuery) ([]domain.Product, error) {
	m.record("products %s", q.Encode())
	if m.productsFn == nil {
		return nil, nil
	}
	return m.productsFn(ctx, q)
}

func (m *mockCatalog) Product(_ context.Context, id string) (*domain.Product, error) {
	m.record("product %s", id)
	if m.productFn == nil {
		return nil, &domain.ServiceError{Endpoint: "/products/" + id, Status: 404}
	}
	return m.productFn(id)
}

// newFordCatalog returns a catalog with Ford bounded to 1995-2010 and
// Dodge to 2000-2020.
func newFordCatalog() *mockCatalog {
	return &mockCatalog{
		categoriesFn: func() ([]string, error) {
			return []string{`Truck\, Parts, Accessories`, "Brakes, Accessories"}, nil
		},
		makesFn: func(term string) ([]string, error) {
			if term == "" {
				return []string{"Ford, Chevrolet", "Dodge", "Ford"}, nil
			}
			return []string{"Ford, Chevrolet"}, nil
		},
		modelsFn: func(mk, year string) ([]string, error) {
			switch mk + "/" + year {
			case "Ford/":
				return []string{"F-150", "Ranger", "Focus"}, nil
			case "Ford/1999":
				return []string{"F-150", "Ranger"}, nil
			case "Ford/2005":
				return []string{"F-150", "Focus"}, nil
			case "Dodge/":
				return []string{"Ram"}, nil
			default:
				return nil, nil
			}
		},
		yearRangeFn: func(_ context.Context, mk string) (domain.YearRange, error) {
			switch mk {
			case "Ford":
				return domain.YearRange{Min: 1995, Max: 2010}, nil
			case "Dodge":
				return domain.YearRange{Min: 2000, Max: 2020}, nil
			default:
				return domain.YearRange{}, nil
			}
		},
		suggestionsFn: func(term string) ([]string, error) {
			return []string{term + " pad", term + " rotor", term + " pad"}, nil
		},
	}
}

// runTasks runs tasks synchronously and returns their outcomes in order.
func runTasks(tasks []driving.Task) []driving.Outcome {
	outcomes := make([]driving.Outcome, 0, len(tasks))
	for _, task := range tasks {
		outcomes = append(outcomes, task(context.Background()))
	}
	return outcomes
}

// settle runs tasks and applies their outcomes, following up until idle.
func settle(c *FacetController, tasks []driving.Task) {
	for len(tasks) > 0 {
		var next []driving.Task
		for _, o := range runTasks(tasks) {
			next = append(next, c.Apply(o)...)
		}
		tasks = next
	}
}

// fordController returns a controller with make Ford selected and settled.
func fordController(catalog *mockCatalog) *FacetController {
	c := NewFacetController(catalog, ControllerConfig{})
	tasks, _ := c.SetFacet(domain.FacetMake, "Ford")
	settle(c, tasks)
	return c
}
