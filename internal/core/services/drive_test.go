package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/partfinder-cli/internal/core/domain"
)

func TestDrive_EndToEnd(t *testing.T) {
	catalog := newFordCatalog()
	var searched []string
	catalog.productsFn = func(_ context.Context, q domain.ProductQuery) ([]domain.Product, error) {
		searched = append(searched, q.Encode())
		return []domain.Product{{ID: "42", Name: "Ranger Brake Pad"}}, nil
	}
	c := NewFacetController(catalog, ControllerConfig{})
	ctx := context.Background()

	require.NoError(t, Drive(ctx, c, c.Init()...))
	tasks, err := c.SetFacet(domain.FacetMake, "Ford")
	require.NoError(t, err)
	require.NoError(t, Drive(ctx, c, tasks...))
	assert.Equal(t, domain.YearRange{Min: 1995, Max: 2010}, c.YearRange())

	tasks, err = c.SetFacet(domain.FacetYear, "1999")
	require.NoError(t, err)
	require.NoError(t, Drive(ctx, c, tasks...))
	assert.Equal(t, "1999", c.State().Year)

	_, err = c.SetFacet(domain.FacetModel, "Ranger")
	require.NoError(t, err)

	tasks, err = c.SetFacet(domain.FacetYear, "1980")
	require.True(t, errors.Is(err, domain.ErrYearOutOfRange))
	require.NoError(t, Drive(ctx, c, tasks...))
	assert.Equal(t, "", c.State().Year)

	require.NoError(t, Drive(ctx, c, c.Search()))

	assert.Equal(t, []string{"make=Ford&model=Ranger"}, searched)
	assert.Len(t, c.Results(), 1)
	assert.False(t, c.Busy())
}

func TestDrive_NoTasks(t *testing.T) {
	c := NewFacetController(&mockCatalog{}, ControllerConfig{})

	assert.NoError(t, Drive(context.Background(), c))
	assert.NoError(t, Drive(context.Background(), c, nil))
}

func TestDrive_RunsFollowUps(t *testing.T) {
	catalog := newFordCatalog()
	c := NewFacetController(catalog, ControllerConfig{})
	makeTasks := mustTasks(t)(c.SetFacet(domain.FacetMake, "Ford"))
	_ = mustTasks(t)(c.SetFacet(domain.FacetYear, "2020"))

	require.NoError(t, Drive(context.Background(), c, makeTasks...))

	assert.Equal(t, "", c.State().Year)
	assert.Equal(t, []string{"F-150", "Ranger", "Focus"}, c.Options(domain.FacetModel))
}

func TestDrive_ContextCancelled(t *testing.T) {
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })

	catalog := newFordCatalog()
	catalog.productsFn = func(context.Context, domain.ProductQuery) ([]domain.Product, error) {
		<-release
		return nil, nil
	}
	c := NewFacetController(catalog, ControllerConfig{})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := Drive(ctx, c, c.Search())

	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.True(t, c.Busy())
}
