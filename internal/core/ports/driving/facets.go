package driving

import (
	"context"

	"github.com/custodia-labs/partfinder-cli/internal/core/domain"
)

// Task is one catalog round trip issued by a FacetController.
// Tasks never touch controller state; the Outcome they return is handed
// back to the controller via Apply on the owning loop.
type Task func(ctx context.Context) Outcome

// OutcomeKind identifies which lookup produced an Outcome.
type OutcomeKind int

// Outcome kinds.
const (
	// OutcomeSuggestions carries typeahead candidates for Facet, tagged with Seq.
	OutcomeSuggestions OutcomeKind = iota

	// OutcomeMakes carries the make option list.
	OutcomeMakes

	// OutcomeCategories carries raw category strings.
	OutcomeCategories

	// OutcomeModels carries the model option list for (Make, Year).
	OutcomeModels

	// OutcomeYearRange carries the year bounds for Make.
	OutcomeYearRange

	// OutcomeSearch carries the products for Query.
	OutcomeSearch
)

// String returns the string representation.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuggestions:
		return "suggestions"
	case OutcomeMakes:
		return "makes"
	case OutcomeCategories:
		return "categories"
	case OutcomeModels:
		return "models"
	case OutcomeYearRange:
		return "year-range"
	case OutcomeSearch:
		return "search"
	default:
		return "unknown"
	}
}

// Outcome is the result of a Task together with the tags the controller
// uses to decide whether it is still current.
type Outcome struct {
	Kind OutcomeKind

	// Facet and Seq tag suggestion outcomes.
	Facet domain.Facet
	Seq   uint64

	// Make and Year tag model-list and year-range outcomes.
	Make string
	Year string

	// Values holds option lists and suggestions.
	Values []string

	// Range holds year-range outcomes.
	Range domain.YearRange

	// Query and Products hold search outcomes.
	Query    domain.ProductQuery
	Products []domain.Product

	// Err is set when the lookup failed.
	Err error
}

// FacetController owns the facet state of one search session.
//
// It is not safe for concurrent use: one event loop owns it, runs the Tasks
// it returns off the loop, and feeds each Outcome back through Apply.
type FacetController interface {
	// Init returns the tasks that load the make and category option lists.
	Init() []Task

	// SetFacet assigns a facet value and returns the dependent refetches.
	// On ErrInvalidInput or ErrModelNotAvailable the state is unchanged.
	// On ErrYearOutOfRange the year is cleared and the returned tasks
	// refresh the model list for the make alone.
	SetFacet(facet domain.Facet, value string) ([]Task, error)

	// Suggest requests typeahead candidates for a partial term.
	// Terms shorter than the minimum clear the suggestions and return nil.
	Suggest(facet domain.Facet, term string) []Task

	// Search returns the task that runs the product query for the current state.
	Search() Task

	// Apply folds an outcome into the state, dropping it if superseded,
	// and returns any follow-up tasks.
	Apply(outcome Outcome) []Task

	// State returns a copy of the current facet values.
	State() domain.FacetState

	// Options returns the option list for make, model or category.
	Options(facet domain.Facet) []string

	// Suggestions returns the current typeahead candidates for a facet.
	Suggestions(facet domain.Facet) []string

	// YearRange returns the year bounds for the selected make.
	YearRange() domain.YearRange

	// Query returns the product query for the current state.
	Query() domain.ProductQuery

	// Results returns the products of the most recently completed search.
	Results() []domain.Product

	// Busy returns true while any search is in flight.
	Busy() bool

	// Searched returns true once a search has completed.
	Searched() bool

	// SearchError returns the underlying error of the last failed search.
	SearchError() error

	// Message returns the user-facing status of the last search, if any.
	Message() string
}

// ControllerFactory starts a new search session with the current settings.
type ControllerFactory func() (FacetController, error)
