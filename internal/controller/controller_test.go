package controller

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/logger"
	"github.com/hammamikhairi/recipebox/internal/recipe"
	"github.com/hammamikhairi/recipebox/internal/view"
)

// fakeService is an in-memory Recipe Service.
type fakeService struct {
	mu        sync.Mutex
	recipes   []domain.Recipe
	listErr   error
	createErr error
	lists     int
	created   []domain.Draft
	nextID    int
}

func (f *fakeService) List(ctx context.Context) ([]domain.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]domain.Recipe, len(f.recipes))
	copy(out, f.recipes)
	return out, nil
}

func (f *fakeService) Create(ctx context.Context, d domain.Draft) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, d)
	f.nextID++
	f.recipes = append(f.recipes, domain.Recipe{
		ID:          100 + f.nextID,
		Title:       d.Title,
		Description: d.Description,
		Ingredients: d.Ingredients,
		Steps:       d.Steps,
	})
	return nil
}

// recordingNotifier captures urgent notices.
type recordingNotifier struct {
	urgent []string
}

func (n *recordingNotifier) Notify(ctx context.Context, message string) error { return nil }

func (n *recordingNotifier) NotifyUrgent(ctx context.Context, message string) error {
	n.urgent = append(n.urgent, message)
	return nil
}

func soup() domain.Recipe {
	return domain.Recipe{ID: 1, Title: "Soup", Description: "Warm", Ingredients: []string{"water"}, Steps: []string{"boil"}}
}

func setup(t *testing.T, svc *fakeService, opts ...Option) (*Controller, *recipe.Store, context.Context) {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	store := recipe.NewStore(log)
	return New(store, svc, log, opts...), store, context.Background()
}

func TestInitialState(t *testing.T) {
	c, store, _ := setup(t, &fakeService{})

	if c.State() != StateList {
		t.Fatalf("expected list state, got %s", c.State())
	}
	s := c.Screen()
	if !s.ListVisible || s.FormVisible || !s.ContainerVisible || s.DetailVisible {
		t.Fatalf("unexpected initial visibility: %+v", s)
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty store, got %d", store.Len())
	}
}

func TestFetchListDetailBack(t *testing.T) {
	svc := &fakeService{recipes: []domain.Recipe{soup()}}
	c, _, ctx := setup(t, svc)

	c.Settle(ctx, c.Init(ctx))

	s := c.Screen()
	if len(s.List.Items) != 1 || s.List.Items[0].Title != "Soup" {
		t.Fatalf("expected one item titled Soup, got %+v", s.List.Items)
	}
	if s.Loading {
		t.Fatal("expected loading to be cleared after fetch")
	}

	item, _ := s.List.ItemAt(1)
	if !c.ViewDetails(item.Action.RecipeID) {
		t.Fatal("expected detail view to open")
	}
	if c.State() != StateDetail {
		t.Fatalf("expected detail state, got %s", c.State())
	}
	if id, ok := c.DetailID(); !ok || id != 1 {
		t.Fatalf("DetailID() = %d, %v", id, ok)
	}

	s = c.Screen()
	if s.ContainerVisible || !s.DetailVisible {
		t.Fatalf("expected container hidden and detail shown: %+v", s)
	}
	d := s.Detail
	if d.Title != "Soup" || d.Description != "Warm" {
		t.Fatalf("unexpected detail: %+v", d)
	}
	if len(d.Ingredients) != 1 || d.Ingredients[0] != "water" {
		t.Fatalf("unexpected ingredients: %q", d.Ingredients)
	}
	if len(d.Steps) != 1 || d.Steps[0] != "boil" {
		t.Fatalf("unexpected steps: %q", d.Steps)
	}
	if acts := s.Actions(); len(acts) != 1 || acts[0].Kind != view.ActionBack {
		t.Fatalf("expected only a back action, got %+v", acts)
	}

	before := s.List
	c.Back()
	s = c.Screen()
	if c.State() != StateList {
		t.Fatalf("expected list state after back, got %s", c.State())
	}
	if !s.ContainerVisible || s.DetailVisible {
		t.Fatalf("expected container restored: %+v", s)
	}
	if len(s.List.Items) != len(before.Items) || s.List.Items[0] != before.Items[0] {
		t.Fatal("list changed after back")
	}
}

func TestFetchFailureKeepsStore(t *testing.T) {
	t.Run("first load", func(t *testing.T) {
		svc := &fakeService{listErr: fmt.Errorf("api: list recipes: %w", domain.ErrTransport)}
		c, store, ctx := setup(t, svc)

		c.Settle(ctx, c.Init(ctx))

		s := c.Screen()
		if s.List.Message != view.MsgLoadFailed {
			t.Fatalf("expected failure message, got %q", s.List.Message)
		}
		if store.Len() != 0 {
			t.Fatalf("expected store to stay empty, got %d", store.Len())
		}
	})

	t.Run("after success", func(t *testing.T) {
		svc := &fakeService{recipes: []domain.Recipe{soup()}}
		c, store, ctx := setup(t, svc)
		c.Settle(ctx, c.Init(ctx))

		svc.listErr = &domain.ServiceError{Op: "list recipes", StatusCode: 500, Status: "500 Internal Server Error"}
		c.Settle(ctx, c.ShowList(ctx))

		if c.Screen().List.Message != view.MsgLoadFailed {
			t.Fatalf("expected failure message, got %+v", c.Screen().List)
		}
		if store.Len() != 1 {
			t.Fatalf("expected store to keep prior value, got %d", store.Len())
		}
	})
}

func TestNavigation(t *testing.T) {
	svc := &fakeService{recipes: []domain.Recipe{soup()}}
	c, _, ctx := setup(t, svc)
	c.Settle(ctx, c.Init(ctx))

	c.ShowAddForm()
	s := c.Screen()
	if c.State() != StateAddForm || s.ListVisible || !s.FormVisible {
		t.Fatalf("expected add form: state=%s screen=%+v", c.State(), s)
	}
	if c.ViewDetails(1) {
		t.Fatal("view details must be ignored outside the list")
	}

	cmd := c.ShowList(ctx)
	if cmd == nil {
		t.Fatal("show list must trigger a fetch")
	}
	if !c.Loading() {
		t.Fatal("expected loading while fetch is pending")
	}
	c.Settle(ctx, cmd)
	s = c.Screen()
	if c.State() != StateList || !s.ListVisible || s.FormVisible {
		t.Fatalf("expected list: state=%s screen=%+v", c.State(), s)
	}
	if svc.lists != 2 {
		t.Fatalf("expected 2 fetches, got %d", svc.lists)
	}

	// Show list from the detail view restores the container.
	c.ViewDetails(1)
	c.Settle(ctx, c.ShowList(ctx))
	s = c.Screen()
	if !s.ContainerVisible || s.DetailVisible {
		t.Fatalf("expected container after show list: %+v", s)
	}
}

func TestViewDetailsNotFound(t *testing.T) {
	svc := &fakeService{recipes: []domain.Recipe{soup()}}
	c, _, ctx := setup(t, svc)
	c.Settle(ctx, c.Init(ctx))

	before := c.Screen()
	if c.ViewDetails(42) {
		t.Fatal("expected lookup of unknown id to fail")
	}
	after := c.Screen()
	if c.State() != StateList || after.DetailVisible || !after.ContainerVisible || after.Notice != "" {
		t.Fatalf("expected nothing to change: before=%+v after=%+v", before, after)
	}
}

func TestSearch(t *testing.T) {
	svc := &fakeService{recipes: []domain.Recipe{
		soup(),
		{ID: 2, Title: "Pasta", Description: "Tomato"},
		{ID: 3, Title: "Salad", Description: "Fresh"},
	}}
	c, store, ctx := setup(t, svc)
	c.Settle(ctx, c.Init(ctx))

	c.Search("PASTA")
	s := c.Screen()
	if s.Search != "PASTA" {
		t.Fatalf("expected search term to be kept, got %q", s.Search)
	}
	if len(s.List.Items) != 1 || s.List.Items[0].Action.RecipeID != 2 {
		t.Fatalf("expected only Pasta, got %+v", s.List.Items)
	}

	c.Search("")
	if got := len(c.Screen().List.Items); got != 3 {
		t.Fatalf("expected all 3 recipes for empty term, got %d", got)
	}
	if store.Len() != 3 {
		t.Fatalf("search mutated the store: %d", store.Len())
	}

	// Positions follow the filtered render, IDs follow the recipe.
	c.Search("sa")
	item, ok := c.Screen().List.ItemAt(1)
	if !ok || item.Action.RecipeID != 3 {
		t.Fatalf("expected Salad at position 1, got %+v", item)
	}
}

func TestSubmitValidation(t *testing.T) {
	svc := &fakeService{}
	note := &recordingNotifier{}
	c, _, ctx := setup(t, svc, WithNotifier(note))
	c.ShowAddForm()

	fields := recipe.Fields{Title: "", Description: "x", Ingredients: "a", Steps: "b"}
	if cmd := c.Submit(ctx, fields); cmd != nil {
		t.Fatal("invalid form must not issue a request")
	}

	s := c.Screen()
	if s.Notice != view.MsgMissingFields {
		t.Fatalf("expected missing-fields notice, got %q", s.Notice)
	}
	if c.State() != StateAddForm {
		t.Fatalf("expected to remain on add form, got %s", c.State())
	}
	if s.Form != fields {
		t.Fatalf("expected form to stay populated, got %+v", s.Form)
	}
	if len(svc.created) != 0 {
		t.Fatalf("expected no create calls, got %d", len(svc.created))
	}
	if len(note.urgent) != 1 || note.urgent[0] != view.MsgMissingFields {
		t.Fatalf("expected notifier to receive the notice, got %q", note.urgent)
	}
	if len(s.Actions()) != 0 {
		t.Fatal("a pending notice must block actions")
	}

	c.DismissNotice()
	if c.Screen().Notice != "" {
		t.Fatal("expected notice to be dismissed")
	}
}

func TestSubmitSuccessRefetches(t *testing.T) {
	svc := &fakeService{recipes: []domain.Recipe{soup()}}
	c, store, ctx := setup(t, svc)
	c.Settle(ctx, c.Init(ctx))

	c.ShowAddForm()
	cmd := c.Submit(ctx, recipe.Fields{
		Title:       "Cake",
		Description: "Sweet",
		Ingredients: "flour, sugar ,egg",
		Steps:       "mix\nbake",
	})
	if cmd == nil {
		t.Fatal("expected a create request")
	}
	// Nothing changes until the request completes.
	if store.Len() != 1 || c.State() != StateAddForm {
		t.Fatalf("store or state changed before completion: len=%d state=%s", store.Len(), c.State())
	}

	c.Settle(ctx, cmd)

	if len(svc.created) != 1 {
		t.Fatalf("expected 1 create call, got %d", len(svc.created))
	}
	got := svc.created[0]
	if len(got.Ingredients) != 3 || got.Ingredients[1] != "sugar" {
		t.Fatalf("unexpected ingredients: %q", got.Ingredients)
	}
	if len(got.Steps) != 2 || got.Steps[1] != "bake" {
		t.Fatalf("unexpected steps: %q", got.Steps)
	}

	s := c.Screen()
	if c.State() != StateList || !s.ListVisible || s.FormVisible {
		t.Fatalf("expected list after submit: state=%s screen=%+v", c.State(), s)
	}
	if !s.Form.IsZero() {
		t.Fatalf("expected form cleared, got %+v", s.Form)
	}
	if store.Len() != 2 || len(s.List.Items) != 2 {
		t.Fatalf("expected refetched store with 2 recipes, got store=%d items=%d", store.Len(), len(s.List.Items))
	}
}

func TestSubmitFailureKeepsForm(t *testing.T) {
	svc := &fakeService{createErr: &domain.ServiceError{Op: "create recipe", StatusCode: 400, Status: "400 Bad Request"}}
	c, _, ctx := setup(t, svc)
	c.ShowAddForm()

	fields := recipe.Fields{Title: "Cake", Description: "Sweet", Ingredients: "flour", Steps: "bake"}
	c.Settle(ctx, c.Submit(ctx, fields))

	s := c.Screen()
	if s.Notice != view.MsgAddFailed {
		t.Fatalf("expected add-failed notice, got %q", s.Notice)
	}
	if c.State() != StateAddForm || s.Form != fields {
		t.Fatalf("expected populated add form: state=%s form=%+v", c.State(), s.Form)
	}
	if svc.lists != 0 {
		t.Fatalf("failed submission must not refetch, got %d fetches", svc.lists)
	}
}

func TestFetchOrdering(t *testing.T) {
	first := []domain.Recipe{soup()}
	second := []domain.Recipe{soup(), {ID: 2, Title: "Bread", Description: "Crusty"}}

	t.Run("last write wins", func(t *testing.T) {
		c, store, ctx := setup(t, &fakeService{})
		c.ShowList(ctx)
		c.ShowList(ctx)

		// Responses arrive out of order.
		c.Update(ctx, FetchedMsg{Seq: 2, Recipes: second})
		c.Update(ctx, FetchedMsg{Seq: 1, Recipes: first})

		if store.Len() != 1 {
			t.Fatalf("expected the late older response to win, got %d recipes", store.Len())
		}
		if c.Loading() {
			t.Fatal("expected no fetch in flight")
		}
	})

	t.Run("drop stale", func(t *testing.T) {
		c, store, ctx := setup(t, &fakeService{}, WithDropStaleFetches())
		c.ShowList(ctx)
		c.ShowList(ctx)

		c.Update(ctx, FetchedMsg{Seq: 2, Recipes: second})
		c.Update(ctx, FetchedMsg{Seq: 1, Recipes: first})

		if store.Len() != 2 {
			t.Fatalf("expected the stale response to be dropped, got %d recipes", store.Len())
		}
		if len(c.Screen().List.Items) != 2 {
			t.Fatalf("expected render of latest fetch, got %d items", len(c.Screen().List.Items))
		}
	})
}
