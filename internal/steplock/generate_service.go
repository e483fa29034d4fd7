package steplock

import (
	"context"
	"errors"
	"fmt"

	"github.com/hay-kot/steplock/internal/core/checklist"
	"github.com/hay-kot/steplock/internal/core/taskgen"
	"github.com/hay-kot/steplock/internal/data/stores"
)

// ErrNoGenerator is returned when generation is requested but no client is
// configured (typically a missing API key).
var ErrNoGenerator = errors.New("no generator configured: set the API key environment variable")

// GenerateService turns free-form generator output into checklist items.
// Items are only written to the store after the whole pipeline succeeds, so a
// failed generation never touches checklist state.
type GenerateService struct {
	items    *stores.ItemStore
	gen      taskgen.Generator
	maxBatch int
}

// NewGenerateService creates a GenerateService. maxBatch caps how many items
// a single generation may add; values outside 1..taskgen.MaxBatch are clamped.
func NewGenerateService(items *stores.ItemStore, gen taskgen.Generator, maxBatch int) *GenerateService {
	if maxBatch < 1 || maxBatch > taskgen.MaxBatch {
		maxBatch = taskgen.MaxBatch
	}
	return &GenerateService{items: items, gen: gen, maxBatch: maxBatch}
}

// Enabled reports whether a generator client is configured.
func (s *GenerateService) Enabled() bool {
	return s.gen != nil
}

// Suggest drafts candidate task titles for a prompt without adding anything
// to the store. Used by interactive flows that let the user pick a subset.
func (s *GenerateService) Suggest(ctx context.Context, prompt string) ([]string, error) {
	if s.gen == nil {
		return nil, ErrNoGenerator
	}

	raw, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate tasks: %w", err)
	}

	titles := s.cap(taskgen.Normalize(raw))
	if len(titles) == 0 {
		return nil, &taskgen.Error{Category: taskgen.CategoryEmpty, Message: "generator produced no usable tasks"}
	}

	return titles, nil
}

// Generate drafts tasks for a prompt and appends them as independent items.
// Returns the items actually added.
func (s *GenerateService) Generate(ctx context.Context, prompt string) ([]checklist.Item, error) {
	titles, err := s.Suggest(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return s.AddTitles(titles)
}

// AddTitles appends the given titles as independent items. Blank titles are
// skipped. Used for both direct generation and the pick flow.
func (s *GenerateService) AddTitles(titles []string) ([]checklist.Item, error) {
	added := make([]checklist.Item, 0, len(titles))
	for _, title := range titles {
		item, err := s.items.Add(title)
		if err != nil {
			if errors.Is(err, checklist.ErrEmptyTitle) {
				continue
			}
			return added, fmt.Errorf("add generated item: %w", err)
		}
		added = append(added, item)
	}
	return added, nil
}

// BreakDown drafts sub-steps for an existing item and appends each as a new
// item depending on the parent. Sub-steps stay hidden until the parent is
// completed.
func (s *GenerateService) BreakDown(ctx context.Context, parentID string) ([]checklist.Item, error) {
	if s.gen == nil {
		return nil, ErrNoGenerator
	}

	parent, err := s.items.Get(parentID)
	if err != nil {
		return nil, err
	}

	raw, err := s.gen.BreakDown(ctx, parent.Title)
	if err != nil {
		return nil, fmt.Errorf("break down %q: %w", parent.Title, err)
	}

	titles := s.cap(taskgen.Normalize(raw))
	if len(titles) == 0 {
		return nil, &taskgen.Error{Category: taskgen.CategoryEmpty, Message: "generator produced no sub-steps"}
	}

	added := make([]checklist.Item, 0, len(titles))
	for _, title := range titles {
		item, err := s.items.AddWithDependencies(title, []string{parent.ID})
		if err != nil {
			return added, fmt.Errorf("add sub-step: %w", err)
		}
		added = append(added, item)
	}

	return added, nil
}

// Rewrite rephrases an item's title in place. The store is untouched when
// the generator fails or returns nothing usable.
func (s *GenerateService) Rewrite(ctx context.Context, id string) (checklist.Item, error) {
	if s.gen == nil {
		return checklist.Item{}, ErrNoGenerator
	}

	item, err := s.items.Get(id)
	if err != nil {
		return checklist.Item{}, err
	}

	title, err := s.gen.Rewrite(ctx, item.Title)
	if err != nil {
		return checklist.Item{}, fmt.Errorf("rewrite %q: %w", item.Title, err)
	}

	// Rewrite responses should be a single line; anything else is trimmed
	// down to the first usable line.
	lines := taskgen.Normalize(title)
	if len(lines) == 0 {
		return checklist.Item{}, &taskgen.Error{Category: taskgen.CategoryEmpty, Message: "generator produced no rewrite"}
	}

	return s.items.Update(id, stores.Patch{Title: &lines[0]})
}

func (s *GenerateService) cap(titles []string) []string {
	if len(titles) > s.maxBatch {
		return titles[:s.maxBatch]
	}
	return titles
}
