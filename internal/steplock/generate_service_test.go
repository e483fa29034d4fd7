package steplock

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/steplock/internal/core/checklist"
	"github.com/hay-kot/steplock/internal/core/eventbus"
	"github.com/hay-kot/steplock/internal/core/taskgen"
	"github.com/hay-kot/steplock/internal/data/stores"
)

// fakeGenerator returns canned responses and records the prompts it saw.
type fakeGenerator struct {
	generateOut  string
	rewriteOut   string
	breakDownOut string
	err          error

	prompts []string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.generateOut, f.err
}

func (f *fakeGenerator) Rewrite(_ context.Context, title string) (string, error) {
	f.prompts = append(f.prompts, title)
	return f.rewriteOut, f.err
}

func (f *fakeGenerator) BreakDown(_ context.Context, title string) (string, error) {
	f.prompts = append(f.prompts, title)
	return f.breakDownOut, f.err
}

func newTestService(t *testing.T, gen taskgen.Generator) (*GenerateService, *stores.ItemStore) {
	t.Helper()
	items, err := stores.NewItemStore(nil, eventbus.New(), zerolog.Nop())
	require.NoError(t, err)
	return NewGenerateService(items, gen, taskgen.MaxBatch), items
}

func TestGenerateService_Generate(t *testing.T) {
	t.Run("normalized output becomes independent items", func(t *testing.T) {
		gen := &fakeGenerator{generateOut: "1. Buy cake\n- Buy cake\n2) Send invites"}
		svc, items := newTestService(t, gen)

		added, err := svc.Generate(context.Background(), "plan a party")
		require.NoError(t, err)
		require.Len(t, added, 2)
		assert.Equal(t, "Buy cake", added[0].Title)
		assert.Equal(t, "Send invites", added[1].Title)

		for _, item := range items.Items() {
			assert.Empty(t, item.EffectiveDependencies())
		}
	})

	t.Run("failure leaves store untouched", func(t *testing.T) {
		gen := &fakeGenerator{err: &taskgen.Error{Category: taskgen.CategoryRateLimited, Message: "slow down"}}
		svc, items := newTestService(t, gen)

		_, err := svc.Generate(context.Background(), "anything")
		require.Error(t, err)
		assert.Equal(t, taskgen.CategoryRateLimited, taskgen.Classify(err))
		assert.Empty(t, items.Items())
	})

	t.Run("output with no usable lines is an empty-result failure", func(t *testing.T) {
		gen := &fakeGenerator{generateOut: "1.\n- \n\n"}
		svc, items := newTestService(t, gen)

		_, err := svc.Generate(context.Background(), "anything")
		require.Error(t, err)
		assert.Equal(t, taskgen.CategoryEmpty, taskgen.Classify(err))
		assert.Empty(t, items.Items())
	})

	t.Run("nil generator is reported", func(t *testing.T) {
		svc, _ := newTestService(t, nil)

		_, err := svc.Generate(context.Background(), "anything")
		assert.ErrorIs(t, err, ErrNoGenerator)
	})

	t.Run("batch is capped by configured maximum", func(t *testing.T) {
		gen := &fakeGenerator{generateOut: "One\nTwo\nThree\nFour"}
		items, err := stores.NewItemStore(nil, eventbus.New(), zerolog.Nop())
		require.NoError(t, err)
		svc := NewGenerateService(items, gen, 2)

		added, err := svc.Generate(context.Background(), "anything")
		require.NoError(t, err)
		assert.Len(t, added, 2)
	})
}

func TestGenerateService_Suggest(t *testing.T) {
	t.Run("returns titles without adding items", func(t *testing.T) {
		gen := &fakeGenerator{generateOut: "First\nSecond"}
		svc, items := newTestService(t, gen)

		titles, err := svc.Suggest(context.Background(), "anything")
		require.NoError(t, err)
		assert.Equal(t, []string{"First", "Second"}, titles)
		assert.Empty(t, items.Items())
	})
}

func TestGenerateService_BreakDown(t *testing.T) {
	t.Run("sub-steps depend on parent and stay hidden until it completes", func(t *testing.T) {
		gen := &fakeGenerator{breakDownOut: "Choose venue\nCall caterer"}
		svc, items := newTestService(t, gen)

		parent, err := items.Add("Plan dinner")
		require.NoError(t, err)

		added, err := svc.BreakDown(context.Background(), parent.ID)
		require.NoError(t, err)
		require.Len(t, added, 2)
		assert.Equal(t, []string{parent.Title}, gen.prompts)
		for _, sub := range added {
			assert.Equal(t, []string{parent.ID}, sub.EffectiveDependencies())
		}

		res := items.Resolve()
		assert.False(t, res.IsVisible(added[0].ID))
		assert.True(t, res.IsVisible(parent.ID))

		items.Toggle(parent.ID)
		res = items.Resolve()
		assert.True(t, res.IsVisible(added[0].ID))
		assert.True(t, res.IsVisible(added[1].ID))
	})

	t.Run("unknown parent", func(t *testing.T) {
		svc, _ := newTestService(t, &fakeGenerator{breakDownOut: "Step"})

		_, err := svc.BreakDown(context.Background(), "nope")
		assert.ErrorIs(t, err, checklist.ErrNotFound)
	})

	t.Run("generator failure adds nothing", func(t *testing.T) {
		gen := &fakeGenerator{err: &taskgen.Error{Category: taskgen.CategoryTransient, Message: "boom"}}
		svc, items := newTestService(t, gen)

		parent, err := items.Add("Plan dinner")
		require.NoError(t, err)

		_, err = svc.BreakDown(context.Background(), parent.ID)
		require.Error(t, err)
		assert.Len(t, items.Items(), 1)
	})
}

func TestGenerateService_Rewrite(t *testing.T) {
	t.Run("updates title in place", func(t *testing.T) {
		gen := &fakeGenerator{rewriteOut: "Book the venue by Friday"}
		svc, items := newTestService(t, gen)

		item, err := items.Add("book venue")
		require.NoError(t, err)

		updated, err := svc.Rewrite(context.Background(), item.ID)
		require.NoError(t, err)
		assert.Equal(t, "Book the venue by Friday", updated.Title)
		assert.Equal(t, item.ID, updated.ID)

		got, err := items.Get(item.ID)
		require.NoError(t, err)
		assert.Equal(t, "Book the venue by Friday", got.Title)
	})

	t.Run("multi-line response keeps first line only", func(t *testing.T) {
		gen := &fakeGenerator{rewriteOut: "1. Book the venue\n2. Something else"}
		svc, items := newTestService(t, gen)

		item, err := items.Add("book venue")
		require.NoError(t, err)

		updated, err := svc.Rewrite(context.Background(), item.ID)
		require.NoError(t, err)
		assert.Equal(t, "Book the venue", updated.Title)
	})

	t.Run("empty response leaves title unchanged", func(t *testing.T) {
		gen := &fakeGenerator{rewriteOut: "   "}
		svc, items := newTestService(t, gen)

		item, err := items.Add("book venue")
		require.NoError(t, err)

		_, err = svc.Rewrite(context.Background(), item.ID)
		require.Error(t, err)
		assert.Equal(t, taskgen.CategoryEmpty, taskgen.Classify(err))

		got, err := items.Get(item.ID)
		require.NoError(t, err)
		assert.Equal(t, "book venue", got.Title)
	})
}
