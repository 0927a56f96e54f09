package guided

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/palspantry/pantry-backend/internal/modules/catalog"
	"github.com/palspantry/pantry-backend/internal/modules/owner"
)

const ownerID int64 = 9000

func newTestFlow(t *testing.T) (*Flow, catalog.Service) {
	t.Helper()
	logger := zap.NewNop()
	owners := owner.NewService(owner.NewMemoryRepository(), logger)
	claimed, err := owners.ClaimOwner(context.Background(), ownerID)
	require.NoError(t, err)
	require.True(t, claimed)

	cat := catalog.NewService(catalog.NewMemoryRepository(), logger)
	return NewFlow(owners, cat, logger), cat
}

func text(s string) Input { return Input{Text: s} }

func TestStartRejectsNonOwner(t *testing.T) {
	flow, _ := newTestFlow(t)

	_, err := flow.Start(context.Background(), 123)
	assert.ErrorIs(t, err, ErrNotOwner)

	// No session was created for the rejected user.
	_, err = flow.Handle(context.Background(), 123, text("Tea"))
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestHandleWithoutSession(t *testing.T) {
	flow, _ := newTestFlow(t)
	_, err := flow.Handle(context.Background(), ownerID, text("hello"))
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestFullHappyPath(t *testing.T) {
	flow, cat := newTestFlow(t)
	ctx := context.Background()

	reply, err := flow.Start(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, KindText, reply.Expect)

	reply, err = flow.Handle(ctx, ownerID, text("Tea"))
	require.NoError(t, err)
	assert.Equal(t, KindText, reply.Expect)

	reply, err = flow.Handle(ctx, ownerID, text("Green tea"))
	require.NoError(t, err)
	assert.Equal(t, KindDecimal, reply.Expect)

	// An unparseable price re-prompts the same state without losing the
	// fields collected so far.
	reply, err = flow.Handle(ctx, ownerID, text("abc"))
	require.NoError(t, err)
	assert.Equal(t, KindDecimal, reply.Expect)
	assert.False(t, reply.Done)

	reply, err = flow.Handle(ctx, ownerID, text("4.50"))
	require.NoError(t, err)
	assert.Equal(t, KindInteger, reply.Expect)

	reply, err = flow.Handle(ctx, ownerID, text("10"))
	require.NoError(t, err)
	assert.Equal(t, KindText, reply.Expect)

	reply, err = flow.Handle(ctx, ownerID, text("Drinks"))
	require.NoError(t, err)
	assert.Equal(t, KindImageOrSkip, reply.Expect)

	reply, err = flow.Handle(ctx, ownerID, text("skip"))
	require.NoError(t, err)
	assert.Equal(t, KindConfirm, reply.Expect)
	assert.Contains(t, reply.Prompt, "Tea")
	assert.Contains(t, reply.Prompt, "Drinks")

	reply, err = flow.Handle(ctx, ownerID, Input{Confirm: true})
	require.NoError(t, err)
	assert.True(t, reply.Done)
	assert.Equal(t, OutcomeSaved, reply.Outcome)

	products, err := cat.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Tea", products[0].Name)
	assert.Equal(t, "Green tea", products[0].Description)
	assert.Equal(t, int64(450), products[0].PriceCents)
	assert.Equal(t, 10, products[0].Quantity)
	assert.Equal(t, "Drinks", products[0].Category)
	assert.Empty(t, products[0].ImageFileID)
}

func TestImageAttachmentIsStored(t *testing.T) {
	flow, cat := newTestFlow(t)
	ctx := context.Background()

	_, err := flow.Start(ctx, ownerID)
	require.NoError(t, err)
	for _, in := range []string{"Tea", "Green tea", "4.50", "10", "Drinks"} {
		_, err = flow.Handle(ctx, ownerID, text(in))
		require.NoError(t, err)
	}

	reply, err := flow.Handle(ctx, ownerID, Input{ImageFileID: "file-abc"})
	require.NoError(t, err)
	assert.Equal(t, KindConfirm, reply.Expect)

	reply, err = flow.Handle(ctx, ownerID, text("confirm"))
	require.NoError(t, err)
	assert.Equal(t, OutcomeSaved, reply.Outcome)

	products, err := cat.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "file-abc", products[0].ImageFileID)
}

func TestBlankInputsReprompt(t *testing.T) {
	flow, _ := newTestFlow(t)
	ctx := context.Background()

	_, err := flow.Start(ctx, ownerID)
	require.NoError(t, err)

	// Blank name re-prompts; the flow stays in the same state.
	reply, err := flow.Handle(ctx, ownerID, text("   "))
	require.NoError(t, err)
	assert.False(t, reply.Done)
	assert.Contains(t, reply.Prompt, "name cannot be empty")

	// A valid name still advances afterwards.
	reply, err = flow.Handle(ctx, ownerID, text("Tea"))
	require.NoError(t, err)
	assert.Contains(t, reply.Prompt, "description")
}

func TestPriceValidation(t *testing.T) {
	flow, cat := newTestFlow(t)
	ctx := context.Background()

	_, err := flow.Start(ctx, ownerID)
	require.NoError(t, err)
	for _, in := range []string{"Tea", "Green tea"} {
		_, err = flow.Handle(ctx, ownerID, text(in))
		require.NoError(t, err)
	}

	// ParseFloat accepts "nan" and "inf", so the price step has to reject
	// non-finite values itself rather than let them reach the catalog.
	for _, bad := range []string{"nan", "NaN", "inf", "+Inf", "-inf", "1e300", "0", "-2", "abc"} {
		reply, err := flow.Handle(ctx, ownerID, text(bad))
		require.NoError(t, err)
		assert.Equal(t, KindDecimal, reply.Expect, "input %q must re-prompt price", bad)
		assert.False(t, reply.Done)
	}

	for _, in := range []string{"4.50", "10", "Drinks", "skip"} {
		_, err = flow.Handle(ctx, ownerID, text(in))
		require.NoError(t, err)
	}
	reply, err := flow.Handle(ctx, ownerID, Input{Confirm: true})
	require.NoError(t, err)
	assert.Equal(t, OutcomeSaved, reply.Outcome)

	products, err := cat.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, int64(450), products[0].PriceCents)
}

func TestQuantityValidation(t *testing.T) {
	flow, _ := newTestFlow(t)
	ctx := context.Background()

	_, err := flow.Start(ctx, ownerID)
	require.NoError(t, err)
	for _, in := range []string{"Tea", "Green tea", "4.50"} {
		_, err = flow.Handle(ctx, ownerID, text(in))
		require.NoError(t, err)
	}

	for _, bad := range []string{"abc", "-1", "0", "2.5", ""} {
		reply, err := flow.Handle(ctx, ownerID, text(bad))
		require.NoError(t, err)
		assert.Equal(t, KindInteger, reply.Expect, "input %q must re-prompt quantity", bad)
	}

	reply, err := flow.Handle(ctx, ownerID, text("10"))
	require.NoError(t, err)
	assert.Equal(t, KindText, reply.Expect)
}

func TestCancelFromAnyState(t *testing.T) {
	flow, cat := newTestFlow(t)
	ctx := context.Background()

	// Walk into DESCRIPTION, then cancel.
	_, err := flow.Start(ctx, ownerID)
	require.NoError(t, err)
	_, err = flow.Handle(ctx, ownerID, text("Tea"))
	require.NoError(t, err)

	reply, err := flow.Handle(ctx, ownerID, Input{Cancel: true})
	require.NoError(t, err)
	assert.True(t, reply.Done)
	assert.Equal(t, OutcomeCancelled, reply.Outcome)

	products, err := cat.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, products, "cancel must leave the catalog untouched")

	// The session is gone; further messages have nowhere to go.
	_, err = flow.Handle(ctx, ownerID, text("Green tea"))
	assert.ErrorIs(t, err, ErrNoSession)

	// Cancel also works at the confirmation step.
	_, err = flow.Start(ctx, ownerID)
	require.NoError(t, err)
	for _, in := range []string{"Tea", "Green tea", "4.50", "10", "Drinks", "skip"} {
		_, err = flow.Handle(ctx, ownerID, text(in))
		require.NoError(t, err)
	}
	reply, err = flow.Handle(ctx, ownerID, Input{Cancel: true})
	require.NoError(t, err)
	assert.Equal(t, OutcomeCancelled, reply.Outcome)

	products, err = cat.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestRestartDiscardsPreviousBuffer(t *testing.T) {
	flow, cat := newTestFlow(t)
	ctx := context.Background()

	_, err := flow.Start(ctx, ownerID)
	require.NoError(t, err)
	_, err = flow.Handle(ctx, ownerID, text("Old name"))
	require.NoError(t, err)

	// Starting over puts the flow back at the name step.
	reply, err := flow.Start(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, promptName, reply.Prompt)

	for _, in := range []string{"Tea", "Green tea", "4.50", "10", "Drinks", "skip"} {
		_, err = flow.Handle(ctx, ownerID, text(in))
		require.NoError(t, err)
	}
	reply, err = flow.Handle(ctx, ownerID, Input{Confirm: true})
	require.NoError(t, err)
	assert.Equal(t, OutcomeSaved, reply.Outcome)

	products, err := cat.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Tea", products[0].Name, "the abandoned buffer must not leak")
}
