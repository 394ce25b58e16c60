package store_test

import (
	"context"
	"fmt"
	"testing"

	"heartlink/backend/internal/apperr"
	"heartlink/backend/internal/models"
	"heartlink/backend/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMessageStores(t *testing.T) (*store.MatchStore, *store.MessageStore, context.Context) {
	t.Helper()
	db := setupTestDB(t)
	matches := store.NewMatchStore(db)
	messages := store.NewMessageStore(db, matches)

	seedUser(t, db, "alice", models.RoleFemale)
	seedUser(t, db, "bob", models.RoleMale)
	seedUser(t, db, "carl", models.RoleMale)
	seedUser(t, db, "root", models.RoleAdmin)
	seedUser(t, db, "dina", models.RoleFemale)

	return matches, messages, context.Background()
}

func TestAppendRequiresMatch(t *testing.T) {
	matches, messages, ctx := setupMessageStores(t)

	_, err := messages.Append(ctx, "alice", "bob", "hi")
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindForbidden, appErr.Kind)

	_, err = matches.Create(ctx, "alice", "bob")
	require.NoError(t, err)

	msg, err := messages.Append(ctx, "alice", "bob", "hi")
	require.NoError(t, err)
	assert.Equal(t, "alice", msg.Sender)
	assert.Equal(t, "hi", msg.Content)
	assert.Equal(t, "User alice", msg.SenderAccount.Name)
}

func TestAppendValidation(t *testing.T) {
	_, messages, ctx := setupMessageStores(t)

	var appErr *apperr.Error

	_, err := messages.Append(ctx, "alice", "bob", "   ")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindValidation, appErr.Kind)

	_, err = messages.Append(ctx, "alice", "alice", "hi")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindValidation, appErr.Kind)
}

func TestConversationRoundTrip(t *testing.T) {
	matches, messages, ctx := setupMessageStores(t)

	_, err := matches.Create(ctx, "alice", "bob")
	require.NoError(t, err)

	const n = 5
	for i := 0; i < n; i++ {
		sender, receiver := "alice", "bob"
		if i%2 == 1 {
			sender, receiver = "bob", "alice"
		}
		_, err := messages.Append(ctx, sender, receiver, fmt.Sprintf("message %d", i))
		require.NoError(t, err)
	}

	// Same conversation regardless of which side queries first.
	for _, pair := range [][2]string{{"alice", "bob"}, {"bob", "alice"}} {
		listed, err := messages.ListBetween(ctx, pair[0], pair[1])
		require.NoError(t, err)
		require.Len(t, listed, n)

		for i := 1; i < len(listed); i++ {
			assert.False(t, listed[i].CreatedAt.Before(listed[i-1].CreatedAt),
				"messages must be in non-decreasing timestamp order")
		}
		assert.Equal(t, "message 0", listed[0].Content)
		assert.Equal(t, fmt.Sprintf("message %d", n-1), listed[n-1].Content)
	}
}

func TestDeleteMessageSenderOnly(t *testing.T) {
	matches, messages, ctx := setupMessageStores(t)

	_, err := matches.Create(ctx, "alice", "bob")
	require.NoError(t, err)
	msg, err := messages.Append(ctx, "alice", "bob", "hi")
	require.NoError(t, err)

	var appErr *apperr.Error

	// The receiver cannot delete the sender's message.
	err = messages.Delete(ctx, msg.ID, "bob")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindForbidden, appErr.Kind)

	// The sender can, exactly once.
	require.NoError(t, messages.Delete(ctx, msg.ID, "alice"))

	err = messages.Delete(ctx, msg.ID, "alice")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindNotFound, appErr.Kind)
}

func TestDeleteUnknownMessage(t *testing.T) {
	_, messages, ctx := setupMessageStores(t)

	err := messages.Delete(ctx, 9999, "alice")
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindNotFound, appErr.Kind)
}

func TestAuditExcludesAdminConversations(t *testing.T) {
	matches, messages, ctx := setupMessageStores(t)

	// A normal conversation and one involving the admin account.
	_, err := matches.Create(ctx, "alice", "bob")
	require.NoError(t, err)
	_, err = matches.Create(ctx, "dina", "root")
	require.NoError(t, err)

	_, err = messages.Append(ctx, "alice", "bob", "between regulars")
	require.NoError(t, err)
	_, err = messages.Append(ctx, "bob", "alice", "yes indeed")
	require.NoError(t, err)
	_, err = messages.Append(ctx, "dina", "root", "to the admin")
	require.NoError(t, err)

	audited, total, err := messages.AuditAll(ctx, 1, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, audited, 2)
	for _, m := range audited {
		assert.NotEqual(t, "root", m.UserA)
		assert.NotEqual(t, "root", m.UserB)
		assert.NotEmpty(t, m.SenderAccount.Name)
	}

	// Paging through one row at a time covers the same set.
	firstPage, total, err := messages.AuditAll(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, firstPage, 1)

	secondPage, _, err := messages.AuditAll(ctx, 2, 1)
	require.NoError(t, err)
	require.Len(t, secondPage, 1)
	assert.NotEqual(t, firstPage[0].ID, secondPage[0].ID)
}
