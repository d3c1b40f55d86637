package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledscape/intake/pkg/domain"
)

// RunSessionStoreContract runs a suite of tests to verify that a SessionStore
// implementation adheres to the interface contract. Adapter tests call it so
// every store behaves identically from the router's point of view.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	userID := "contract-user-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		session := domain.NewSession(userID)
		session.Step = domain.StepLEDSize
		session.Service = domain.ServiceRental
		session.LEDCount = 2
		session.Draft.Specs = append(session.Draft.Specs, domain.LEDSpec{WidthMM: 4000, HeightMM: 2500})
		session.Checkpoint()

		err := store.Save(ctx, userID, session)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, userID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, session.Step, loaded.Step)
		assert.Equal(t, session.Service, loaded.Service)
		assert.Equal(t, session.LEDCount, loaded.LEDCount)
		require.Len(t, loaded.Draft.Specs, 1)
		assert.Equal(t, 4000, loaded.Draft.Specs[0].WidthMM)
		require.NotNil(t, loaded.Undo, "undo snapshot must survive persistence")
		assert.Equal(t, domain.StepLEDSize, loaded.Undo.Step)
	})

	t.Run("Load Isolation", func(t *testing.T) {
		session := domain.NewSession(userID)
		session.Draft.Specs = append(session.Draft.Specs, domain.LEDSpec{WidthMM: 1000, HeightMM: 1000})
		require.NoError(t, store.Save(ctx, userID, session))

		// Mutating one loaded copy must not affect a second load.
		first, err := store.Load(ctx, userID)
		require.NoError(t, err)
		first.Draft.Specs[0].WidthMM = 9000

		second, err := store.Load(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, 1000, second.Draft.Specs[0].WidthMM)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+userID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, userID, domain.NewSession(userID)))

		err := store.Delete(ctx, userID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, userID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")

		// Deleting again is not an error.
		assert.NoError(t, store.Delete(ctx, userID))
	})

	t.Run("List", func(t *testing.T) {
		id1 := userID + "-1"
		id2 := userID + "-2"
		require.NoError(t, store.Save(ctx, id1, domain.NewSession(id1)))
		require.NoError(t, store.Save(ctx, id2, domain.NewSession(id2)))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		users, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, users, id1)
		assert.Contains(t, users, id2)
	})
}
