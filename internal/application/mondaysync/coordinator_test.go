package mondaysync

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AG-g1/more-house/internal/domain"
)

func TestCoordinatorSingleFlight(t *testing.T) {
	coord := NewCoordinator()
	assert.Equal(t, StateIdle, coord.Snapshot().State)

	runID, err := coord.TryStart()
	require.NoError(t, err)
	assert.NotEmpty(t, runID)
	assert.Equal(t, StateSyncing, coord.Snapshot().State)

	// Segundo arranque mientras corre: rechazado.
	_, err = coord.TryStart()
	assert.ErrorIs(t, err, domain.ErrSyncInProgress)

	coord.Complete(Result{Rooms: RoomStats{Created: 3}})

	snap := coord.Snapshot()
	assert.Equal(t, StateCompleted, snap.State)
	require.NotNil(t, snap.Result)
	assert.Equal(t, 3, snap.Result.Rooms.Created)
	assert.NotNil(t, snap.CompletedAt)

	// Tras completar se puede volver a arrancar, con otro run id.
	second, err := coord.TryStart()
	require.NoError(t, err)
	assert.NotEqual(t, runID, second)

	snap = coord.Snapshot()
	assert.Equal(t, StateSyncing, snap.State)
	assert.Nil(t, snap.Result)
	assert.Empty(t, snap.Error)
}

func TestCoordinatorFail(t *testing.T) {
	coord := NewCoordinator()
	_, err := coord.TryStart()
	require.NoError(t, err)

	coord.Fail(errors.New("api caída"))

	snap := coord.Snapshot()
	assert.Equal(t, StateError, snap.State)
	assert.Equal(t, "api caída", snap.Error)
	assert.Nil(t, snap.Result)

	// Un estado de error no bloquea la siguiente ejecución.
	_, err = coord.TryStart()
	assert.NoError(t, err)
}
