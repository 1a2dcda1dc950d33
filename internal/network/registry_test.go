package network

import (
	"context"
	"errors"
	"testing"

	"github.com/stackboard/walletd/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// Initialize logger for tests to prevent nil pointer dereference
	_ = logger.Init("error")
}

// selectionStorageFake is an in-memory SelectionStorage test double.
type selectionStorageFake struct {
	saved    []ID
	loadID   ID
	loadErr  error
	saveErr  error
	loadHits int
}

var _ SelectionStorage = (*selectionStorageFake)(nil)

func (f *selectionStorageFake) SaveSelectedNetwork(_ context.Context, id ID) error {
	f.saved = append(f.saved, id)
	return f.saveErr
}

func (f *selectionStorageFake) LoadSelectedNetwork(context.Context) (ID, error) {
	f.loadHits++
	return f.loadID, f.loadErr
}

func TestByID(t *testing.T) {
	t.Run("known networks", func(t *testing.T) {
		for _, id := range []ID{Mainnet, Testnet, Devnet} {
			d, ok := ByID(id)
			require.True(t, ok)
			assert.Equal(t, id, d.ID)
			assert.NotEmpty(t, d.APIBaseURL)
		}
	})

	t.Run("unknown network", func(t *testing.T) {
		_, ok := ByID("regtest")
		assert.False(t, ok)
	})
}

func TestDescriptor_SupportsBTC(t *testing.T) {
	t.Run("production environments support BTC", func(t *testing.T) {
		for _, id := range []ID{Mainnet, Testnet} {
			d, ok := ByID(id)
			require.True(t, ok)
			assert.True(t, d.SupportsBTC())
		}
	})

	t.Run("devnet does not support BTC", func(t *testing.T) {
		d, ok := ByID(Devnet)
		require.True(t, ok)
		assert.False(t, d.SupportsBTC())
	})
}

func TestNew(t *testing.T) {
	t.Run("defaults to testnet without storage", func(t *testing.T) {
		r := New(t.Context())

		assert.Equal(t, Testnet, r.Active().ID)
	})

	t.Run("restores persisted selection", func(t *testing.T) {
		ss := &selectionStorageFake{loadID: Mainnet}

		r := New(t.Context(), WithSelectionStorage(ss))

		assert.Equal(t, Mainnet, r.Active().ID)
		assert.Equal(t, 1, ss.loadHits)
	})

	t.Run("falls back to default when nothing persisted", func(t *testing.T) {
		ss := &selectionStorageFake{loadErr: ErrNoSelectionFound}

		r := New(t.Context(), WithSelectionStorage(ss))

		assert.Equal(t, DefaultID, r.Active().ID)
	})

	t.Run("falls back to default on unrecognized persisted value", func(t *testing.T) {
		ss := &selectionStorageFake{loadID: "simnet"}

		r := New(t.Context(), WithSelectionStorage(ss))

		assert.Equal(t, DefaultID, r.Active().ID)
	})

	t.Run("falls back to default on storage error", func(t *testing.T) {
		ss := &selectionStorageFake{loadErr: errors.New("connection refused")}

		r := New(t.Context(), WithSelectionStorage(ss))

		assert.Equal(t, DefaultID, r.Active().ID)
	})
}

func TestRegistry_SetActive(t *testing.T) {
	t.Run("switches and persists the selection", func(t *testing.T) {
		ss := &selectionStorageFake{loadErr: ErrNoSelectionFound}
		r := New(t.Context(), WithSelectionStorage(ss))

		d, err := r.SetActive(t.Context(), Mainnet)

		require.NoError(t, err)
		assert.Equal(t, Mainnet, d.ID)
		assert.Equal(t, Mainnet, r.Active().ID)
		assert.Equal(t, []ID{Mainnet}, ss.saved)
	})

	t.Run("unknown id is rejected and selection unchanged", func(t *testing.T) {
		r := New(t.Context())

		_, err := r.SetActive(t.Context(), "signet")

		require.ErrorIs(t, err, ErrUnknownNetwork)
		assert.Equal(t, DefaultID, r.Active().ID)
	})

	t.Run("persistence failure does not fail the switch", func(t *testing.T) {
		ss := &selectionStorageFake{loadErr: ErrNoSelectionFound, saveErr: errors.New("redis down")}
		r := New(t.Context(), WithSelectionStorage(ss))

		d, err := r.SetActive(t.Context(), Devnet)

		require.NoError(t, err)
		assert.Equal(t, Devnet, d.ID)
		assert.Equal(t, Devnet, r.Active().ID)
	})
}

func TestRegistry_Networks(t *testing.T) {
	t.Run("returns the full catalog in display order", func(t *testing.T) {
		r := New(t.Context())

		nets := r.Networks()

		require.Len(t, nets, 3)
		assert.Equal(t, Mainnet, nets[0].ID)
		assert.Equal(t, Testnet, nets[1].ID)
		assert.Equal(t, Devnet, nets[2].ID)
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		r := New(t.Context())

		nets := r.Networks()
		nets[0].Name = "mutated"

		assert.Equal(t, "Mainnet", r.Networks()[0].Name)
	})
}
