package network

import (
	"context"
	"errors"
)

// ErrNoSelectionFound is returned by LoadSelectedNetwork when no network
// choice has been persisted yet.
var ErrNoSelectionFound = errors.New("no network selection found")

// SelectionStorage persists and retrieves the user's last network choice so it
// survives process restarts.
type SelectionStorage interface {
	// SaveSelectedNetwork records the given network id as the current
	// selection, overwriting any previous value.
	//
	// ctx controls cancellation and deadlines for any underlying I/O.
	SaveSelectedNetwork(ctx context.Context, id ID) error

	// LoadSelectedNetwork returns the most recently saved network id.
	//
	// If no selection has been saved yet, LoadSelectedNetwork should return
	// ErrNoSelectionFound.
	//
	// ctx controls cancellation and deadlines for any underlying I/O.
	LoadSelectedNetwork(ctx context.Context) (ID, error)
}

// nopSelection is the fallback SelectionStorage used when no persistence
// backend is configured. Loads report no selection; saves succeed silently.
type nopSelection struct{}

var _ SelectionStorage = nopSelection{}

func (nopSelection) SaveSelectedNetwork(context.Context, ID) error {
	return nil
}

func (nopSelection) LoadSelectedNetwork(context.Context) (ID, error) {
	return "", ErrNoSelectionFound
}
