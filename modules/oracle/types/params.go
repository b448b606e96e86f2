package types

import (
	errorsmod "cosmossdk.io/errors"
)

const (
	// DefaultEnabled enables the bridge oracle
	DefaultEnabled = true

	// DefaultMinConfirmations is the default depth an Ethereum block must
	// be buried under before validators report events from it
	DefaultMinConfirmations uint64 = 100
)

// Params holds the bridge oracle parameters.
type Params struct {
	// Enabled halts all tally processing when false. Batches applied while
	// the bridge is disabled change nothing and confirm nothing.
	Enabled bool `json:"enabled"`

	// MinConfirmations is the number of Ethereum blocks that must be built
	// on top of a block before validators report its events.
	MinConfirmations uint64 `json:"min_confirmations"`
}

// NewParams creates a new parameter configuration for the oracle module.
func NewParams(enabled bool, minConfirmations uint64) Params {
	return Params{
		Enabled:          enabled,
		MinConfirmations: minConfirmations,
	}
}

// DefaultParams is the default parameter configuration for the oracle module.
func DefaultParams() Params {
	return NewParams(DefaultEnabled, DefaultMinConfirmations)
}

// Validate checks that the parameter values are within acceptable bounds.
func (p Params) Validate() error {
	if p.MinConfirmations == 0 {
		return errorsmod.Wrap(ErrInvalidParams, "min confirmations must be at least 1")
	}
	return nil
}
