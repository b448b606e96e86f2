package types

import (
	errorsmod "cosmossdk.io/errors"
)

// GenesisState holds the oracle module state exported at a halt: the module
// parameters, every event tally including those still accumulating votes, and
// the wrapped ERC-20 balances minted for already confirmed transfers. A tally
// mid-vote must not lose accumulated voting power across an export/import
// cycle.
type GenesisState struct {
	Params        Params         `json:"params"`
	Tallies       []Tally        `json:"tallies"`
	WrappedERC20s []WrappedERC20 `json:"wrapped_erc20s"`
}

// NewGenesisState creates a new oracle GenesisState instance.
func NewGenesisState(params Params, tallies []Tally, wrapped []WrappedERC20) *GenesisState {
	return &GenesisState{
		Params:        params,
		Tallies:       tallies,
		WrappedERC20s: wrapped,
	}
}

// DefaultGenesisState returns the oracle GenesisState for a fresh chain: the
// default parameters and no recorded events.
func DefaultGenesisState() *GenesisState {
	return NewGenesisState(DefaultParams(), nil, nil)
}

// Validate performs basic genesis state validation returning an error upon
// any failure.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}

	tallies := make(map[string]struct{}, len(gs.Tallies))
	for _, tally := range gs.Tallies {
		if err := tally.Validate(); err != nil {
			return err
		}

		hash, err := EventHash(tally.Body)
		if err != nil {
			return err
		}
		if _, ok := tallies[hash.String()]; ok {
			return errorsmod.Wrapf(ErrInvalidGenesis, "duplicate tally for event %s", hash)
		}
		tallies[hash.String()] = struct{}{}
	}

	assets := make(map[string]struct{}, len(gs.WrappedERC20s))
	for _, wrapped := range gs.WrappedERC20s {
		if err := wrapped.Validate(); err != nil {
			return err
		}

		if _, ok := assets[wrapped.Asset.Hex()]; ok {
			return errorsmod.Wrapf(ErrInvalidGenesis, "duplicate wrapped state for asset %s", wrapped.Asset)
		}
		assets[wrapped.Asset.Hex()] = struct{}{}
	}

	return nil
}
