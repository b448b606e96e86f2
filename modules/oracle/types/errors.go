package types

import (
	errorsmod "cosmossdk.io/errors"
)

// oracle sentinel errors
var (
	ErrInvalidEvent       = errorsmod.Register(ModuleName, 2, "invalid ethereum event")
	ErrInvalidUpdate      = errorsmod.Register(ModuleName, 3, "invalid event update")
	ErrInvalidVotingPower = errorsmod.Register(ModuleName, 4, "invalid fractional voting power")
	ErrInvalidTallyKey    = errorsmod.Register(ModuleName, 5, "invalid tally store key")
	ErrCorruptedTally     = errorsmod.Register(ModuleName, 6, "stored tally is corrupted")
	ErrVotingPowerLookup  = errorsmod.Register(ModuleName, 7, "voting power lookup failed")
	ErrInvalidTransition  = errorsmod.Register(ModuleName, 8, "invalid tally transition")
	ErrInvalidERC20Key    = errorsmod.Register(ModuleName, 9, "invalid wrapped erc20 key")
	ErrInvalidParams      = errorsmod.Register(ModuleName, 10, "invalid oracle params")
	ErrInvalidGenesis     = errorsmod.Register(ModuleName, 11, "invalid oracle genesis state")
)
