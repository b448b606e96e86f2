package types

import (
	"github.com/cosmos/cosmos-sdk/codec"
)

// RegisterLegacyAminoCodec registers the ethereum event interface and its
// concrete implementations on the given codec.
func RegisterLegacyAminoCodec(cdc *codec.LegacyAmino) {
	cdc.RegisterInterface((*EthereumEvent)(nil), nil)
	cdc.RegisterConcrete(&TransfersToCosmos{}, "ethbridge/TransfersToCosmos", nil)
	cdc.RegisterConcrete(&UpgradedContract{}, "ethbridge/UpgradedContract", nil)
}

// ModuleCdc is the oracle module codec. Event bodies are encoded over the
// EthereumEvent interface so that stored tallies round-trip every registered
// event kind.
var ModuleCdc = codec.NewLegacyAmino()

func init() {
	RegisterLegacyAminoCodec(ModuleCdc)
	ModuleCdc.Seal()
}
