package types

import (
	"crypto/sha256"
	"strings"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"

	sdk "github.com/cosmos/cosmos-sdk/types"

	cmtbytes "github.com/cometbft/cometbft/libs/bytes"

	"github.com/ethereum/go-ethereum/common"
)

// event kinds, used as discriminators in logs and emitted events
const (
	EventKindTransfersToCosmos = "transfers_to_cosmos"
	EventKindUpgradedContract  = "upgraded_contract"
)

// EthereumEvent is an event emitted by the bridge contracts on Ethereum and
// reported by the validator set. Implementations must be registered on the
// module codec: the amino encoding of the interface is the canonical byte
// representation from which the event hash and the stored tally body are
// derived.
type EthereumEvent interface {
	// Kind returns the event kind discriminator.
	Kind() string

	// ValidateBasic checks that the event fields are well formed.
	ValidateBasic() error
}

// EventHash returns the SHA-256 hash of the canonical encoding of the event.
// Events hashing equal are the same event: the hash determines the tally the
// event's votes accumulate under, and the store prefix the tally lives at.
func EventHash(event EthereumEvent) (cmtbytes.HexBytes, error) {
	if event == nil {
		return nil, errorsmod.Wrap(ErrInvalidEvent, "event cannot be nil")
	}

	bz, err := ModuleCdc.Marshal(&event)
	if err != nil {
		return nil, errorsmod.Wrapf(ErrInvalidEvent, "failed to hash %s event: %s", event.Kind(), err)
	}

	hash := sha256.Sum256(bz)
	return hash[:], nil
}

// TransferToCosmos is a single ERC-20 deposit into the bridge escrow contract,
// crediting the receiver with the wrapped representation of the asset.
type TransferToCosmos struct {
	Amount   sdkmath.Int    `json:"amount"`
	Asset    common.Address `json:"asset"`
	Receiver string         `json:"receiver"`
}

// NewTransferToCosmos constructs a single wrapped-asset transfer.
func NewTransferToCosmos(amount sdkmath.Int, asset common.Address, receiver string) TransferToCosmos {
	return TransferToCosmos{
		Amount:   amount,
		Asset:    asset,
		Receiver: receiver,
	}
}

// Validate checks the transfer fields.
func (t TransferToCosmos) Validate() error {
	if t.Amount.IsNil() {
		return errorsmod.Wrap(ErrInvalidEvent, "transfer amount cannot be nil")
	}
	if !t.Amount.IsPositive() {
		return errorsmod.Wrapf(ErrInvalidEvent, "transfer amount must be positive, got %s", t.Amount)
	}
	if t.Asset == (common.Address{}) {
		return errorsmod.Wrap(ErrInvalidEvent, "asset address cannot be zero")
	}
	if _, err := sdk.AccAddressFromBech32(t.Receiver); err != nil {
		return errorsmod.Wrapf(ErrInvalidEvent, "invalid receiver address %s: %s", t.Receiver, err)
	}

	return nil
}

// TransfersToCosmos is a batch of ERC-20 deposits observed in a single bridge
// contract call, sequenced by the contract's monotonic nonce.
type TransfersToCosmos struct {
	Nonce     uint64             `json:"nonce"`
	Transfers []TransferToCosmos `json:"transfers"`
}

var _ EthereumEvent = (*TransfersToCosmos)(nil)

// NewTransfersToCosmos constructs a transfer batch event.
func NewTransfersToCosmos(nonce uint64, transfers []TransferToCosmos) *TransfersToCosmos {
	return &TransfersToCosmos{
		Nonce:     nonce,
		Transfers: transfers,
	}
}

// Kind implements EthereumEvent.
func (*TransfersToCosmos) Kind() string {
	return EventKindTransfersToCosmos
}

// ValidateBasic implements EthereumEvent.
func (e *TransfersToCosmos) ValidateBasic() error {
	if len(e.Transfers) == 0 {
		return errorsmod.Wrap(ErrInvalidEvent, "transfer batch cannot be empty")
	}

	for i, transfer := range e.Transfers {
		if err := transfer.Validate(); err != nil {
			return errorsmod.Wrapf(err, "transfer %d", i)
		}
	}

	return nil
}

// UpgradedContract reports that one of the bridge's Ethereum contracts has
// been upgraded to a new address.
type UpgradedContract struct {
	Name    string         `json:"name"`
	Address common.Address `json:"address"`
}

var _ EthereumEvent = (*UpgradedContract)(nil)

// NewUpgradedContract constructs a contract upgrade event.
func NewUpgradedContract(name string, address common.Address) *UpgradedContract {
	return &UpgradedContract{
		Name:    name,
		Address: address,
	}
}

// Kind implements EthereumEvent.
func (*UpgradedContract) Kind() string {
	return EventKindUpgradedContract
}

// ValidateBasic implements EthereumEvent.
func (e *UpgradedContract) ValidateBasic() error {
	if strings.TrimSpace(e.Name) == "" {
		return errorsmod.Wrap(ErrInvalidEvent, "contract name cannot be empty")
	}
	if e.Address == (common.Address{}) {
		return errorsmod.Wrap(ErrInvalidEvent, "contract address cannot be zero")
	}

	return nil
}
