package types

import (
	"fmt"
	"math/big"
	"strings"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
)

// FractionalVotingPower is the share of the total bonded voting power backing
// an event, in the interval [0, 1]. It is kept as an exact reduced
// numerator/denominator pair so that the two-thirds quorum comparison is never
// subject to decimal rounding.
type FractionalVotingPower struct {
	Numerator   sdkmath.Int `json:"numerator"`
	Denominator sdkmath.Int `json:"denominator"`
}

// ZeroFractionalVotingPower returns the additive identity, 0/1.
func ZeroFractionalVotingPower() FractionalVotingPower {
	return FractionalVotingPower{Numerator: sdkmath.ZeroInt(), Denominator: sdkmath.OneInt()}
}

// NewFractionalVotingPower constructs a fractional voting power from the given
// numerator and denominator, reduced to lowest terms.
func NewFractionalVotingPower(numerator, denominator sdkmath.Int) (FractionalVotingPower, error) {
	if denominator.IsZero() {
		return FractionalVotingPower{}, errorsmod.Wrap(ErrInvalidVotingPower, "denominator cannot be zero")
	}
	if numerator.IsNegative() || denominator.IsNegative() {
		return FractionalVotingPower{}, errorsmod.Wrapf(ErrInvalidVotingPower, "fraction cannot be negative, got %s/%s", numerator, denominator)
	}
	if numerator.GT(denominator) {
		return FractionalVotingPower{}, errorsmod.Wrapf(ErrInvalidVotingPower, "fraction cannot exceed one, got %s/%s", numerator, denominator)
	}

	return reduce(numerator, denominator), nil
}

// reduce divides numerator and denominator by their greatest common divisor.
// The denominator must be positive.
func reduce(numerator, denominator sdkmath.Int) FractionalVotingPower {
	if numerator.IsZero() {
		return ZeroFractionalVotingPower()
	}

	gcd := new(big.Int).GCD(nil, nil, numerator.BigInt(), denominator.BigInt())
	divisor := sdkmath.NewIntFromBigInt(gcd)
	return FractionalVotingPower{
		Numerator:   numerator.Quo(divisor),
		Denominator: denominator.Quo(divisor),
	}
}

// Validate checks that the fraction is well formed and within [0, 1].
func (f FractionalVotingPower) Validate() error {
	_, err := NewFractionalVotingPower(f.Numerator, f.Denominator)
	return err
}

// Add returns the sum of f and g as a new reduced fraction.
func (f FractionalVotingPower) Add(g FractionalVotingPower) FractionalVotingPower {
	numerator := f.Numerator.Mul(g.Denominator).Add(g.Numerator.Mul(f.Denominator))
	denominator := f.Denominator.Mul(g.Denominator)
	return reduce(numerator, denominator)
}

// GT reports whether f is strictly greater than g.
func (f FractionalVotingPower) GT(g FractionalVotingPower) bool {
	return f.Numerator.Mul(g.Denominator).GT(g.Numerator.Mul(f.Denominator))
}

// Equal reports whether f and g represent the same fraction.
func (f FractionalVotingPower) Equal(g FractionalVotingPower) bool {
	return f.Numerator.Mul(g.Denominator).Equal(g.Numerator.Mul(f.Denominator))
}

// ExceedsTwoThirds reports whether the fraction is strictly greater than 2/3,
// the threshold at which a quorum of the bonded validator set stands behind
// an event.
func (f FractionalVotingPower) ExceedsTwoThirds() bool {
	return f.Numerator.MulRaw(3).GT(f.Denominator.MulRaw(2))
}

// String implements the Stringer interface, rendering the fraction as
// "{numerator}/{denominator}" in lowest terms.
func (f FractionalVotingPower) String() string {
	return fmt.Sprintf("%s/%s", f.Numerator, f.Denominator)
}

// ParseFractionalVotingPower parses the "{numerator}/{denominator}" encoding
// produced by String.
func ParseFractionalVotingPower(s string) (FractionalVotingPower, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return FractionalVotingPower{}, errorsmod.Wrapf(ErrInvalidVotingPower, "expected {numerator}/{denominator}, got %s", s)
	}

	numerator, ok := sdkmath.NewIntFromString(parts[0])
	if !ok {
		return FractionalVotingPower{}, errorsmod.Wrapf(ErrInvalidVotingPower, "invalid numerator %s", parts[0])
	}

	denominator, ok := sdkmath.NewIntFromString(parts[1])
	if !ok {
		return FractionalVotingPower{}, errorsmod.Wrapf(ErrInvalidVotingPower, "invalid denominator %s", parts[1])
	}

	return NewFractionalVotingPower(numerator, denominator)
}
