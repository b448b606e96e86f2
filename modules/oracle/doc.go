/*
Package oracle implements the vote aggregation and quorum confirmation state
machine turning ethereum events observed by individual validators into
attested facts in chain storage. Validators report sightings of bridge
contract events; the oracle weighs each vote by the reporting validator's
share of the bonded stake at the sighted height, folds the votes into a
per-event tally, and confirms an event once more than two thirds of the
voting power stands behind it. Confirming a transfer batch mints wrapped
ERC-20 balances for its receivers.

The module is driven directly by the block finalization pipeline with an
already verified batch of event updates per block. It exposes no message
service: tallies change only through keeper.ApplyEventUpdates, which applies
a whole batch deterministically or not at all.
*/
package oracle
