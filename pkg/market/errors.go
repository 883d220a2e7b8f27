package market

import (
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/rogue-markets/anker-go/pkg/solana"
)

// ErrDerivationExhausted is surfaced when no bump seed yields a valid market
// address. See solana.ErrDerivationExhausted.
var ErrDerivationExhausted = solana.ErrDerivationExhausted

// KeyLoadError indicates signing key material is missing or malformed. It is
// always raised before any network interaction.
type KeyLoadError struct {
	Path  string
	Cause error
}

func (e *KeyLoadError) Error() string {
	return fmt.Sprintf("failed to load keypair from %s: %v", e.Path, e.Cause)
}

func (e *KeyLoadError) Unwrap() error {
	return e.Cause
}

// InterfaceLoadError indicates the program interface description is missing,
// malformed, or describes a different program than the one compiled in. It is
// always raised before any network interaction.
type InterfaceLoadError struct {
	Path  string
	Cause error
}

func (e *InterfaceLoadError) Error() string {
	return fmt.Sprintf("failed to load program interface from %s: %v", e.Path, e.Cause)
}

func (e *InterfaceLoadError) Unwrap() error {
	return e.Cause
}

// AccountMismatchError indicates a derived or custody account could not be
// resolved consistently from the provided identities.
type AccountMismatchError struct {
	Account string
	Cause   error
}

func (e *AccountMismatchError) Error() string {
	return fmt.Sprintf("failed to resolve %s account: %v", e.Account, e.Cause)
}

func (e *AccountMismatchError) Unwrap() error {
	return e.Cause
}

// SubmissionRejectedError indicates the network or the program rejected the
// transaction. Cause carries the remote-supplied reason opaquely; rejection
// codes are relayed, never reinterpreted.
type SubmissionRejectedError struct {
	Signature solana.Signature
	Cause     error
}

func (e *SubmissionRejectedError) Error() string {
	return fmt.Sprintf("transaction %s rejected: %v", base58.Encode(e.Signature[:]), e.Cause)
}

func (e *SubmissionRejectedError) Unwrap() error {
	return e.Cause
}

// ConfirmationUnknownError indicates the transaction was submitted but its
// confirmation was not observed in time. The outcome is genuinely unknown and
// must be resolved by a status query on the signature, never by blind
// resubmission.
type ConfirmationUnknownError struct {
	Signature solana.Signature
	Cause     error
}

func (e *ConfirmationUnknownError) Error() string {
	return fmt.Sprintf("confirmation of transaction %s not observed: %v", base58.Encode(e.Signature[:]), e.Cause)
}

func (e *ConfirmationUnknownError) Unwrap() error {
	return e.Cause
}
