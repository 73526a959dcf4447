package domain

import "errors"

// Mint and administration errors. The minter returns these values unwrapped.
var (
	// ErrWrongStage is returned when an entry point is called outside its sale stage
	ErrWrongStage = errors.New("wrong stage")

	// ErrInvalidAmount is returned when the requested amount is zero or above the per-transaction cap
	ErrInvalidAmount = errors.New("invalid mint amount")

	// ErrAddressCapExceeded is returned when an address would mint more than its cap
	ErrAddressCapExceeded = errors.New("mint over max mint amount")

	// ErrSupplyExceeded is returned when a mint would exceed the max supply
	ErrSupplyExceeded = errors.New("max supply exceeded")

	// ErrNotWhitelisted is returned when the caller is not on the explicit whitelist
	ErrNotWhitelisted = errors.New("address is not whitelisted")

	// ErrInvalidProof is returned when a merkle proof does not reconstruct the stored root
	ErrInvalidProof = errors.New("invalid proof")

	// ErrWhitelistCapExceeded is returned when an address already claimed its whitelist allowance
	ErrWhitelistCapExceeded = errors.New("address already claimed")

	// ErrInsufficientPayment is returned when the payment is below the required total
	ErrInsufficientPayment = errors.New("insufficient funds")

	// ErrUnauthorized is returned when a non-administrator calls an administrative operation
	ErrUnauthorized = errors.New("caller is not the owner")

	// ErrUnknownToken is returned when querying a token id that was never minted
	ErrUnknownToken = errors.New("nonexistent token")

	// ErrInvalidConfig is returned when the collection parameters are out of range
	ErrInvalidConfig = errors.New("invalid collection config")

	// ErrInvalidAuctionParams is returned when the dutch auction parameters are inconsistent
	ErrInvalidAuctionParams = errors.New("invalid dutch auction params")

	// ErrWhitelistModeMismatch is returned when an operation does not apply to the active whitelist mode
	ErrWhitelistModeMismatch = errors.New("operation not supported by whitelist mode")

	// ErrInvalidStage is returned when setting a stage outside the known stages
	ErrInvalidStage = errors.New("invalid stage")

	// ErrZeroAddress is returned when minting to the zero address
	ErrZeroAddress = errors.New("mint to the zero address")

	// ErrNothingToWithdraw is returned when the treasury balance is empty
	ErrNothingToWithdraw = errors.New("nothing to withdraw")

	// ErrRestoreConflict is returned when stored mints cannot be replayed into the contract
	ErrRestoreConflict = errors.New("stored mints conflict with contract state")
)
