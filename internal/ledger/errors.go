package ledger

import "errors"

var (
	ErrUserMissing  = errors.New("the user must be set")
	ErrMonthMissing = errors.New("the month must be set")
	ErrSameMonth    = errors.New("source and target month must be different")

	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrStaleAmount       = errors.New("the amount has been changed in the meantime, please reload and try again")

	ErrTransferSameEnvelope    = errors.New("source and destination envelope of a transfer must be different")
	ErrEnvelopeHasTransactions = errors.New("the envelope has transactions and cannot be removed")

	ErrSplitEmpty              = errors.New("a split needs at least one part")
	ErrSplitSumMismatch        = errors.New("the split amounts must add up to the transaction amount")
	ErrTransactionSplit        = errors.New("the envelope and amount of a split transaction cannot be changed")
	ErrTransactionAlreadySplit = errors.New("the transaction is already split")

	ErrNotUndoable   = errors.New("this activity cannot be undone")
	ErrAlreadyUndone = errors.New("this activity has already been undone")
)
