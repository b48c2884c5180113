// Package v1 implements the HTTP API of the ledger.
//
// Every endpoint identifies its caller with the user and household query
// parameters. Month-bound endpoints also need the month parameter.
package v1

import (
	"github.com/envelope-zero/ledger/internal/ledger"
)

type Controller struct {
	Ledger *ledger.Service
}
