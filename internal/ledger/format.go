package ledger

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/number"
)

// amount formats a money amount with two decimals in the locale of the service.
func (s *Service) amount(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return s.printer.Sprintf("%v", number.Decimal(f, number.Scale(2)))
}
