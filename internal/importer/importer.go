package importer

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/moneymuse/internal/transaction"
)

// Row is one parsed statement line. It is not yet bound to a category; the
// import flow fills that in before the row becomes a transaction.
type Row struct {
	Type        transaction.Type
	Amount      decimal.Decimal
	Description string
	Date        time.Time
}
