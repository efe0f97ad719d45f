// Package export renders dashboard data into downloadable formats.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"marketadmin/internal/api"
)

var paymentHeader = []string{
	"id", "transaction_id", "order_id", "amount", "platform_fee",
	"status", "payment_method", "created_at",
}

// WritePaymentsCSV streams the payment ledger as CSV.
func WritePaymentsCSV(w io.Writer, payments []api.Payment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(paymentHeader); err != nil {
		return fmt.Errorf("export: write header: %w", err)
	}
	for _, p := range payments {
		row := []string{
			strconv.FormatInt(p.ID, 10),
			p.TransactionID,
			strconv.FormatInt(p.OrderID, 10),
			strconv.FormatFloat(p.Amount, 'f', 2, 64),
			strconv.FormatFloat(p.PlatformFee, 'f', 2, 64),
			string(p.Status),
			p.PaymentMethod,
			p.CreatedAt.Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export: write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
