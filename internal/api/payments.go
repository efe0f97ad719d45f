package api

import "context"

const (
	paymentsPath          = "/api/admin/payments"
	paymentStatisticsPath = "/api/admin/payments/statistics"
)

// ListPayments fetches one page of the payment ledger.
// Supported filters: status, payment_method.
func (c *Client) ListPayments(ctx context.Context, q ListQuery) (*Page[Payment], error) {
	return listPage[Payment](ctx, c, paymentsPath, q)
}

// PaymentStatistics fetches the payment ledger aggregate.
func (c *Client) PaymentStatistics(ctx context.Context) (*PaymentStats, error) {
	var stats PaymentStats
	if err := c.getEnvelope(ctx, paymentStatisticsPath, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
