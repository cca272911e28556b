package services

import "github.com/marwanedjibo1-droid/facturio/internal/models"

// ComputeTotals converts a list of line items plus a tax rate (in
// percent) into subtotal, tax amount and grand total. The discount is
// applied per line, never on the aggregate, and items are summed
// left-to-right in their stored order so rounding is reproducible.
// An empty item list yields zeros. No rounding happens here; display
// rounding is a presentation concern.
func ComputeTotals(items []models.InvoiceItem, taxRatePercent float64) (subtotal, taxAmount, total float64) {
	for i := range items {
		subtotal += items[i].LineTotal()
	}
	taxAmount = subtotal * taxRatePercent / 100
	total = subtotal + taxAmount
	return subtotal, taxAmount, total
}
