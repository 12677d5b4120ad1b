package quote

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatCLP formats an amount as Chilean pesos, e.g. "$1.234.568".
func FormatCLP(amount decimal.Decimal) string {
	f, _ := amount.Float64()
	if f < 0 {
		return "-$" + humanize.FormatFloat("#.###,", -f)
	}
	return "$" + humanize.FormatFloat("#.###,", f)
}

// RenderText renders the quote as plain text dated at issuedAt.
func RenderText(q *Quote, issuedAt time.Time) string {
	totals := q.Totals()

	var b strings.Builder
	b.WriteString("Cotización\n")
	fmt.Fprintf(&b, "Fecha: %s\n\n", issuedAt.Format("02-01-2006"))
	fmt.Fprintf(&b, "De: %s\n", q.businessName())
	fmt.Fprintf(&b, "Para: %s\n\n", q.clientName())

	b.WriteString("Descripción | Cant. | Precio Unit. | Total\n")
	for _, item := range q.Items {
		fmt.Fprintf(&b, "%s | %d | %s | %s\n",
			item.description(),
			item.Quantity,
			FormatCLP(item.Price),
			FormatCLP(item.Amount()),
		)
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "Subtotal: %s\n", FormatCLP(totals.Subtotal))
	fmt.Fprintf(&b, "IVA (%s%%): %s\n", q.TaxRate.String(), FormatCLP(totals.Tax))
	fmt.Fprintf(&b, "Total: %s\n", FormatCLP(totals.Total))

	return b.String()
}
