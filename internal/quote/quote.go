package quote

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultTaxRate is the IVA percent applied when no rate is configured.
const DefaultTaxRate = 19

const (
	defaultBusinessName = "Tu Negocio"
	defaultClientName   = "Cliente"
	defaultDescription  = "Item"
)

// Item represents one line of a quote.
type Item struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// Amount returns quantity times unit price.
func (i Item) Amount() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(i.Quantity))
}

// Quote is an editable set of items with a tax rate.
type Quote struct {
	BusinessName string          `json:"business_name"`
	ClientName   string          `json:"client_name"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	Items        []Item          `json:"items"`
}

// Totals groups the roll-up values of a quote.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// New returns a quote holding a single empty item.
func New(taxRate decimal.Decimal) *Quote {
	q := &Quote{TaxRate: taxRate}
	q.AddItem()
	return q
}

// AddItem appends an empty item with quantity one and returns its id.
func (q *Quote) AddItem() string {
	item := Item{ID: uuid.NewString(), Quantity: 1, Price: decimal.Zero}
	q.Items = append(q.Items, item)
	return item.ID
}

// RemoveItem deletes the item with id. The last remaining item is never
// removed; the returned bool reports whether anything changed.
func (q *Quote) RemoveItem(id string) bool {
	if len(q.Items) <= 1 {
		return false
	}
	for i, item := range q.Items {
		if item.ID == id {
			q.Items = append(q.Items[:i], q.Items[i+1:]...)
			return true
		}
	}
	return false
}

// UpdateItem overwrites the fields of the item with id. It reports whether
// the item was found.
func (q *Quote) UpdateItem(id, description string, quantity int64, price decimal.Decimal) bool {
	for i := range q.Items {
		if q.Items[i].ID == id {
			q.Items[i].Description = description
			q.Items[i].Quantity = quantity
			q.Items[i].Price = price
			return true
		}
	}
	return false
}

// Totals computes subtotal, tax rounded to whole currency units, and total.
func (q *Quote) Totals() Totals {
	subtotal := decimal.Zero
	for _, item := range q.Items {
		subtotal = subtotal.Add(item.Amount())
	}

	tax := subtotal.Mul(q.TaxRate).Div(decimal.NewFromInt(100)).Round(0)

	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}

func (q *Quote) businessName() string {
	if q.BusinessName == "" {
		return defaultBusinessName
	}
	return q.BusinessName
}

func (q *Quote) clientName() string {
	if q.ClientName == "" {
		return defaultClientName
	}
	return q.ClientName
}

func (i Item) description() string {
	if i.Description == "" {
		return defaultDescription
	}
	return i.Description
}
