package order

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/familia-davanzo/assados-backend/internal/utils"
	"github.com/familia-davanzo/assados-backend/pkg/cart"
	"github.com/shopspring/decimal"
)

// ComposeOrderMessage builds the order summary the restaurant staff reads on
// WhatsApp. The wording and line layout are part of the operational workflow;
// change them and the kitchen stops understanding its own inbox.
func ComposeOrderMessage(customer, address, notes string, items []cart.OrderItem, total decimal.Decimal) string {
	var b strings.Builder
	b.WriteString("*Novo Pedido - Assados Davanzo*\n\n")
	b.WriteString(fmt.Sprintf("Cliente: %s\n", customer))
	b.WriteString(fmt.Sprintf("Endereço: %s\n\n", address))
	b.WriteString("*Itens:*\n")

	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("%dx %s - %s", item.Qty, item.Name, utils.FormatBRL(item.Price)))
	}
	b.WriteString(strings.Join(lines, "\n"))

	b.WriteString(fmt.Sprintf("\n\n*Total: %s*\n", utils.FormatBRL(total)))
	if notes != "" {
		b.WriteString(fmt.Sprintf("Obs: %s", notes))
	}
	return b.String()
}

// WhatsappLink builds the wa.me deep link for a Brazilian number. Everything
// that is not a digit is stripped and the country code 55 is prefixed.
func WhatsappLink(phone, message string) string {
	return fmt.Sprintf("https://wa.me/55%s?text=%s", digitsOnly(phone), escapeText(message))
}

// ContactLink is the driver-facing "call the customer" link, without a
// prefilled message.
func ContactLink(phone string) string {
	return fmt.Sprintf("https://wa.me/55%s", digitsOnly(phone))
}

func digitsOnly(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// escapeText matches encodeURIComponent, which the existing workflow relies
// on: spaces become %20, not +.
func escapeText(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
