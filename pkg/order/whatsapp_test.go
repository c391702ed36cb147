package order

import (
	"testing"

	"github.com/familia-davanzo/assados-backend/pkg/cart"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComposeOrderMessage(t *testing.T) {
	items := []cart.OrderItem{
		{Name: "Frango Assado", Qty: 1, Price: decimal.RequireFromString("45.00")},
		{Name: "Maionese", Qty: 2, Price: decimal.RequireFromString("12.50")},
	}
	total := decimal.RequireFromString("70.00")

	got := ComposeOrderMessage("Maria", "Rua das Flores, 123", "Sem cebola", items, total)

	want := "*Novo Pedido - Assados Davanzo*\n\n" +
		"Cliente: Maria\n" +
		"Endereço: Rua das Flores, 123\n\n" +
		"*Itens:*\n" +
		"1x Frango Assado - R$ 45,00\n" +
		"2x Maionese - R$ 12,50\n\n" +
		"*Total: R$ 70,00*\n" +
		"Obs: Sem cebola"
	assert.Equal(t, want, got)
}

func TestComposeOrderMessageWithoutNotes(t *testing.T) {
	items := []cart.OrderItem{
		{Name: "Costela", Qty: 1, Price: decimal.RequireFromString("80.00")},
	}

	got := ComposeOrderMessage("João", "Av. Brasil, 10", "", items, decimal.RequireFromString("80.00"))

	assert.NotContains(t, got, "Obs:")
	assert.Contains(t, got, "*Total: R$ 80,00*")
}

func TestWhatsappLink(t *testing.T) {
	link := WhatsappLink("(11) 91234-5678", "Olá, tudo bem?")

	assert.Equal(t, "https://wa.me/5511912345678?text=Ol%C3%A1%2C%20tudo%20bem%3F", link)
	// encodeURIComponent semantics: spaces are %20, never +
	assert.NotContains(t, link, "+")
}

func TestContactLink(t *testing.T) {
	assert.Equal(t, "https://wa.me/5511912345678", ContactLink("11 91234-5678"))
}

func TestDigitsOnly(t *testing.T) {
	assert.Equal(t, "11912345678", digitsOnly("+55 (11) 91234-5678")[2:])
	assert.Equal(t, "", digitsOnly("abc"))
}
