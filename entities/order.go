package entities

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Order struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Customer      string          `json:"customer"`
	Whatsapp      string          `json:"whatsapp"`
	Address       string          `json:"address"`
	Notes         string          `json:"notes,omitempty"`
	PaymentMethod string          `json:"payment_method"` // Pix, Dinheiro, Cartão de Crédito, Cartão de Débito
	Total         decimal.Decimal `gorm:"type:decimal(10,2)" json:"total"`
	Status        string          `json:"status"` // pendente, preparando, pronto, em_entrega, entregue, cancelado
	DriverEmail   string          `json:"driver_email,omitempty"`

	Items []*OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	Timestamp
}

// OrderItem is a snapshot of a product taken at checkout. Editing or deleting
// the product afterwards must not change what the customer ordered.
type OrderItem struct {
	ID      uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	OrderID uuid.UUID       `json:"order_id"`
	Name    string          `json:"name"`
	Qty     int             `json:"qty"`
	Price   decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`

	Order *Order `gorm:"foreignKey:OrderID"`
	Timestamp
}
