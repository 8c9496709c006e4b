package domain

import "time"

// Order lifecycle. Status is stored as a free-form string so operators can
// annotate beyond the canonical progression.
const (
	OrderPending   = "pending"
	OrderContacted = "contacted"
	OrderCharged   = "charged"
	OrderDelivered = "delivered"
)

// OrderSender is who pays the remittance.
type OrderSender struct {
	Name    string `json:"name" bson:"fullname_remitente"`
	Email   string `json:"email" bson:"correo_remitente"`
	Phone   string `json:"phone" bson:"numero_remitente"`
	Country string `json:"country" bson:"pais_remitente,omitempty"`
}

// OrderReceiver is who collects it.
type OrderReceiver struct {
	Name         string `json:"name" bson:"fullname_receptor"`
	NationalID   string `json:"national_id" bson:"carnet_receptor"`
	Contact      string `json:"contact" bson:"contacto_receptor"`
	Province     string `json:"province" bson:"provincia"`
	Municipality string `json:"municipality" bson:"municipio"`
	Address      string `json:"address" bson:"direccion"`
	Notes        string `json:"notes,omitempty" bson:"detalles,omitempty"`
}

// RemittanceOrder is the persisted result of a completed checkout. The bson
// field names keep the store's historical column names.
type RemittanceOrder struct {
	ID               string        `json:"id" bson:"_id,omitempty"`
	Offer            int           `json:"offer" bson:"oferta"`
	Sender           OrderSender   `json:"sender" bson:",inline"`
	Receiver         OrderReceiver `json:"receiver" bson:",inline"`
	Method           string        `json:"method" bson:"metodo_cobro"`
	Currency         string        `json:"currency" bson:"moneda"`
	AmountUSD        float64       `json:"amount_usd" bson:"importe"`
	Payout           int           `json:"payout" bson:"importe_cobrar"`
	BankCard         string        `json:"bank_card,omitempty" bson:"tarjeta,omitempty"`
	PaymentMethod    string        `json:"payment_method,omitempty" bson:"metodo_pago,omitempty"`
	PaymentReference string        `json:"payment_reference,omitempty" bson:"referencia_pago,omitempty"`
	Status           string        `json:"status" bson:"estado"`
	TrackingToken    string        `json:"tracking_token,omitempty" bson:"link,omitempty"`
	CreatedAt        time.Time     `json:"created_at" bson:"created_at"`
}

// Lead is a contact-form enquiry captured from the public site.
type Lead struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"nombre_completo"`
	Email     string    `json:"email" bson:"email"`
	Phone     string    `json:"phone" bson:"telefono"`
	Message   string    `json:"message" bson:"mensaje"`
	Status    string    `json:"status,omitempty" bson:"estado,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
