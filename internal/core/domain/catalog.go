package domain

import "time"

// Reference data looked up by the checkout flow and the admin screens.
// These rows are read-only from the service's point of view.

// Province is a top-level delivery region.
type Province struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"nombre"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Municipality belongs to a province by name.
type Municipality struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"nombre"`
	Province  string    `json:"province" bson:"provincia"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// ServiceAvailability records which collection methods a municipality offers.
type ServiceAvailability struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Municipality string    `json:"municipality" bson:"municipio"`
	Cash         bool      `json:"cash" bson:"efectivo"`
	Transfer     bool      `json:"transfer" bson:"transferencia"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// Flags converts the row into the checkout's availability shape.
func (a ServiceAvailability) Flags() ServiceFlags {
	return ServiceFlags{Cash: a.Cash, Transfer: a.Transfer}
}

// PaymentMethod is a way the sender can pay us (Zelle, card, ...).
type PaymentMethod struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"nombre"`
	Active    bool      `json:"active" bson:"activo"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Role names an operator role.
type Role struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// RolePermission grants a role access to admin capabilities.
type RolePermission struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Role         string    `json:"role" bson:"role"`
	ManageUsers  bool      `json:"manage_users" bson:"administrar_usuarios"`
	ManageLeads  bool      `json:"manage_leads" bson:"administrar_leads"`
	ManagePrices bool      `json:"manage_prices" bson:"administrar_precios"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

// RoleMenu lists which admin sections a role sees.
type RoleMenu struct {
	ID             string    `json:"id" bson:"_id,omitempty"`
	Role           string    `json:"role" bson:"role"`
	Acquisition    bool      `json:"acquisition" bson:"captacion"`
	Administration bool      `json:"administration" bson:"administracion"`
	Reports        bool      `json:"reports" bson:"reportes"`
	Configuration  bool      `json:"configuration" bson:"configuracion"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}
