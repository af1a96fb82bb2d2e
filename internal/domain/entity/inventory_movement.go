package entity

import "time"

// MovementType tipo de movimiento del libro de inventario.
type MovementType string

// Tipos de movimiento de inventario.
const (
	MovementEntrada       MovementType = "ENTRADA"       // entrada de mercancía
	MovementSaida         MovementType = "SAIDA"         // salida manual
	MovementAjuste        MovementType = "AJUSTE"        // corrección con delta firmado
	MovementVenda         MovementType = "VENDA"         // salida por venta
	MovementDevolucao     MovementType = "DEVOLUCAO"     // devolución / reversión de venta
	MovementPerda         MovementType = "PERDA"         // pérdida o merma
	MovementTransferencia MovementType = "TRANSFERENCIA" // traslado hacia fuera
)

// MovementTypes lista todos los tipos válidos.
var MovementTypes = []MovementType{
	MovementEntrada, MovementSaida, MovementAjuste, MovementVenda,
	MovementDevolucao, MovementPerda, MovementTransferencia,
}

// Valid indica si el tipo es conocido.
func (t MovementType) Valid() bool {
	for _, v := range MovementTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Direction devuelve +1 si el tipo aumenta stock, -1 si lo reduce y 0 si el signo lo da el llamador (AJUSTE).
func (t MovementType) Direction() int64 {
	switch t {
	case MovementEntrada, MovementDevolucao:
		return 1
	case MovementSaida, MovementVenda, MovementPerda, MovementTransferencia:
		return -1
	}
	return 0
}

// InventoryMovement registro inmutable del libro (append-only).
// Quantity es la magnitud (siempre > 0); Delta el efecto firmado sobre el saldo.
type InventoryMovement struct {
	ID           string
	TenantID     string
	ProductID    string
	Type         MovementType
	Quantity     int64
	Delta        int64
	BalanceAfter int64
	Reason       string
	Reference    string // p. ej. ID de la venta
	Notes        string
	UserID       string
	CreatedAt    time.Time
}
