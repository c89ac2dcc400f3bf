package benefit

import (
	"time"

	"github.com/shopspring/decimal"
)

// Assignment grants an employee a fixed-amount benefit for as long as the
// assignment is active. Read-only to the engine.
type Assignment struct {
	ID            string
	EmployeeID    string
	BenefitTypeID string
	Amount        decimal.Decimal
	StartDate     time.Time
	EndDate       *time.Time
	IsActive      bool
	CreatedAt     time.Time

	// Joined fields
	TypeName string
}
