package admin

import "time"

// Operator is a staff account with access to the dashboard.
// Operators are provisioned by cmd/seed; there is no self-registration path.
type Operator struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
}
