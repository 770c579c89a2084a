package core

import "github.com/shopspring/decimal"

// StatementView is what a statement screen needs: the account header plus its
// history. It is a snapshot and does not track later mutations.
type StatementView struct {
	Number     int
	ClientName string
	Kind       Kind
	Balance    decimal.Decimal
	Entries    []Entry
}

// NewStatementView snapshots account a owned by client.
func NewStatementView(a *Account, client *Client) StatementView {
	return StatementView{
		Number:     a.Number(),
		ClientName: client.Name(),
		Kind:       a.Kind(),
		Balance:    a.Balance(),
		Entries:    a.Statement(),
	}
}
