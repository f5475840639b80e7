// Package api defines the messages of the billsplit.v1.BillService RPC
// service. Messages are JSON-encoded; see apiconnect for the handler and
// client.
package api

import "github.com/mmynk/billsplit/pkg/money"

type Person struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Split struct {
	PersonID string  `json:"personId"`
	Ratio    float64 `json:"ratio"`
}

type Item struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Cost           float64 `json:"cost"`
	CostExpression string  `json:"costExpression"`
	Splits         []Split `json:"splits"`
}

// Adjustment is a tax or tip setting. Mode is "percentage" or "amount".
type Adjustment struct {
	Mode  string  `json:"mode"`
	Value float64 `json:"value"`
}

type Bill struct {
	ID        string     `json:"id,omitempty"`
	Name      string     `json:"name"`
	People    []Person   `json:"people"`
	Items     []Item     `json:"items"`
	Tax       Adjustment `json:"tax"`
	Tip       Adjustment `json:"tip"`
	CreatedAt int64      `json:"createdAt,omitempty"`
	UpdatedAt int64      `json:"updatedAt,omitempty"`
}

type PersonItem struct {
	ItemID     string       `json:"itemId"`
	Name       string       `json:"name"`
	ItemCost   money.Amount `json:"itemCost"`
	Ratio      float64      `json:"ratio"`
	TotalRatio float64      `json:"totalRatio"`
	Amount     money.Amount `json:"amount"`
}

type PersonSplit struct {
	PersonID   string       `json:"personId"`
	Name       string       `json:"name"`
	Subtotal   money.Amount `json:"subtotal"`
	ShareRatio float64      `json:"shareRatio"`
	Tax        money.Amount `json:"tax"`
	Tip        money.Amount `json:"tip"`
	Total      money.Amount `json:"total"`
	Items      []PersonItem `json:"items"`
}

type Summary struct {
	Subtotal   money.Amount  `json:"subtotal"`
	Tax        money.Amount  `json:"tax"`
	Tip        money.Amount  `json:"tip"`
	GrandTotal money.Amount  `json:"grandTotal"`
	People     []PersonSplit `json:"people"`
}

// Edit is one document edit. Op selects which of the other fields are used;
// see the editor package for the list of operations.
type Edit struct {
	Op       string  `json:"op"`
	PersonID string  `json:"personId,omitempty"`
	ItemID   string  `json:"itemId,omitempty"`
	Name     string  `json:"name,omitempty"`
	Text     string  `json:"text,omitempty"`
	Mode     string  `json:"mode,omitempty"`
	Ratio    float64 `json:"ratio,omitempty"`
}

type CalculateRequest struct {
	Bill Bill `json:"bill"`
}

type CalculateResponse struct {
	Summary Summary `json:"summary"`
}

type CreateBillRequest struct {
	Name string `json:"name"`
}

type CreateBillResponse struct {
	Bill    Bill    `json:"bill"`
	Summary Summary `json:"summary"`
	// Token authorizes later calls for this bill. Send it as
	// "Authorization: Bearer <token>".
	Token string `json:"token"`
}

type GetBillRequest struct {
	BillID string `json:"billId"`
}

type GetBillResponse struct {
	Bill    Bill    `json:"bill"`
	Summary Summary `json:"summary"`
}

type EditBillRequest struct {
	BillID string `json:"billId"`
	Edits  []Edit `json:"edits"`
}

type EditBillResponse struct {
	Bill    Bill    `json:"bill"`
	Summary Summary `json:"summary"`
}

// ExportBillRequest asks for a text summary: PersonID selects one person's
// summary, an empty PersonID the full bill.
type ExportBillRequest struct {
	BillID   string `json:"billId"`
	PersonID string `json:"personId,omitempty"`
}

type ExportBillResponse struct {
	Text string `json:"text"`
}

type DeleteBillRequest struct {
	BillID string `json:"billId"`
}

type DeleteBillResponse struct{}

func (r *GetBillRequest) GetBillID() string    { return r.BillID }
func (r *EditBillRequest) GetBillID() string   { return r.BillID }
func (r *ExportBillRequest) GetBillID() string { return r.BillID }
func (r *DeleteBillRequest) GetBillID() string { return r.BillID }
