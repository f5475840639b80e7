package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"connectrpc.com/connect"

	"github.com/mmynk/billsplit/internal/auth"
	"github.com/mmynk/billsplit/internal/calculator"
	"github.com/mmynk/billsplit/internal/editor"
	"github.com/mmynk/billsplit/internal/export"
	"github.com/mmynk/billsplit/internal/models"
	"github.com/mmynk/billsplit/internal/storage"
	"github.com/mmynk/billsplit/pkg/api"
	"github.com/mmynk/billsplit/pkg/api/apiconnect"
)

var _ apiconnect.BillServiceHandler = (*BillService)(nil)

// BillService implements the Connect BillService.
type BillService struct {
	store  storage.Store
	tokens *auth.JWTManager

	// mu serialises read-modify-write cycles so concurrent edits to a bill
	// are not lost.
	mu sync.Mutex
}

// NewBillService creates a new BillService with the given storage backend
// and token issuer.
func NewBillService(store storage.Store, tokens *auth.JWTManager) *BillService {
	return &BillService{store: store, tokens: tokens}
}

// Calculate computes the split of a bill sent by the client without storing it.
func (s *BillService) Calculate(ctx context.Context, req *connect.Request[api.CalculateRequest]) (*connect.Response[api.CalculateResponse], error) {
	bill := billFromAPI(req.Msg.Bill)
	if err := validateModes(bill); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	slog.Debug("Calculating split",
		"people", len(bill.People),
		"items", len(bill.Items),
	)

	return connect.NewResponse(&api.CalculateResponse{
		Summary: summaryToAPI(calculator.CalculateSplit(bill)),
	}), nil
}

// CreateBill starts a new bill with one person and returns its session token.
func (s *BillService) CreateBill(ctx context.Context, req *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error) {
	bill := editor.New(req.Msg.Name)

	if err := s.store.CreateBill(ctx, &bill); err != nil {
		slog.Error("CreateBill failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	token, err := s.tokens.Generate(bill.ID)
	if err != nil {
		slog.Error("CreateBill token failed", "bill_id", bill.ID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Bill created", "bill_id", bill.ID, "name", bill.Name)

	return connect.NewResponse(&api.CreateBillResponse{
		Bill:    billToAPI(bill),
		Summary: summaryToAPI(calculator.CalculateSplit(bill)),
		Token:   token,
	}), nil
}

// GetBill returns the current document and its split.
func (s *BillService) GetBill(ctx context.Context, req *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error) {
	bill, err := s.load(ctx, req.Msg.BillID)
	if err != nil {
		return nil, err
	}

	return connect.NewResponse(&api.GetBillResponse{
		Bill:    billToAPI(*bill),
		Summary: summaryToAPI(calculator.CalculateSplit(*bill)),
	}), nil
}

// EditBill applies a batch of edits. Either every edit is applied and stored,
// or none is.
func (s *BillService) EditBill(ctx context.Context, req *connect.Request[api.EditBillRequest]) (*connect.Response[api.EditBillResponse], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bill, err := s.load(ctx, req.Msg.BillID)
	if err != nil {
		return nil, err
	}

	edited, err := editor.ApplyAll(*bill, editsFromAPI(req.Msg.Edits))
	if err != nil {
		slog.Warn("EditBill rejected", "bill_id", bill.ID, "error", err)
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	if err := s.store.UpdateBill(ctx, &edited); err != nil {
		slog.Error("EditBill failed", "bill_id", bill.ID, "error", err)
		return nil, storeError(err)
	}

	slog.Debug("Bill edited", "bill_id", edited.ID, "edits", len(req.Msg.Edits))

	return connect.NewResponse(&api.EditBillResponse{
		Bill:    billToAPI(edited),
		Summary: summaryToAPI(calculator.CalculateSplit(edited)),
	}), nil
}

// ExportBill renders the full-bill summary, or one person's summary when a
// person ID is given.
func (s *BillService) ExportBill(ctx context.Context, req *connect.Request[api.ExportBillRequest]) (*connect.Response[api.ExportBillResponse], error) {
	bill, err := s.load(ctx, req.Msg.BillID)
	if err != nil {
		return nil, err
	}

	if req.Msg.PersonID == "" {
		return connect.NewResponse(&api.ExportBillResponse{Text: export.FullSummary(*bill)}), nil
	}

	text, err := export.PersonSummary(*bill, req.Msg.PersonID)
	if err != nil {
		return nil, connect.NewError(connect.CodeNotFound, err)
	}
	return connect.NewResponse(&api.ExportBillResponse{Text: text}), nil
}

// DeleteBill discards a bill.
func (s *BillService) DeleteBill(ctx context.Context, req *connect.Request[api.DeleteBillRequest]) (*connect.Response[api.DeleteBillResponse], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.DeleteBill(ctx, req.Msg.BillID); err != nil {
		slog.Error("DeleteBill failed", "bill_id", req.Msg.BillID, "error", err)
		return nil, storeError(err)
	}

	slog.Info("Bill deleted", "bill_id", req.Msg.BillID)
	return connect.NewResponse(&api.DeleteBillResponse{}), nil
}

func (s *BillService) load(ctx context.Context, billID string) (*models.Bill, error) {
	if billID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("bill_id is required"))
	}
	bill, err := s.store.GetBill(ctx, billID)
	if err != nil {
		return nil, storeError(err)
	}
	return bill, nil
}

func storeError(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return connect.NewError(connect.CodeNotFound, err)
	}
	return connect.NewError(connect.CodeInternal, err)
}

// validateModes rejects unknown tax or tip modes. An empty mode is allowed
// and contributes nothing.
func validateModes(bill models.Bill) error {
	for name, mode := range map[string]models.AdjustmentMode{"tax": bill.Tax.Mode, "tip": bill.Tip.Mode} {
		if mode != "" && !mode.Valid() {
			return fmt.Errorf("%w for %s: %q", editor.ErrUnknownMode, name, mode)
		}
	}
	return nil
}
