// Package apiconnect wires the api messages into Connect handlers and clients.
package apiconnect

import (
	"context"
	"encoding/json"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/billsplit/pkg/api"
)

// BillServiceName is the fully-qualified name of the BillService service.
const BillServiceName = "billsplit.v1.BillService"

// Procedure paths, for use with interceptors that inspect req.Spec().Procedure.
const (
	BillServiceCalculateProcedure  = "/billsplit.v1.BillService/Calculate"
	BillServiceCreateBillProcedure = "/billsplit.v1.BillService/CreateBill"
	BillServiceGetBillProcedure    = "/billsplit.v1.BillService/GetBill"
	BillServiceEditBillProcedure   = "/billsplit.v1.BillService/EditBill"
	BillServiceExportBillProcedure = "/billsplit.v1.BillService/ExportBill"
	BillServiceDeleteBillProcedure = "/billsplit.v1.BillService/DeleteBill"
)

// PublicProcedures can be called without a session token.
var PublicProcedures = []string{
	BillServiceCalculateProcedure,
	BillServiceCreateBillProcedure,
}

// Codec encodes the api messages as JSON. It is registered under the name
// "json", so requests use the application/json content type.
type Codec struct{}

func (Codec) Name() string { return "json" }

func (Codec) Marshal(msg any) ([]byte, error) { return json.Marshal(msg) }

func (Codec) Unmarshal(data []byte, msg any) error { return json.Unmarshal(data, msg) }

// BillServiceHandler is implemented by the server.
type BillServiceHandler interface {
	Calculate(context.Context, *connect.Request[api.CalculateRequest]) (*connect.Response[api.CalculateResponse], error)
	CreateBill(context.Context, *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error)
	GetBill(context.Context, *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error)
	EditBill(context.Context, *connect.Request[api.EditBillRequest]) (*connect.Response[api.EditBillResponse], error)
	ExportBill(context.Context, *connect.Request[api.ExportBillRequest]) (*connect.Response[api.ExportBillResponse], error)
	DeleteBill(context.Context, *connect.Request[api.DeleteBillRequest]) (*connect.Response[api.DeleteBillResponse], error)
}

// NewBillServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewBillServiceHandler(svc BillServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(Codec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(BillServiceCalculateProcedure, connect.NewUnaryHandler(BillServiceCalculateProcedure, svc.Calculate, opts...))
	mux.Handle(BillServiceCreateBillProcedure, connect.NewUnaryHandler(BillServiceCreateBillProcedure, svc.CreateBill, opts...))
	mux.Handle(BillServiceGetBillProcedure, connect.NewUnaryHandler(BillServiceGetBillProcedure, svc.GetBill, opts...))
	mux.Handle(BillServiceEditBillProcedure, connect.NewUnaryHandler(BillServiceEditBillProcedure, svc.EditBill, opts...))
	mux.Handle(BillServiceExportBillProcedure, connect.NewUnaryHandler(BillServiceExportBillProcedure, svc.ExportBill, opts...))
	mux.Handle(BillServiceDeleteBillProcedure, connect.NewUnaryHandler(BillServiceDeleteBillProcedure, svc.DeleteBill, opts...))
	return "/" + BillServiceName + "/", mux
}

// BillServiceClient is a client for the billsplit.v1.BillService service.
type BillServiceClient interface {
	Calculate(context.Context, *connect.Request[api.CalculateRequest]) (*connect.Response[api.CalculateResponse], error)
	CreateBill(context.Context, *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error)
	GetBill(context.Context, *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error)
	EditBill(context.Context, *connect.Request[api.EditBillRequest]) (*connect.Response[api.EditBillResponse], error)
	ExportBill(context.Context, *connect.Request[api.ExportBillRequest]) (*connect.Response[api.ExportBillResponse], error)
	DeleteBill(context.Context, *connect.Request[api.DeleteBillRequest]) (*connect.Response[api.DeleteBillResponse], error)
}

// NewBillServiceClient constructs a client. baseURL is the server root,
// e.g. http://localhost:8080.
func NewBillServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) BillServiceClient {
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return &billServiceClient{
		calculate:  connect.NewClient[api.CalculateRequest, api.CalculateResponse](httpClient, baseURL+BillServiceCalculateProcedure, opts...),
		createBill: connect.NewClient[api.CreateBillRequest, api.CreateBillResponse](httpClient, baseURL+BillServiceCreateBillProcedure, opts...),
		getBill:    connect.NewClient[api.GetBillRequest, api.GetBillResponse](httpClient, baseURL+BillServiceGetBillProcedure, opts...),
		editBill:   connect.NewClient[api.EditBillRequest, api.EditBillResponse](httpClient, baseURL+BillServiceEditBillProcedure, opts...),
		exportBill: connect.NewClient[api.ExportBillRequest, api.ExportBillResponse](httpClient, baseURL+BillServiceExportBillProcedure, opts...),
		deleteBill: connect.NewClient[api.DeleteBillRequest, api.DeleteBillResponse](httpClient, baseURL+BillServiceDeleteBillProcedure, opts...),
	}
}

type billServiceClient struct {
	calculate  *connect.Client[api.CalculateRequest, api.CalculateResponse]
	createBill *connect.Client[api.CreateBillRequest, api.CreateBillResponse]
	getBill    *connect.Client[api.GetBillRequest, api.GetBillResponse]
	editBill   *connect.Client[api.EditBillRequest, api.EditBillResponse]
	exportBill *connect.Client[api.ExportBillRequest, api.ExportBillResponse]
	deleteBill *connect.Client[api.DeleteBillRequest, api.DeleteBillResponse]
}

func (c *billServiceClient) Calculate(ctx context.Context, req *connect.Request[api.CalculateRequest]) (*connect.Response[api.CalculateResponse], error) {
	return c.calculate.CallUnary(ctx, req)
}

func (c *billServiceClient) CreateBill(ctx context.Context, req *connect.Request[api.CreateBillRequest]) (*connect.Response[api.CreateBillResponse], error) {
	return c.createBill.CallUnary(ctx, req)
}

func (c *billServiceClient) GetBill(ctx context.Context, req *connect.Request[api.GetBillRequest]) (*connect.Response[api.GetBillResponse], error) {
	return c.getBill.CallUnary(ctx, req)
}

func (c *billServiceClient) EditBill(ctx context.Context, req *connect.Request[api.EditBillRequest]) (*connect.Response[api.EditBillResponse], error) {
	return c.editBill.CallUnary(ctx, req)
}

func (c *billServiceClient) ExportBill(ctx context.Context, req *connect.Request[api.ExportBillRequest]) (*connect.Response[api.ExportBillResponse], error) {
	return c.exportBill.CallUnary(ctx, req)
}

func (c *billServiceClient) DeleteBill(ctx context.Context, req *connect.Request[api.DeleteBillRequest]) (*connect.Response[api.DeleteBillResponse], error) {
	return c.deleteBill.CallUnary(ctx, req)
}
