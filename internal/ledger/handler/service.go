package handler

import (
	"context"

	"github.com/fekuna/omnipos-ledger-service/internal/ledger/dto"
	"github.com/fekuna/omnipos-ledger-service/internal/rpc"
	"google.golang.org/grpc"
)

const ServiceName = "omnipos.ledger.v1.LedgerService"

// LedgerServiceServer is the server API of omnipos.ledger.v1.LedgerService.
// Messages are the dto types carried by the json codec.
type LedgerServiceServer interface {
	AddCustomer(context.Context, *dto.CreateCustomerInput) (*dto.CustomerOutcome, error)
	UpdateCustomer(context.Context, *dto.UpdateCustomerInput) (*dto.CustomerOutcome, error)
	DeleteCustomer(context.Context, *dto.IDInput) (*dto.CustomerOutcome, error)
	UpdateSchedule(context.Context, *dto.UpdateScheduleInput) (*dto.CustomerOutcome, error)
	SetEmptyBottles(context.Context, *dto.SetEmptyBottlesInput) (*dto.CustomerOutcome, error)
	ListCustomers(context.Context, *dto.CustomerFilters) (*dto.CustomerList, error)
	GetCustomerDetail(context.Context, *dto.IDInput) (*dto.CustomerDetail, error)
	GetReminder(context.Context, *dto.IDInput) (*dto.Reminder, error)

	AddSale(context.Context, *dto.AddSaleInput) (*dto.SaleOutcome, error)
	AddCounterSale(context.Context, *dto.AddCounterSaleInput) (*dto.SaleOutcome, error)
	EditSale(context.Context, *dto.EditSaleInput) (*dto.SaleOutcome, error)
	DeleteSale(context.Context, *dto.IDInput) (*dto.SaleOutcome, error)
	ListSales(context.Context, *dto.SaleFilters) (*dto.SaleList, error)

	AddInventoryItem(context.Context, *dto.CreateItemInput) (*dto.ItemOutcome, error)
	UpdateInventoryItem(context.Context, *dto.UpdateItemInput) (*dto.ItemOutcome, error)
	AdjustStock(context.Context, *dto.AdjustStockInput) (*dto.ItemOutcome, error)
	DeleteInventoryItem(context.Context, *dto.IDInput) (*dto.ItemOutcome, error)
	ListInventory(context.Context, *dto.Empty) (*dto.ItemList, error)
	ListLowStock(context.Context, *dto.Empty) (*dto.ItemList, error)
	ListStockAdjustments(context.Context, *dto.AdjustmentFilters) (*dto.AdjustmentList, error)

	AddSalesman(context.Context, *dto.CreateSalesmanInput) (*dto.SalesmanOutcome, error)
	DeleteSalesman(context.Context, *dto.IDInput) (*dto.SalesmanOutcome, error)
	RecordSalesmanPayment(context.Context, *dto.RecordPaymentInput) (*dto.PaymentOutcome, error)
	ListSalesmen(context.Context, *dto.Empty) (*dto.SalesmanList, error)
	GetSalesmanReport(context.Context, *dto.IDInput) (*dto.SalesmanReport, error)
	AddExpense(context.Context, *dto.CreateExpenseInput) (*dto.ExpenseOutcome, error)
	UpdateExpense(context.Context, *dto.UpdateExpenseInput) (*dto.ExpenseOutcome, error)
	ListExpenses(context.Context, *dto.Empty) (*dto.ExpenseList, error)

	GetSettings(context.Context, *dto.Empty) (*dto.Settings, error)
	UpdateBottlePrice(context.Context, *dto.SetBottlePriceInput) (*dto.SettingsOutcome, error)
	GetClosingReport(context.Context, *dto.ClosingReportInput) (*dto.ClosingReport, error)
}

func RegisterLedgerServiceServer(s grpc.ServiceRegistrar, srv LedgerServiceServer) {
	s.RegisterService(&LedgerServiceDesc, srv)
}

func unary[Req, Resp any](method string, call func(LedgerServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(LedgerServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + ServiceName + "/" + method,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(LedgerServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var LedgerServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LedgerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("AddCustomer", LedgerServiceServer.AddCustomer),
		unary("UpdateCustomer", LedgerServiceServer.UpdateCustomer),
		unary("DeleteCustomer", LedgerServiceServer.DeleteCustomer),
		unary("UpdateSchedule", LedgerServiceServer.UpdateSchedule),
		unary("SetEmptyBottles", LedgerServiceServer.SetEmptyBottles),
		unary("ListCustomers", LedgerServiceServer.ListCustomers),
		unary("GetCustomerDetail", LedgerServiceServer.GetCustomerDetail),
		unary("GetReminder", LedgerServiceServer.GetReminder),
		unary("AddSale", LedgerServiceServer.AddSale),
		unary("AddCounterSale", LedgerServiceServer.AddCounterSale),
		unary("EditSale", LedgerServiceServer.EditSale),
		unary("DeleteSale", LedgerServiceServer.DeleteSale),
		unary("ListSales", LedgerServiceServer.ListSales),
		unary("AddInventoryItem", LedgerServiceServer.AddInventoryItem),
		unary("UpdateInventoryItem", LedgerServiceServer.UpdateInventoryItem),
		unary("AdjustStock", LedgerServiceServer.AdjustStock),
		unary("DeleteInventoryItem", LedgerServiceServer.DeleteInventoryItem),
		unary("ListInventory", LedgerServiceServer.ListInventory),
		unary("ListLowStock", LedgerServiceServer.ListLowStock),
		unary("ListStockAdjustments", LedgerServiceServer.ListStockAdjustments),
		unary("AddSalesman", LedgerServiceServer.AddSalesman),
		unary("DeleteSalesman", LedgerServiceServer.DeleteSalesman),
		unary("RecordSalesmanPayment", LedgerServiceServer.RecordSalesmanPayment),
		unary("ListSalesmen", LedgerServiceServer.ListSalesmen),
		unary("GetSalesmanReport", LedgerServiceServer.GetSalesmanReport),
		unary("AddExpense", LedgerServiceServer.AddExpense),
		unary("UpdateExpense", LedgerServiceServer.UpdateExpense),
		unary("ListExpenses", LedgerServiceServer.ListExpenses),
		unary("GetSettings", LedgerServiceServer.GetSettings),
		unary("UpdateBottlePrice", LedgerServiceServer.UpdateBottlePrice),
		unary("GetClosingReport", LedgerServiceServer.GetClosingReport),
	},
	Streams: []grpc.StreamDesc{},
}

// LedgerServiceClient calls LedgerService with the json content-subtype.
type LedgerServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewLedgerServiceClient(cc grpc.ClientConnInterface) *LedgerServiceClient {
	return &LedgerServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(rpc.CodecName)}, opts...)
	if err := cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *LedgerServiceClient) AddCustomer(ctx context.Context, in *dto.CreateCustomerInput, opts ...grpc.CallOption) (*dto.CustomerOutcome, error) {
	return invoke[dto.CustomerOutcome](ctx, c.cc, "AddCustomer", in, opts)
}

func (c *LedgerServiceClient) UpdateCustomer(ctx context.Context, in *dto.UpdateCustomerInput, opts ...grpc.CallOption) (*dto.CustomerOutcome, error) {
	return invoke[dto.CustomerOutcome](ctx, c.cc, "UpdateCustomer", in, opts)
}

func (c *LedgerServiceClient) DeleteCustomer(ctx context.Context, in *dto.IDInput, opts ...grpc.CallOption) (*dto.CustomerOutcome, error) {
	return invoke[dto.CustomerOutcome](ctx, c.cc, "DeleteCustomer", in, opts)
}

func (c *LedgerServiceClient) UpdateSchedule(ctx context.Context, in *dto.UpdateScheduleInput, opts ...grpc.CallOption) (*dto.CustomerOutcome, error) {
	return invoke[dto.CustomerOutcome](ctx, c.cc, "UpdateSchedule", in, opts)
}

func (c *LedgerServiceClient) SetEmptyBottles(ctx context.Context, in *dto.SetEmptyBottlesInput, opts ...grpc.CallOption) (*dto.CustomerOutcome, error) {
	return invoke[dto.CustomerOutcome](ctx, c.cc, "SetEmptyBottles", in, opts)
}

func (c *LedgerServiceClient) ListCustomers(ctx context.Context, in *dto.CustomerFilters, opts ...grpc.CallOption) (*dto.CustomerList, error) {
	return invoke[dto.CustomerList](ctx, c.cc, "ListCustomers", in, opts)
}

func (c *LedgerServiceClient) GetCustomerDetail(ctx context.Context, in *dto.IDInput, opts ...grpc.CallOption) (*dto.CustomerDetail, error) {
	return invoke[dto.CustomerDetail](ctx, c.cc, "GetCustomerDetail", in, opts)
}

func (c *LedgerServiceClient) GetReminder(ctx context.Context, in *dto.IDInput, opts ...grpc.CallOption) (*dto.Reminder, error) {
	return invoke[dto.Reminder](ctx, c.cc, "GetReminder", in, opts)
}

func (c *LedgerServiceClient) AddSale(ctx context.Context, in *dto.AddSaleInput, opts ...grpc.CallOption) (*dto.SaleOutcome, error) {
	return invoke[dto.SaleOutcome](ctx, c.cc, "AddSale", in, opts)
}

func (c *LedgerServiceClient) AddCounterSale(ctx context.Context, in *dto.AddCounterSaleInput, opts ...grpc.CallOption) (*dto.SaleOutcome, error) {
	return invoke[dto.SaleOutcome](ctx, c.cc, "AddCounterSale", in, opts)
}

func (c *LedgerServiceClient) EditSale(ctx context.Context, in *dto.EditSaleInput, opts ...grpc.CallOption) (*dto.SaleOutcome, error) {
	return invoke[dto.SaleOutcome](ctx, c.cc, "EditSale", in, opts)
}

func (c *LedgerServiceClient) DeleteSale(ctx context.Context, in *dto.IDInput, opts ...grpc.CallOption) (*dto.SaleOutcome, error) {
	return invoke[dto.SaleOutcome](ctx, c.cc, "DeleteSale", in, opts)
}

func (c *LedgerServiceClient) ListSales(ctx context.Context, in *dto.SaleFilters, opts ...grpc.CallOption) (*dto.SaleList, error) {
	return invoke[dto.SaleList](ctx, c.cc, "ListSales", in, opts)
}

func (c *LedgerServiceClient) AddInventoryItem(ctx context.Context, in *dto.CreateItemInput, opts ...grpc.CallOption) (*dto.ItemOutcome, error) {
	return invoke[dto.ItemOutcome](ctx, c.cc, "AddInventoryItem", in, opts)
}

func (c *LedgerServiceClient) UpdateInventoryItem(ctx context.Context, in *dto.UpdateItemInput, opts ...grpc.CallOption) (*dto.ItemOutcome, error) {
	return invoke[dto.ItemOutcome](ctx, c.cc, "UpdateInventoryItem", in, opts)
}

func (c *LedgerServiceClient) AdjustStock(ctx context.Context, in *dto.AdjustStockInput, opts ...grpc.CallOption) (*dto.ItemOutcome, error) {
	return invoke[dto.ItemOutcome](ctx, c.cc, "AdjustStock", in, opts)
}

func (c *LedgerServiceClient) DeleteInventoryItem(ctx context.Context, in *dto.IDInput, opts ...grpc.CallOption) (*dto.ItemOutcome, error) {
	return invoke[dto.ItemOutcome](ctx, c.cc, "DeleteInventoryItem", in, opts)
}

func (c *LedgerServiceClient) ListInventory(ctx context.Context, in *dto.Empty, opts ...grpc.CallOption) (*dto.ItemList, error) {
	return invoke[dto.ItemList](ctx, c.cc, "ListInventory", in, opts)
}

func (c *LedgerServiceClient) ListLowStock(ctx context.Context, in *dto.Empty, opts ...grpc.CallOption) (*dto.ItemList, error) {
	return invoke[dto.ItemList](ctx, c.cc, "ListLowStock", in, opts)
}

func (c *LedgerServiceClient) ListStockAdjustments(ctx context.Context, in *dto.AdjustmentFilters, opts ...grpc.CallOption) (*dto.AdjustmentList, error) {
	return invoke[dto.AdjustmentList](ctx, c.cc, "ListStockAdjustments", in, opts)
}

func (c *LedgerServiceClient) AddSalesman(ctx context.Context, in *dto.CreateSalesmanInput, opts ...grpc.CallOption) (*dto.SalesmanOutcome, error) {
	return invoke[dto.SalesmanOutcome](ctx, c.cc, "AddSalesman", in, opts)
}

func (c *LedgerServiceClient) DeleteSalesman(ctx context.Context, in *dto.IDInput, opts ...grpc.CallOption) (*dto.SalesmanOutcome, error) {
	return invoke[dto.SalesmanOutcome](ctx, c.cc, "DeleteSalesman", in, opts)
}

func (c *LedgerServiceClient) RecordSalesmanPayment(ctx context.Context, in *dto.RecordPaymentInput, opts ...grpc.CallOption) (*dto.PaymentOutcome, error) {
	return invoke[dto.PaymentOutcome](ctx, c.cc, "RecordSalesmanPayment", in, opts)
}

func (c *LedgerServiceClient) ListSalesmen(ctx context.Context, in *dto.Empty, opts ...grpc.CallOption) (*dto.SalesmanList, error) {
	return invoke[dto.SalesmanList](ctx, c.cc, "ListSalesmen", in, opts)
}

func (c *LedgerServiceClient) GetSalesmanReport(ctx context.Context, in *dto.IDInput, opts ...grpc.CallOption) (*dto.SalesmanReport, error) {
	return invoke[dto.SalesmanReport](ctx, c.cc, "GetSalesmanReport", in, opts)
}

func (c *LedgerServiceClient) AddExpense(ctx context.Context, in *dto.CreateExpenseInput, opts ...grpc.CallOption) (*dto.ExpenseOutcome, error) {
	return invoke[dto.ExpenseOutcome](ctx, c.cc, "AddExpense", in, opts)
}

func (c *LedgerServiceClient) UpdateExpense(ctx context.Context, in *dto.UpdateExpenseInput, opts ...grpc.CallOption) (*dto.ExpenseOutcome, error) {
	return invoke[dto.ExpenseOutcome](ctx, c.cc, "UpdateExpense", in, opts)
}

func (c *LedgerServiceClient) ListExpenses(ctx context.Context, in *dto.Empty, opts ...grpc.CallOption) (*dto.ExpenseList, error) {
	return invoke[dto.ExpenseList](ctx, c.cc, "ListExpenses", in, opts)
}

func (c *LedgerServiceClient) GetSettings(ctx context.Context, in *dto.Empty, opts ...grpc.CallOption) (*dto.Settings, error) {
	return invoke[dto.Settings](ctx, c.cc, "GetSettings", in, opts)
}

func (c *LedgerServiceClient) UpdateBottlePrice(ctx context.Context, in *dto.SetBottlePriceInput, opts ...grpc.CallOption) (*dto.SettingsOutcome, error) {
	return invoke[dto.SettingsOutcome](ctx, c.cc, "UpdateBottlePrice", in, opts)
}

func (c *LedgerServiceClient) GetClosingReport(ctx context.Context, in *dto.ClosingReportInput, opts ...grpc.CallOption) (*dto.ClosingReport, error) {
	return invoke[dto.ClosingReport](ctx, c.cc, "GetClosingReport", in, opts)
}
