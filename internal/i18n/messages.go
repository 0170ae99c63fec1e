package i18n

import goi18n "github.com/nicksnyder/go-i18n/v2/i18n"

// Message ids used for notifications and customer-facing text.
const (
	MsgCustomerAdded       = "CustomerAdded"
	MsgCustomerUpdated     = "CustomerUpdated"
	MsgCustomerDeleted     = "CustomerDeleted"
	MsgScheduleUpdated     = "ScheduleUpdated"
	MsgBottleCountUpdated  = "BottleCountUpdated"
	MsgSaleAdded           = "SaleAdded"
	MsgCounterSaleRecorded = "CounterSaleRecorded"
	MsgSaleUpdated         = "SaleUpdated"
	MsgSaleDeleted         = "SaleDeleted"
	MsgInsufficientStock   = "InsufficientStock"
	MsgItemAdded           = "ItemAdded"
	MsgItemUpdated         = "ItemUpdated"
	MsgStockAdjusted       = "StockAdjusted"
	MsgItemDeleted         = "ItemDeleted"
	MsgSalesmanAdded       = "SalesmanAdded"
	MsgSalesmanDeleted     = "SalesmanDeleted"
	MsgPaymentRecorded     = "PaymentRecorded"
	MsgExpenseAdded        = "ExpenseAdded"
	MsgExpenseUpdated      = "ExpenseUpdated"
	MsgPriceUpdated        = "BottlePriceUpdated"
	MsgCustomerReminder    = "CustomerReminder"
)

var defaultMessages = []*goi18n.Message{
	{ID: MsgCustomerAdded, Other: "Customer added successfully!"},
	{ID: MsgCustomerUpdated, Other: "Customer updated!"},
	{ID: MsgCustomerDeleted, Other: "Customer and all related data deleted!"},
	{ID: MsgScheduleUpdated, Other: "Schedule updated!"},
	{ID: MsgBottleCountUpdated, Other: "Bottle count updated!"},
	{ID: MsgSaleAdded, Other: "Sale added!"},
	{ID: MsgCounterSaleRecorded, Other: "Counter sale recorded!"},
	{ID: MsgSaleUpdated, Other: "Sale updated successfully!"},
	{ID: MsgSaleDeleted, Other: "Sale deleted and data reverted!"},
	{ID: MsgInsufficientStock, Other: "Insufficient stock! Only {{.Available}} bottles available."},
	{ID: MsgItemAdded, Other: "Item added!"},
	{ID: MsgItemUpdated, Other: "Item updated!"},
	{ID: MsgStockAdjusted, Other: "Stock adjusted!"},
	{ID: MsgItemDeleted, Other: "Item and history deleted!"},
	{ID: MsgSalesmanAdded, Other: "Salesman added!"},
	{ID: MsgSalesmanDeleted, Other: "Salesman deleted!"},
	{ID: MsgPaymentRecorded, Other: "Payment recorded!"},
	{ID: MsgExpenseAdded, Other: "Expense added!"},
	{ID: MsgExpenseUpdated, Other: "Expense updated!"},
	{ID: MsgPriceUpdated, Other: "Bottle price updated to {{.Price}}!"},
	{ID: MsgCustomerReminder, Other: `Hello {{.Name}}, this is a friendly reminder from {{.Business}}.

Your Account Summary:
- Remaining Payment: {{.Currency}} {{.Balance}}
- Total Paid Bottles: {{.PaidBottles}}
- Total Unpaid Bottles: {{.UnpaidBottles}}
- Empty Bottles to Return: {{.EmptyBottles}}

Thank you!`},
}
