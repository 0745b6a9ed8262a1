package dto

import "github.com/shopspring/decimal"

// ─── Stats Responses ─────────────────────────────────────────────────────────

type VentasStatsResponse struct {
	TotalSales    decimal.Decimal `json:"totalSales"`
	PeriodSales   decimal.Decimal `json:"periodSales"`
	DailyAverage  decimal.Decimal `json:"dailyAverage"`
	PendingOrders int64           `json:"pendingOrders"`
	ReadyOrders   int64           `json:"readyOrders"`
	Period        int             `json:"period"`
}

type TopProductoResponse struct {
	ID            string  `json:"id"`
	Nombre        string  `json:"name"`
	SKU           *string `json:"sku"`
	TotalQuantity int64   `json:"totalQuantity"`
}

type TopClienteResponse struct {
	Nombre      string          `json:"name"`
	Telefono    string          `json:"phone"`
	TotalOrders int64           `json:"totalOrders"`
	TotalSpent  decimal.Decimal `json:"totalSpent"`
}

// VentaDiaria is one bucket of the daily sales series; days without sales are
// filled with zeroes.
type VentaDiaria struct {
	Date   string          `json:"date"` // YYYY-MM-DD
	Total  decimal.Decimal `json:"total"`
	Orders int64           `json:"orders"`
}

type EconomicStatsResponse struct {
	Period              int             `json:"period"`
	TotalRevenue        decimal.Decimal `json:"totalRevenue"`
	TotalOrders         int64           `json:"totalOrders"`
	AverageOrderValue   decimal.Decimal `json:"averageOrderValue"`
	AverageDailyRevenue decimal.Decimal `json:"averageDailyRevenue"`
	BestDay             VentaDiaria     `json:"bestDay"`
	// Trend compares the second half of the period against the first, in %.
	Trend      decimal.Decimal `json:"trend"`
	DailySales []VentaDiaria   `json:"dailySales"`
}

type DashboardResponse struct {
	Sales        VentasStatsResponse   `json:"sales"`
	TopProducts  []TopProductoResponse `json:"topProducts"`
	TopCustomers []TopClienteResponse  `json:"topCustomers"`
}
