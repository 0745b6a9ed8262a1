package service

import (
	"context"
	"time"

	"github.com/santiagozurbrigk/libreria-lowcost/internal/dto"
	"github.com/santiagozurbrigk/libreria-lowcost/internal/model"
	"github.com/santiagozurbrigk/libreria-lowcost/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	defaultStatsPeriod = 30
	topListSize        = 5
)

// AdminService aggregates the dashboard and reporting queries.
type AdminService struct {
	pedidos repository.PedidoRepository
}

func NewAdminService(pedidos repository.PedidoRepository) *AdminService {
	return &AdminService{pedidos: pedidos}
}

// VentasStats returns the headline sales numbers for the given period in days.
func (s *AdminService) VentasStats(ctx context.Context, periodDays int) (*dto.VentasStatsResponse, error) {
	if periodDays < 1 {
		periodDays = defaultStatsPeriod
	}
	since := startOfDay(time.Now().UTC()).AddDate(0, 0, -(periodDays - 1))

	total, err := s.pedidos.SumTotal(ctx)
	if err != nil {
		return nil, err
	}
	periodo, err := s.pedidos.SumTotalSince(ctx, since)
	if err != nil {
		return nil, err
	}
	pendientes, err := s.pedidos.CountByEstado(ctx, model.EstadoPendiente)
	if err != nil {
		return nil, err
	}
	listos, err := s.pedidos.CountByEstado(ctx, model.EstadoListo)
	if err != nil {
		return nil, err
	}

	return &dto.VentasStatsResponse{
		TotalSales:    total,
		PeriodSales:   periodo,
		DailyAverage:  periodo.Div(decimal.NewFromInt(int64(periodDays))).Round(2),
		PendingOrders: pendientes,
		ReadyOrders:   listos,
		Period:        periodDays,
	}, nil
}

// EconomicStats returns the daily revenue series with derived indicators.
// Days without sales appear as zero buckets so charts have a continuous axis.
func (s *AdminService) EconomicStats(ctx context.Context, periodDays int) (*dto.EconomicStatsResponse, error) {
	if periodDays < 1 {
		periodDays = defaultStatsPeriod
	}
	since := startOfDay(time.Now().UTC()).AddDate(0, 0, -(periodDays - 1))

	rows, err := s.pedidos.VentasDiarias(ctx, since)
	if err != nil {
		return nil, err
	}

	porDia := make(map[string]repository.VentaDiariaRow, len(rows))
	for _, row := range rows {
		porDia[row.Fecha.Format("2006-01-02")] = row
	}

	serie := make([]dto.VentaDiaria, 0, periodDays)
	totalRevenue := decimal.Zero
	var totalOrders int64
	best := dto.VentaDiaria{Total: decimal.Zero}

	for i := 0; i < periodDays; i++ {
		fecha := since.AddDate(0, 0, i).Format("2006-01-02")
		bucket := dto.VentaDiaria{Date: fecha, Total: decimal.Zero}
		if row, ok := porDia[fecha]; ok {
			bucket.Total = row.Total
			bucket.Orders = row.Orders
		}
		serie = append(serie, bucket)
		totalRevenue = totalRevenue.Add(bucket.Total)
		totalOrders += bucket.Orders
		if bucket.Total.GreaterThan(best.Total) {
			best = bucket
		}
	}

	avgOrder := decimal.Zero
	if totalOrders > 0 {
		avgOrder = totalRevenue.Div(decimal.NewFromInt(totalOrders)).Round(2)
	}

	return &dto.EconomicStatsResponse{
		Period:              periodDays,
		TotalRevenue:        totalRevenue,
		TotalOrders:         totalOrders,
		AverageOrderValue:   avgOrder,
		AverageDailyRevenue: totalRevenue.Div(decimal.NewFromInt(int64(periodDays))).Round(2),
		BestDay:             best,
		Trend:               calcularTendencia(serie),
		DailySales:          serie,
	}, nil
}

// calcularTendencia compares the second half of the series against the first,
// as a percentage. A first half with zero revenue yields 0 to avoid a
// division blowup.
func calcularTendencia(serie []dto.VentaDiaria) decimal.Decimal {
	if len(serie) < 2 {
		return decimal.Zero
	}
	mitad := len(serie) / 2
	primera, segunda := decimal.Zero, decimal.Zero
	for _, d := range serie[:mitad] {
		primera = primera.Add(d.Total)
	}
	for _, d := range serie[mitad:] {
		segunda = segunda.Add(d.Total)
	}
	if primera.IsZero() {
		return decimal.Zero
	}
	cien := decimal.NewFromInt(100)
	return segunda.Sub(primera).Div(primera).Mul(cien).Round(2)
}

func (s *AdminService) TopProductos(ctx context.Context, limit int) ([]dto.TopProductoResponse, error) {
	if limit < 1 {
		limit = topListSize
	}
	rows, err := s.pedidos.TopProductos(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TopProductoResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.TopProductoResponse{
			ID:            row.ProductoID.String(),
			Nombre:        row.Nombre,
			SKU:           row.SKU,
			TotalQuantity: row.TotalQuantity,
		})
	}
	return out, nil
}

func (s *AdminService) TopClientes(ctx context.Context, limit int) ([]dto.TopClienteResponse, error) {
	if limit < 1 {
		limit = topListSize
	}
	rows, err := s.pedidos.TopClientes(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TopClienteResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.TopClienteResponse{
			Nombre:      row.Nombre,
			Telefono:    row.Telefono,
			TotalOrders: row.TotalOrders,
			TotalSpent:  row.TotalSpent,
		})
	}
	return out, nil
}

// Dashboard bundles the landing-page widgets in one call.
func (s *AdminService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	ventas, err := s.VentasStats(ctx, defaultStatsPeriod)
	if err != nil {
		return nil, err
	}
	productos, err := s.TopProductos(ctx, topListSize)
	if err != nil {
		return nil, err
	}
	clientes, err := s.TopClientes(ctx, topListSize)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardResponse{
		Sales:        *ventas,
		TopProducts:  productos,
		TopCustomers: clientes,
	}, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
