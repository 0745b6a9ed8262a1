package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/santiagozurbrigk/libreria-lowcost/internal/repository"
	"github.com/santiagozurbrigk/libreria-lowcost/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEconomicStats_SerieCompletaConDiasVacios(t *testing.T) {
	pedidos := newStubPedidoRepo()
	hoy := time.Now().UTC().Truncate(24 * time.Hour)
	pedidos.ventasDiarias = []repository.VentaDiariaRow{
		{Fecha: hoy.AddDate(0, 0, -3), Total: precio("1000.00"), Orders: 2},
		{Fecha: hoy, Total: precio("3000.00"), Orders: 3},
	}

	svc := service.NewAdminService(pedidos)
	resp, err := svc.EconomicStats(context.Background(), 7)
	require.NoError(t, err)

	// 7 buckets even though only 2 days had sales
	require.Len(t, resp.DailySales, 7)
	assert.True(t, resp.TotalRevenue.Equal(precio("4000.00")))
	assert.Equal(t, int64(5), resp.TotalOrders)
	assert.True(t, resp.AverageOrderValue.Equal(precio("800.00")))
	assert.Equal(t, hoy.Format("2006-01-02"), resp.BestDay.Date)

	vacios := 0
	for _, d := range resp.DailySales {
		if d.Orders == 0 {
			assert.True(t, d.Total.IsZero())
			vacios++
		}
	}
	assert.Equal(t, 5, vacios)
}

func TestEconomicStats_TendenciaPositiva(t *testing.T) {
	pedidos := newStubPedidoRepo()
	hoy := time.Now().UTC().Truncate(24 * time.Hour)
	// First half of a 4-day window sells 100, second half 300 → +200%
	pedidos.ventasDiarias = []repository.VentaDiariaRow{
		{Fecha: hoy.AddDate(0, 0, -3), Total: precio("100.00"), Orders: 1},
		{Fecha: hoy, Total: precio("300.00"), Orders: 1},
	}

	svc := service.NewAdminService(pedidos)
	resp, err := svc.EconomicStats(context.Background(), 4)
	require.NoError(t, err)
	assert.True(t, resp.Trend.Equal(precio("200.00")), "trend = %s", resp.Trend)
}

func TestEconomicStats_TendenciaSinVentasPrevias(t *testing.T) {
	pedidos := newStubPedidoRepo()
	hoy := time.Now().UTC().Truncate(24 * time.Hour)
	pedidos.ventasDiarias = []repository.VentaDiariaRow{
		{Fecha: hoy, Total: precio("500.00"), Orders: 1},
	}

	svc := service.NewAdminService(pedidos)
	resp, err := svc.EconomicStats(context.Background(), 4)
	require.NoError(t, err)
	// Empty first half: trend degrades to zero instead of dividing by zero
	assert.True(t, resp.Trend.IsZero())
}

func TestVentasStats_PromedioDiario(t *testing.T) {
	pedidos := newStubPedidoRepo()
	pedidos.totalHistorico = precio("90000.00")
	hoy := time.Now().UTC().Truncate(24 * time.Hour)
	pedidos.ventasDiarias = []repository.VentaDiariaRow{
		{Fecha: hoy.AddDate(0, 0, -1), Total: precio("2000.00"), Orders: 1},
		{Fecha: hoy, Total: precio("1000.00"), Orders: 1},
	}

	svc := service.NewAdminService(pedidos)
	resp, err := svc.VentasStats(context.Background(), 30)
	require.NoError(t, err)

	assert.True(t, resp.TotalSales.Equal(precio("90000.00")))
	assert.True(t, resp.PeriodSales.Equal(precio("3000.00")))
	assert.True(t, resp.DailyAverage.Equal(precio("100.00")))
	assert.Equal(t, 30, resp.Period)
}
