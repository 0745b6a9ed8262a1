package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/santiagozurbrigk/libreria-lowcost/internal/dto"
	"github.com/santiagozurbrigk/libreria-lowcost/internal/model"
	"github.com/santiagozurbrigk/libreria-lowcost/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type productoEnv struct {
	svc       *service.ProductoService
	productos *stubProductoRepo
	imagenes  *stubImagenRepo
	pedidos   *stubPedidoRepo
}

func newProductoEnv() *productoEnv {
	productos := newStubProductoRepo()
	imagenes := newStubImagenRepo()
	pedidos := newStubPedidoRepo()
	// Redis nil: the barcode cache is bypassed in unit tests
	svc := service.NewProductoService(productos, imagenes, pedidos, nil)
	return &productoEnv{svc: svc, productos: productos, imagenes: imagenes, pedidos: pedidos}
}

func sku(s string) *string { return &s }

func TestCrearProducto(t *testing.T) {
	env := newProductoEnv()

	resp, err := env.svc.Crear(context.Background(), dto.CrearProductoRequest{
		Nombre: "Cartulina", SKU: sku("CART-01"), Precio: precio("350.00"), Stock: 40,
	})
	require.NoError(t, err)
	assert.Equal(t, "Cartulina", resp.Nombre)
	assert.Equal(t, 40, resp.Stock)
	assert.NotEmpty(t, resp.ID)
}

func TestCrearProducto_SKUDuplicado(t *testing.T) {
	env := newProductoEnv()
	env.productos.seed(model.Producto{Nombre: "Original", SKU: sku("DUP-1"), Precio: precio("100.00")})

	_, err := env.svc.Crear(context.Background(), dto.CrearProductoRequest{
		Nombre: "Copia", SKU: sku("DUP-1"), Precio: precio("100.00"),
	})
	assert.Equal(t, http.StatusConflict, apiStatus(t, err))
}

func TestActualizarProducto_ParcialYPropioSKU(t *testing.T) {
	env := newProductoEnv()
	p := env.productos.seed(model.Producto{Nombre: "Tijera", SKU: sku("TIJ-1"), Precio: precio("900.00"), Stock: 5})

	nuevoPrecio := precio("950.00")
	resp, err := env.svc.Actualizar(context.Background(), p.ID, dto.ActualizarProductoRequest{
		Precio: &nuevoPrecio,
		SKU:    sku("TIJ-1"), // keeping its own SKU is not a conflict
	})
	require.NoError(t, err)
	assert.True(t, resp.Precio.Equal(nuevoPrecio))
	assert.Equal(t, "Tijera", resp.Nombre)
	assert.Equal(t, 5, resp.Stock)
}

func TestActualizarProducto_SKUDeOtro(t *testing.T) {
	env := newProductoEnv()
	env.productos.seed(model.Producto{Nombre: "Uno", SKU: sku("A-1"), Precio: precio("10.00")})
	p := env.productos.seed(model.Producto{Nombre: "Dos", SKU: sku("B-2"), Precio: precio("10.00")})

	_, err := env.svc.Actualizar(context.Background(), p.ID, dto.ActualizarProductoRequest{SKU: sku("A-1")})
	assert.Equal(t, http.StatusConflict, apiStatus(t, err))
}

func TestEliminarProducto_SinPedidos(t *testing.T) {
	env := newProductoEnv()
	p := env.productos.seed(model.Producto{Nombre: "Borrable", Precio: precio("50.00")})

	require.NoError(t, env.svc.Eliminar(context.Background(), p.ID))
	_, err := env.svc.Obtener(context.Background(), p.ID)
	assert.Equal(t, http.StatusNotFound, apiStatus(t, err))
}

func TestEliminarProducto_ConPedidosBloqueado(t *testing.T) {
	env := newProductoEnv()
	p := env.productos.seed(model.Producto{Nombre: "Vendido", Precio: precio("700.00"), Stock: 3})
	env.pedidos.itemsPorProd[p.ID] = 1

	err := env.svc.Eliminar(context.Background(), p.ID)
	assert.Equal(t, http.StatusConflict, apiStatus(t, err))

	// Still there
	_, err = env.svc.Obtener(context.Background(), p.ID)
	assert.NoError(t, err)
}

func TestBuscarPorBarcode(t *testing.T) {
	env := newProductoEnv()
	barcode := "7791234567890"
	env.productos.seed(model.Producto{Nombre: "Escaneado", Barcode: &barcode, Precio: precio("1200.00")})

	resp, err := env.svc.BuscarPorBarcode(context.Background(), barcode)
	require.NoError(t, err)
	assert.Equal(t, "Escaneado", resp.Nombre)

	_, err = env.svc.BuscarPorBarcode(context.Background(), "0000000000000")
	assert.Equal(t, http.StatusNotFound, apiStatus(t, err))
}

// ── Imágenes ─────────────────────────────────────────────────────────────────

func TestAgregarImagen_OrdenAutomatico(t *testing.T) {
	env := newProductoEnv()
	p := env.productos.seed(model.Producto{Nombre: "Con fotos", Precio: precio("100.00")})

	primera, err := env.svc.AgregarImagen(context.Background(), p.ID, dto.AgregarImagenRequest{
		ImageURL: "https://cdn.example.com/a.jpg",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, primera.DisplayOrder)

	segunda, err := env.svc.AgregarImagen(context.Background(), p.ID, dto.AgregarImagenRequest{
		ImageURL: "https://cdn.example.com/b.jpg",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, segunda.DisplayOrder)
}

func TestEliminarImagen_DeOtroProducto(t *testing.T) {
	env := newProductoEnv()
	p1 := env.productos.seed(model.Producto{Nombre: "P1", Precio: precio("100.00")})
	p2 := env.productos.seed(model.Producto{Nombre: "P2", Precio: precio("100.00")})

	img, err := env.svc.AgregarImagen(context.Background(), p1.ID, dto.AgregarImagenRequest{
		ImageURL: "https://cdn.example.com/c.jpg",
	})
	require.NoError(t, err)

	// Image belongs to p1; deleting it through p2 must fail
	err = env.svc.EliminarImagen(context.Background(), p2.ID, uuid.MustParse(img.ID))
	assert.Equal(t, http.StatusNotFound, apiStatus(t, err))

	require.NoError(t, env.svc.EliminarImagen(context.Background(), p1.ID, uuid.MustParse(img.ID)))
}
