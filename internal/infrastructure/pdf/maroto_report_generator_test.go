package pdf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-inventory/internal/application/dto"
)

func TestFormatUnits(t *testing.T) {
	cases := map[int64]string{
		0:       "0",
		999:     "999",
		1000:    "1.000",
		25000:   "25.000",
		1000000: "1.000.000",
		-1200:   "-1.200",
		-15:     "-15",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatUnits(in), "formatUnits(%d)", in)
	}
}

func TestGenerate_DevuelvePDF(t *testing.T) {
	maxStock := int64(100)
	report := &dto.InventoryReportDTO{
		TenantID:        "tenant-1",
		GeneratedAt:     time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		TotalProducts:   3,
		TotalUnits:      1250,
		LowStockCount:   1,
		OutOfStockCount: 1,
		OpenAlertsCount: 2,
		LowStockProducts: []dto.InventoryRecordDTO{
			{ProductID: "p1", ProductSKU: "SKU-1", ProductName: "Café", Quantity: 0, MinStock: 5},
			{ProductID: "p2", ProductSKU: "SKU-2", ProductName: "Azúcar", Quantity: 3, MinStock: 5, MaxStock: &maxStock},
		},
	}

	out, err := NewMarotoReportGenerator().Generate(report)
	require.NoError(t, err)
	require.Greater(t, len(out), 4)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestGenerate_SinProductosBajos(t *testing.T) {
	out, err := NewMarotoReportGenerator().Generate(&dto.InventoryReportDTO{TenantID: "t", GeneratedAt: time.Now()})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestGenerate_ReporteNil(t *testing.T) {
	_, err := NewMarotoReportGenerator().Generate(nil)
	assert.Error(t, err)
}
