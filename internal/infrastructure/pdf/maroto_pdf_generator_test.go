package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ist-rebalancer/internal/application/dto"
	"github.com/jhoicas/ist-rebalancer/internal/infrastructure/pdf"
)

func TestGenerateTransferSheet(t *testing.T) {
	sheet := dto.TransferSheet{
		RunID:            "7d1c6f0e-1111-4a2b-9c3d-000000000001",
		Variant:          "regional",
		SeasonLaunchDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		GeneratedAt:      time.Date(2024, 3, 31, 10, 0, 0, 0, time.UTC),
		Transfers: []dto.TransferDTO{
			{ZoneID: "Z1", SellingItemID: "D1", SendingUnitID: "StoreB", ReceivingUnitID: "StoreA", Quantity: decimal.NewFromInt(60)},
			{ZoneID: "Z1", SellingItemID: "D2", SendingUnitID: "StoreC", ReceivingUnitID: "StoreA", Quantity: decimal.NewFromInt(1500)},
		},
		TotalTransferred: decimal.NewFromInt(1560),
		Stores:           3,
	}

	content, err := pdf.NewMarotoPDFGenerator().GenerateTransferSheet(context.Background(), sheet)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF")), "el documento debe ser un PDF")
}

func TestGenerateTransferSheet_SinTraslados(t *testing.T) {
	content, err := pdf.NewMarotoPDFGenerator().GenerateTransferSheet(context.Background(), dto.TransferSheet{
		RunID:   "vacía",
		Variant: "network",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, content)
}
