package operation_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fumigacion-api/internal/application/operation"
	"github.com/jhoicas/fumigacion-api/internal/domain/entity"
)

// seedChain arma una cadena directamente en el repositorio para controlar los
// created_at, que los casos de garantía necesitan exactos.
func seedChain(t *testing.T, f *fixture, opened time.Time, finishedAfter time.Duration) (rootID, finID string) {
	t.Helper()

	rootID = "root-1"
	treatment := entity.TreatmentPreventive
	mode := entity.ModeUnload
	t100 := decimal.NewFromInt(100)
	t50 := decimal.NewFromInt(50)
	t999 := decimal.NewFromInt(999)
	used := decimal.NewFromInt(200)

	records := []*entity.OperationRecord{
		{
			ID: rootID, RootID: rootID, Kind: entity.KindInitial,
			State: entity.StateInProgress, Approval: entity.ApprovalApproved,
			ClientID: testClientID, WarehouseID: testWarehouseID, MerchandiseID: testMerchandiseID,
			Method: entity.MethodTablets, CreatedAt: opened,
		},
		{
			ID: "rec-app", RootID: rootID, Kind: entity.KindProductApplication,
			State: entity.StateInProgress, Approval: entity.ApprovalApproved,
			ClientID: testClientID, WarehouseID: testWarehouseID, MerchandiseID: testMerchandiseID,
			Method: entity.MethodTablets, Tons: &t100, Treatment: &treatment,
			ProductAmountUsed: &used, CreatedAt: opened.Add(24 * time.Hour),
		},
		{
			ID: "rec-mov", RootID: rootID, Kind: entity.KindMovement,
			State: entity.StateInProgress, Approval: entity.ApprovalApproved,
			ClientID: testClientID, WarehouseID: testWarehouseID, MerchandiseID: testMerchandiseID,
			Method: entity.MethodTablets, Tons: &t50, Mode: &mode,
			CreatedAt: opened.Add(48 * time.Hour),
		},
		{
			ID: "rec-rechazado", RootID: rootID, Kind: entity.KindMovement,
			State: entity.StateInProgress, Approval: entity.ApprovalRejected,
			ApprovalNote: "carga duplicada",
			ClientID:     testClientID, WarehouseID: testWarehouseID, MerchandiseID: testMerchandiseID,
			Method: entity.MethodTablets, Tons: &t999, Mode: &mode,
			CreatedAt: opened.Add(72 * time.Hour),
		},
	}
	for _, rec := range records {
		require.NoError(t, f.recordRepo.Create(rec))
	}

	finID = "rec-fin"
	require.NoError(t, f.recordRepo.Create(&entity.OperationRecord{
		ID: finID, RootID: rootID, Kind: entity.KindFinalization,
		State: entity.StateInProgress, Approval: entity.ApprovalApproved,
		ClientID: testClientID, WarehouseID: testWarehouseID, MerchandiseID: testMerchandiseID,
		Method: entity.MethodTablets, CreatedAt: opened.Add(finishedAfter),
	}))
	require.NoError(t, f.recordRepo.FinishChain(rootID))
	return rootID, finID
}

func TestComputeAggregates_TotalesExcluyenRechazados(t *testing.T) {
	f := newFixture(t)
	opened := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	rootID, _ := seedChain(t, f, opened, 4*24*time.Hour)

	agg, err := f.uc.ComputeAggregates(context.Background(), rootID)
	require.NoError(t, err)

	// 100 + 50; las 999 t rechazadas no cuentan
	assert.True(t, decimal.NewFromInt(150).Equal(agg.TotalTons), "total = %s", agg.TotalTons)
	assert.True(t, decimal.NewFromInt(200).Equal(agg.TotalProduct))
	assert.Len(t, agg.Records, 4, "rechazado fuera; inicial, aplicación, movimiento y cierre adentro")
}

func TestComputeAggregates_AcumuladoHistoricoPorRegistro(t *testing.T) {
	f := newFixture(t)
	opened := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	rootID, _ := seedChain(t, f, opened, 4*24*time.Hour)

	agg, err := f.uc.ComputeAggregates(context.Background(), rootID)
	require.NoError(t, err)

	running := map[string]string{}
	for _, r := range agg.Records {
		running[r.RecordID] = r.RunningTotal.String()
	}
	assert.Equal(t, "0", running["root-1"], "al abrir no había toneladas")
	assert.Equal(t, "100", running["rec-app"])
	assert.Equal(t, "150", running["rec-mov"])
	assert.Equal(t, "150", running["rec-fin"], "el cierre ve el total final")
}

func TestComputeAggregates_CadenaEnCursoNoCalculaGarantia(t *testing.T) {
	f := newFixture(t)
	root, err := f.uc.Begin(context.Background(), operador(), beginRequest())
	require.NoError(t, err)

	agg, err := f.uc.ComputeAggregates(context.Background(), root.ID)
	require.NoError(t, err)
	assert.False(t, agg.Warranty.Computed)
	assert.False(t, agg.Warranty.HasWarranty)
}

func TestComputeAggregates_GarantiaDentroDelPlazo(t *testing.T) {
	f := newFixture(t)
	opened := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	// cierre al día 4: dentro de los 5 días
	rootID, finID := seedChain(t, f, opened, 4*24*time.Hour)
	// limpieza reciente: garantía de limpieza vigente al cierre
	require.NoError(t, f.cleaningRepo.Create(entity.NewCleaningRecord("cl-rec", testWarehouseID, opened.AddDate(0, 0, -10), "")))

	agg, err := f.uc.ComputeAggregates(context.Background(), rootID)
	require.NoError(t, err)
	require.True(t, agg.Warranty.Computed)
	assert.True(t, agg.Warranty.MeetsDeadline)
	assert.True(t, agg.Warranty.MeetsCleaning)
	assert.True(t, agg.Warranty.HasWarranty)

	fin, err := f.recordRepo.GetByID(finID)
	require.NoError(t, err)
	require.NotNil(t, agg.Warranty.WarrantyExpiry)
	assert.True(t, fin.CreatedAt.AddDate(0, 0, operation.WarrantyValidityDays).Equal(*agg.Warranty.WarrantyExpiry),
		"vigencia de 40 días desde el cierre")

	// el resultado queda persistido sobre el registro inicial
	root, err := f.recordRepo.GetByID(rootID)
	require.NoError(t, err)
	assert.True(t, root.HasWarranty)
	require.NotNil(t, root.WarrantyExpiry)
}

func TestComputeAggregates_GarantiaFueraDelPlazo(t *testing.T) {
	f := newFixture(t)
	opened := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	// cierre al día 6: excede los 5 días aunque la limpieza esté vigente
	rootID, _ := seedChain(t, f, opened, 6*24*time.Hour)
	require.NoError(t, f.cleaningRepo.Create(entity.NewCleaningRecord("cl-rec", testWarehouseID, opened.AddDate(0, 0, -10), "")))

	agg, err := f.uc.ComputeAggregates(context.Background(), rootID)
	require.NoError(t, err)
	require.True(t, agg.Warranty.Computed)
	assert.False(t, agg.Warranty.MeetsDeadline)
	assert.True(t, agg.Warranty.MeetsCleaning)
	assert.False(t, agg.Warranty.HasWarranty)
	assert.Nil(t, agg.Warranty.WarrantyExpiry)
}

func TestComputeAggregates_GarantiaSinLimpiezaVigente(t *testing.T) {
	f := newFixture(t)
	opened := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	rootID, _ := seedChain(t, f, opened, 2*24*time.Hour)
	// última limpieza hace más de 180 días: vencida al cierre
	require.NoError(t, f.cleaningRepo.Create(entity.NewCleaningRecord("cl-rec", testWarehouseID, opened.AddDate(0, 0, -200), "")))

	agg, err := f.uc.ComputeAggregates(context.Background(), rootID)
	require.NoError(t, err)
	assert.True(t, agg.Warranty.MeetsDeadline)
	assert.False(t, agg.Warranty.MeetsCleaning)
	assert.False(t, agg.Warranty.HasWarranty)
}

func TestComputeAggregates_SinLimpiezaRegistradaNoHayGarantia(t *testing.T) {
	f := newFixture(t)
	opened := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	rootID, _ := seedChain(t, f, opened, 2*24*time.Hour)

	agg, err := f.uc.ComputeAggregates(context.Background(), rootID)
	require.NoError(t, err)
	assert.False(t, agg.Warranty.MeetsCleaning)
	assert.False(t, agg.Warranty.HasWarranty)
}

func TestComputeAggregates_EscrituraDeGarantiaIdempotente(t *testing.T) {
	f := newFixture(t)
	opened := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	rootID, _ := seedChain(t, f, opened, 4*24*time.Hour)
	require.NoError(t, f.cleaningRepo.Create(entity.NewCleaningRecord("cl-rec", testWarehouseID, opened.AddDate(0, 0, -10), "")))

	for i := 0; i < 3; i++ {
		_, err := f.uc.ComputeAggregates(context.Background(), rootID)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, f.recordRepo.warrantyWrites, "solo la primera lectura escribe; las demás ven el mismo resultado")
}
