package dosage_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fumigacion-api/internal/domain"
	"github.com/jhoicas/fumigacion-api/internal/domain/dosage"
	"github.com/jhoicas/fumigacion-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Estimación de pastillas (camino floor)
// ──────────────────────────────────────────────────────────────────────────────

func TestEstimateTablets_SieteKilosSonDosMilTrescientasTreintaYTres(t *testing.T) {
	// 7 kg * 1000 / 3 = 2333.33... → floor → 2333
	got := dosage.EstimateTablets(decimal.NewFromInt(7))
	assert.Equal(t, int64(2333), got)
}

func TestEstimateTablets_ExactoSinRedondeo(t *testing.T) {
	// 0.009 kg = exactamente 3 pastillas
	got := dosage.EstimateTablets(decimal.RequireFromString("0.009"))
	assert.Equal(t, int64(3), got)
}

func TestEstimateTablets_SiempreTruncaHaciaAbajo(t *testing.T) {
	// 0.005 kg = 1.66 pastillas → 1, nunca 2
	got := dosage.EstimateTablets(decimal.RequireFromString("0.005"))
	assert.Equal(t, int64(1), got)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consumo por aplicación (camino round)
// ──────────────────────────────────────────────────────────────────────────────

func TestConsumption_PastillasCurativoRedondeaAlMasCercano(t *testing.T) {
	// 0.778 t * 3 past/t = 2.334 → round → 2 pastillas = 0.006 kg.
	// El mismo valor por el camino floor daría otra cosa: la asimetría es
	// intencional y este test la fija.
	units, kg, err := dosage.Consumption(entity.MethodTablets, entity.TreatmentCurative, decimal.RequireFromString("0.778"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), units)
	assert.True(t, decimal.RequireFromString("0.006").Equal(kg), "kg = %s", kg)
}

func TestConsumption_PastillasPreventivo(t *testing.T) {
	// 100 t * 2 past/t = 200 pastillas = 0.6 kg
	units, kg, err := dosage.Consumption(entity.MethodTablets, entity.TreatmentPreventive, decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.Equal(t, int64(200), units)
	assert.True(t, decimal.RequireFromString("0.6").Equal(kg), "kg = %s", kg)
}

func TestConsumption_LiquidoCurativo(t *testing.T) {
	// 50 t * 20 cm³/t = 1000 cm³ = 1 L = 1.2 kg
	units, kg, err := dosage.Consumption(entity.MethodLiquid, entity.TreatmentCurative, decimal.NewFromInt(50))
	require.NoError(t, err)
	assert.Equal(t, int64(1000), units)
	assert.True(t, decimal.RequireFromString("1.2").Equal(kg), "kg = %s", kg)
}

func TestConsumption_LiquidoPreventivoRedondea(t *testing.T) {
	// 10.3 t * 12 cm³/t = 123.6 → round → 124 cm³
	units, _, err := dosage.Consumption(entity.MethodLiquid, entity.TreatmentPreventive, decimal.RequireFromString("10.3"))
	require.NoError(t, err)
	assert.Equal(t, int64(124), units)
}

func TestConsumption_TratamientoInvalido(t *testing.T) {
	_, _, err := dosage.Consumption(entity.MethodTablets, entity.Treatment("otro"), decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Conversión de cantidades manuales
// ──────────────────────────────────────────────────────────────────────────────

func TestManualToKilograms_Conversiones(t *testing.T) {
	cases := []struct {
		name    string
		product entity.FumigationMethod
		unit    dosage.Unit
		amount  string
		wantKg  string
	}{
		{"kilos directo", entity.MethodTablets, dosage.UnitKilograms, "5", "5"},
		{"pastillas a kilos", entity.MethodTablets, dosage.UnitTablets, "1000", "3"},
		{"litros a kilos", entity.MethodLiquid, dosage.UnitLiters, "10", "12"},
		{"cm3 a kilos", entity.MethodLiquid, dosage.UnitCm3, "500", "0.6"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			kg, err := dosage.ManualToKilograms(tc.product, tc.unit, decimal.RequireFromString(tc.amount))
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tc.wantKg).Equal(kg), "kg = %s", kg)
		})
	}
}

func TestManualToKilograms_UnidadNoCorrespondeAlProducto(t *testing.T) {
	// pastillas declaradas sobre producto líquido
	_, err := dosage.ManualToKilograms(entity.MethodLiquid, dosage.UnitTablets, decimal.NewFromInt(10))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// litros declarados sobre pastillas
	_, err = dosage.ManualToKilograms(entity.MethodTablets, dosage.UnitLiters, decimal.NewFromInt(10))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestManualToKilograms_CantidadNoPositiva(t *testing.T) {
	_, err := dosage.ManualToKilograms(entity.MethodTablets, dosage.UnitKilograms, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = dosage.ManualToKilograms(entity.MethodTablets, dosage.UnitKilograms, decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUnitsForBalance_SoloPastillasLlevanContador(t *testing.T) {
	n := dosage.UnitsForBalance(entity.MethodTablets, decimal.RequireFromString("0.010"))
	require.NotNil(t, n)
	assert.Equal(t, int64(3), *n)

	assert.Nil(t, dosage.UnitsForBalance(entity.MethodLiquid, decimal.NewFromInt(10)))
}
