// Package dosage concentra las conversiones de unidades y las reglas de
// dosificación del producto fumigante (servicio de dominio, funciones puras).
package dosage

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/fumigacion-api/internal/domain"
	"github.com/jhoicas/fumigacion-api/internal/domain/entity"
)

// Constantes físicas del producto.
var (
	// TabletKg masa de una pastilla: 3 g = 0.003 kg.
	TabletKg = decimal.RequireFromString("0.003")
	// LiquidDensityKgPerLiter densidad del fumigante líquido: 1.2 kg/L.
	LiquidDensityKgPerLiter = decimal.RequireFromString("1.2")
	// Cm3PerLiter 1 L = 1000 cm³.
	Cm3PerLiter = decimal.NewFromInt(1000)

	gramsPerKg = decimal.NewFromInt(1000)
	tabletG    = decimal.NewFromInt(3)
)

// Dosis por tonelada según método y tratamiento.
var (
	TabletsPerTonPreventive = decimal.NewFromInt(2)
	TabletsPerTonCurative   = decimal.NewFromInt(3)
	LiquidCm3PerTonPrevent  = decimal.NewFromInt(12)
	LiquidCm3PerTonCurative = decimal.NewFromInt(20)
)

// Unit unidad de entrada para cantidades manuales de stock.
type Unit string

const (
	UnitKilograms Unit = "kg"
	UnitTablets   Unit = "tablets"
	UnitLiters    Unit = "liters"
	UnitCm3       Unit = "cm3"
)

// EstimateTablets cuántas pastillas representa una cantidad en kilos
// (camino de estimación): units = floor(kg * 1000 / 3).
//
// No unificar con ConsumptionUnits: la asimetría floor/round entre estimar
// stock y debitar una dosis es política deliberada.
func EstimateTablets(kg decimal.Decimal) int64 {
	return kg.Mul(gramsPerKg).Div(tabletG).Floor().IntPart()
}

// DosePerTon devuelve la dosis por tonelada para el método y tratamiento:
// pastillas por tonelada o cm³ por tonelada.
func DosePerTon(method entity.FumigationMethod, treatment entity.Treatment) (decimal.Decimal, error) {
	switch method {
	case entity.MethodTablets:
		if treatment == entity.TreatmentCurative {
			return TabletsPerTonCurative, nil
		}
		if treatment == entity.TreatmentPreventive {
			return TabletsPerTonPreventive, nil
		}
	case entity.MethodLiquid:
		if treatment == entity.TreatmentCurative {
			return LiquidCm3PerTonCurative, nil
		}
		if treatment == entity.TreatmentPreventive {
			return LiquidCm3PerTonPrevent, nil
		}
	}
	return decimal.Zero, domain.ErrInvalidInput
}

// Consumption calcula el débito de stock de una aplicación sobre `tons`
// toneladas (camino de consumo): units = round(dosis), al entero más cercano.
// Devuelve las unidades consumidas (pastillas o cm³) y su equivalente en kg.
func Consumption(method entity.FumigationMethod, treatment entity.Treatment, tons decimal.Decimal) (units int64, kg decimal.Decimal, err error) {
	rate, err := DosePerTon(method, treatment)
	if err != nil {
		return 0, decimal.Zero, err
	}
	units = tons.Mul(rate).Round(0).IntPart()
	switch method {
	case entity.MethodTablets:
		kg = decimal.NewFromInt(units).Mul(TabletKg)
	case entity.MethodLiquid:
		kg = decimal.NewFromInt(units).Div(Cm3PerLiter).Mul(LiquidDensityKgPerLiter)
	}
	return units, kg, nil
}

// ManualToKilograms convierte una cantidad manual (ajuste de stock) a kilos
// según la unidad declarada. Valida que la unidad corresponda al producto.
func ManualToKilograms(product entity.FumigationMethod, unit Unit, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, domain.ErrInvalidInput
	}
	switch unit {
	case UnitKilograms:
		return amount, nil
	case UnitTablets:
		if product != entity.MethodTablets {
			return decimal.Zero, domain.ErrInvalidInput
		}
		return amount.Mul(TabletKg), nil
	case UnitLiters:
		if product != entity.MethodLiquid {
			return decimal.Zero, domain.ErrInvalidInput
		}
		return amount.Mul(LiquidDensityKgPerLiter), nil
	case UnitCm3:
		if product != entity.MethodLiquid {
			return decimal.Zero, domain.ErrInvalidInput
		}
		return amount.Div(Cm3PerLiter).Mul(LiquidDensityKgPerLiter), nil
	}
	return decimal.Zero, domain.ErrInvalidInput
}

// UnitsForBalance deriva el contador de unidades de un saldo en kilos.
// Solo las pastillas llevan contador; para líquido devuelve nil.
func UnitsForBalance(product entity.FumigationMethod, kg decimal.Decimal) *int64 {
	if product != entity.MethodTablets {
		return nil
	}
	n := EstimateTablets(kg)
	return &n
}
