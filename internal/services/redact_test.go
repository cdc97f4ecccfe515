package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-system/internal/authz"
	"rental-system/internal/dto"
)

func TestRedactEquipmentPricesHidesWithoutPermission(t *testing.T) {
	item := dto.EquipmentDTO{ID: 1, Name: "Колонка", RentalPrice: "150.00", InvestmentPrice: "900.00"}

	res := RedactEquipmentPrices(item, map[string]bool{authz.EquipmentView: true})
	assert.Equal(t, HiddenPricePlaceholder, res.RentalPrice)
	assert.Equal(t, HiddenPricePlaceholder, res.InvestmentPrice)
	assert.Equal(t, "Колонка", res.Name)
}

func TestRedactEquipmentPricesKeepsWithPermission(t *testing.T) {
	item := dto.EquipmentDTO{RentalPrice: "150.00", InvestmentPrice: "900.00"}

	res := RedactEquipmentPrices(item, map[string]bool{authz.EquipmentPricesView: true})
	assert.Equal(t, "150.00", res.RentalPrice)
	assert.Equal(t, "900.00", res.InvestmentPrice)
}

func TestRedactEquipmentPricesSuperuserBypass(t *testing.T) {
	item := dto.EquipmentDTO{RentalPrice: "150.00"}

	res := RedactEquipmentPrices(item, map[string]bool{authz.Superuser: true})
	assert.Equal(t, "150.00", res.RentalPrice)
}

func TestRedactEquipmentPricesNilPerms(t *testing.T) {
	item := dto.EquipmentDTO{RentalPrice: "150.00"}

	res := RedactEquipmentPrices(item, nil)
	assert.Equal(t, HiddenPricePlaceholder, res.RentalPrice)
}

func TestRedactEquipmentPricesListDoesNotMutateInput(t *testing.T) {
	items := []dto.EquipmentDTO{{RentalPrice: "10.00"}, {RentalPrice: "20.00"}}

	res := RedactEquipmentPricesList(items, nil)
	require.Len(t, res, 2)
	assert.Equal(t, HiddenPricePlaceholder, res[0].RentalPrice)
	assert.Equal(t, "10.00", items[0].RentalPrice)
}
