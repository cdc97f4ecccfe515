package services

import (
	"rental-system/internal/authz"
	"rental-system/internal/dto"
)

// HiddenPricePlaceholder подставляется вместо цен для ролей без права
// equipment:prices:view. Числовое значение наружу не уходит никогда.
const HiddenPricePlaceholder = "***"

// CanViewPrices — чистая проверка права на просмотр цен.
func CanViewPrices(perms map[string]bool) bool {
	if perms == nil {
		return false
	}
	return perms[authz.Superuser] || perms[authz.EquipmentPricesView]
}

// RedactEquipmentPrices — чистая проекция (запись, права) -> запись.
// Хранилище про маскирование не знает: это политика границы выдачи.
func RedactEquipmentPrices(item dto.EquipmentDTO, perms map[string]bool) dto.EquipmentDTO {
	if CanViewPrices(perms) {
		return item
	}
	item.RentalPrice = HiddenPricePlaceholder
	item.InvestmentPrice = HiddenPricePlaceholder
	return item
}

func RedactEquipmentPricesList(items []dto.EquipmentDTO, perms map[string]bool) []dto.EquipmentDTO {
	if CanViewPrices(perms) {
		return items
	}
	result := make([]dto.EquipmentDTO, len(items))
	for i, item := range items {
		result[i] = RedactEquipmentPrices(item, perms)
	}
	return result
}
