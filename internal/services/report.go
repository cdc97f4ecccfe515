package services

import (
	"context"

	"go.uber.org/zap"

	"rental-system/internal/authz"
	"rental-system/internal/dto"
	"rental-system/internal/repositories"
	apperrors "rental-system/pkg/errors"
	"rental-system/pkg/utils"
)

type ReportServiceInterface interface {
	GetEquipmentReport(ctx context.Context) ([]dto.EquipmentDTO, error)
}

// ReportService выгружает полный список оборудования для отчёта.
// Цены маскируются по тем же правилам, что и в обычных ответах API.
type ReportService struct {
	equipmentRepo repositories.EquipmentRepositoryInterface
	gatekeeper    *authz.Gatekeeper
	logger        *zap.Logger
}

func NewReportService(equipmentRepo repositories.EquipmentRepositoryInterface, gatekeeper *authz.Gatekeeper, logger *zap.Logger) ReportServiceInterface {
	return &ReportService{equipmentRepo: equipmentRepo, gatekeeper: gatekeeper, logger: logger}
}

func (s *ReportService) GetEquipmentReport(ctx context.Context) ([]dto.EquipmentDTO, error) {
	perms, err := utils.GetPermissionsMapFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if !s.gatekeeper.Can(perms, authz.ReportsView) {
		return nil, apperrors.ErrForbidden
	}

	list, err := s.equipmentRepo.GetAllEquipments(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]dto.EquipmentDTO, 0, len(list))
	for _, eq := range list {
		result = append(result, newEquipmentDTO(eq))
	}
	return RedactEquipmentPricesList(result, perms), nil
}
