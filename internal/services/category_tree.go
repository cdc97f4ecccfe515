package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"rental-system/internal/dto"
	"rental-system/internal/entities"
	"rental-system/internal/repositories"
)

// TreeRootEquipmentKey — сентинельный родитель для оборудования без категории.
const TreeRootEquipmentKey = "equipment"

type CategoryTreeServiceInterface interface {
	BuildTree(ctx context.Context) ([]dto.TreeNodeDTO, error)
}

type CategoryTreeService struct {
	categoryRepo  repositories.CategoryRepositoryInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	logger        *zap.Logger
}

func NewCategoryTreeService(
	categoryRepo repositories.CategoryRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	logger *zap.Logger,
) CategoryTreeServiceInterface {
	return &CategoryTreeService{
		categoryRepo:  categoryRepo,
		equipmentRepo: equipmentRepo,
		logger:        logger,
	}
}

// BuildTree — производная, нигде не кешируемая проекция: каждая выдача
// пересобирается из обеих коллекций заново.
func (s *CategoryTreeService) BuildTree(ctx context.Context) ([]dto.TreeNodeDTO, error) {
	var (
		categories []entities.Category
		equipment  []entities.Equipment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		categories, err = s.categoryRepo.GetCategories(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		equipment, err = s.equipmentRepo.GetAllEquipments(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	nodes := MergeTree(categories, equipment)
	s.logger.Debug("Дерево инвентаря собрано", zap.Int("nodes", len(nodes)))
	return nodes, nil
}

func categoryNodeID(id uint64) string {
	return fmt.Sprintf("category:%d", id)
}

func equipmentNodeID(id uint64) string {
	return fmt.Sprintf("equipment:%d", id)
}

// MergeTree сливает категории и оборудование в один адресуемый список
// узлов: сначала категории, затем оборудование, внутри групп — исходный
// порядок. Висячие ссылки на родителя и циклы обрезаются до корня:
// исходные коллекции этого не гарантируют.
func MergeTree(categories []entities.Category, equipment []entities.Equipment) []dto.TreeNodeDTO {
	nodes := make([]dto.TreeNodeDTO, 0, len(categories)+len(equipment))

	rawParent := make(map[uint64]*uint64, len(categories))
	for _, c := range categories {
		rawParent[c.ID] = c.ParentID
	}

	resolveParent := func(c entities.Category) *uint64 {
		parent := c.ParentID
		if parent == nil {
			return nil
		}
		if _, ok := rawParent[*parent]; !ok {
			return nil // висячая ссылка
		}
		if *parent == c.ID {
			return nil
		}

		// Ограниченный обход цепочки родителей: цикл обрубаем до корня.
		cur := parent
		for steps := 0; cur != nil && steps < len(categories); steps++ {
			next, ok := rawParent[*cur]
			if !ok || next == nil {
				return parent
			}
			if *next == c.ID {
				return nil
			}
			cur = next
		}
		if cur != nil {
			return nil // цепочка не завершилась за len(categories) шагов
		}
		return parent
	}

	for _, c := range categories {
		node := dto.TreeNodeDTO{
			ID:   categoryNodeID(c.ID),
			Name: c.Name,
		}
		if p := resolveParent(c); p != nil {
			parentID := categoryNodeID(*p)
			node.ParentID = &parentID
		}
		nodes = append(nodes, node)
	}

	for _, e := range equipment {
		node := dto.TreeNodeDTO{
			ID:   equipmentNodeID(e.ID),
			Name: e.Name,
		}
		if e.CategoryID != nil {
			if _, ok := rawParent[*e.CategoryID]; ok {
				parentID := categoryNodeID(*e.CategoryID)
				node.ParentID = &parentID
				node.CategoryID = &parentID
			}
		}
		if node.ParentID == nil {
			root := TreeRootEquipmentKey
			node.ParentID = &root
		}
		nodes = append(nodes, node)
	}

	return nodes
}
