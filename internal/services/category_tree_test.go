package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-system/internal/entities"
)

func uintPtr(v uint64) *uint64 { return &v }

func TestMergeTreeCategoriesBeforeEquipment(t *testing.T) {
	categories := []entities.Category{
		{ID: 1, Name: "Звук"},
		{ID: 2, Name: "Колонки", ParentID: uintPtr(1)},
	}
	equipment := []entities.Equipment{
		{ID: 10, Name: "JBL EON", CategoryID: uintPtr(2)},
		{ID: 11, Name: "Удлинитель"},
	}

	nodes := MergeTree(categories, equipment)
	require.Len(t, nodes, 4)

	assert.Equal(t, "category:1", nodes[0].ID)
	assert.Nil(t, nodes[0].ParentID)

	assert.Equal(t, "category:2", nodes[1].ID)
	require.NotNil(t, nodes[1].ParentID)
	assert.Equal(t, "category:1", *nodes[1].ParentID)

	assert.Equal(t, "equipment:10", nodes[2].ID)
	require.NotNil(t, nodes[2].ParentID)
	assert.Equal(t, "category:2", *nodes[2].ParentID)
	require.NotNil(t, nodes[2].CategoryID)
	assert.Equal(t, "category:2", *nodes[2].CategoryID)

	assert.Equal(t, "equipment:11", nodes[3].ID)
	require.NotNil(t, nodes[3].ParentID)
	assert.Equal(t, TreeRootEquipmentKey, *nodes[3].ParentID)
	assert.Nil(t, nodes[3].CategoryID)
}

func TestMergeTreeDanglingParentBecomesRoot(t *testing.T) {
	categories := []entities.Category{
		{ID: 1, Name: "Свет", ParentID: uintPtr(99)},
	}

	nodes := MergeTree(categories, nil)
	require.Len(t, nodes, 1)
	assert.Nil(t, nodes[0].ParentID)
}

func TestMergeTreeSelfParentBecomesRoot(t *testing.T) {
	categories := []entities.Category{
		{ID: 1, Name: "Рекурсия", ParentID: uintPtr(1)},
	}

	nodes := MergeTree(categories, nil)
	require.Len(t, nodes, 1)
	assert.Nil(t, nodes[0].ParentID)
}

func TestMergeTreeCycleIsCutToRoot(t *testing.T) {
	categories := []entities.Category{
		{ID: 1, Name: "А", ParentID: uintPtr(2)},
		{ID: 2, Name: "Б", ParentID: uintPtr(1)},
	}

	nodes := MergeTree(categories, nil)
	require.Len(t, nodes, 2)
	assert.Nil(t, nodes[0].ParentID)
	assert.Nil(t, nodes[1].ParentID)
}

func TestMergeTreeEquipmentWithDanglingCategoryFallsToSentinel(t *testing.T) {
	equipment := []entities.Equipment{
		{ID: 5, Name: "Сирота", CategoryID: uintPtr(404)},
	}

	nodes := MergeTree(nil, equipment)
	require.Len(t, nodes, 1)
	require.NotNil(t, nodes[0].ParentID)
	assert.Equal(t, TreeRootEquipmentKey, *nodes[0].ParentID)
	assert.Nil(t, nodes[0].CategoryID)
}

func TestMergeTreeEmptyInputs(t *testing.T) {
	nodes := MergeTree(nil, nil)
	assert.Empty(t, nodes)
}
