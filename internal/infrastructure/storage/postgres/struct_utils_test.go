package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"confeito/internal/core/entity"
	"confeito/internal/core/id"
)

type MockCatalog struct {
	entity.BaseCatalog
	Name string `db:"name" json:"name"`
	Unit string `db:"unit" json:"unit"`
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[MockCatalog]()

	expectedCols := []string{
		"id", "deletion_mark", "version", "name", "unit",
	}

	for _, expected := range expectedCols {
		assert.Contains(t, cols, expected)
	}
}

func TestStructToMap(t *testing.T) {
	cat := MockCatalog{
		BaseCatalog: entity.BaseCatalog{
			BaseEntity: entity.BaseEntity{
				ID:           id.New(),
				DeletionMark: true,
				Version:      5,
			},
		},
		Name: "Flour",
		Unit: "kg",
	}

	m := StructToMap(cat)

	assert.Equal(t, cat.ID, m["id"])
	assert.Equal(t, true, m["deletion_mark"])
	assert.Equal(t, 5, m["version"])
	assert.Equal(t, "Flour", m["name"])
	assert.Equal(t, "kg", m["unit"])
}

func TestStructToMap_Pointer(t *testing.T) {
	cat := &MockCatalog{Name: "Sugar", Unit: "g"}

	m := StructToMap(cat)

	assert.Equal(t, "Sugar", m["name"])
	assert.Equal(t, "g", m["unit"])
}
