package cfr

import (
	"errors"
	"testing"

	"example.com/budget-tracker/backend/internal/models"
)

// TestClassify проверяет сопоставление типов категорий с процентами.
func TestClassify(t *testing.T) {
	cases := map[models.CategoryType]int64{
		models.CategoryTypeNeeds:   50,
		models.CategoryTypeWants:   30,
		models.CategoryTypeSavings: 20,
	}

	for categoryType, want := range cases {
		classification, err := Classify(models.Category{Name: "test", Type: categoryType})
		if err != nil {
			t.Fatalf("expected no error for %s, got %v", categoryType, err)
		}
		if classification.RecommendedPercentage != want {
			t.Fatalf("expected %d%% for %s, got %d%%", want, categoryType, classification.RecommendedPercentage)
		}
	}
}

// TestClassifyUnknownType проверяет, что неизвестный тип не приводится к умолчанию.
func TestClassifyUnknownType(t *testing.T) {
	_, err := Classify(models.Category{Name: "mystery", Type: "luxuries"})
	if !errors.Is(err, ErrUnknownCategoryType) {
		t.Fatalf("expected ErrUnknownCategoryType, got %v", err)
	}
}

// TestCategoryTypesOrder проверяет фиксированный порядок needs, wants, savings.
func TestCategoryTypesOrder(t *testing.T) {
	want := []models.CategoryType{
		models.CategoryTypeNeeds,
		models.CategoryTypeWants,
		models.CategoryTypeSavings,
	}

	if len(CategoryTypes) != len(want) {
		t.Fatalf("expected %d types, got %d", len(want), len(CategoryTypes))
	}
	for i, categoryType := range want {
		if CategoryTypes[i] != categoryType {
			t.Fatalf("expected %s at position %d, got %s", categoryType, i, CategoryTypes[i])
		}
	}
}
