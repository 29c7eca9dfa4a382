package cfr

import (
	"fmt"

	"example.com/budget-tracker/backend/internal/models"
)

// Рекомендованное распределение 50/30/20 по Clever Finance Rule.
const (
	RecommendedNeedsPercent   int64 = 50
	RecommendedWantsPercent   int64 = 30
	RecommendedSavingsPercent int64 = 20
)

// CategoryTypes задает фиксированный порядок типов в выводе анализа.
var CategoryTypes = []models.CategoryType{
	models.CategoryTypeNeeds,
	models.CategoryTypeWants,
	models.CategoryTypeSavings,
}

type Classification struct {
	Type                  models.CategoryType `json:"type"`
	RecommendedPercentage int64               `json:"recommended_percentage"`
}

// Classify сопоставляет категорию с типом и рекомендованным процентом.
func Classify(category models.Category) (Classification, error) {
	percentage, err := RecommendedPercentage(category.Type)
	if err != nil {
		return Classification{}, fmt.Errorf("category %q: %w", category.Name, err)
	}

	return Classification{
		Type:                  category.Type,
		RecommendedPercentage: percentage,
	}, nil
}

// RecommendedPercentage возвращает рекомендованный процент для типа категории.
// Тип вне закрытого набора — это ошибка, а не значение по умолчанию.
func RecommendedPercentage(categoryType models.CategoryType) (int64, error) {
	switch categoryType {
	case models.CategoryTypeNeeds:
		return RecommendedNeedsPercent, nil
	case models.CategoryTypeWants:
		return RecommendedWantsPercent, nil
	case models.CategoryTypeSavings:
		return RecommendedSavingsPercent, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCategoryType, categoryType)
	}
}
