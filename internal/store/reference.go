package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/greenspoon/backend/internal/apperr"
	"github.com/greenspoon/backend/internal/model"
)

// ReferenceStore owns the static category/label collections.
type ReferenceStore struct {
	db *gorm.DB
}

func NewReferenceStore(db *gorm.DB) *ReferenceStore {
	return &ReferenceStore{db: db}
}

func (s *ReferenceStore) Categories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := s.db.WithContext(ctx).Find(&categories).Error; err != nil {
		return nil, apperr.Internal("failed to load categories", err)
	}
	return categories, nil
}

func (s *ReferenceStore) Labels(ctx context.Context) ([]model.Label, error) {
	var labels []model.Label
	if err := s.db.WithContext(ctx).Find(&labels).Error; err != nil {
		return nil, apperr.Internal("failed to load labels", err)
	}
	return labels, nil
}

func (s *ReferenceStore) CategoryExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Category{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, apperr.Internal("failed to check category", err)
	}
	return count > 0, nil
}

// Seed fills the reference collections if they are empty. Provider label
// names must match Edamam's exactly for enrichment mapping to resolve them.
func (s *ReferenceStore) Seed(ctx context.Context) error {
	db := s.db.WithContext(ctx)

	var categoryCount int64
	if err := db.Model(&model.Category{}).Count(&categoryCount).Error; err != nil {
		return apperr.Internal("failed to count categories", err)
	}
	if categoryCount == 0 {
		if err := db.Create(&seedCategories).Error; err != nil {
			return apperr.Internal("failed to seed categories", err)
		}
	}

	var labelCount int64
	if err := db.Model(&model.Label{}).Count(&labelCount).Error; err != nil {
		return apperr.Internal("failed to count labels", err)
	}
	if labelCount == 0 {
		if err := db.Create(&seedLabels).Error; err != nil {
			return apperr.Internal("failed to seed labels", err)
		}
	}

	return nil
}

var seedCategories = []model.Category{
	{Name: "breakfast"},
	{Name: "soup"},
	{Name: "main course"},
	{Name: "side dish"},
	{Name: "salad"},
	{Name: "dessert"},
	{Name: "snack"},
	{Name: "beverage"},
}

var seedLabels = []model.Label{
	{Name: "Balanced", Type: model.LabelTypeDiet, Description: "Protein/Fat/Carb values in 15/35/50 ratio"},
	{Name: "High-Fiber", Type: model.LabelTypeDiet, Description: "More than 5g fiber per serving"},
	{Name: "High-Protein", Type: model.LabelTypeDiet, Description: "More than 50% of total calories from proteins"},
	{Name: "Low-Carb", Type: model.LabelTypeDiet, Description: "Less than 20% of total calories from carbs"},
	{Name: "Low-Fat", Type: model.LabelTypeDiet, Description: "Less than 15% of total calories from fat"},
	{Name: "Low-Sodium", Type: model.LabelTypeDiet, Description: "Less than 140mg Na per serving"},
	{Name: "Vegan", Type: model.LabelTypeHealth, Description: "No meat, poultry, fish, dairy, eggs or honey"},
	{Name: "Vegetarian", Type: model.LabelTypeHealth, Description: "No meat, poultry or fish"},
	{Name: "Gluten-Free", Type: model.LabelTypeHealth, Description: "No ingredients containing gluten"},
	{Name: "Dairy-Free", Type: model.LabelTypeHealth, Description: "No dairy; no lactose"},
	{Name: "Egg-Free", Type: model.LabelTypeHealth, Description: "No eggs or products containing eggs"},
	{Name: "Peanut-Free", Type: model.LabelTypeHealth, Description: "No peanuts or products containing peanuts"},
	{Name: "Tree-Nut-Free", Type: model.LabelTypeHealth, Description: "No tree nuts or products containing tree nuts"},
	{Name: "Alcohol-Free", Type: model.LabelTypeHealth, Description: "No alcohol used or contained"},
	{Name: "Sugar-Conscious", Type: model.LabelTypeHealth, Description: "Less than 4g of sugar per serving"},
}
