package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/lvieira/catalogo-api/internal/models"
)

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Create(prod).Error
}

// CreateProductLinks inserts one join row per category id, as given. Ids are
// not deduplicated and category existence is not checked here.
func (r *GormRepo) CreateProductLinks(ctx context.Context, productID uint, categoryIDs []uint) error {
	if len(categoryIDs) == 0 {
		return nil
	}
	links := make([]models.CategoryProduct, 0, len(categoryIDs))
	for _, categoryID := range categoryIDs {
		links = append(links, models.CategoryProduct{
			CategoryID: categoryID,
			ProductID:  productID,
		})
	}
	return r.DB.WithContext(ctx).Create(&links).Error
}

func (r *GormRepo) GetProducts(ctx context.Context) ([]models.Product, error) {
	var items []models.Product
	if err := r.DB.WithContext(ctx).Preload("Categories").Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).Preload("Categories").First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindProduct loads scalar fields only, no association preload.
func (r *GormRepo) FindProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) SaveProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Omit("Categories").Save(prod).Error
}

// DeleteProductLinks removes every join row incident to the product. Deleting
// nothing is not an error, so a product with no links passes through.
func (r *GormRepo) DeleteProductLinks(ctx context.Context, productID uint) error {
	return r.DB.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&models.CategoryProduct{}).Error
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) CountCategories(ctx context.Context, ids []uint) (int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Category{}).Where("id IN ?", ids).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
