package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/lvieira/catalogo-api/internal/logging"
	"github.com/lvieira/catalogo-api/internal/models"
	"github.com/lvieira/catalogo-api/internal/repo"
	"github.com/lvieira/catalogo-api/internal/transport"
)

type CatalogService struct {
	Repo *repo.GormRepo
}

// CreateProduct creates the product row and one join row per supplied
// category id. The ids are taken as given: no deduplication and no existence
// check, the store's referential integrity is the only guard.
func (s *CatalogService) CreateProduct(ctx context.Context, req transport.ProductRequest) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.create_product")

	prod := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Amount:      req.Amount,
		Price:       req.Price,
	}
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		if err := tx.CreateProduct(ctx, &prod); err != nil {
			return err
		}
		return tx.CreateProductLinks(ctx, prod.ID, req.Categories)
	})
	if err != nil {
		l.Error("create_product_error", "reason", "cannot create product", "error", err)
		return nil, err
	}

	return &prod, nil
}

func (s *CatalogService) GetProducts(ctx context.Context) ([]models.Product, error) {
	return s.Repo.GetProducts(ctx)
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	prod, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return prod, nil
}

// UpdateProduct validates the supplied category ids, updates the scalar
// fields and replaces the association set (disconnect everything, connect the
// validated ids). Disconnecting an empty prior link set is fine.
func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, req transport.ProductRequest) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.update_product", "product_id", id)

	if len(req.Categories) > 0 {
		found, err := s.Repo.CountCategories(ctx, req.Categories)
		if err != nil {
			l.Error("update_product_error", "reason", "cannot count categories", "error", err)
			return nil, err
		}
		if found != int64(len(req.Categories)) {
			l.Warn("update_product_error", "reason", "unknown category id in request")
			return nil, ErrCategoriesMissing
		}
	}

	var prod *models.Product
	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		var err error
		prod, err = tx.FindProduct(ctx, id)
		if err != nil {
			return err
		}

		prod.Name = req.Name
		prod.Description = req.Description
		prod.Amount = req.Amount
		prod.Price = req.Price

		if err := tx.SaveProduct(ctx, prod); err != nil {
			return err
		}

		// disconnect everything first; an empty prior link set is fine
		if err := tx.DeleteProductLinks(ctx, id); err != nil {
			return err
		}
		return tx.CreateProductLinks(ctx, id, req.Categories)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			l.Warn("update_product_error", "reason", "relation violation", "error", err)
			return nil, ErrRelationViolation
		}
		l.Error("update_product_error", "reason", "cannot update product", "error", err)
		return nil, err
	}

	return prod, nil
}

// DeleteProduct removes every incident join row before the product itself,
// in that order, to satisfy referential integrity.
func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	l := logging.FromContext(ctx).With("svc", "catalog.delete_product", "product_id", id)

	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		if err := tx.DeleteProductLinks(ctx, id); err != nil {
			return err
		}
		return tx.DeleteProduct(ctx, id)
	})
	if err != nil {
		l.Error("delete_product_error", "reason", "cannot delete product", "error", err)
		return err
	}
	return nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, req transport.CategoryRequest) (*models.Category, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.create_category")

	cat := models.Category{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.Repo.CreateCategory(ctx, &cat); err != nil {
		l.Error("create_category_error", "reason", "cannot create category", "error", err)
		return nil, err
	}
	return &cat, nil
}

func (s *CatalogService) GetCategories(ctx context.Context) ([]models.Category, error) {
	return s.Repo.GetCategories(ctx)
}

func (s *CatalogService) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	cat, err := s.Repo.GetCategory(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return cat, nil
}

// UpdateCategory touches scalar fields only, associations stay as they are.
func (s *CatalogService) UpdateCategory(ctx context.Context, id uint, req transport.CategoryRequest) (*models.Category, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.update_category", "category_id", id)

	cat, err := s.Repo.FindCategory(ctx, id)
	if err != nil {
		l.Error("update_category_error", "reason", "cannot load category", "error", err)
		return nil, err
	}

	cat.Name = req.Name
	cat.Description = req.Description

	if err := s.Repo.SaveCategory(ctx, cat); err != nil {
		l.Error("update_category_error", "reason", "cannot save category", "error", err)
		return nil, err
	}
	return cat, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	l := logging.FromContext(ctx).With("svc", "catalog.delete_category", "category_id", id)

	err := s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		if err := tx.DeleteCategoryLinks(ctx, id); err != nil {
			return err
		}
		return tx.DeleteCategory(ctx, id)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			l.Warn("delete_category_error", "reason", "category still linked to products", "error", err)
			return ErrCategoryInUse
		}
		l.Error("delete_category_error", "reason", "cannot delete category", "error", err)
		return err
	}
	return nil
}
