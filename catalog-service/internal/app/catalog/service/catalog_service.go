package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"storecatalog/catalog-service/internal/app/catalog/entity"
	"storecatalog/catalog-service/internal/app/catalog/repository"
	"storecatalog/catalog-service/internal/app/catalog/util"
	"storecatalog/pkg/logger"
	"storecatalog/pkg/metrics"
)

// Client-facing failure messages, one per resource and operation.
const (
	MsgFetchCategoriesFailed = "Error fetching categories"
	MsgFetchCategoryFailed   = "Error fetching category"
	MsgCreateCategoryFailed  = "Error creating category"
	MsgUpdateCategoryFailed  = "Error updating category"
	MsgDeleteCategoryFailed  = "Error deleting category"

	MsgFetchProductsFailed = "Error fetching products"
	MsgFetchProductFailed  = "Error fetching product"
	MsgCreateProductFailed = "Error creating product"
	MsgUpdateProductFailed = "Error updating product"
	MsgDeleteProductFailed = "Error deleting product"

	MsgCategoryNotFound    = "Category not found"
	MsgProductNotFound     = "Product not found"
	MsgCategoryHasProducts = "Cannot delete category with associated products"
	MsgCategoryNameTaken   = "Category name already exists"
)

// CatalogService runs the five standard operations for categories and
// products: validate, persist, publish a change event.
type CatalogService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	publisher    util.MessagePublisher
	validator    *Validator
}

func NewCatalogService(
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	publisher util.MessagePublisher,
) *CatalogService {
	return &CatalogService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		publisher:    publisher,
		validator:    NewValidator(),
	}
}

// === CATEGORIES ===

func (s *CatalogService) GetAllCategories(ctx context.Context) ([]entity.Category, error) {
	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, persistenceError(MsgFetchCategoriesFailed, err)
	}
	return categories, nil
}

func (s *CatalogService) GetCategory(ctx context.Context, id int64) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, categoryError(err, MsgFetchCategoryFailed)
	}
	return category, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, req *entity.CreateCategoryRequest) (*entity.Category, error) {
	in, err := s.validator.ValidateCreateCategory(req)
	if err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.Create(ctx, in)
	if err != nil {
		return nil, categoryError(err, MsgCreateCategoryFailed)
	}

	metrics.RecordMutation(entity.ResourceCategory, "create")
	s.publish(ctx, entity.NewCatalogEvent(entity.EventCategoryCreated, entity.ResourceCategory, category.ID, category))
	return category, nil
}

// UpdateCategory renames a category. The patch must carry a non-blank name.
func (s *CatalogService) UpdateCategory(ctx context.Context, id int64, patch entity.Patch) (*entity.Category, error) {
	columns, err := s.validator.ValidateCategoryUpdate(patch)
	if err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.Update(ctx, id, columns)
	if err != nil {
		if errors.Is(err, repository.ErrNoFieldsToUpdate) {
			return nil, validationError(msgCategoryNameRequired)
		}
		return nil, categoryError(err, MsgUpdateCategoryFailed)
	}

	metrics.RecordMutation(entity.ResourceCategory, "update")
	s.publish(ctx, entity.NewCatalogEvent(entity.EventCategoryUpdated, entity.ResourceCategory, category.ID, category))
	return category, nil
}

// DeleteCategory removes a category unless products still reference it.
func (s *CatalogService) DeleteCategory(ctx context.Context, id int64) error {
	if _, err := s.categoryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCategoryHasProducts) {
			metrics.CatalogDeleteBlocked.Inc()
		}
		return categoryError(err, MsgDeleteCategoryFailed)
	}

	metrics.RecordMutation(entity.ResourceCategory, "delete")
	s.publish(ctx, entity.NewCatalogEvent(entity.EventCategoryDeleted, entity.ResourceCategory, id, nil))
	return nil
}

// === PRODUCTS ===

func (s *CatalogService) GetAllProducts(ctx context.Context) ([]entity.Product, error) {
	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		return nil, persistenceError(MsgFetchProductsFailed, err)
	}
	return products, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, productError(err, MsgFetchProductFailed)
	}
	return product, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error) {
	in, err := s.validator.ValidateCreateProduct(req)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.Create(ctx, in)
	if err != nil {
		return nil, productError(err, MsgCreateProductFailed)
	}

	metrics.RecordMutation(entity.ResourceProduct, "create")
	s.publish(ctx, entity.NewCatalogEvent(entity.EventProductCreated, entity.ResourceProduct, product.ID, product))
	return product, nil
}

// UpdateProduct applies a partial update. Only the supplied fields change.
func (s *CatalogService) UpdateProduct(ctx context.Context, id int64, patch entity.Patch) (*entity.Product, error) {
	columns, err := s.validator.ValidateProductUpdate(patch)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.Update(ctx, id, columns)
	if err != nil {
		if errors.Is(err, repository.ErrNoFieldsToUpdate) {
			return nil, validationError(msgNoFieldsToUpdate)
		}
		return nil, productError(err, MsgUpdateProductFailed)
	}

	metrics.RecordMutation(entity.ResourceProduct, "update")
	s.publish(ctx, entity.NewCatalogEvent(entity.EventProductUpdated, entity.ResourceProduct, product.ID, product))
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	if _, err := s.productRepo.Delete(ctx, id); err != nil {
		return productError(err, MsgDeleteProductFailed)
	}

	metrics.RecordMutation(entity.ResourceProduct, "delete")
	s.publish(ctx, entity.NewCatalogEvent(entity.EventProductDeleted, entity.ResourceProduct, id, nil))
	return nil
}

// === HELPERS ===

func categoryError(err error, fallback string) error {
	switch {
	case errors.Is(err, repository.ErrCategoryNotFound):
		return notFoundError(MsgCategoryNotFound)
	case errors.Is(err, repository.ErrCategoryHasProducts):
		return conflictError(MsgCategoryHasProducts, err)
	case errors.Is(err, repository.ErrCategoryAlreadyExists):
		return conflictError(MsgCategoryNameTaken, err)
	}
	return persistenceError(fallback, err)
}

func productError(err error, fallback string) error {
	switch {
	case errors.Is(err, repository.ErrProductNotFound):
		return notFoundError(MsgProductNotFound)
	case errors.Is(err, repository.ErrUnknownCategory):
		return validationError(MsgCategoryNotFound)
	}
	return persistenceError(fallback, err)
}

// publish sends a change event. The write already happened, so a failure is
// logged and swallowed.
func (s *CatalogService) publish(ctx context.Context, event entity.CatalogEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Str("event_type", event.EventType).Msg("Failed to marshal catalog event")
		return
	}

	key := fmt.Sprintf("%s:%d", event.Resource, event.ResourceID)
	if err := s.publisher.PublishMessage(ctx, key, data); err != nil {
		logger.Warn().
			Err(err).
			Str("event_type", event.EventType).
			Int64("resource_id", event.ResourceID).
			Msg("Failed to publish catalog event")
	}
}
