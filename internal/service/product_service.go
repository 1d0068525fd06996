package service

import (
	"errors"

	"go-toko-api/internal/model"
	"go-toko-api/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductService interface {
	CreateProduct(actor *model.User, req *CreateProductRequest) (*model.Product, error)
	UpdateProduct(actor *model.User, productID uuid.UUID, req *UpdateProductRequest) (*model.Product, error)
	DeleteProduct(actor *model.User, productID uuid.UUID) error
	FindProductByID(productID uuid.UUID) (*model.Product, error)
	ListProducts(search string, page, perPage int) ([]model.Product, int64, error)
}

type CreateProductRequest struct {
	Name  string `json:"name" validate:"required"`
	Merk  string `json:"merk" validate:"required"`
	Harga int64  `json:"harga" validate:"required,gt=0"`
}

type UpdateProductRequest struct {
	Name  *string `json:"name"`
	Merk  *string `json:"merk"`
	Harga *int64  `json:"harga" validate:"omitempty,gt=0"`
}

type productService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

func (s *productService) CreateProduct(actor *model.User, req *CreateProductRequest) (*model.Product, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	product := &model.Product{
		Name:  req.Name,
		Merk:  req.Merk,
		Harga: req.Harga,
	}
	product.CreatedBy = actor.ID.String()
	product.UpdatedBy = actor.ID.String()

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) UpdateProduct(actor *model.User, productID uuid.UUID, req *UpdateProductRequest) (*model.Product, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		return nil, ErrProductNotFound
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Merk != nil {
		product.Merk = *req.Merk
	}
	if req.Harga != nil {
		product.Harga = *req.Harga
	}
	product.UpdatedBy = actor.ID.String()

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) DeleteProduct(actor *model.User, productID uuid.UUID) error {
	if err := s.productRepo.SoftDelete(productID, actor.ID.String()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return nil
}

func (s *productService) FindProductByID(productID uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *productService) ListProducts(search string, page, perPage int) ([]model.Product, int64, error) {
	return s.productRepo.List(search, page, perPage)
}
