package service

import (
	"context"

	"github.com/alimikegami/point-of-sales/catalog-service/internal/domain"
	"github.com/alimikegami/point-of-sales/catalog-service/internal/dto"
)

type ProductService interface {
	CreateProduct(ctx context.Context, principal dto.Principal, data dto.ProductRequest) (product domain.Product, err error)
}
