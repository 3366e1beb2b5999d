package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/muna8646/airtisan/config"
	"github.com/muna8646/airtisan/internal/domain"
	"github.com/muna8646/airtisan/internal/dto"
	"github.com/muna8646/airtisan/internal/infrastructure/storage"
	"github.com/muna8646/airtisan/internal/repository"
	pkgdto "github.com/muna8646/airtisan/pkg/dto"
	"github.com/muna8646/airtisan/pkg/errs"
	"github.com/muna8646/airtisan/pkg/validator"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
)

type ProductServiceImpl struct {
	repo      repository.ProductRepository
	storage   storage.ImageStorage
	config    *config.Config
	publisher EventPublisher
}

func CreateNewProductService(repo repository.ProductRepository, storage storage.ImageStorage, config *config.Config, publisher EventPublisher) ProductService {
	return &ProductServiceImpl{repo: repo, storage: storage, config: config, publisher: publisher}
}

func (s *ProductServiceImpl) AddProduct(ctx context.Context, req dto.ProductRequest, files []*multipart.FileHeader) (resp dto.CreatedResponse, err error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Category = strings.TrimSpace(req.Category)
	if err = validator.Struct(req); err != nil {
		return
	}

	maxImages := s.config.UploadConfig.MaxProductImages
	if len(req.ImageURLs)+len(files) > maxImages {
		return resp, errs.NewValidationError(errs.FieldError{
			Field:   "images",
			Tag:     "max",
			Message: fmt.Sprintf("images must contain at most %d items", maxImages),
		})
	}

	urls := append([]string{}, req.ImageURLs...)
	var saved []string
	for _, file := range files {
		url, err := s.storage.Save(ctx, file)
		if err != nil {
			s.removeImages(ctx, saved)
			return resp, err
		}
		saved = append(saved, url)
	}
	urls = append(urls, saved...)

	timestamp := time.Now().UnixMilli()
	product := domain.Product{
		ID:          ulid.Make().String(),
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		SellerID:    req.SellerID,
		Stock:       req.Stock,
		CreatedAt:   timestamp,
	}

	images := make([]domain.ProductImage, len(urls))
	for i, url := range urls {
		images[i] = domain.ProductImage{
			ID:        ulid.Make().String(),
			ProductID: product.ID,
			URL:       url,
			CreatedAt: timestamp,
		}
	}

	err = s.repo.HandleTrx(ctx, func(ctx context.Context, repo repository.ProductRepository) error {
		if err := repo.AddProduct(ctx, product); err != nil {
			return err
		}

		return repo.AddProductImages(ctx, images)
	})
	if err != nil {
		s.removeImages(ctx, saved)
		return
	}

	s.publisher.Publish(ctx, dto.EventProductCreated, product.ID, dto.ProductEvent{
		ProductID: product.ID,
		SellerID:  product.SellerID,
		Title:     product.Title,
		Price:     product.Price,
		Stock:     product.Stock,
	})

	resp.ID = product.ID

	return
}

func (s *ProductServiceImpl) GetProducts(ctx context.Context, filter pkgdto.Filter) (resp []dto.ProductResponse, err error) {
	if err = validator.Struct(filter); err != nil {
		return
	}

	products, err := s.repo.GetProducts(ctx, filter)
	if err != nil {
		return
	}

	resp = make([]dto.ProductResponse, 0, len(products))
	for _, product := range products {
		resp = append(resp, productResponse(product))
	}

	return
}

func (s *ProductServiceImpl) GetProductByID(ctx context.Context, id string) (resp dto.ProductResponse, err error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return
	}

	return productResponse(product), nil
}

// UpdateProduct replaces every mutable field. Images are managed on create and
// delete only.
func (s *ProductServiceImpl) UpdateProduct(ctx context.Context, req dto.ProductRequest) (err error) {
	existing, err := s.repo.GetProductByID(ctx, req.ID)
	if err != nil {
		return
	}

	if existing.SellerID != req.SellerID {
		return errs.ErrForbidden
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Category = strings.TrimSpace(req.Category)
	req.ImageURLs = nil
	if err = validator.Struct(req); err != nil {
		return
	}

	product := domain.Product{
		ID:          existing.ID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		SellerID:    existing.SellerID,
		Stock:       req.Stock,
		CreatedAt:   existing.CreatedAt,
	}

	if err = s.repo.UpdateProduct(ctx, product); err != nil {
		return
	}

	s.publisher.Publish(ctx, dto.EventProductUpdated, product.ID, dto.ProductEvent{
		ProductID: product.ID,
		SellerID:  product.SellerID,
		Title:     product.Title,
		Price:     product.Price,
		Stock:     product.Stock,
	})

	return nil
}

func (s *ProductServiceImpl) DeleteProduct(ctx context.Context, id string, sellerID string) (err error) {
	existing, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return
	}

	if existing.SellerID != sellerID {
		return errs.ErrForbidden
	}

	err = s.repo.HandleTrx(ctx, func(ctx context.Context, repo repository.ProductRepository) error {
		if err := repo.DeleteProductImages(ctx, id); err != nil {
			return err
		}

		return repo.DeleteProduct(ctx, id)
	})
	if err != nil {
		return
	}

	urls := make([]string, len(existing.Images))
	for i, img := range existing.Images {
		urls[i] = img.URL
	}
	s.removeImages(ctx, urls)

	s.publisher.Publish(ctx, dto.EventProductDeleted, id, dto.ProductEvent{
		ProductID: id,
		SellerID:  existing.SellerID,
	})

	return nil
}

func (s *ProductServiceImpl) removeImages(ctx context.Context, urls []string) {
	for _, url := range urls {
		if err := s.storage.Remove(ctx, url); err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("component", "removeImages").Str("url", url).Msg("")
		}
	}
}

func productResponse(product domain.Product) dto.ProductResponse {
	images := make([]string, 0, len(product.Images))
	for _, img := range product.Images {
		images = append(images, img.URL)
	}

	return dto.ProductResponse{
		ID:          product.ID,
		Title:       product.Title,
		Description: product.Description,
		Price:       product.Price,
		Category:    product.Category,
		SellerID:    product.SellerID,
		Stock:       product.Stock,
		Images:      images,
		CreatedAt:   product.CreatedAt,
	}
}
