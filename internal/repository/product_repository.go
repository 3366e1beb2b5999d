package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/muna8646/airtisan/internal/domain"
	pkgdto "github.com/muna8646/airtisan/pkg/dto"
	"github.com/muna8646/airtisan/pkg/errs"
	"github.com/rs/zerolog/log"
)

const productColumns = "id, title, description, price, category, seller_id, stock, created_at"

type ProductRepositoryImpl struct {
	db *sqlx.DB
	q  sqlx.ExtContext
}

func CreateNewProductRepository(db *sqlx.DB) ProductRepository {
	return &ProductRepositoryImpl{db: db, q: db}
}

func (r *ProductRepositoryImpl) HandleTrx(ctx context.Context, fn func(ctx context.Context, repo ProductRepository) error) error {
	return runInTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return fn(ctx, &ProductRepositoryImpl{db: r.db, q: tx})
	})
}

func (r *ProductRepositoryImpl) AddProduct(ctx context.Context, data domain.Product) (err error) {
	if data.CreatedAt == 0 {
		data.CreatedAt = time.Now().UnixMilli()
	}

	_, err = sqlx.NamedExecContext(ctx, r.q, "INSERT INTO products(id, title, description, price, category, seller_id, stock, created_at) VALUES (:id, :title, :description, :price, :category, :seller_id, :stock, :created_at)", data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddProduct").Msg("")
		return errs.ErrInternalServer
	}

	return nil
}

func (r *ProductRepositoryImpl) AddProductImages(ctx context.Context, images []domain.ProductImage) (err error) {
	if len(images) == 0 {
		return nil
	}

	timestamp := time.Now().UnixMilli()
	for idx := range images {
		if images[idx].CreatedAt == 0 {
			images[idx].CreatedAt = timestamp
		}
	}

	_, err = sqlx.NamedExecContext(ctx, r.q, "INSERT INTO product_images(id, product_id, url, created_at) VALUES (:id, :product_id, :url, :created_at)", images)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddProductImages").Msg("")
		return errs.ErrInternalServer
	}

	return nil
}

func (r *ProductRepositoryImpl) GetProductByID(ctx context.Context, id string) (data domain.Product, err error) {
	err = sqlx.GetContext(ctx, r.q, &data, "SELECT "+productColumns+" FROM products WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return data, errs.ErrProductNotFound
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProductByID").Msg("")
		return data, errs.ErrInternalServer
	}

	products := []domain.Product{data}
	if err = r.attachImages(ctx, products); err != nil {
		return data, err
	}

	return products[0], nil
}

func (r *ProductRepositoryImpl) GetProducts(ctx context.Context, filter pkgdto.Filter) (data []domain.Product, err error) {
	var conditions []string
	args := make(map[string]interface{})

	if filter.Category != "" {
		conditions = append(conditions, "category = :category")
		args["category"] = filter.Category
	}

	if filter.SellerID != "" {
		conditions = append(conditions, "seller_id = :seller_id")
		args["seller_id"] = filter.SellerID
	}

	query := "SELECT " + productColumns + " FROM products"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC, id"

	if filter.Limit > 0 && filter.Page > 0 {
		query += " LIMIT :limit OFFSET :offset"
		args["limit"] = filter.Limit
		args["offset"] = (filter.Page - 1) * filter.Limit
	}

	boundQuery, boundArgs, err := sqlx.Named(query, args)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProducts").Msg("")
		return nil, errs.ErrInternalServer
	}

	data = []domain.Product{}
	err = sqlx.SelectContext(ctx, r.q, &data, r.q.Rebind(boundQuery), boundArgs...)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProducts").Msg("")
		return nil, errs.ErrInternalServer
	}

	if err = r.attachImages(ctx, data); err != nil {
		return nil, err
	}

	return data, nil
}

func (r *ProductRepositoryImpl) attachImages(ctx context.Context, products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}

	var images []domain.ProductImage
	err := sqlx.SelectContext(ctx, r.q, &images, "SELECT id, product_id, url, created_at FROM product_images WHERE product_id = ANY($1) ORDER BY created_at, id", pq.Array(ids))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "attachImages").Msg("")
		return errs.ErrInternalServer
	}

	byProduct := make(map[string][]domain.ProductImage, len(products))
	for _, img := range images {
		byProduct[img.ProductID] = append(byProduct[img.ProductID], img)
	}

	for i := range products {
		products[i].Images = byProduct[products[i].ID]
		if products[i].Images == nil {
			products[i].Images = []domain.ProductImage{}
		}
	}

	return nil
}

func (r *ProductRepositoryImpl) UpdateProduct(ctx context.Context, data domain.Product) (err error) {
	result, err := sqlx.NamedExecContext(ctx, r.q, "UPDATE products SET title=:title, description=:description, price=:price, category=:category, stock=:stock WHERE id=:id", data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateProduct").Msg("")
		return errs.ErrInternalServer
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateProduct").Msg("")
		return errs.ErrInternalServer
	}

	if affected == 0 {
		return errs.ErrProductNotFound
	}

	return nil
}

func (r *ProductRepositoryImpl) DeleteProductImages(ctx context.Context, productID string) (err error) {
	_, err = r.q.ExecContext(ctx, "DELETE FROM product_images WHERE product_id = $1", productID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteProductImages").Msg("")
		return errs.ErrInternalServer
	}

	return nil
}

func (r *ProductRepositoryImpl) DeleteProduct(ctx context.Context, id string) (err error) {
	result, err := r.q.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteProduct").Msg("")
		return errs.ErrInternalServer
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteProduct").Msg("")
		return errs.ErrInternalServer
	}

	if affected == 0 {
		return errs.ErrProductNotFound
	}

	return nil
}
