package service

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/lib/pq"
	"github.com/smallbiznis/storefront/internal/clock"
	"github.com/smallbiznis/storefront/internal/config"
	"github.com/smallbiznis/storefront/internal/observability/logger"
	"github.com/smallbiznis/storefront/internal/observability/metrics"
	"github.com/smallbiznis/storefront/internal/observability/tracing"
	"github.com/smallbiznis/storefront/internal/product/domain"
	refdomain "github.com/smallbiznis/storefront/internal/reference/domain"
	"github.com/smallbiznis/storefront/pkg/db"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Repo    domain.Repository
	RefRepo refdomain.Repository
	Catalog *config.CatalogConfigHolder
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	repo    domain.Repository
	refRepo refdomain.Repository
	catalog *config.CatalogConfigHolder
	metrics *metrics.Metrics
}

func New(p Params) domain.Service {
	clk := p.Clock
	if clk == nil {
		clk = clock.New()
	}
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("product.service"),
		genID:   p.GenID,
		clock:   clk,
		repo:    p.Repo,
		refRepo: p.RefRepo,
		catalog: p.Catalog,
		metrics: p.Metrics,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.CreateResponse, error) {
	ctx, span := otel.Tracer("storefront/product").Start(ctx, "product.create")
	defer span.End()

	in, err := parseIntake(req, s.catalog.Get().PlaceholderImage)
	if err != nil {
		return nil, s.reject(ctx, err)
	}

	var subcategory *string
	if in.subcategoryID != nil {
		sub, err := s.refRepo.FindSubcategoryByID(ctx, s.db, *in.subcategoryID)
		if err != nil {
			return nil, s.fail(ctx, span, &domain.PersistenceError{Op: "find subcategory", Err: err})
		}
		if sub == nil {
			return nil, s.reject(ctx, domain.ErrSubcategoryNotFound)
		}
		if sub.CategoryID != in.categoryID {
			return nil, s.reject(ctx, domain.ErrSubcategoryMismatch)
		}
		subcategory = &sub.Slug
	}

	var groups []sizeGroup
	if in.sizeType != domain.SizeTypeNone {
		groups, in.price, err = normalizeGroups(in.sizeType, in.rawGroups)
		if err != nil {
			return nil, s.reject(ctx, err)
		}
	}

	now := s.clock.Now()
	product := &domain.Product{
		ID:          s.genID.Generate().Int64(),
		Name:        in.name,
		Price:       in.price,
		ImageURL:    in.imageURL,
		Images:      pq.StringArray(in.images),
		Description: in.description,
		CategoryID:  in.categoryID,
		Subcategory: subcategory,
		BrandID:     in.brandID,
		ColorID:     in.colorID,
		Gender:      in.gender,
		SizeType:    in.sizeType,
		Premium:     in.premium,
		Available:   true,
		WidthCm:     in.widthCm,
		HeightCm:    in.heightCm,
		DepthCm:     in.depthCm,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	items, sizeIDs := s.buildItems(product, groups)

	span.SetAttributes(tracing.SafeAttributes(
		attribute.String("product.size_type", string(in.sizeType)),
		attribute.Int("product.items", len(items)),
	)...)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, product); err != nil {
			return &domain.PersistenceError{Op: "create product", Err: err}
		}
		if err := s.repo.CreateItems(ctx, tx, items); err != nil {
			return &domain.PersistenceError{Op: "create product items", Err: err}
		}
		switch in.sizeType {
		case domain.SizeTypeShoe:
			if err := s.repo.LinkShoeSizes(ctx, tx, product.ID, sizeIDs); err != nil {
				return &domain.PersistenceError{Op: "link shoe sizes", Err: err}
			}
		case domain.SizeTypeCloth:
			if err := s.repo.LinkClothSizes(ctx, tx, product.ID, sizeIDs); err != nil {
				return &domain.PersistenceError{Op: "link cloth sizes", Err: err}
			}
		}
		return nil
	})
	if err != nil {
		if !domain.IsPersistence(err) {
			err = &domain.PersistenceError{Op: "commit", Err: err}
		}
		return nil, s.fail(ctx, span, err)
	}

	s.metrics.RecordProductCreated(ctx, string(in.sizeType), len(items))
	logger.WithContext(ctx, s.log).Info("product created",
		zap.Int64("product_id", product.ID),
		zap.String("size_type", string(in.sizeType)),
		zap.Int("items", len(items)),
		zap.Int64("price", product.Price),
	)

	return &domain.CreateResponse{
		ID:    snowflake.ID(product.ID).String(),
		Name:  product.Name,
		Price: product.Price,
	}, nil
}

// buildItems expands groups into one variant per (group, size id) and
// collects the distinct size ids for membership links.
func (s *Service) buildItems(product *domain.Product, groups []sizeGroup) ([]*domain.ProductItem, []int64) {
	var (
		items   []*domain.ProductItem
		sizeIDs []int64
	)
	seen := make(map[int64]struct{})
	for _, group := range groups {
		for _, id := range group.sizeIDs {
			sizeID := id
			item := &domain.ProductItem{
				ID:        s.genID.Generate().Int64(),
				ProductID: product.ID,
				Price:     group.price,
				CreatedAt: product.CreatedAt,
			}
			if product.SizeType == domain.SizeTypeShoe {
				item.ShoeSizeID = &sizeID
			} else {
				item.ClothSizeID = &sizeID
			}
			items = append(items, item)

			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				sizeIDs = append(sizeIDs, id)
			}
		}
	}
	return items, sizeIDs
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.ListItem, error) {
	cfg := s.catalog.Get()
	take := cfg.ListDefaultTake
	if req.Take != nil {
		take = *req.Take
	}
	if take < 1 {
		take = 1
	}
	if take > cfg.ListMaxTake {
		take = cfg.ListMaxTake
	}

	rows, err := s.repo.ListRecent(ctx, s.db, take)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "list products", Err: err}
	}

	resp := make([]domain.ListItem, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, toListItem(row))
	}
	return resp, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	productID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || productID <= 0 {
		return domain.ErrInvalidID
	}

	deleted, err := s.repo.SoftDelete(ctx, s.db, productID.Int64())
	if err != nil {
		return &domain.PersistenceError{Op: "delete product", Err: err}
	}
	if !deleted {
		return domain.ErrNotFound
	}

	s.metrics.RecordProductDeleted(ctx)
	logger.WithContext(ctx, s.log).Info("product deleted", zap.Int64("product_id", productID.Int64()))
	return nil
}

func (s *Service) reject(ctx context.Context, err error) error {
	var (
		reason string
		vErr   *domain.ValidationError
	)
	if errors.As(err, &vErr) {
		reason = vErr.Code
	}
	s.metrics.RecordProductRejected(ctx, reason)
	logger.WithContext(ctx, s.log).Info("product rejected", zap.String("reason", reason))
	return err
}

func (s *Service) fail(ctx context.Context, span trace.Span, err error) error {
	span.RecordError(tracing.SafeError(err))
	span.SetStatus(codes.Error, "persistence failure")
	reason := failureReason(err)
	s.metrics.RecordProductRejected(ctx, reason)
	logger.WithContext(ctx, s.log).Error("product persistence failed", zap.String("reason", reason), zap.Error(err))
	return err
}

// failureReason tells a dangling brand, color or size id apart from other
// storage failures. Both still surface as persistence errors.
func failureReason(err error) string {
	if db.IsForeignKeyErr(err) {
		return "missing_reference"
	}
	return "persistence"
}

func toListItem(row domain.ListRow) domain.ListItem {
	return domain.ListItem{
		ID:          snowflake.ID(row.ID).String(),
		Name:        row.Name,
		Price:       row.Price,
		ImageURL:    row.ImageURL,
		Available:   row.Available,
		Premium:     row.Premium,
		Gender:      row.Gender,
		Subcategory: row.Subcategory,
		Category:    namedRef(row.CategoryName),
		Brand:       namedRef(row.BrandName),
		Color:       namedRef(row.ColorName),
	}
}

func namedRef(name *string) *domain.NamedRef {
	if name == nil {
		return nil
	}
	return &domain.NamedRef{Name: *name}
}
