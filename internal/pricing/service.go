package pricing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/solbazaar/solbazaar-backend/pkg/db/models"
	pkgerrors "github.com/solbazaar/solbazaar-backend/pkg/errors"
	"github.com/solbazaar/solbazaar-backend/pkg/logger"
	"github.com/solbazaar/solbazaar-backend/pkg/metrics"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

const recomputeBatchSize = 200

// TriggerConfigChange labels recompute sweeps caused by a config replacement.
const TriggerConfigChange = "config-change"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo    Repository
	tx      txRunner
	metrics *metrics.RecomputeMetrics
	logg    *logger.Logger
}

// NewService builds the pricing service with the required dependencies.
func NewService(repo Repository, tx txRunner, recompute *metrics.RecomputeMetrics, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("pricing repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:    repo,
		tx:      tx,
		metrics: recompute,
		logg:    logg,
	}, nil
}

func (s *service) GetConfig(ctx context.Context) (*ConfigView, error) {
	cfg, err := s.repo.FindActiveConfig(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "discount configuration not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load discount configuration")
	}
	return configView(cfg), nil
}

func (s *service) ReplaceConfig(ctx context.Context, input ReplaceConfigInput) (*ConfigView, *RecomputeResult, error) {
	next, err := buildConfig(input)
	if err != nil {
		return nil, nil, err
	}

	current, err := s.repo.FindActiveConfig(ctx)
	switch {
	case err == nil:
		next.Version = current.Version + 1
	case errors.Is(err, gorm.ErrRecordNotFound):
		next.Version = 1
	default:
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load discount configuration")
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.DeleteAllConfigs(ctx); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear discount configuration")
		}
		if err := repo.CreateConfig(ctx, next); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store discount configuration")
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	// The sweep runs outside the transaction. A failure here leaves stale
	// cached prices, not a broken config, so it is reported and logged but
	// does not roll back the replacement.
	result, recomputeErr := s.RecomputeAll(ctx, TriggerConfigChange)
	if recomputeErr != nil {
		s.logg.Error(ctx, "bulk price recompute after config change", recomputeErr)
	}

	return configView(next), result, nil
}

func (s *service) Quote(ctx context.Context, input QuoteInput) (*QuoteView, error) {
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}

	cfg, err := s.loadConfigOrNil(ctx)
	if err != nil {
		return nil, err
	}

	pct := decimal.Zero
	if cfg != nil {
		pct, err = DiscountPercent(cfg, input.Price, input.HasWarranty)
		if err != nil {
			return nil, err
		}
	}

	return &QuoteView{
		Price:           input.Price,
		DiscountPercent: pct,
		DiscountedPrice: DiscountedPrice(input.Price, pct),
	}, nil
}

func (s *service) PriceListing(ctx context.Context, price decimal.Decimal, hasWarranty bool) (decimal.Decimal, error) {
	cfg, err := s.loadConfigOrNil(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	if cfg == nil {
		return price.Round(2), nil
	}
	return PriceFor(cfg, price, hasWarranty)
}

func (s *service) RecomputeAll(ctx context.Context, trigger string) (*RecomputeResult, error) {
	started := time.Now()
	defer func() {
		s.metrics.ObserveDuration(trigger, time.Since(started))
	}()

	cfg, err := s.loadConfigOrNil(ctx)
	if err != nil {
		return nil, err
	}
	if cfg != nil {
		if err := ValidateConfig(cfg); err != nil {
			return nil, err
		}
	}

	result := &RecomputeResult{}
	if cfg != nil {
		result.ConfigVersion = cfg.Version
	}

	total, err := s.repo.CountProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count products")
	}
	result.Total = int(total)

	var sweepErr error
	afterID := uuid.Nil
	for {
		batch, err := s.repo.ListProductsAfter(ctx, afterID, recomputeBatchSize)
		if err != nil {
			return result, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products for recompute")
		}
		if len(batch) == 0 {
			break
		}

		for i := range batch {
			product := batch[i]
			discounted := product.Price.Round(2)
			if cfg != nil {
				pct, err := DiscountPercent(cfg, product.Price, product.HasWarranty())
				if err != nil {
					return result, err
				}
				discounted = DiscountedPrice(product.Price, pct)
			}

			ok, err := s.repo.UpdateDiscountedPriceIfUnchanged(ctx, product.ID, product.Price, discounted)
			if err != nil {
				result.Failed++
				sweepErr = multierr.Append(sweepErr, fmt.Errorf("product %s: %w", product.ID, err))
				continue
			}
			if !ok {
				// Base price changed underneath the sweep; the writer that
				// changed it recomputed the cached price itself.
				result.Failed++
				continue
			}
			result.Updated++
		}

		afterID = batch[len(batch)-1].ID
	}

	s.metrics.AddUpdated(trigger, result.Updated)
	s.metrics.AddFailed(trigger, result.Failed)

	if sweepErr != nil {
		return result, pkgerrors.Wrap(pkgerrors.CodeDependency, sweepErr, "recompute sweep completed with failures")
	}
	return result, nil
}

func (s *service) loadConfigOrNil(ctx context.Context) (*models.DiscountConfig, error) {
	cfg, err := s.repo.FindActiveConfig(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load discount configuration")
	}
	return cfg, nil
}

func buildConfig(input ReplaceConfigInput) (*models.DiscountConfig, error) {
	cfg := &models.DiscountConfig{
		ID:                      uuid.New(),
		WarrantyDiscountPercent: input.WarrantyDiscountPercent,
	}

	for i, tier := range input.Tiers {
		min, max, err := ParseTierRange(tier.Range)
		if err != nil {
			return nil, err
		}
		cfg.Tiers = append(cfg.Tiers, models.DiscountTier{
			ID:              uuid.New(),
			ConfigID:        cfg.ID,
			Position:        i,
			RangeMin:        min,
			RangeMax:        max,
			DiscountPercent: tier.DiscountPercent,
		})
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func configView(cfg *models.DiscountConfig) *ConfigView {
	view := &ConfigView{
		ID:                      cfg.ID,
		Version:                 cfg.Version,
		WarrantyDiscountPercent: cfg.WarrantyDiscountPercent,
		UpdatedAt:               cfg.UpdatedAt,
	}
	for _, tier := range cfg.Tiers {
		view.Tiers = append(view.Tiers, TierView{
			Range:           FormatTierRange(tier.RangeMin, tier.RangeMax),
			DiscountPercent: tier.DiscountPercent,
		})
	}
	return view
}
