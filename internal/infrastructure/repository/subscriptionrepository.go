package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"subtrack/internal/domain/subscription"
	vo "subtrack/internal/domain/subscription/valueobjects"
	"subtrack/internal/infrastructure/persistence/mappers"
	"subtrack/internal/infrastructure/persistence/models"
	"subtrack/internal/shared/biztime"
	"subtrack/internal/shared/db"
	"subtrack/internal/shared/logger"
)

// allowedSubscriptionSortByFields defines the whitelist of allowed ORDER BY
// fields to prevent SQL injection attacks.
var allowedSubscriptionSortByFields = map[string]bool{
	"id":                true,
	"user_id":           true,
	"name":              true,
	"status":            true,
	"start_date":        true,
	"next_billing_date": true,
	"created_at":        true,
	"updated_at":        true,
}

type SubscriptionRepositoryImpl struct {
	db        *gorm.DB
	txManager *db.TransactionManager
	mapper    mappers.SubscriptionMapper
	logger    logger.Interface
}

func NewSubscriptionRepository(
	gormDB *gorm.DB,
	logger logger.Interface,
) subscription.SubscriptionRepository {
	return &SubscriptionRepositoryImpl{
		db:        gormDB,
		txManager: db.NewTransactionManager(gormDB),
		mapper:    mappers.NewSubscriptionMapper(),
		logger:    logger,
	}
}

func (r *SubscriptionRepositoryImpl) Create(ctx context.Context, entity *subscription.Subscription) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		r.logger.Errorw("failed to map subscription entity to model", "error", err)
		return fmt.Errorf("failed to map subscription entity: %w", err)
	}

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create subscription in database", "error", err)
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	if err := entity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set subscription ID: %w", err)
	}

	r.logger.Infow("subscription created", "id", model.ID, "user_id", model.UserID)
	return nil
}

func (r *SubscriptionRepositoryImpl) CreateMany(ctx context.Context, entities []*subscription.Subscription) error {
	if len(entities) == 0 {
		return nil
	}

	modelList, err := r.mapper.ToModels(entities)
	if err != nil {
		return fmt.Errorf("failed to map subscription batch: %w", err)
	}

	err = r.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := db.GetTxFromContext(txCtx, r.db).Create(&modelList).Error; err != nil {
			return fmt.Errorf("failed to insert subscription batch: %w", err)
		}
		return nil
	})
	if err != nil {
		r.logger.Errorw("failed to create subscription batch", "error", err, "batch_size", len(entities))
		return err
	}

	for i, entity := range entities {
		if err := entity.SetID(modelList[i].ID); err != nil {
			return fmt.Errorf("failed to set subscription ID: %w", err)
		}
	}

	r.logger.Infow("subscription batch created", "batch_size", len(entities))
	return nil
}

func (r *SubscriptionRepositoryImpl) GetByID(ctx context.Context, id uint) (*subscription.Subscription, error) {
	var model models.SubscriptionModel

	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, subscription.ErrSubscriptionNotFound
		}
		r.logger.Errorw("failed to get subscription by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *SubscriptionRepositoryImpl) GetByUserID(ctx context.Context, userID uint) ([]*subscription.Subscription, error) {
	var modelList []*models.SubscriptionModel

	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&modelList).Error; err != nil {
		r.logger.Errorw("failed to get subscriptions by user ID", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get subscriptions: %w", err)
	}

	return r.mapper.ToEntities(modelList)
}

func (r *SubscriptionRepositoryImpl) Update(ctx context.Context, entity *subscription.Subscription) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		return fmt.Errorf("failed to map subscription entity: %w", err)
	}

	result := db.GetTxFromContext(ctx, r.db).Model(&models.SubscriptionModel{}).
		Where("id = ?", model.ID).
		Updates(subscriptionUpdateColumns(model))
	if result.Error != nil {
		r.logger.Errorw("failed to update subscription", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update subscription: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return subscription.ErrSubscriptionNotFound
	}

	return nil
}

// UpdateMany persists the batch in a single transaction. A missing row fails
// and rolls back the whole batch so no partial renewal state is observable.
func (r *SubscriptionRepositoryImpl) UpdateMany(ctx context.Context, entities []*subscription.Subscription) error {
	if len(entities) == 0 {
		return nil
	}

	modelList, err := r.mapper.ToModels(entities)
	if err != nil {
		return fmt.Errorf("failed to map subscription batch: %w", err)
	}

	err = r.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		tx := db.GetTxFromContext(txCtx, r.db)
		for _, model := range modelList {
			result := tx.Model(&models.SubscriptionModel{}).
				Where("id = ?", model.ID).
				Updates(subscriptionUpdateColumns(model))
			if result.Error != nil {
				return fmt.Errorf("failed to update subscription %d: %w", model.ID, result.Error)
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("subscription %d not found during batch update", model.ID)
			}
		}
		return nil
	})
	if err != nil {
		r.logger.Errorw("failed to update subscription batch", "error", err, "batch_size", len(entities))
		return err
	}

	return nil
}

// subscriptionUpdateColumns builds the column map for updates. A map is used
// instead of a struct so nil pointer fields still clear their columns.
func subscriptionUpdateColumns(model *models.SubscriptionModel) map[string]interface{} {
	return map[string]interface{}{
		"name":                model.Name,
		"price_cents":         model.PriceCents,
		"currency":            model.Currency,
		"billing_cycle":       model.BillingCycle,
		"status":              model.Status,
		"start_date":          model.StartDate,
		"next_billing_date":   model.NextBillingDate,
		"last_billing_date":   model.LastBillingDate,
		"renewal_notified_at": model.RenewalNotifiedAt,
		"trial_ends_at":       model.TrialEndsAt,
		"metadata":            model.Metadata,
		"updated_at":          model.UpdatedAt,
	}
}

// FindDueForRenewal returns active subscriptions past their billing date and
// trial subscriptions past their trial end, both inclusive of referenceDate.
func (r *SubscriptionRepositoryImpl) FindDueForRenewal(ctx context.Context, referenceDate time.Time) ([]*subscription.Subscription, error) {
	var modelList []*models.SubscriptionModel

	err := r.db.WithContext(ctx).
		Where("(status = ? AND next_billing_date <= ?) OR (status = ? AND trial_ends_at <= ?)",
			vo.StatusActive.String(), referenceDate,
			vo.StatusTrial.String(), referenceDate).
		Order("id ASC").
		Find(&modelList).Error
	if err != nil {
		r.logger.Errorw("failed to find due subscriptions", "error", err, "reference_date", referenceDate)
		return nil, fmt.Errorf("failed to find due subscriptions: %w", err)
	}

	return r.mapper.ToEntities(modelList)
}

// FindSubscriptionsToNotify returns the coarse reminder candidate set. The
// window upper bound is the end of the target day in the business timezone;
// precise eligibility is decided by the aggregate.
func (r *SubscriptionRepositoryImpl) FindSubscriptionsToNotify(ctx context.Context, daysBefore int) ([]*subscription.Subscription, error) {
	var modelList []*models.SubscriptionModel

	now := biztime.NowUTC()
	windowEnd := biztime.EndOfDayUTC(now.AddDate(0, 0, daysBefore))

	err := r.db.WithContext(ctx).
		Where("status = ? AND renewal_notified_at IS NULL AND next_billing_date <= ?",
			vo.StatusActive.String(), windowEnd).
		Order("id ASC").
		Find(&modelList).Error
	if err != nil {
		r.logger.Errorw("failed to find notification candidates", "error", err, "days_before", daysBefore)
		return nil, fmt.Errorf("failed to find notification candidates: %w", err)
	}

	return r.mapper.ToEntities(modelList)
}

func (r *SubscriptionRepositoryImpl) List(ctx context.Context, filter subscription.SubscriptionFilter) ([]*subscription.Subscription, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.SubscriptionModel{})

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count subscriptions: %w", err)
	}

	sortBy := filter.SortBy
	if !allowedSubscriptionSortByFields[sortBy] {
		sortBy = "created_at"
	}
	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}

	var modelList []*models.SubscriptionModel
	err := query.
		Order(fmt.Sprintf("%s %s", sortBy, direction)).
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&modelList).Error
	if err != nil {
		r.logger.Errorw("failed to list subscriptions", "error", err)
		return nil, 0, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	entities, err := r.mapper.ToEntities(modelList)
	if err != nil {
		return nil, 0, err
	}
	return entities, total, nil
}

func (r *SubscriptionRepositoryImpl) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SubscriptionModel{}).
		Where("status = ?", status).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count subscriptions by status: %w", err)
	}
	return count, nil
}
