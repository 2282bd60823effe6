package store

import (
	"context"
	"errors"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/creatorstation/reelstudio/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore persists records in Postgres through gorm.
type GormStore struct {
	db *gorm.DB
}

var _ Store = (*GormStore)(nil)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), strings.Contains(err.Error(), "SQLSTATE 23505"):
		return ErrDuplicate
	default:
		return err
	}
}

func (s *GormStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = newID()
	}
	user.Email = strings.ToLower(user.Email)
	return translate(s.db.WithContext(ctx).Create(user).Error)
}

func (s *GormStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *GormStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "email = ?", strings.ToLower(email)).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *GormStore) TouchUser(ctx context.Context, id string, at time.Time) error {
	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("last_active_at", at)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) ListUsers(ctx context.Context, filter UserFilter) ([]models.UserSummary, error) {
	var rows []models.UserSummary

	q := s.db.WithContext(ctx).
		Table("users u").
		Select(`u.*, s.plan AS plan,
			CASE WHEN s.status = 'active' THEN s.monthly_price ELSE 0 END AS monthly_revenue,
			(SELECT COUNT(*) FROM reels r WHERE r.user_id = u.id) AS reels_created`).
		Joins("LEFT JOIN subscriptions s ON s.user_id = u.id")

	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where("LOWER(u.name) LIKE ? OR LOWER(u.email) LIKE ?", like, like)
	}
	if filter.Plan != "" {
		q = q.Where("s.plan = ?", filter.Plan)
	}

	if err := q.Order("u.created_at desc").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *GormStore) SetUserStatus(ctx context.Context, ids []string, status models.UserStatus) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id IN ?", ids).Update("status", status)
	return res.RowsAffected, res.Error
}

func (s *GormStore) DeleteUsers(ctx context.Context, ids []string) (int64, error) {
	var deleted int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{&models.Reel{}, &models.ContentBatch{}, &models.SocialAccount{}, &models.BrandKit{}, &models.Subscription{}} {
			if err := tx.Where("user_id IN ?", ids).Delete(m).Error; err != nil {
				return err
			}
		}
		res := tx.Where("id IN ?", ids).Delete(&models.User{})
		deleted = res.RowsAffected
		return res.Error
	})
	return deleted, err
}

func (s *GormStore) CreateSubscription(ctx context.Context, sub *models.Subscription) error {
	if sub.ID == "" {
		sub.ID = newID()
	}
	return translate(s.db.WithContext(ctx).Create(sub).Error)
}

func (s *GormStore) GetSubscription(ctx context.Context, userID string) (*models.Subscription, error) {
	var sub models.Subscription
	if err := s.db.WithContext(ctx).First(&sub, "user_id = ?", userID).Error; err != nil {
		return nil, translate(err)
	}
	return &sub, nil
}

func (s *GormStore) ListSubscriptions(ctx context.Context) ([]models.Subscription, error) {
	var subs []models.Subscription
	err := s.db.WithContext(ctx).Order("created_at asc").Find(&subs).Error
	return subs, err
}

// RevenueByMonth joins per-month booked revenue with per-month signups. The
// subqueries keep squirrel's "?" placeholders; gorm rebinds them for Postgres.
func (s *GormStore) RevenueByMonth(ctx context.Context, since time.Time) ([]MonthlyRevenue, error) {
	const month = "to_char(date_trunc('month', created_at), 'YYYY-MM') AS month"

	revSQL, revArgs, err := sq.
		Select(month, "SUM(monthly_price) AS revenue").
		From("subscriptions").
		Where(sq.Eq{"status": string(models.SubscriptionActive)}).
		Where(sq.GtOrEq{"created_at": since}).
		GroupBy("1").
		ToSql()
	if err != nil {
		return nil, err
	}

	userSQL, userArgs, err := sq.
		Select(month, "COUNT(*) AS users").
		From("users").
		Where(sq.GtOrEq{"created_at": since}).
		GroupBy("1").
		ToSql()
	if err != nil {
		return nil, err
	}

	query := `SELECT COALESCE(r.month, u.month) AS month,
		COALESCE(r.revenue, 0) AS revenue,
		COALESCE(u.users, 0) AS users
		FROM (` + revSQL + `) r
		FULL OUTER JOIN (` + userSQL + `) u ON r.month = u.month
		ORDER BY 1`

	var rows []MonthlyRevenue
	args := append(revArgs, userArgs...)
	if err := s.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *GormStore) CreateSocialAccount(ctx context.Context, account *models.SocialAccount) error {
	if account.ID == "" {
		account.ID = newID()
	}
	return translate(s.db.WithContext(ctx).Create(account).Error)
}

func (s *GormStore) ListSocialAccounts(ctx context.Context, userID string) ([]models.SocialAccount, error) {
	var accounts []models.SocialAccount
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at asc").Find(&accounts).Error
	return accounts, err
}

func (s *GormStore) DeleteSocialAccount(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.SocialAccount{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) GetBrandKit(ctx context.Context, userID string) (*models.BrandKit, error) {
	var kit models.BrandKit
	if err := s.db.WithContext(ctx).First(&kit, "user_id = ?", userID).Error; err != nil {
		return nil, translate(err)
	}
	return &kit, nil
}

func (s *GormStore) SaveBrandKit(ctx context.Context, kit *models.BrandKit) error {
	if kit.ID == "" {
		kit.ID = newID()
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"primary_color", "secondary_color", "font", "logo_url", "logo", "updated_at"}),
	}).Create(kit).Error
}

func (s *GormStore) CreateBatch(ctx context.Context, batch *models.ContentBatch) error {
	if batch.ID == "" {
		batch.ID = newID()
	}
	return s.db.WithContext(ctx).Omit("Reels").Create(batch).Error
}

func (s *GormStore) SetBatchStatus(ctx context.Context, id string, status models.BatchStatus) error {
	res := s.db.WithContext(ctx).Model(&models.ContentBatch{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) GetBatch(ctx context.Context, id, userID string) (*models.ContentBatch, error) {
	var batch models.ContentBatch
	err := s.db.WithContext(ctx).
		Preload("Reels", func(tx *gorm.DB) *gorm.DB { return tx.Order("created_at asc") }).
		Where("id = ? AND user_id = ?", id, userID).
		First(&batch).Error
	if err != nil {
		return nil, translate(err)
	}
	return &batch, nil
}

func (s *GormStore) ListBatches(ctx context.Context, userID string) ([]models.BatchSummary, error) {
	var rows []models.BatchSummary
	err := s.db.WithContext(ctx).
		Table("content_batches b").
		Select("b.*, (SELECT COUNT(*) FROM reels r WHERE r.content_batch_id = b.id) AS reel_count").
		Where("b.user_id = ?", userID).
		Order("b.created_at desc").
		Scan(&rows).Error
	return rows, err
}

func (s *GormStore) CreateReels(ctx context.Context, reels []*models.Reel) error {
	if len(reels) == 0 {
		return nil
	}
	for _, r := range reels {
		if r.ID == "" {
			r.ID = newID()
		}
	}
	return s.db.WithContext(ctx).Create(&reels).Error
}

func (s *GormStore) GetReel(ctx context.Context, id string) (*models.Reel, error) {
	var reel models.Reel
	if err := s.db.WithContext(ctx).First(&reel, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &reel, nil
}

func (s *GormStore) SaveReel(ctx context.Context, reel *models.Reel) error {
	res := s.db.WithContext(ctx).Model(reel).Select("*").Omit("id", "created_at").Updates(reel)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) FinishScheduled(ctx context.Context, reel *models.Reel) error {
	res := s.db.WithContext(ctx).Model(&models.Reel{}).
		Where("id = ? AND status = ?", reel.ID, models.ReelScheduled).
		Updates(map[string]any{
			"status":         reel.Status,
			"posted_at":      reel.PostedAt,
			"failure_reason": reel.FailureReason,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStale
	}
	return nil
}

func (s *GormStore) ListReels(ctx context.Context, filter ReelFilter) ([]models.Reel, error) {
	q := s.db.WithContext(ctx).Model(&models.Reel{})
	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.DueBefore != nil {
		q = q.Where("scheduled_for IS NOT NULL AND scheduled_for <= ?", *filter.DueBefore)
	}
	if filter.PostedSince != nil {
		q = q.Where("posted_at >= ?", *filter.PostedSince)
	}

	var reels []models.Reel
	err := q.Order("scheduled_for asc nulls last").Order("created_at desc").Find(&reels).Error
	return reels, err
}

func (s *GormStore) TopReels(ctx context.Context, userID string, limit int) ([]models.Reel, error) {
	var reels []models.Reel
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("views desc").
		Limit(limit).
		Find(&reels).Error
	return reels, err
}

func (s *GormStore) CountReels(ctx context.Context, status models.ReelStatus) (int64, error) {
	var n int64
	q := s.db.WithContext(ctx).Model(&models.Reel{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Count(&n).Error
	return n, err
}
