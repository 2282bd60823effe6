package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/creatorstation/reelstudio/internal/models"
	"golang.org/x/exp/slices"
)

// Memory keeps every record in process. Records are copied on the way in and
// out so callers never share state with the store.
type Memory struct {
	mu      sync.RWMutex
	now     func() time.Time
	users   map[string]models.User
	subs    map[string]models.Subscription // by user id
	socials map[string]models.SocialAccount
	kits    map[string]models.BrandKit // by user id
	batches map[string]models.ContentBatch
	reels   map[string]models.Reel
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		now:     time.Now,
		users:   make(map[string]models.User),
		subs:    make(map[string]models.Subscription),
		socials: make(map[string]models.SocialAccount),
		kits:    make(map[string]models.BrandKit),
		batches: make(map[string]models.ContentBatch),
		reels:   make(map[string]models.Reel),
	}
}

// stamp sets created/updated times the way gorm does when they are zero.
func (m *Memory) stamp(created, updated *time.Time) {
	now := m.now()
	if created != nil && created.IsZero() {
		*created = now
	}
	if updated != nil {
		*updated = now
	}
}

func (m *Memory) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	user.Email = strings.ToLower(user.Email)
	for _, u := range m.users {
		if u.Email == user.Email {
			return ErrDuplicate
		}
	}
	if user.ID == "" {
		user.ID = newID()
	}
	m.stamp(&user.CreatedAt, &user.UpdatedAt)
	m.users[user.ID] = *user
	return nil
}

func (m *Memory) GetUser(_ context.Context, id string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (m *Memory) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	email = strings.ToLower(email)
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) TouchUser(_ context.Context, id string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return ErrNotFound
	}
	u.LastActiveAt = &at
	m.users[id] = u
	return nil
}

func (m *Memory) ListUsers(_ context.Context, filter UserFilter) ([]models.UserSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	search := strings.ToLower(filter.Search)
	var out []models.UserSummary
	for _, u := range m.users {
		if search != "" && !strings.Contains(strings.ToLower(u.Name), search) && !strings.Contains(u.Email, search) {
			continue
		}
		sub, hasSub := m.subs[u.ID]
		if filter.Plan != "" && (!hasSub || sub.Plan != filter.Plan) {
			continue
		}

		row := models.UserSummary{User: u}
		if hasSub {
			row.Plan = sub.Plan
			if sub.Status == models.SubscriptionActive {
				row.MonthlyRevenue = sub.MonthlyPrice
			}
		}
		for _, r := range m.reels {
			if r.UserID == u.ID {
				row.ReelsCreated++
			}
		}
		out = append(out, row)
	}

	slices.SortFunc(out, func(a, b models.UserSummary) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

func (m *Memory) SetUserStatus(_ context.Context, ids []string, status models.UserStatus) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			u.Status = status
			m.users[id] = u
			n++
		}
	}
	return n, nil
}

func (m *Memory) DeleteUsers(_ context.Context, ids []string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for _, id := range ids {
		if _, ok := m.users[id]; !ok {
			continue
		}
		delete(m.users, id)
		delete(m.subs, id)
		delete(m.kits, id)
		for k, v := range m.socials {
			if v.UserID == id {
				delete(m.socials, k)
			}
		}
		for k, v := range m.batches {
			if v.UserID == id {
				delete(m.batches, k)
			}
		}
		for k, v := range m.reels {
			if v.UserID == id {
				delete(m.reels, k)
			}
		}
		n++
	}
	return n, nil
}

func (m *Memory) CreateSubscription(_ context.Context, sub *models.Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.subs[sub.UserID]; ok {
		return ErrDuplicate
	}
	if sub.ID == "" {
		sub.ID = newID()
	}
	m.stamp(&sub.CreatedAt, &sub.UpdatedAt)
	m.subs[sub.UserID] = *sub
	return nil
}

func (m *Memory) GetSubscription(_ context.Context, userID string) (*models.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sub, ok := m.subs[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &sub, nil
}

func (m *Memory) ListSubscriptions(_ context.Context) ([]models.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Subscription, 0, len(m.subs))
	for _, s := range m.subs {
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b models.Subscription) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return out, nil
}

func (m *Memory) RevenueByMonth(_ context.Context, since time.Time) ([]MonthlyRevenue, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	byMonth := make(map[string]*MonthlyRevenue)
	row := func(t time.Time) *MonthlyRevenue {
		key := t.UTC().Format("2006-01")
		if r, ok := byMonth[key]; ok {
			return r
		}
		r := &MonthlyRevenue{Month: key}
		byMonth[key] = r
		return r
	}

	for _, s := range m.subs {
		if s.Status == models.SubscriptionActive && !s.CreatedAt.Before(since) {
			row(s.CreatedAt).Revenue += s.MonthlyPrice
		}
	}
	for _, u := range m.users {
		if !u.CreatedAt.Before(since) {
			row(u.CreatedAt).Users++
		}
	}

	out := make([]MonthlyRevenue, 0, len(byMonth))
	for _, r := range byMonth {
		out = append(out, *r)
	}
	slices.SortFunc(out, func(a, b MonthlyRevenue) int {
		return strings.Compare(a.Month, b.Month)
	})
	return out, nil
}

func (m *Memory) CreateSocialAccount(_ context.Context, account *models.SocialAccount) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if account.ID == "" {
		account.ID = newID()
	}
	m.stamp(&account.CreatedAt, nil)
	m.socials[account.ID] = *account
	return nil
}

func (m *Memory) ListSocialAccounts(_ context.Context, userID string) ([]models.SocialAccount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []models.SocialAccount
	for _, a := range m.socials {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	slices.SortFunc(out, func(a, b models.SocialAccount) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return out, nil
}

func (m *Memory) DeleteSocialAccount(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.socials[id]; !ok {
		return ErrNotFound
	}
	delete(m.socials, id)
	return nil
}

func (m *Memory) GetBrandKit(_ context.Context, userID string) (*models.BrandKit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	kit, ok := m.kits[userID]
	if !ok {
		return nil, ErrNotFound
	}
	kit.Logo = slices.Clone(kit.Logo)
	return &kit, nil
}

func (m *Memory) SaveBrandKit(_ context.Context, kit *models.BrandKit) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.kits[kit.UserID]; ok {
		kit.ID = existing.ID
	} else if kit.ID == "" {
		kit.ID = newID()
	}
	m.stamp(nil, &kit.UpdatedAt)
	stored := *kit
	stored.Logo = slices.Clone(kit.Logo)
	m.kits[kit.UserID] = stored
	return nil
}

func (m *Memory) CreateBatch(_ context.Context, batch *models.ContentBatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if batch.ID == "" {
		batch.ID = newID()
	}
	m.stamp(&batch.CreatedAt, &batch.UpdatedAt)
	stored := *batch
	stored.Reels = nil
	m.batches[batch.ID] = stored
	return nil
}

func (m *Memory) SetBatchStatus(_ context.Context, id string, status models.BatchStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.batches[id]
	if !ok {
		return ErrNotFound
	}
	b.Status = status
	m.stamp(nil, &b.UpdatedAt)
	m.batches[id] = b
	return nil
}

func (m *Memory) GetBatch(_ context.Context, id, userID string) (*models.ContentBatch, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.batches[id]
	if !ok || b.UserID != userID {
		return nil, ErrNotFound
	}
	b.Reels = []models.Reel{}
	for _, r := range m.reels {
		if r.ContentBatchID == id {
			b.Reels = append(b.Reels, r)
		}
	}
	slices.SortStableFunc(b.Reels, func(x, y models.Reel) int {
		return x.CreatedAt.Compare(y.CreatedAt)
	})
	return &b, nil
}

func (m *Memory) ListBatches(_ context.Context, userID string) ([]models.BatchSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []models.BatchSummary{}
	for _, b := range m.batches {
		if b.UserID != userID {
			continue
		}
		row := models.BatchSummary{ContentBatch: b}
		for _, r := range m.reels {
			if r.ContentBatchID == b.ID {
				row.ReelCount++
			}
		}
		out = append(out, row)
	}
	slices.SortFunc(out, func(a, b models.BatchSummary) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

func (m *Memory) CreateReels(_ context.Context, reels []*models.Reel) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, r := range reels {
		if r.ID == "" {
			r.ID = newID()
		}
		if r.CreatedAt.IsZero() {
			// Keep insertion order stable for reels created in the same instant.
			r.CreatedAt = m.now().Add(time.Duration(i) * time.Microsecond)
		}
		m.stamp(nil, &r.UpdatedAt)
		m.reels[r.ID] = *r
	}
	return nil
}

func (m *Memory) GetReel(_ context.Context, id string) (*models.Reel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.reels[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

func (m *Memory) SaveReel(_ context.Context, reel *models.Reel) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.reels[reel.ID]
	if !ok {
		return ErrNotFound
	}
	reel.CreatedAt = existing.CreatedAt
	m.stamp(nil, &reel.UpdatedAt)
	m.reels[reel.ID] = *reel
	return nil
}

func (m *Memory) FinishScheduled(_ context.Context, reel *models.Reel) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.reels[reel.ID]
	if !ok {
		return ErrNotFound
	}
	if existing.Status != models.ReelScheduled {
		return ErrStale
	}
	existing.Status = reel.Status
	existing.PostedAt = reel.PostedAt
	existing.FailureReason = reel.FailureReason
	m.stamp(nil, &existing.UpdatedAt)
	m.reels[reel.ID] = existing
	return nil
}

func (m *Memory) ListReels(_ context.Context, filter ReelFilter) ([]models.Reel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []models.Reel{}
	for _, r := range m.reels {
		if filter.UserID != "" && r.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		if filter.DueBefore != nil && (r.ScheduledFor == nil || r.ScheduledFor.After(*filter.DueBefore)) {
			continue
		}
		if filter.PostedSince != nil && (r.PostedAt == nil || r.PostedAt.Before(*filter.PostedSince)) {
			continue
		}
		out = append(out, r)
	}

	slices.SortFunc(out, compareSchedule)
	return out, nil
}

// compareSchedule orders by scheduledFor ascending with unscheduled reels
// last, then by createdAt descending.
func compareSchedule(a, b models.Reel) int {
	switch {
	case a.ScheduledFor != nil && b.ScheduledFor != nil:
		if c := a.ScheduledFor.Compare(*b.ScheduledFor); c != 0 {
			return c
		}
	case a.ScheduledFor != nil:
		return -1
	case b.ScheduledFor != nil:
		return 1
	}
	return b.CreatedAt.Compare(a.CreatedAt)
}

func (m *Memory) TopReels(_ context.Context, userID string, limit int) ([]models.Reel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []models.Reel{}
	for _, r := range m.reels {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	slices.SortStableFunc(out, func(a, b models.Reel) int {
		switch {
		case a.Views > b.Views:
			return -1
		case a.Views < b.Views:
			return 1
		}
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *Memory) CountReels(_ context.Context, status models.ReelStatus) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var n int64
	for _, r := range m.reels {
		if status == "" || r.Status == status {
			n++
		}
	}
	return n, nil
}
