package usecases

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"subtrack/internal/domain/subscription"
	"subtrack/internal/domain/user"
	uservo "subtrack/internal/domain/user/valueobjects"
	"subtrack/internal/shared/logger"
)

func testLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// fakeSubscriptionRepo is an in-memory store that records batch writes so
// tests can assert on what the use cases persist.
type fakeSubscriptionRepo struct {
	subs       map[uint]*subscription.Subscription
	nextID     uint
	updateErr  error
	findErr    error
	updateRuns [][]*subscription.Subscription
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{subs: make(map[uint]*subscription.Subscription), nextID: 1}
}

func (r *fakeSubscriptionRepo) add(sub *subscription.Subscription) *subscription.Subscription {
	if sub.ID() == 0 {
		_ = sub.SetID(r.nextID)
		r.nextID++
	}
	r.subs[sub.ID()] = sub
	return sub
}

func (r *fakeSubscriptionRepo) Create(ctx context.Context, sub *subscription.Subscription) error {
	r.add(sub)
	return nil
}

func (r *fakeSubscriptionRepo) CreateMany(ctx context.Context, subs []*subscription.Subscription) error {
	for _, sub := range subs {
		r.add(sub)
	}
	return nil
}

func (r *fakeSubscriptionRepo) GetByID(ctx context.Context, id uint) (*subscription.Subscription, error) {
	sub, ok := r.subs[id]
	if !ok {
		return nil, subscription.ErrSubscriptionNotFound
	}
	return sub, nil
}

func (r *fakeSubscriptionRepo) GetByUserID(ctx context.Context, userID uint) ([]*subscription.Subscription, error) {
	var out []*subscription.Subscription
	for id := uint(1); id < r.nextID; id++ {
		if sub, ok := r.subs[id]; ok && sub.UserID() == userID {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (r *fakeSubscriptionRepo) Update(ctx context.Context, sub *subscription.Subscription) error {
	if _, ok := r.subs[sub.ID()]; !ok {
		return subscription.ErrSubscriptionNotFound
	}
	r.subs[sub.ID()] = sub
	return nil
}

func (r *fakeSubscriptionRepo) UpdateMany(ctx context.Context, subs []*subscription.Subscription) error {
	r.updateRuns = append(r.updateRuns, subs)
	if r.updateErr != nil {
		return r.updateErr
	}
	for _, sub := range subs {
		if _, ok := r.subs[sub.ID()]; !ok {
			return fmt.Errorf("subscription %d not found", sub.ID())
		}
		r.subs[sub.ID()] = sub
	}
	return nil
}

func (r *fakeSubscriptionRepo) FindDueForRenewal(ctx context.Context, referenceDate time.Time) ([]*subscription.Subscription, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	var out []*subscription.Subscription
	for id := uint(1); id < r.nextID; id++ {
		sub, ok := r.subs[id]
		if !ok {
			continue
		}
		switch {
		case sub.IsActive() && !sub.NextBillingDate().After(referenceDate):
			out = append(out, sub)
		case sub.IsTrial() && sub.TrialEndsAt() != nil && !sub.TrialEndsAt().After(referenceDate):
			out = append(out, sub)
		}
	}
	return out, nil
}

func (r *fakeSubscriptionRepo) FindSubscriptionsToNotify(ctx context.Context, daysBefore int) ([]*subscription.Subscription, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	var out []*subscription.Subscription
	for id := uint(1); id < r.nextID; id++ {
		if sub, ok := r.subs[id]; ok && sub.IsActive() && sub.RenewalNotifiedAt() == nil {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (r *fakeSubscriptionRepo) List(ctx context.Context, filter subscription.SubscriptionFilter) ([]*subscription.Subscription, int64, error) {
	var out []*subscription.Subscription
	for id := uint(1); id < r.nextID; id++ {
		sub, ok := r.subs[id]
		if !ok {
			continue
		}
		if filter.UserID != nil && sub.UserID() != *filter.UserID {
			continue
		}
		if filter.Status != nil && sub.Status().String() != *filter.Status {
			continue
		}
		out = append(out, sub)
	}
	return out, int64(len(out)), nil
}

func (r *fakeSubscriptionRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	for _, sub := range r.subs {
		if sub.Status().String() == status {
			n++
		}
	}
	return n, nil
}

type fakeUserRepo struct {
	users map[uint]*user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*user.User)}
}

func (r *fakeUserRepo) addUser(id uint, email, name string) *user.User {
	addr, _ := uservo.NewEmail(email)
	u, _ := user.ReconstructUser(id, addr, name, time.Now(), time.Now())
	r.users[id] = u
	return u
}

func (r *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	r.users[u.ID()] = u
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uint) (*user.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range r.users {
		if u.Email().String() == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	u, _ := r.GetByEmail(ctx, email)
	return u != nil, nil
}

func (r *fakeUserRepo) Exists(ctx context.Context, id uint) (bool, error) {
	_, ok := r.users[id]
	return ok, nil
}

type sentNotification struct {
	Email           string
	Names           []string
	NextBillingDate time.Time
}

type fakeSender struct {
	sent    []sentNotification
	sendErr error
}

func (s *fakeSender) NotifyRenewal(ctx context.Context, email string, names []string, nextBillingDate, reference time.Time) error {
	s.sent = append(s.sent, sentNotification{Email: email, Names: names, NextBillingDate: nextBillingDate})
	return s.sendErr
}
