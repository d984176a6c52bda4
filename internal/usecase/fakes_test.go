package usecase_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/mihretgbr/applaud/internal/domain/contract"
	"github.com/mihretgbr/applaud/internal/domain/entity"
	usecasecontract "github.com/mihretgbr/applaud/internal/usecase/contract"
)

// stubLogger satisfies IAppLogger without output.
type stubLogger struct{}

func (stubLogger) Debugf(string, ...interface{})   {}
func (stubLogger) Infof(string, ...interface{})    {}
func (stubLogger) Warnf(string, ...interface{})    {}
func (stubLogger) Warningf(string, ...interface{}) {}
func (stubLogger) Errorf(string, ...interface{})   {}
func (stubLogger) Fatalf(string, ...interface{})   {}

// stubValidator rejects empty identifiers, mirroring the real validator.
type stubValidator struct{}

func (stubValidator) ValidateID(name, id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New(name + " is required")
	}
	return nil
}

func (stubValidator) ValidateIDs(name string, ids []string) error {
	if len(ids) == 0 {
		return errors.New(name + " must not be empty")
	}
	return nil
}

// recordingSync captures enqueued jobs instead of applying them.
type recordingSync struct {
	mu   sync.Mutex
	jobs []usecasecontract.SyncJob
}

func (s *recordingSync) Enqueue(job usecasecontract.SyncJob) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, job)
}

func (s *recordingSync) Jobs() []usecasecontract.SyncJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]usecasecontract.SyncJob(nil), s.jobs...)
}

// memCounterStore is an in-memory ICounterStore. Fail makes every call
// error, simulating an unreachable counter store.
type memCounterStore struct {
	mu      sync.Mutex
	Fail    bool
	counts  map[string]int64
	members map[string]map[string]bool
	reverse map[string]map[string]bool
}

func newMemCounterStore() *memCounterStore {
	return &memCounterStore{
		counts:  map[string]int64{},
		members: map[string]map[string]bool{},
		reverse: map[string]map[string]bool{},
	}
}

var errCounterDown = errors.New("counter store unreachable")

func (s *memCounterStore) Ping(context.Context) error {
	if s.Fail {
		return errCounterDown
	}
	return nil
}

func (s *memCounterStore) Count(_ context.Context, itemID string) (int64, bool, error) {
	if s.Fail {
		return 0, false, errCounterDown
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	val, ok := s.counts[itemID]
	return val, ok, nil
}

func (s *memCounterStore) InitCount(_ context.Context, itemID string, count int64) error {
	if s.Fail {
		return errCounterDown
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.counts[itemID]; !ok {
		s.counts[itemID] = count
	}
	return nil
}

func (s *memCounterStore) SetCount(_ context.Context, itemID string, count int64) error {
	if s.Fail {
		return errCounterDown
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[itemID] = count
	return nil
}

func (s *memCounterStore) Toggle(_ context.Context, itemID string, ident entity.Identity) (bool, int64, error) {
	if s.Fail {
		return false, 0, errCounterDown
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := ident.Key()
	if s.members[itemID][key] {
		delete(s.members[itemID], key)
		delete(s.reverse[key], itemID)
		if s.counts[itemID] > 0 {
			s.counts[itemID]--
		}
		return false, s.counts[itemID], nil
	}
	if s.members[itemID] == nil {
		s.members[itemID] = map[string]bool{}
	}
	if s.reverse[key] == nil {
		s.reverse[key] = map[string]bool{}
	}
	s.members[itemID][key] = true
	s.reverse[key][itemID] = true
	s.counts[itemID]++
	return true, s.counts[itemID], nil
}

func (s *memCounterStore) Counts(_ context.Context, itemIDs []string) (map[string]int64, []string, error) {
	if s.Fail {
		return nil, nil, errCounterDown
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	found := map[string]int64{}
	var missing []string
	for _, id := range itemIDs {
		if val, ok := s.counts[id]; ok {
			found[id] = val
		} else {
			missing = append(missing, id)
		}
	}
	return found, missing, nil
}

func (s *memCounterStore) Statuses(_ context.Context, itemIDs []string, ident entity.Identity) (map[string]bool, error) {
	if s.Fail {
		return nil, errCounterDown
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	statuses := map[string]bool{}
	for _, id := range itemIDs {
		statuses[id] = s.members[id][ident.Key()]
	}
	return statuses, nil
}

func (s *memCounterStore) AddMembership(_ context.Context, itemID string, ident entity.Identity) error {
	if s.Fail {
		return errCounterDown
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := ident.Key()
	if s.members[itemID] == nil {
		s.members[itemID] = map[string]bool{}
	}
	if s.reverse[key] == nil {
		s.reverse[key] = map[string]bool{}
	}
	s.members[itemID][key] = true
	s.reverse[key][itemID] = true
	return nil
}

func (s *memCounterStore) ReplaceMembership(_ context.Context, itemID string, from, to entity.Identity) error {
	if s.Fail {
		return errCounterDown
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.members[itemID], from.Key())
	delete(s.reverse[from.Key()], itemID)
	if s.members[itemID] == nil {
		s.members[itemID] = map[string]bool{}
	}
	if s.reverse[to.Key()] == nil {
		s.reverse[to.Key()] = map[string]bool{}
	}
	s.members[itemID][to.Key()] = true
	s.reverse[to.Key()][itemID] = true
	return nil
}

func (s *memCounterStore) PurgeMembership(context.Context) error {
	if s.Fail {
		return errCounterDown
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.members = map[string]map[string]bool{}
	s.reverse = map[string]map[string]bool{}
	return nil
}

var _ contract.ICounterStore = (*memCounterStore)(nil)

// memRatingRepo is an in-memory IRatingRepository that also implements the
// durable side of ILikeStore, mirroring the Postgres repository.
type memRatingRepo struct {
	mu          sync.Mutex
	items       map[string]int64
	ratings     map[string]*entity.Rating
	FailRekeyID string
}

func newMemRatingRepo() *memRatingRepo {
	return &memRatingRepo{
		items:   map[string]int64{},
		ratings: map[string]*entity.Rating{},
	}
}

func (r *memRatingRepo) find(itemID string, ident entity.Identity) *entity.Rating {
	for _, rating := range r.ratings {
		if rating.ItemID != itemID {
			continue
		}
		if rating.Identity().Key() == ident.Key() {
			return rating
		}
	}
	return nil
}

func (r *memRatingRepo) EnsureItem(_ context.Context, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[itemID]; !ok {
		r.items[itemID] = 0
	}
	return nil
}

func (r *memRatingRepo) ItemCount(_ context.Context, itemID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[itemID], nil
}

func (r *memRatingRepo) ItemCounts(_ context.Context, itemIDs []string) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := map[string]int64{}
	for _, id := range itemIDs {
		counts[id] = r.items[id]
	}
	return counts, nil
}

func (r *memRatingRepo) SetItemCount(_ context.Context, itemID string, count int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[itemID] = count
	return nil
}

func (r *memRatingRepo) AllItemIDs(_ context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []string
	for id := range r.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *memRatingRepo) UpsertRating(_ context.Context, itemID string, ident entity.Identity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[itemID]; !ok {
		r.items[itemID] = 0
	}
	if r.find(itemID, ident) != nil {
		return nil
	}
	r.insert(itemID, ident)
	return nil
}

func (r *memRatingRepo) insert(itemID string, ident entity.Identity) *entity.Rating {
	rating := &entity.Rating{ID: uuid.New().String(), ItemID: itemID}
	if ident.IsProfile() {
		id := ident.ID
		rating.ProfileID = &id
	} else {
		id := ident.ID
		rating.SessionID = &id
	}
	r.ratings[rating.ID] = rating
	return rating
}

func (r *memRatingRepo) DeleteRating(_ context.Context, itemID string, ident entity.Identity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rating := r.find(itemID, ident)
	if rating == nil {
		return contract.ErrRatingNotFound
	}
	delete(r.ratings, rating.ID)
	return nil
}

func (r *memRatingRepo) HasRating(_ context.Context, itemID string, ident entity.Identity) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.find(itemID, ident) != nil, nil
}

func (r *memRatingRepo) ToggleTx(_ context.Context, itemID string, ident entity.Identity) (bool, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[itemID]; !ok {
		r.items[itemID] = 0
	}
	if rating := r.find(itemID, ident); rating != nil {
		delete(r.ratings, rating.ID)
		if r.items[itemID] > 0 {
			r.items[itemID]--
		}
		return false, r.items[itemID], nil
	}
	r.insert(itemID, ident)
	r.items[itemID]++
	return true, r.items[itemID], nil
}

func (r *memRatingRepo) AllRatings(_ context.Context) ([]entity.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ratings []entity.Rating
	for _, rating := range r.ratings {
		ratings = append(ratings, *rating)
	}
	return ratings, nil
}

func (r *memRatingRepo) RatingsBySession(_ context.Context, sessionID string) ([]entity.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ratings []entity.Rating
	for _, rating := range r.ratings {
		if rating.SessionID != nil && *rating.SessionID == sessionID {
			ratings = append(ratings, *rating)
		}
	}
	return ratings, nil
}

func (r *memRatingRepo) RekeyRatingToProfile(_ context.Context, ratingID, profileID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ratingID == r.FailRekeyID {
		return errors.New("injected rekey failure")
	}
	rating, ok := r.ratings[ratingID]
	if !ok {
		return contract.ErrRatingNotFound
	}
	if existing := r.find(rating.ItemID, entity.ProfileIdentity(profileID)); existing != nil {
		return contract.ErrDuplicateRating
	}
	rating.SessionID = nil
	id := profileID
	rating.ProfileID = &id
	return nil
}

func (r *memRatingRepo) DeleteRatingByID(_ context.Context, ratingID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ratings[ratingID]; !ok {
		return contract.ErrRatingNotFound
	}
	delete(r.ratings, ratingID)
	return nil
}

func (r *memRatingRepo) LikedItemIDs(_ context.Context, itemIDs []string, ident entity.Identity) (map[string]bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	statuses := map[string]bool{}
	for _, id := range itemIDs {
		statuses[id] = r.find(id, ident) != nil
	}
	return statuses, nil
}

// ILikeStore methods, mirroring the Postgres repository's durable path.

func (r *memRatingRepo) Toggle(ctx context.Context, itemID string, ident entity.Identity) (*entity.ToggleOutcome, error) {
	liked, newCount, err := r.ToggleTx(ctx, itemID, ident)
	if err != nil {
		return nil, err
	}
	return &entity.ToggleOutcome{IsLiked: liked, NewCount: newCount, Durable: true}, nil
}

func (r *memRatingRepo) Counts(ctx context.Context, itemIDs []string) (map[string]int64, error) {
	return r.ItemCounts(ctx, itemIDs)
}

func (r *memRatingRepo) LikedStatuses(ctx context.Context, itemIDs []string, ident entity.Identity) (map[string]bool, error) {
	return r.LikedItemIDs(ctx, itemIDs, ident)
}

var (
	_ contract.IRatingRepository = (*memRatingRepo)(nil)
	_ contract.ILikeStore        = (*memRatingRepo)(nil)
)
