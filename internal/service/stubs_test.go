package service

import (
	"context"
	"sort"
	"sync"

	"gallery/internal/auth"
	"gallery/internal/models"
	"gallery/internal/repository"
)

type pair struct{ photoID, userID uint }

// memStore is an in-memory PhotoRepository and InteractionRepository.
// The *Fn fields override single operations.
type memStore struct {
	mu        sync.Mutex
	photos    map[uint]*models.Photo
	likes     map[pair]bool
	favorites map[pair]bool
	nextID    uint

	getByIDFn     func(context.Context, uint) (*models.Photo, error)
	likeExistsFn  func(context.Context, uint, uint) (bool, error)
	createLikeFn  func(context.Context, uint, uint) error
	favExistsFn   func(context.Context, uint, uint) (bool, error)
	createFavFn   func(context.Context, uint, uint) error
	countLikesErr error
}

func newMemStore(photos ...*models.Photo) *memStore {
	s := &memStore{
		photos:    map[uint]*models.Photo{},
		likes:     map[pair]bool{},
		favorites: map[pair]bool{},
		nextID:    100,
	}
	for _, p := range photos {
		s.photos[p.ID] = p
	}
	return s
}

func (s *memStore) Create(_ context.Context, photo *models.Photo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	photo.ID = s.nextID
	cp := *photo
	s.photos[photo.ID] = &cp
	return nil
}

func (s *memStore) GetByID(ctx context.Context, id uint) (*models.Photo, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.photos[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *memStore) Update(_ context.Context, photo *models.Photo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.photos[photo.ID]
	if !ok {
		return repository.ErrNotFound
	}
	p.Title, p.Description, p.ImageURL = photo.Title, photo.Description, photo.ImageURL
	return nil
}

func (s *memStore) UpdateVisibility(_ context.Context, id uint, v models.Visibility) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.photos[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.Visibility = v
	return nil
}

func (s *memStore) Delete(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.photos[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.photos, id)
	for k := range s.likes {
		if k.photoID == id {
			delete(s.likes, k)
		}
	}
	for k := range s.favorites {
		if k.photoID == id {
			delete(s.favorites, k)
		}
	}
	return nil
}

func (s *memStore) ListPublic(_ context.Context, _, _ int) ([]*models.Photo, error) {
	return s.filter(func(p *models.Photo) bool { return p.IsPublic() }), nil
}

func (s *memStore) ListByOwner(_ context.Context, ownerID uint, includePrivate bool, _, _ int) ([]*models.Photo, error) {
	return s.filter(func(p *models.Photo) bool {
		return p.OwnerID == ownerID && (includePrivate || p.IsPublic())
	}), nil
}

func (s *memStore) CreateLike(ctx context.Context, userID, photoID uint) error {
	if s.createLikeFn != nil {
		return s.createLikeFn(ctx, userID, photoID)
	}
	return s.insert(s.likes, userID, photoID)
}

func (s *memStore) DeleteLike(_ context.Context, userID, photoID uint) error {
	return s.remove(s.likes, userID, photoID)
}

func (s *memStore) LikeExists(ctx context.Context, userID, photoID uint) (bool, error) {
	if s.likeExistsFn != nil {
		return s.likeExistsFn(ctx, userID, photoID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.likes[pair{photoID, userID}], nil
}

func (s *memStore) CountLikes(_ context.Context, photoID uint) (int64, error) {
	if s.countLikesErr != nil {
		return 0, s.countLikesErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for k := range s.likes {
		if k.photoID == photoID {
			n++
		}
	}
	return n, nil
}

func (s *memStore) ListLikedPhotos(_ context.Context, userID uint, _, _ int) ([]*models.Photo, error) {
	return s.listFor(s.likes, userID), nil
}

func (s *memStore) CreateFavorite(ctx context.Context, userID, photoID uint) error {
	if s.createFavFn != nil {
		return s.createFavFn(ctx, userID, photoID)
	}
	return s.insert(s.favorites, userID, photoID)
}

func (s *memStore) DeleteFavorite(_ context.Context, userID, photoID uint) error {
	return s.remove(s.favorites, userID, photoID)
}

func (s *memStore) FavoriteExists(ctx context.Context, userID, photoID uint) (bool, error) {
	if s.favExistsFn != nil {
		return s.favExistsFn(ctx, userID, photoID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.favorites[pair{photoID, userID}], nil
}

func (s *memStore) ListFavoritedPhotos(_ context.Context, userID uint, _, _ int) ([]*models.Photo, error) {
	return s.listFor(s.favorites, userID), nil
}

func (s *memStore) insert(set map[pair]bool, userID, photoID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.photos[photoID]; !ok {
		return repository.ErrNotFound
	}
	k := pair{photoID, userID}
	if set[k] {
		return repository.ErrDuplicate
	}
	set[k] = true
	return nil
}

func (s *memStore) remove(set map[pair]bool, userID, photoID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := pair{photoID, userID}
	if !set[k] {
		return repository.ErrNotFound
	}
	delete(set, k)
	return nil
}

func (s *memStore) listFor(set map[pair]bool, userID uint) []*models.Photo {
	return s.filter(func(p *models.Photo) bool {
		return set[pair{p.ID, userID}] && (p.IsPublic() || p.OwnerID == userID)
	})
}

func (s *memStore) filter(keep func(*models.Photo) bool) []*models.Photo {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Photo
	for _, p := range s.photos {
		if keep(p) {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn    func(context.Context, uint) (*models.User, error)
	getByEmailFn func(context.Context, string) (*models.User, error)
	createFn     func(context.Context, *models.User) error
	deleteFn     func(context.Context, uint) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

type notification struct {
	ownerID, photoID uint
	liker            auth.Principal
}

type recordingNotifier struct {
	sent []notification
	err  error
}

func (n *recordingNotifier) NotifyPhotoLiked(_ context.Context, ownerID, photoID uint, liker auth.Principal) error {
	n.sent = append(n.sent, notification{ownerID, photoID, liker})
	return n.err
}

func principal(id uint) auth.Principal {
	return auth.Principal{ID: id, Email: "user@example.com", Roles: []string{auth.RoleUser}}
}

func publicPhoto(id, owner uint) *models.Photo {
	return &models.Photo{ID: id, OwnerID: owner, Visibility: models.VisibilityPublic, Title: "p"}
}

func privatePhoto(id, owner uint) *models.Photo {
	return &models.Photo{ID: id, OwnerID: owner, Visibility: models.VisibilityPrivate, Title: "p"}
}
