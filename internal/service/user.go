package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"blogpessoal/internal/model"
	"blogpessoal/internal/repository"
	"blogpessoal/internal/storage"
)

// UserService defines the use cases for authors.
type UserService interface {
	List(ctx context.Context) ([]model.User, error)

	// Get returns a single user by its ID, or ErrNotFound.
	Get(ctx context.Context, id int64) (*model.User, error)

	// Create registers a new author. A login already in use yields ErrLoginTaken.
	Create(ctx context.Context, u *model.User) (*model.User, error)

	// UploadPhoto stores the image in object storage and points the user at it.
	// The object is removed again when the database update fails, and the
	// previous photo is removed once the new one is recorded.
	UploadPhoto(ctx context.Context, id int64, r io.Reader, filename, contentType string, size int64) (*model.User, error)

	// Photo opens the stored photo of a user. The caller must close the reader.
	Photo(ctx context.Context, id int64) (io.ReadCloser, storage.ObjectInfo, error)
}

type userService struct {
	repo     repository.UserRepository
	store    storage.Storage
	validate *Validator
	now      func() time.Time
}

// NewUserService constructs a new UserService. store may be nil, in which case
// the photo operations return ErrStorageUnavailable.
func NewUserService(repo repository.UserRepository, store storage.Storage, v *Validator) UserService {
	return &userService{repo: repo, store: store, validate: v, now: time.Now}
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	return s.repo.FindAll(ctx)
}

func (s *userService) Get(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateRepoErr(err)
	}
	return u, nil
}

func (s *userService) Create(ctx context.Context, u *model.User) (*model.User, error) {
	if err := s.validate.Struct(u); err != nil {
		return nil, err
	}
	in := *u
	in.ID = 0
	in.Photo = ""
	in.CreatedAt = s.now().UTC()

	out, err := s.repo.Create(ctx, &in)
	if err != nil {
		return nil, translateRepoErr(err)
	}
	return out, nil
}

func (s *userService) UploadPhoto(ctx context.Context, id int64, r io.Reader, filename, contentType string, size int64) (*model.User, error) {
	if s.store == nil {
		return nil, ErrStorageUnavailable
	}
	if r == nil {
		return nil, ErrReaderNil
	}
	if !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return nil, ErrNotAnImage
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateRepoErr(err)
	}

	key := filepath.ToSlash(filepath.Join("usuarios", uuid.New().String()+strings.ToLower(filepath.Ext(filename))))
	obj, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": filename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	if err := s.repo.UpdatePhoto(ctx, id, obj.Key); err != nil {
		// Rollback: the row no longer references the object.
		if delErr := s.store.Delete(ctx, obj.Key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", translateRepoErr(err))
	}

	// The old object is orphaned either way; a failed delete only leaks storage.
	if u.Photo != "" && u.Photo != obj.Key {
		_ = s.store.Delete(ctx, u.Photo)
	}

	out := *u
	out.Photo = obj.Key
	return &out, nil
}

func (s *userService) Photo(ctx context.Context, id int64) (io.ReadCloser, storage.ObjectInfo, error) {
	if s.store == nil {
		return nil, storage.ObjectInfo{}, ErrStorageUnavailable
	}
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storage.ObjectInfo{}, translateRepoErr(err)
	}
	if u.Photo == "" {
		return nil, storage.ObjectInfo{}, ErrNotFound
	}
	rc, info, err := s.store.Get(ctx, u.Photo)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, storage.ObjectInfo{}, ErrNotFound
	}
	if err != nil {
		return nil, storage.ObjectInfo{}, fmt.Errorf("read from storage: %w", err)
	}
	return rc, info, nil
}
