package state_test

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/zervidtronics-storefront/internal/application/dto"
	"github.com/jhoicas/zervidtronics-storefront/internal/application/ports"
	"github.com/jhoicas/zervidtronics-storefront/internal/domain"
	"github.com/jhoicas/zervidtronics-storefront/internal/domain/entity"
)

// fakeAuth acepta cualquier password excepto "mala"; el rol sale de users[email].
type fakeAuth struct {
	storage     ports.Storage
	users       map[string]entity.User
	deleted     bool
	registerErr error
}

func (f *fakeAuth) Login(ctx context.Context, req dto.LoginRequest) (*entity.User, error) {
	u, ok := f.users[req.Email]
	if !ok || req.Password == "mala" {
		return nil, fakeErr{msg: "No active account found with the given credentials", err: domain.ErrUnauthorized}
	}
	_ = f.storage.Set(ctx, ports.KeyToken, "access")
	_ = f.storage.Set(ctx, ports.KeyRefreshToken, "refresh")
	_ = f.storage.Set(ctx, ports.KeyUserRole, u.Role)
	_ = f.storage.Set(ctx, ports.KeyUserData, `{"id":1}`)
	return &u, nil
}

func (f *fakeAuth) Register(_ context.Context, req dto.RegisterRequest) (*entity.User, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &entity.User{ID: 99, Email: req.Email, Username: req.Username, Role: req.Role}, nil
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	return f.storage.Delete(ctx, ports.SessionKeys...)
}

func (f *fakeAuth) RequestPasswordReset(context.Context, dto.PasswordResetRequest) (string, error) {
	return "ok", nil
}

func (f *fakeAuth) ConfirmPasswordReset(context.Context, dto.PasswordResetConfirm) (string, error) {
	return "ok", nil
}

func (f *fakeAuth) ChangePassword(context.Context, dto.ChangePasswordRequest) (string, error) {
	return "Contraseña actualizada", nil
}

func (f *fakeAuth) DeleteAccount(context.Context) error {
	f.deleted = true
	return nil
}

type fakeErr struct {
	msg string
	err error
}

func (e fakeErr) Error() string       { return e.msg }
func (e fakeErr) Unwrap() error       { return e.err }
func (e fakeErr) UserMessage() string { return e.msg }

// fakeWishlists guarda las listas en memoria y cuenta las llamadas.
type fakeWishlists struct {
	mu      sync.Mutex
	lists   []entity.Wishlist
	nextID  int64
	calls   int
	created []string
}

func (f *fakeWishlists) find(id int64) (*entity.Wishlist, error) {
	for i := range f.lists {
		if f.lists[i].ID == id {
			return &f.lists[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeWishlists) List(context.Context) ([]entity.Wishlist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return append([]entity.Wishlist(nil), f.lists...), nil
}

func (f *fakeWishlists) Create(_ context.Context, name string) (*entity.Wishlist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.nextID++
	wl := entity.Wishlist{ID: f.nextID, Name: name}
	f.lists = append(f.lists, wl)
	f.created = append(f.created, name)
	return &wl, nil
}

func (f *fakeWishlists) SetComponents(_ context.Context, id int64, ids []int64) (*entity.Wishlist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	wl, err := f.find(id)
	if err != nil {
		return nil, err
	}
	wl.Items = nil
	for _, c := range ids {
		wl.Items = append(wl.Items, entity.WishlistItem{Component: entity.Component{ID: c}, Quantity: 1})
	}
	out := *wl
	return &out, nil
}

func (f *fakeWishlists) Delete(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	for i := range f.lists {
		if f.lists[i].ID == id {
			f.lists = append(f.lists[:i], f.lists[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeWishlists) ToggleItem(_ context.Context, id, componentID int64) (*entity.Wishlist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	wl, err := f.find(id)
	if err != nil {
		return nil, err
	}
	for i, it := range wl.Items {
		if it.Component.ID == componentID {
			wl.Items = append(wl.Items[:i], wl.Items[i+1:]...)
			out := *wl
			out.Items = append([]entity.WishlistItem(nil), wl.Items...)
			return &out, nil
		}
	}
	wl.Items = append(wl.Items, entity.WishlistItem{Component: entity.Component{ID: componentID}, Quantity: 1})
	out := *wl
	out.Items = append([]entity.WishlistItem(nil), wl.Items...)
	return &out, nil
}

func (f *fakeWishlists) UpdateQuantity(_ context.Context, id, componentID int64, q int) (*entity.Wishlist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	wl, err := f.find(id)
	if err != nil {
		return nil, err
	}
	for i := range wl.Items {
		if wl.Items[i].Component.ID == componentID {
			wl.Items[i].Quantity = q
		}
	}
	out := *wl
	out.Items = append([]entity.WishlistItem(nil), wl.Items...)
	return &out, nil
}

func (f *fakeWishlists) Clear(_ context.Context, id int64) (*entity.Wishlist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	wl, err := f.find(id)
	if err != nil {
		return nil, err
	}
	wl.Items = nil
	out := *wl
	return &out, nil
}

func (f *fakeWishlists) ExportBudget(_ context.Context, id int64) (*entity.Budget, error) {
	return &entity.Budget{ProjectName: "Mi Lista de Deseos"}, nil
}

// fakeReviews reseñas en memoria; failDelete fuerza el error del backend.
type fakeReviews struct {
	reviews    []entity.Review
	failDelete bool
	lists      int
	patched    []dto.ReviewPatch
}

func (f *fakeReviews) ListByStore(_ context.Context, storeID int64) ([]entity.Review, error) {
	f.lists++
	var out []entity.Review
	for _, r := range f.reviews {
		if r.Store == storeID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReviews) Create(_ context.Context, in dto.ReviewInput) (*entity.Review, error) {
	r := entity.Review{ID: int64(len(f.reviews) + 100), Store: in.Store, Rating: in.Rating, Comment: in.Comment}
	f.reviews = append(f.reviews, r)
	return &r, nil
}

func (f *fakeReviews) Update(_ context.Context, id int64, in dto.ReviewPatch) (*entity.Review, error) {
	f.patched = append(f.patched, in)
	for i := range f.reviews {
		if f.reviews[i].ID == id {
			f.reviews[i].Rating, f.reviews[i].Comment = in.Rating, in.Comment
			r := f.reviews[i]
			return &r, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeReviews) Delete(_ context.Context, id int64) error {
	if f.failDelete {
		return errors.New("500")
	}
	for i := range f.reviews {
		if f.reviews[i].ID == id {
			f.reviews = append(f.reviews[:i], f.reviews[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeComponents struct {
	ports.ComponentAPI
	list    []entity.Component
	err     error
	lists   int
	manage  bool
	created []dto.ComponentInput
	deleted []int64
}

func (f *fakeComponents) List(_ context.Context, q dto.ComponentQuery) ([]entity.Component, error) {
	f.lists++
	f.manage = q.Manage
	return f.list, f.err
}

func (f *fakeComponents) Create(_ context.Context, in dto.ComponentInput) (*entity.Component, error) {
	f.created = append(f.created, in)
	c := entity.Component{ID: int64(len(f.list) + 1), Name: in.Name, MPN: in.MPN}
	f.list = append(f.list, c)
	return &c, nil
}

func (f *fakeComponents) Delete(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	for i, c := range f.list {
		if c.ID == id {
			f.list = append(f.list[:i:i], f.list[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeCategories struct {
	list []entity.Category
}

func (f *fakeCategories) List(context.Context) ([]entity.Category, error) {
	return f.list, nil
}
