// Package review modela la lista de reseñas de una tienda con sus controles
// de edición y borrado. Solo el autor de una reseña puede modificarla y en
// cada lista hay como máximo una fila activa (confirmando borrado o editando).
package review

import (
	"fmt"
	"strings"
	"sync"

	"github.com/jhoicas/zervidtronics-storefront/internal/domain"
	"github.com/jhoicas/zervidtronics-storefront/internal/domain/entity"
)

// Mode estado de una fila.
type Mode string

const (
	ModeViewing          Mode = "viewing"
	ModeConfirmingDelete Mode = "confirming_delete"
	ModeEditing          Mode = "editing"
)

// Draft borrador de edición.
type Draft struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Validate aplica las reglas del formulario de reseña.
func (d Draft) Validate() error {
	if d.Rating < 1 || d.Rating > 5 {
		return fmt.Errorf("%w: la calificación debe estar entre 1 y 5", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(d.Comment) == "" {
		return fmt.Errorf("%w: el comentario es requerido", domain.ErrInvalidInput)
	}
	return nil
}

// Row vista de una reseña para el usuario actual.
type Row struct {
	entity.Review
	Mode    Mode   `json:"mode"`
	CanEdit bool   `json:"can_edit"`
	Busy    bool   `json:"busy"`
	Draft   *Draft `json:"draft,omitempty"`
}

// Board estado de la lista de reseñas. Seguro para uso concurrente.
type Board struct {
	mu       sync.Mutex
	userID   int64 // 0 = anónimo
	reviews  []entity.Review
	activeID int64
	mode     Mode
	draft    Draft
	busy     map[int64]bool
}

// NewBoard crea el tablero para el usuario userID (0 si no hay sesión).
func NewBoard(userID int64, reviews []entity.Review) *Board {
	b := &Board{userID: userID, mode: ModeViewing, busy: map[int64]bool{}}
	b.reviews = append(b.reviews, reviews...)
	return b
}

// SetUser cambia el usuario actual y descarta cualquier acción en curso.
func (b *Board) SetUser(userID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.userID = userID
	b.resetLocked()
}

// UserID usuario actual del tablero.
func (b *Board) UserID() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.userID
}

// Replace sustituye la lista (tras un refetch). Si la fila activa desaparece se vuelve a viewing.
func (b *Board) Replace(reviews []entity.Review) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reviews = append([]entity.Review(nil), reviews...)
	if b.activeID != 0 && b.indexLocked(b.activeID) < 0 {
		b.resetLocked()
	}
	for id := range b.busy {
		if b.indexLocked(id) < 0 {
			delete(b.busy, id)
		}
	}
}

// Rows devuelve una copia de las filas con su estado.
func (b *Board) Rows() []Row {
	b.mu.Lock()
	defer b.mu.Unlock()
	rows := make([]Row, 0, len(b.reviews))
	for _, r := range b.reviews {
		row := Row{Review: r, Mode: ModeViewing, CanEdit: b.ownsLocked(r), Busy: b.busy[r.ID]}
		if r.ID == b.activeID {
			row.Mode = b.mode
			if b.mode == ModeEditing {
				d := b.draft
				row.Draft = &d
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// Reviews copia de las reseñas actuales.
func (b *Board) Reviews() []entity.Review {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]entity.Review(nil), b.reviews...)
}

// RequestDelete pasa la fila id a confirming_delete.
func (b *Board) RequestDelete(id int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, err := b.actionableLocked(id); err != nil {
		return err
	}
	b.activeID, b.mode, b.draft = id, ModeConfirmingDelete, Draft{}
	return nil
}

// ConfirmDelete marca el borrado de id como en curso. Requiere confirming_delete sobre id.
func (b *Board) ConfirmDelete(id int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.activeID != id || b.mode != ModeConfirmingDelete {
		return fmt.Errorf("%w: el borrado no fue solicitado", domain.ErrInvalidInput)
	}
	if b.busy[id] {
		return domain.ErrReviewBusy
	}
	b.busy[id] = true
	return nil
}

// FinishDelete cierra el borrado de id. Si err es nil la fila se elimina; si no, vuelve a viewing.
func (b *Board) FinishDelete(id int64, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.busy, id)
	if err == nil {
		if i := b.indexLocked(id); i >= 0 {
			b.reviews = append(b.reviews[:i], b.reviews[i+1:]...)
		}
	}
	if b.activeID == id {
		b.resetLocked()
	}
}

// StartEdit pasa la fila id a editing con un borrador inicializado desde la reseña.
func (b *Board) StartEdit(id int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	r, err := b.actionableLocked(id)
	if err != nil {
		return err
	}
	b.activeID, b.mode = id, ModeEditing
	b.draft = Draft{Rating: r.Rating, Comment: r.Comment}
	return nil
}

// UpdateDraft modifica el borrador de la fila en edición.
func (b *Board) UpdateDraft(id int64, d Draft) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.activeID != id || b.mode != ModeEditing {
		return fmt.Errorf("%w: la reseña no está en edición", domain.ErrInvalidInput)
	}
	b.draft = d
	return nil
}

// BeginSave valida el borrador de id, lo marca en curso y lo devuelve para enviarlo al backend.
func (b *Board) BeginSave(id int64) (Draft, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.activeID != id || b.mode != ModeEditing {
		return Draft{}, fmt.Errorf("%w: la reseña no está en edición", domain.ErrInvalidInput)
	}
	if b.busy[id] {
		return Draft{}, domain.ErrReviewBusy
	}
	if err := b.draft.Validate(); err != nil {
		return Draft{}, err
	}
	b.busy[id] = true
	return b.draft, nil
}

// FinishSave cierra el guardado. Con éxito vuelve a viewing (la lista se refresca aparte);
// con error la fila sigue en edición con el borrador intacto.
func (b *Board) FinishSave(id int64, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.busy, id)
	if err == nil && b.activeID == id {
		b.resetLocked()
	}
}

// Cancel descarta la acción activa (confirmación o borrador).
func (b *Board) Cancel() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.resetLocked()
}

// actionableLocked valida que id exista, sea del usuario y no tenga una operación en curso.
func (b *Board) actionableLocked(id int64) (entity.Review, error) {
	i := b.indexLocked(id)
	if i < 0 {
		return entity.Review{}, domain.ErrNotFound
	}
	r := b.reviews[i]
	if !b.ownsLocked(r) {
		return entity.Review{}, domain.ErrNotOwner
	}
	if b.busy[id] {
		return entity.Review{}, domain.ErrReviewBusy
	}
	return r, nil
}

func (b *Board) ownsLocked(r entity.Review) bool {
	return b.userID != 0 && r.User == b.userID
}

func (b *Board) indexLocked(id int64) int {
	for i, r := range b.reviews {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (b *Board) resetLocked() {
	b.activeID, b.mode, b.draft = 0, ModeViewing, Draft{}
}
