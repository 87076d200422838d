package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/victorolivaresat/bono-go/internal/dto"
	"github.com/victorolivaresat/bono-go/internal/model"
	"github.com/victorolivaresat/bono-go/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── In-memory repository stubs ───────────────────────────────────────────────

type stubBonoRepo struct {
	bonos map[uuid.UUID]*model.Bono
	seq   int
}

func newStubBonoRepo() *stubBonoRepo {
	return &stubBonoRepo{bonos: make(map[uuid.UUID]*model.Bono)}
}

func (r *stubBonoRepo) Create(_ context.Context, b *model.Bono) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.CreatedAt.IsZero() {
		// Monotonic timestamps so "newest first" is deterministic.
		r.seq++
		b.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(r.seq) * time.Second)
	}
	r.bonos[b.ID] = b
	return nil
}

func (r *stubBonoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Bono, error) {
	b, ok := r.bonos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}

func (r *stubBonoRepo) FindByDocumento(_ context.Context, documentType, documentNumber string) (*model.Bono, error) {
	var matches []*model.Bono
	for _, b := range r.bonos {
		if b.DocumentType == documentType && b.DocumentNumber == documentNumber {
			matches = append(matches, b)
		}
	}
	if len(matches) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].CreatedAt.After(matches[j].CreatedAt) })
	return matches[0], nil
}

func (r *stubBonoRepo) ExistsByDocumento(_ context.Context, documentType, documentNumber string) (bool, error) {
	for _, b := range r.bonos {
		if b.DocumentType == documentType && b.DocumentNumber == documentNumber {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubBonoRepo) List(_ context.Context, filter dto.BonoFilter) ([]model.Bono, error) {
	var out []model.Bono
	for _, b := range r.bonos {
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		if filter.Search != "" {
			q := strings.ToLower(filter.Search)
			ticket := ""
			if b.TicketNumber != nil {
				ticket = *b.TicketNumber
			}
			if !strings.Contains(strings.ToLower(b.ClientName), q) &&
				!strings.Contains(strings.ToLower(ticket), q) &&
				!strings.Contains(strings.ToLower(b.DocumentNumber), q) {
				continue
			}
		}
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubBonoRepo) Update(_ context.Context, b *model.Bono) error {
	if _, ok := r.bonos[b.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.bonos[b.ID] = b
	return nil
}

func (r *stubBonoRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.bonos, id)
	return nil
}

func (r *stubBonoRepo) CountByTipo(_ context.Context, tipoBonoID uuid.UUID) (int64, error) {
	var n int64
	for _, b := range r.bonos {
		if b.TipoBonoID == tipoBonoID {
			n++
		}
	}
	return n, nil
}

func (r *stubBonoRepo) CountValidadosPorUsuario(_ context.Context) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64)
	for _, b := range r.bonos {
		if b.ValidatedBy != nil {
			counts[*b.ValidatedBy]++
		}
	}
	return counts, nil
}

var _ repository.BonoRepository = (*stubBonoRepo)(nil)

type stubTipoBonoRepo struct {
	tipos map[uuid.UUID]*model.TipoBono
	bonos *stubBonoRepo
	seq   int
}

func newStubTipoBonoRepo(bonos *stubBonoRepo) *stubTipoBonoRepo {
	return &stubTipoBonoRepo{tipos: make(map[uuid.UUID]*model.TipoBono), bonos: bonos}
}

func (r *stubTipoBonoRepo) Create(_ context.Context, t *model.TipoBono) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.CreatedAt.IsZero() {
		r.seq++
		t.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(r.seq) * time.Second)
	}
	r.tipos[t.ID] = t
	return nil
}

func (r *stubTipoBonoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.TipoBono, error) {
	t, ok := r.tipos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (r *stubTipoBonoRepo) List(_ context.Context) ([]model.TipoBono, error) {
	out := make([]model.TipoBono, 0, len(r.tipos))
	for _, t := range r.tipos {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubTipoBonoRepo) CountBonosPorTipo(ctx context.Context) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64)
	if r.bonos == nil {
		return counts, nil
	}
	for _, b := range r.bonos.bonos {
		counts[b.TipoBonoID]++
	}
	return counts, nil
}

func (r *stubTipoBonoRepo) Update(_ context.Context, t *model.TipoBono) error {
	if _, ok := r.tipos[t.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.tipos[t.ID] = t
	return nil
}

func (r *stubTipoBonoRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.tipos, id)
	return nil
}

var _ repository.TipoBonoRepository = (*stubTipoBonoRepo)(nil)

type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) FindByEmail(_ context.Context, email string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUsuarioRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}

func (r *stubUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	out := make([]model.Usuario, 0, len(r.usuarios))
	for _, u := range r.usuarios {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

// ── Fixtures ─────────────────────────────────────────────────────────────────

func fechaUTC(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func crearTipoDemo(r *stubTipoBonoRepo, inicio, fin time.Time) *model.TipoBono {
	tipo := &model.TipoBono{
		Nombre:      "Promo " + uuid.NewString()[:8],
		FechaInicio: inicio,
		FechaFin:    fin,
		Activo:      true,
	}
	_ = r.Create(context.Background(), tipo)
	return tipo
}

func crearBonoDemo(r *stubBonoRepo, tipoID uuid.UUID, status, docType, docNumber string) *model.Bono {
	bono := &model.Bono{
		ClientName:     "Cliente Demo",
		TipoBonoID:     tipoID,
		DocumentType:   docType,
		DocumentNumber: docNumber,
		PhoneNumber:    "999888777",
		Status:         status,
	}
	_ = r.Create(context.Background(), bono)
	return bono
}
