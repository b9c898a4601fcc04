package http

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/jhoicas/zervidtronics-storefront/internal/application/state"
	"github.com/jhoicas/zervidtronics-storefront/pkg/logger"
)

// SessionFactory construye la sesión con id como namespace de almacenamiento.
type SessionFactory func(id string) *state.Session

type sessionEntry struct {
	sess     *state.Session
	lastSeen time.Time
}

// Registry sesiones vivas del BFF, indexadas por el id de la cookie.
type Registry struct {
	factory SessionFactory
	idle    time.Duration
	log     *logger.Logger
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*sessionEntry
	cron     *cron.Cron
}

// NewRegistry crea el registro. idle <= 0 desactiva la expiración.
func NewRegistry(factory SessionFactory, idle time.Duration, log *logger.Logger) *Registry {
	if log == nil {
		log = logger.Nop()
	}
	return &Registry{
		factory:  factory,
		idle:     idle,
		log:      log.Component("sessions"),
		now:      time.Now,
		sessions: map[string]*sessionEntry{},
	}
}

// Get devuelve la sesión id. Si id no es un uuid se crea una sesión nueva con otro id;
// si es un uuid desconocido se reconstruye (el almacenamiento puede ser persistente)
// y se restaura el usuario guardado. created indica si hay que emitir la cookie.
func (r *Registry) Get(ctx context.Context, id string) (sess *state.Session, sid string, created bool) {
	if _, err := uuid.Parse(id); err != nil {
		id, created = uuid.NewString(), true
	}

	r.mu.Lock()
	e, ok := r.sessions[id]
	if ok {
		e.lastSeen = r.now()
		r.mu.Unlock()
		return e.sess, id, created
	}
	e = &sessionEntry{sess: r.factory(id), lastSeen: r.now()}
	r.sessions[id] = e
	r.mu.Unlock()

	if !created {
		if _, err := e.sess.Auth.Restore(ctx); err != nil {
			r.log.Warn().Err(err).Str("session", id).Msg("no se pudo restaurar la sesión")
		}
	}
	return e.sess, id, created
}

// Len número de sesiones vivas.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep cierra las sesiones inactivas: cancela sus temporizadores y borra sus credenciales.
func (r *Registry) Sweep(ctx context.Context) int {
	if r.idle <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.idle)

	r.mu.Lock()
	var expired []*state.Session
	for id, e := range r.sessions {
		if e.lastSeen.Before(cutoff) {
			expired = append(expired, e.sess)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range expired {
		s.Close()
		if err := s.Storage.Clear(ctx); err != nil {
			r.log.Error().Err(err).Msg("no se pudo limpiar la sesión expirada")
		}
	}
	if len(expired) > 0 {
		r.log.Info().Int("expired", len(expired)).Msg("sesiones inactivas cerradas")
	}
	return len(expired)
}

// Start programa Sweep con la expresión cron spec (ej. "@every 1m").
func (r *Registry) Start(spec string) error {
	c := cron.New()
	if _, err := c.AddFunc(spec, func() { r.Sweep(context.Background()) }); err != nil {
		return err
	}
	r.mu.Lock()
	r.cron = c
	r.mu.Unlock()
	c.Start()
	return nil
}

// Stop detiene el barrido y cancela los temporizadores de todas las sesiones.
// Las credenciales se conservan para que la sesión sobreviva a un reinicio.
func (r *Registry) Stop() {
	r.mu.Lock()
	c := r.cron
	r.cron = nil
	sessions := r.sessions
	r.sessions = map[string]*sessionEntry{}
	r.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
	}
	for _, e := range sessions {
		e.sess.Close()
	}
}
