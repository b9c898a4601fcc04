package state

import (
	"sync"
	"time"
)

// DefaultFlashTTL tiempo que un mensaje transitorio permanece visible.
const DefaultFlashTTL = 3 * time.Second

// Tipos de mensaje transitorio.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// FlashMessage mensaje de estado para la interfaz.
type FlashMessage struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// Flash mensaje transitorio con temporizador cancelable.
// Un mensaje nuevo reemplaza al anterior y reinicia el temporizador; Close cancela todo.
type Flash struct {
	mu     sync.Mutex
	ttl    time.Duration
	msg    *FlashMessage
	timer  *time.Timer
	seq    uint64
	closed bool
}

// NewFlash crea el flash. ttl <= 0 usa DefaultFlashTTL.
func NewFlash(ttl time.Duration) *Flash {
	if ttl <= 0 {
		ttl = DefaultFlashTTL
	}
	return &Flash{ttl: ttl}
}

// Show publica un mensaje. No hace nada si el flash ya se cerró.
func (f *Flash) Show(kind, text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.stopLocked()
	f.seq++
	seq := f.seq
	f.msg = &FlashMessage{Kind: kind, Text: text}
	f.timer = time.AfterFunc(f.ttl, func() { f.expire(seq) })
}

// Success atajo para Show(FlashSuccess, text).
func (f *Flash) Success(text string) { f.Show(FlashSuccess, text) }

// Error atajo para Show(FlashError, text).
func (f *Flash) Error(text string) { f.Show(FlashError, text) }

// Current mensaje visible, si hay uno.
func (f *Flash) Current() (FlashMessage, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.msg == nil {
		return FlashMessage{}, false
	}
	return *f.msg, true
}

// Clear oculta el mensaje actual.
func (f *Flash) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopLocked()
	f.msg = nil
}

// Close cancela el temporizador pendiente. Se llama al cerrar la sesión dueña.
func (f *Flash) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopLocked()
	f.msg = nil
	f.closed = true
}

// expire ignora temporizadores de mensajes ya reemplazados.
func (f *Flash) expire(seq uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.seq == seq {
		f.msg = nil
		f.timer = nil
	}
}

func (f *Flash) stopLocked() {
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
}
