package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/zervidtronics-storefront/internal/application/ports"
	"github.com/jhoicas/zervidtronics-storefront/internal/application/state"
	"github.com/jhoicas/zervidtronics-storefront/internal/infrastructure/apiclient"
	"github.com/jhoicas/zervidtronics-storefront/internal/infrastructure/marketplace"
	"github.com/jhoicas/zervidtronics-storefront/internal/infrastructure/pdf"
	"github.com/jhoicas/zervidtronics-storefront/internal/infrastructure/storage"
	apphttp "github.com/jhoicas/zervidtronics-storefront/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const cookieName = "sf_session"

var userIDs = map[string]int64{"cliente": 1, "proveedor": 2, "admin": 3}

// otra cuenta de cliente con sus propias listas.
const otherClient = "otra.cliente"

// backend simula la API REST del marketplace.
type backend struct {
	deletes atomic.Int32
}

func (b *backend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/users/login/", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		name := strings.TrimSuffix(in["email"], "@zt.co")
		role := name
		id, ok := userIDs[name]
		if name == otherClient {
			role, id, ok = "cliente", 4, true
		}
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"No active account found with the given credentials"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access":  "access-" + name,
			"refresh": "refresh-" + name,
			"role":    role,
			"user":    map[string]any{"id": id, "email": in["email"], "role": role},
		})
	})
	mux.HandleFunc("GET /api/reviews/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id":10,"user":1,"user_email":"cliente@zt.co","store":1,"rating":5,"comment":"Excelente"},
			{"id":11,"user":2,"user_email":"otro@zt.co","store":1,"rating":2,"comment":"Lento"}
		]`))
	})
	mux.HandleFunc("DELETE /api/reviews/{id}/", func(w http.ResponseWriter, r *http.Request) {
		b.deletes.Add(1)
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /api/wishlist/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "Bearer access-"+otherClient {
			_, _ = w.Write([]byte(`[{"id":2,"name":"Estación meteorológica","items":[],"total_budget":"0"}]`))
			return
		}
		_, _ = w.Write([]byte(`[{"id":1,"name":"Mi Lista de Deseos","items":[],"total_budget":"0"}]`))
	})
	mux.HandleFunc("GET /api/wishlist/2/export_budget/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"project_name":"Estación","user":"otra.cliente@zt.co","date":"14/10/2026","total_budget":"0","items":[]}`))
	})
	mux.HandleFunc("GET /api/wishlist/1/export_budget/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"project_name":"Robot","user":"cliente@zt.co","date":"14/10/2026","total_budget":"90000",
			"items":[{"component":"ESP32","store":"ElectroAndes","quantity":2,"unit_price":"45000","subtotal":"90000"}]}`))
	})
	mux.HandleFunc("GET /api/stores/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id":1,"name":"Zona Chips","rating_average":4.8},
			{"id":2,"name":"ElectroAndes","rating_average":3.9}
		]`))
	})
	mux.HandleFunc("GET /api/analytics/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	return mux
}

type harness struct {
	t      *testing.T
	app    *fiber.App
	back   *backend
	cookie string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	b := &backend{}
	srv := httptest.NewServer(b.handler())
	t.Cleanup(srv.Close)

	mem := storage.NewMemory()
	reg := apphttp.NewRegistry(func(id string) *state.Session {
		return marketplace.NewSession(apiclient.Options{BaseURL: srv.URL + "/api", Timeout: 5 * time.Second}, mem.Scope(id), time.Second, nil)
	}, time.Hour, nil)
	t.Cleanup(reg.Stop)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Registry: reg,
		Cookie:   apphttp.CookieConfig{Name: cookieName, MaxAge: time.Hour},
		PDF:      pdf.NewBudgetGenerator(),
	})
	return &harness{t: t, app: app, back: b}
}

// do lanza la petición con la cookie de sesión y guarda la que emita el servidor.
func (h *harness) do(method, path string, body any) *http.Response {
	h.t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(h.t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if h.cookie != "" {
		req.AddCookie(&http.Cookie{Name: cookieName, Value: h.cookie})
	}
	resp, err := h.app.Test(req, -1)
	require.NoError(h.t, err)
	for _, c := range resp.Cookies() {
		if c.Name == cookieName {
			h.cookie = c.Value
		}
	}
	h.t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (h *harness) login(role string) {
	h.t.Helper()
	resp := h.do(http.MethodPost, "/api/auth/login", map[string]string{"email": role + "@zt.co", "password": "secreto"})
	require.Equal(h.t, http.StatusOK, resp.StatusCode)
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

type errorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

type rowsBody struct {
	Rows []struct {
		ID      int64  `json:"id"`
		Mode    string `json:"mode"`
		CanEdit bool   `json:"can_edit"`
	} `json:"rows"`
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_SinSesionRetorna401YEmiteCookie(t *testing.T) {
	h := newHarness(t)
	resp := h.do(http.MethodGet, "/api/wishlists", nil)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", decode[errorBody](t, resp).Code)
	assert.NotEmpty(t, h.cookie, "la primera petición debe emitir la cookie de sesión")
}

func TestRequireRole_ProveedorBloqueadoEnListas(t *testing.T) {
	h := newHarness(t)
	h.login("proveedor")

	resp := h.do(http.MethodGet, "/api/wishlists", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", decode[errorBody](t, resp).Code)
}

func TestRequireRole_ClienteAccedeAListas(t *testing.T) {
	h := newHarness(t)
	h.login("cliente")

	resp := h.do(http.MethodGet, "/api/wishlists", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	lists := decode[[]map[string]any](t, resp)
	require.Len(t, lists, 1)
	assert.Equal(t, "Mi Lista de Deseos", lists[0]["name"])
}

func TestRequireRole_AdminAccedeAEstadisticas(t *testing.T) {
	h := newHarness(t)
	h.login("admin")

	assert.Equal(t, http.StatusOK, h.do(http.MethodGet, "/api/admin/analytics", nil).StatusCode)

	h.login("cliente")
	assert.Equal(t, http.StatusForbidden, h.do(http.MethodGet, "/api/admin/analytics", nil).StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de rutas
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesInvalidasDevuelveMensajeDelBackend(t *testing.T) {
	h := newHarness(t)
	resp := h.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "nadie@zt.co", "password": "x"})

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "No active account found with the given credentials", decode[errorBody](t, resp).Message)
}

func TestMe_TrasLoginIndicaRutaDeInicio(t *testing.T) {
	h := newHarness(t)
	h.login("proveedor")

	me := decode[apphttp.MeResponse](t, h.do(http.MethodGet, "/api/auth/me", nil))
	assert.True(t, me.Authenticated)
	assert.Equal(t, "/inventory", me.Home)

	h.do(http.MethodPost, "/api/auth/logout", nil)
	me = decode[apphttp.MeResponse](t, h.do(http.MethodGet, "/api/auth/me", nil))
	assert.False(t, me.Authenticated)
}

func TestReviews_NoAutorNoPuedeEliminar(t *testing.T) {
	h := newHarness(t)
	h.login("cliente")

	rows := decode[rowsBody](t, h.do(http.MethodGet, "/api/stores/1/reviews", nil))
	require.Len(t, rows.Rows, 2)
	assert.True(t, rows.Rows[0].CanEdit)
	assert.False(t, rows.Rows[1].CanEdit)

	resp := h.do(http.MethodPost, "/api/stores/1/reviews/11/delete/request", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "NOT_OWNER", decode[errorBody](t, resp).Code)
	assert.Zero(t, h.back.deletes.Load())
}

func TestReviews_EliminarConConfirmacion(t *testing.T) {
	h := newHarness(t)
	h.login("cliente")
	h.do(http.MethodGet, "/api/stores/1/reviews", nil)

	rows := decode[rowsBody](t, h.do(http.MethodPost, "/api/stores/1/reviews/10/delete/request", nil))
	require.Len(t, rows.Rows, 2)
	assert.Equal(t, "confirming_delete", rows.Rows[0].Mode)

	resp := h.do(http.MethodPost, "/api/stores/1/reviews/10/delete/confirm", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rows = decode[rowsBody](t, resp)
	require.Len(t, rows.Rows, 1)
	assert.Equal(t, int64(11), rows.Rows[0].ID)
	assert.Equal(t, int32(1), h.back.deletes.Load())

	flash := decode[state.FlashMessage](t, h.do(http.MethodGet, "/api/session/flash", nil))
	assert.Equal(t, state.FlashSuccess, flash.Kind)
	assert.Equal(t, state.MsgReviewDeleted, flash.Text)
}

func TestReviews_SinSesionNoPuedeCrear(t *testing.T) {
	h := newHarness(t)
	resp := h.do(http.MethodPost, "/api/stores/1/reviews", map[string]any{"rating": 5, "comment": "Bien"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCatalogo_FiltroInvalidoRetorna400(t *testing.T) {
	h := newHarness(t)
	resp := h.do(http.MethodGet, "/api/components?min_price=abc&sort=azar", nil)

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[errorBody](t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Contains(t, body.Fields, "min_price")
	assert.Contains(t, body.Fields, "sort")
}

func TestTiendas_UbicacionFueraDeRango(t *testing.T) {
	h := newHarness(t)
	resp := h.do(http.MethodGet, "/api/stores?lat=95&lon=-75", nil)

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode[errorBody](t, resp).Fields, "origin")
}

func TestPresupuesto_PDF(t *testing.T) {
	h := newHarness(t)
	h.login("cliente")

	resp := h.do(http.MethodGet, "/api/wishlists/selected/budget?format=pdf", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "Prototipo_Robot.pdf")

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestPresupuesto_JSON(t *testing.T) {
	h := newHarness(t)
	h.login("cliente")

	resp := h.do(http.MethodGet, "/api/wishlists/selected/budget", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	b := decode[map[string]any](t, resp)
	assert.Equal(t, "Robot", b["project_name"])
}

func TestListas_LoginConOtraCuentaNoReusaLasAnteriores(t *testing.T) {
	h := newHarness(t)
	h.login("cliente")
	lists := decode[[]map[string]any](t, h.do(http.MethodGet, "/api/wishlists", nil))
	require.Len(t, lists, 1)
	assert.EqualValues(t, 1, lists[0]["id"])

	// misma cookie, otra cuenta: el presupuesto debe salir de la lista propia
	h.login(otherClient)
	resp := h.do(http.MethodGet, "/api/wishlists/selected/budget", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Estación", decode[map[string]any](t, resp)["project_name"])
}

func TestTiendas_NaNNoEsUnFiltroValido(t *testing.T) {
	h := newHarness(t)
	resp := h.do(http.MethodGet, "/api/stores?min_rating=NaN&max_distance=Inf", nil)

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[errorBody](t, resp)
	assert.Contains(t, body.Fields, "min_rating")
	assert.Contains(t, body.Fields, "max_distance")
}

func TestTiendas_OrdenPorNombre(t *testing.T) {
	h := newHarness(t)
	resp := h.do(http.MethodGet, "/api/stores?sort=name", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	views := decode[[]map[string]any](t, resp)
	require.Len(t, views, 2)
	assert.Equal(t, "ElectroAndes", views[0]["name"])
	assert.Equal(t, "Zona Chips", views[1]["name"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Registry
// ──────────────────────────────────────────────────────────────────────────────

func TestRegistry_SweepCierraSesionesInactivas(t *testing.T) {
	mem := storage.NewMemory()
	reg := apphttp.NewRegistry(func(id string) *state.Session {
		return marketplace.NewSession(apiclient.Options{BaseURL: "http://127.0.0.1:1/api"}, mem.Scope(id), time.Second, nil)
	}, time.Millisecond, nil)
	ctx := context.Background()

	sess, id, created := reg.Get(ctx, "no-es-uuid")
	require.True(t, created)
	require.NoError(t, sess.Storage.Set(ctx, ports.KeyToken, "access"))
	assert.Equal(t, 1, reg.Len())

	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, 1, reg.Sweep(ctx))
	assert.Zero(t, reg.Len())

	_, ok, err := mem.Scope(id).Get(ctx, ports.KeyToken)
	require.NoError(t, err)
	assert.False(t, ok, "las credenciales de una sesión expirada se eliminan")
}

func TestRegistry_ReconstruyeSesionConocida(t *testing.T) {
	mem := storage.NewMemory()
	reg := apphttp.NewRegistry(func(id string) *state.Session {
		return marketplace.NewSession(apiclient.Options{BaseURL: "http://127.0.0.1:1/api"}, mem.Scope(id), time.Second, nil)
	}, time.Hour, nil)
	defer reg.Stop()
	ctx := context.Background()

	const id = "6f1c2d64-3b7e-4a44-9f0e-4a3f7cf1b0a1"
	st := mem.Scope(id)
	require.NoError(t, st.Set(ctx, ports.KeyToken, "access"))
	require.NoError(t, st.Set(ctx, ports.KeyUserData, fmt.Sprintf(`{"id":%d,"email":"cliente@zt.co","role":"cliente"}`, 1)))

	sess, sid, created := reg.Get(ctx, id)
	assert.False(t, created)
	assert.Equal(t, id, sid)
	require.NotNil(t, sess.Auth.User())
	assert.Equal(t, int64(1), sess.Auth.UserID())
}

func TestRegistry_StartRechazaExpresionInvalida(t *testing.T) {
	reg := apphttp.NewRegistry(func(string) *state.Session { return nil }, time.Hour, nil)
	assert.Error(t, reg.Start("cada rato"))
	reg.Stop()
}
