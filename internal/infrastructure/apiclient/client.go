// Package apiclient es el único punto de salida hacia la API REST del marketplace.
// Adjunta el token Bearer guardado en el Storage de la sesión y, ante un 401,
// refresca el token una sola vez y repite la llamada original.
package apiclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/zervidtronics-storefront/internal/application/ports"
	"github.com/jhoicas/zervidtronics-storefront/internal/domain"
	"github.com/jhoicas/zervidtronics-storefront/pkg/logger"
)

// Endpoints de credenciales.
const (
	RefreshPath  = "/token/refresh/" // SimpleJWT
	LoginPath    = "/users/login/"
	RegisterPath = "/users/"
)

const (
	refreshMessage  = "La sesión expiró. Inicie sesión nuevamente."
	requestIDHeader = "X-Request-ID"
)

// noRefreshPaths llamadas cuyo 401 se devuelve tal cual: son las que emiten o renuevan credenciales.
var noRefreshPaths = map[string]bool{
	LoginPath:          true,
	RegisterPath:       true,
	"/users/register/": true,
	RefreshPath:        true,
}

// File archivo adjunto en una llamada multipart o descargado del backend.
type File struct {
	Field       string // nombre del campo del formulario (solo multipart)
	Name        string
	ContentType string
	Data        []byte
}

// Call describe una llamada al backend.
type Call struct {
	Method string
	Path   string
	Query  url.Values
	Body   any               // se serializa como JSON
	Form   map[string]string // multipart/form-data junto con Files
	Files  []File
	// Default mensaje para el usuario si el backend no envía uno.
	Default string
}

// Client cliente HTTP de la API con refresh de token deduplicado.
type Client struct {
	http      *resty.Client
	storage   ports.Storage
	log       *logger.Logger
	group     singleflight.Group
	onExpired func()
}

// Options configuración del cliente.
type Options struct {
	BaseURL string
	Timeout time.Duration
	// Transport permite inyectar un http.RoundTripper (tests). nil = el de resty.
	Transport http.RoundTripper
	// OnSessionExpired se invoca cuando el refresh falla y las credenciales se borraron.
	OnSessionExpired func()
}

// New construye el cliente para una sesión. storage es el namespace de esa sesión.
func New(opts Options, storage ports.Storage, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	hc := resty.New().
		SetBaseURL(strings.TrimRight(opts.BaseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "zervidtronics-storefront/1.0")
	if opts.Transport != nil {
		hc.SetTransport(opts.Transport)
	}
	return &Client{http: hc, storage: storage, log: log.Component("apiclient"), onExpired: opts.OnSessionExpired}
}

// Storage namespace de almacenamiento de la sesión.
func (c *Client) Storage() ports.Storage { return c.storage }

// Do ejecuta la llamada; resty decodifica el JSON de una respuesta exitosa en out (si out no es nil).
func (c *Client) Do(ctx context.Context, call Call, out any) error {
	_, err := c.execute(ctx, call, out)
	return err
}

// Download ejecuta la llamada y devuelve el cuerpo crudo (exportaciones binarias).
func (c *Client) Download(ctx context.Context, call Call) (*File, error) {
	resp, err := c.execute(ctx, call, nil)
	if err != nil {
		return nil, err
	}
	return &File{
		Name:        attachmentName(resp.Header().Get("Content-Disposition")),
		ContentType: resp.Header().Get("Content-Type"),
		Data:        resp.Body(),
	}, nil
}

func (c *Client) execute(ctx context.Context, call Call, out any) (*resty.Response, error) {
	reqID := uuid.NewString()
	log := c.log.WithStr("request_id", reqID)

	token, err := c.token(ctx)
	if err != nil {
		return nil, unexpectedError(defaultMessage(call), err)
	}

	resp, err := c.send(ctx, call, token, reqID, out)
	if err != nil {
		log.Warn().Err(err).Str("method", call.Method).Str("path", call.Path).Msg("sin respuesta del servidor")
		return nil, err
	}

	if resp.StatusCode() == http.StatusUnauthorized && !noRefreshPaths[call.Path] {
		original := httpError(resp.StatusCode(), resp.Body(), defaultMessage(call))
		fresh, rerr := c.refresh(ctx, token)
		if rerr != nil {
			log.Info().Err(rerr).Str("path", call.Path).Msg("refresh fallido, credenciales eliminadas")
			original.Err = errors.Join(domain.ErrSessionExpired, original.Err, rerr)
			if original.Message == defaultMessage(call) {
				original.Message = refreshMessage
			}
			if c.onExpired != nil {
				c.onExpired()
			}
			return nil, original
		}
		resp, err = c.send(ctx, call, fresh, reqID, out)
		if err != nil {
			return nil, err
		}
	}

	log.Debug().
		Str("method", call.Method).
		Str("path", call.Path).
		Int("status", resp.StatusCode()).
		Dur("duration", resp.Time()).
		Msg("api")

	if resp.IsError() {
		return nil, httpError(resp.StatusCode(), resp.Body(), defaultMessage(call))
	}
	return resp, nil
}

func (c *Client) send(ctx context.Context, call Call, token, reqID string, out any) (*resty.Response, error) {
	req := c.http.R().
		SetContext(ctx).
		SetHeader(requestIDHeader, reqID)
	if token != "" {
		req.SetAuthToken(token)
	}
	if out != nil {
		// DRF no siempre envía Content-Type; sin forzarlo resty no decodifica.
		req.SetResult(out).ForceContentType("application/json")
	}
	if len(call.Query) > 0 {
		req.SetQueryParamsFromValues(call.Query)
	}
	switch {
	case len(call.Files) > 0 || call.Form != nil:
		req.SetMultipartFormData(call.Form)
		for _, f := range call.Files {
			req.SetMultipartField(f.Field, f.Name, f.ContentType, bytes.NewReader(f.Data))
		}
	case call.Body != nil:
		req.SetHeader("Content-Type", "application/json").SetBody(call.Body)
	}

	resp, err := req.Execute(call.Method, call.Path)
	if err != nil && resp != nil && resp.StatusCode() > 0 && ctx.Err() == nil {
		// hubo respuesta: el fallo es de decodificación
		if resp.IsSuccess() && len(bytes.TrimSpace(resp.Body())) == 0 {
			return resp, nil
		}
		if resp.IsSuccess() {
			return nil, unexpectedError(defaultMessage(call), fmt.Errorf("apiclient: decodificar %s %s: %w", call.Method, call.Path, err))
		}
		return resp, nil
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil, networkError(fmt.Errorf("apiclient: %s %s cancelado: %w", call.Method, call.Path, ctx.Err()))
		}
		var ue *url.Error
		if errors.As(err, &ue) || isTransport(err) {
			return nil, networkError(fmt.Errorf("apiclient: %s %s: %w", call.Method, call.Path, err))
		}
		return nil, unexpectedError(defaultMessage(call), fmt.Errorf("apiclient: %s %s: %w", call.Method, call.Path, err))
	}
	return resp, nil
}

func (c *Client) token(ctx context.Context) (string, error) {
	token, _, err := c.storage.Get(ctx, ports.KeyToken)
	if err != nil {
		return "", fmt.Errorf("apiclient: leer token: %w", err)
	}
	return token, nil
}

type refreshResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// refresh renueva el access token. Las llamadas concurrentes comparten un único refresh;
// si el token ya fue reemplazado desde que falló la llamada, se usa el vigente sin refrescar.
func (c *Client) refresh(ctx context.Context, failed string) (string, error) {
	if cur, err := c.token(ctx); err == nil && cur != "" && cur != failed {
		return cur, nil
	}
	v, err, _ := c.group.Do("refresh", func() (any, error) {
		bg := context.WithoutCancel(ctx)
		if cur, err := c.token(bg); err == nil && cur != "" && cur != failed {
			return cur, nil
		}
		fresh, err := c.doRefresh(bg)
		if err != nil {
			if cerr := c.storage.Clear(bg); cerr != nil {
				c.log.Error().Err(cerr).Msg("no se pudo limpiar el almacenamiento")
			}
			return "", err
		}
		return fresh, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *Client) doRefresh(ctx context.Context) (string, error) {
	refresh, ok, err := c.storage.Get(ctx, ports.KeyRefreshToken)
	if err != nil {
		return "", fmt.Errorf("apiclient: leer refresh_token: %w", err)
	}
	if !ok || refresh == "" {
		return "", fmt.Errorf("apiclient: sin refresh_token: %w", domain.ErrSessionExpired)
	}

	var out refreshResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader(requestIDHeader, uuid.NewString()).
		SetBody(map[string]string{"refresh": refresh}).
		SetResult(&out).
		ForceContentType("application/json").
		Post(RefreshPath)
	if resp != nil && resp.IsError() {
		return "", httpError(resp.StatusCode(), resp.Body(), refreshMessage)
	}
	if err != nil {
		return "", fmt.Errorf("apiclient: refresh: %w", err)
	}
	if out.Access == "" {
		return "", fmt.Errorf("apiclient: refresh sin access token")
	}

	if err := c.storage.Set(ctx, ports.KeyToken, out.Access); err != nil {
		return "", fmt.Errorf("apiclient: guardar token: %w", err)
	}
	if out.Refresh != "" {
		if err := c.storage.Set(ctx, ports.KeyRefreshToken, out.Refresh); err != nil {
			return "", fmt.Errorf("apiclient: guardar refresh_token: %w", err)
		}
	}
	c.log.Debug().Msg("access token renovado")
	return out.Access, nil
}

func defaultMessage(call Call) string {
	if call.Default != "" {
		return call.Default
	}
	return "Error al procesar la solicitud"
}

// isTransport detecta errores de red que resty no envuelve en *url.Error.
func isTransport(err error) bool {
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr)
}

// attachmentName nombre sugerido del Content-Disposition. mime decodifica filename* (RFC 2231)
// y lo prefiere sobre filename.
func attachmentName(disposition string) string {
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		return ""
	}
	return params["filename"]
}
