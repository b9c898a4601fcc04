package http

import (
	"encoding/json"
	"io"
	"math"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/zervidtronics-storefront/internal/application/dto"
	"github.com/jhoicas/zervidtronics-storefront/internal/application/forms"
	"github.com/jhoicas/zervidtronics-storefront/internal/domain/catalog"
	"github.com/jhoicas/zervidtronics-storefront/internal/domain/geo"
)

// productFilter lee los filtros del catálogo de la query.
func productFilter(c *fiber.Ctx) (catalog.ProductFilter, error) {
	fe := forms.FieldErrors{}
	f := catalog.ProductFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Mounting: c.Query("mounting"),
		MPN:      c.Query("mpn"),
		Sort:     c.Query("sort"),
	}
	f.MinPrice = nullDecimal(c.Query("min_price"), "min_price", "Precio mínimo inválido", fe)
	f.MaxPrice = nullDecimal(c.Query("max_price"), "max_price", "Precio máximo inválido", fe)
	switch f.Sort {
	case catalog.SortRelevance, catalog.SortPriceAsc, catalog.SortPriceDesc, catalog.SortName:
	default:
		fe["sort"] = "Orden inválido"
	}
	if len(fe) > 0 {
		return f, fe
	}
	return f, nil
}

// storeFilter lee los filtros del mapa de tiendas. Sin lat/lon no hay origen.
func storeFilter(c *fiber.Ctx) (catalog.StoreFilter, error) {
	fe := forms.FieldErrors{}
	f := catalog.DefaultStoreFilter()
	f.Search = c.Query("search")
	f.Sort = c.Query("sort")
	if v := c.Query("min_rating"); v != "" {
		r, err := finiteFloat(v)
		if err != nil || r < 0 || r > 5 {
			fe["min_rating"] = "Calificación mínima inválida"
		}
		f.MinRating = r
	}
	if v := c.Query("max_distance"); v != "" {
		d, err := finiteFloat(v)
		if err != nil || d <= 0 {
			fe["max_distance"] = "Distancia máxima inválida"
		}
		f.MaxDistanceKm = d
	}
	lat, lon := c.Query("lat"), c.Query("lon")
	if lat != "" || lon != "" {
		la, err1 := finiteFloat(lat)
		lo, err2 := finiteFloat(lon)
		p := geo.Point{Lat: la, Lon: lo}
		if err1 != nil || err2 != nil || !p.Valid() {
			fe["origin"] = "Ubicación inválida"
		} else {
			f.Origin = &p
		}
	}
	switch f.Sort {
	case "", catalog.SortDistance, catalog.SortRating, catalog.SortName:
	default:
		fe["sort"] = "Orden inválido"
	}
	if len(fe) > 0 {
		return f, fe
	}
	return f, nil
}

// finiteFloat rechaza NaN e Inf, que desactivarían las comparaciones del filtro.
func finiteFloat(v string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, strconv.ErrRange
	}
	return f, nil
}

func nullDecimal(v, field, msg string, fe forms.FieldErrors) decimal.NullDecimal {
	v = strings.TrimSpace(v)
	if v == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		fe[field] = msg
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// componentForm arma el ComponentInput desde un multipart/form-data.
func componentForm(c *fiber.Ctx) (dto.ComponentInput, error) {
	fe := forms.FieldErrors{}
	in := dto.ComponentInput{
		Name:         c.FormValue("name"),
		MPN:          c.FormValue("mpn"),
		Description:  c.FormValue("description"),
		DatasheetURL: c.FormValue("datasheet_url"),
		IsAvailable:  formBool(c.FormValue("is_available"), true),
		IsOnOffer:    formBool(c.FormValue("is_on_offer"), false),
	}
	if v := c.FormValue("price"); v != "" {
		if d := nullDecimal(v, "price", "Precio inválido", fe); d.Valid {
			in.Price = d.Decimal
		}
	}
	in.OfferPrice = nullDecimal(c.FormValue("offer_price"), "offer_price", "Precio de oferta inválido", fe)
	if v := c.FormValue("stock"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			fe["stock"] = "Stock inválido"
		} else {
			in.Stock = &n
		}
	}
	if v := c.FormValue("category"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			fe["category"] = "Categoría inválida"
		}
		in.Category = id
	}
	if v := c.FormValue("technical_specs"); v != "" {
		if err := json.Unmarshal([]byte(v), &in.TechnicalSpecs); err != nil {
			fe["technical_specs"] = "Ficha técnica inválida"
		}
	}
	img, err := formFile(c, "image")
	if err != nil {
		return in, err
	}
	in.Image = img
	if len(fe) > 0 {
		return in, fe
	}
	return in, nil
}

// storeForm arma el StoreInput desde un multipart/form-data.
func storeForm(c *fiber.Ctx) (dto.StoreInput, error) {
	fe := forms.FieldErrors{}
	in := dto.StoreInput{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Address:     c.FormValue("address"),
		Latitude:    nullDecimal(c.FormValue("latitude"), "latitude", "Latitud inválida", fe),
		Longitude:   nullDecimal(c.FormValue("longitude"), "longitude", "Longitud inválida", fe),
	}
	img, err := formFile(c, "image")
	if err != nil {
		return in, err
	}
	in.Image = img
	if len(fe) > 0 {
		return in, fe
	}
	return in, nil
}

func formBool(v string, def bool) bool {
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// formFile lee un archivo opcional del formulario. Sin archivo devuelve nil.
func formFile(c *fiber.Ctx, field string) (*dto.Upload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}
	return readUpload(fh)
}

func readUpload(fh *multipart.FileHeader) (*dto.Upload, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, forms.FieldErrors{fh.Filename: "No se pudo leer el archivo"}
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, forms.FieldErrors{fh.Filename: "No se pudo leer el archivo"}
	}
	return &dto.Upload{Name: fh.Filename, ContentType: fh.Header.Get("Content-Type"), Data: data}, nil
}
