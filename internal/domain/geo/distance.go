package geo

import "math"

// EarthRadiusKm radio medio terrestre usado por la fórmula de haversine.
const EarthRadiusKm = 6371.0

// Point coordenadas en grados decimales.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// NewPoint construye un punto a partir de coordenadas opcionales.
// Devuelve nil si falta alguna de las dos.
func NewPoint(lat, lon *float64) *Point {
	if lat == nil || lon == nil {
		return nil
	}
	return &Point{Lat: *lat, Lon: *lon}
}

// Valid indica si las coordenadas están en rango.
func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// DistanceKm distancia de gran círculo entre a y b (haversine).
// ok es false cuando falta alguno de los puntos: "sin distancia", nunca infinito.
func DistanceKm(a, b *Point) (km float64, ok bool) {
	if a == nil || b == nil {
		return 0, false
	}
	lat1, lat2 := radians(a.Lat), radians(b.Lat)
	dLat := radians(b.Lat - a.Lat)
	dLon := radians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h)), true
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
