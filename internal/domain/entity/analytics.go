package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Analytics tablero del administrador.
type Analytics struct {
	TopSearches      []SearchCount    `json:"top_searches"`
	StockDemands     []StockDemand    `json:"stock_demands"`
	InventorySummary InventorySummary `json:"inventory_summary"`
}

// SearchCount término buscado y número de búsquedas.
type SearchCount struct {
	Query string `json:"query"`
	Count int    `json:"count"`
}

// StockDemand componentes más solicitados en alertas de stock.
type StockDemand struct {
	ComponentName string `json:"component__name"`
	Total         int    `json:"total"`
}

// InventorySummary resumen global del inventario.
type InventorySummary struct {
	TotalValue      decimal.Decimal `json:"total_value"`
	OutOfStockCount int             `json:"out_of_stock_count"`
	TotalComponents int             `json:"total_components"`
}

// PlatformStats estadísticas de plataforma (platform-stats).
type PlatformStats struct {
	TotalStores         int               `json:"total_stores"`
	TotalComponents     int               `json:"total_components"`
	LowStockAlerts      int               `json:"low_stock_alerts"`
	RecentRegistrations []StoreRegistered `json:"recent_registrations"`
}

// StoreRegistered tienda registrada recientemente.
type StoreRegistered struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// SearchSuggestions sugerencias de búsqueda populares y recientes del usuario.
type SearchSuggestions struct {
	Popular []string `json:"popular"`
	Recent  []string `json:"recent"`
}
