package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/jhoicas/zervidtronics-storefront/internal/domain/catalog"
	"github.com/jhoicas/zervidtronics-storefront/internal/domain/entity"
	"github.com/jhoicas/zervidtronics-storefront/internal/domain/review"
	"github.com/jhoicas/zervidtronics-storefront/internal/infrastructure/pdf"
)

var (
	nowFunc           = time.Now
	stdout  io.Writer = os.Stdout
)

func printJSON(v any) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func table(header ...string) *tabwriter.Writer {
	w := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(header, "\t"))
	return w
}

func printComponents(list []entity.Component) {
	w := table("ID", "MPN", "NOMBRE", "TIENDA", "PRECIO", "STOCK")
	for _, c := range list {
		price := pdf.Money(c.EffectivePrice())
		if c.IsOnOffer && c.OfferPrice.Valid {
			price += " (antes " + pdf.Money(c.Price) + ")"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d %s\n", c.ID, c.MPN, c.Name, c.StoreName, price, c.Stock, c.StockStatus)
	}
	_ = w.Flush()
}

func printStores(views []catalog.StoreView) {
	w := table("ID", "TIENDA", "DIRECCIÓN", "CALIFICACIÓN", "DISTANCIA")
	for _, v := range views {
		dist := "-"
		if v.DistanceKm != nil {
			dist = fmt.Sprintf("%.1f km", *v.DistanceKm)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%.1f\t%s\n", v.ID, v.Name, v.Address, v.RatingAverage, dist)
	}
	_ = w.Flush()
}

func printReviews(rows []review.Row) {
	w := table("ID", "AUTOR", "★", "COMENTARIO", "")
	for _, r := range rows {
		mine := ""
		if r.CanEdit {
			mine = "(tuya)"
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n", r.ID, r.Author(), r.Rating, r.Comment, mine)
	}
	_ = w.Flush()
}

func printWishlist(wl *entity.Wishlist) {
	if wl == nil {
		fmt.Fprintln(stdout, "No hay lista seleccionada")
		return
	}
	fmt.Fprintf(stdout, "%s (#%d)\n\n", wl.Name, wl.ID)
	w := table("ID", "COMPONENTE", "CANT", "SUBTOTAL")
	for _, it := range wl.Items {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", it.Component.ID, it.Component.Name, it.Quantity, pdf.Money(it.Subtotal))
	}
	_ = w.Flush()
	fmt.Fprintln(stdout, "\nTotal:", pdf.Money(wl.TotalBudget))
}

func printBudget(b *entity.Budget) {
	fmt.Fprintf(stdout, "%s · %s · %s\n\n", b.ProjectName, b.User, b.Date)
	w := table("CANT", "COMPONENTE", "TIENDA", "P.UNIT", "SUBTOTAL")
	for _, it := range b.Items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", it.Quantity, it.Component, it.Store, pdf.Money(it.UnitPrice), pdf.Money(it.Subtotal))
	}
	_ = w.Flush()
	fmt.Fprintln(stdout, "\nTotal:", pdf.Money(b.TotalBudget))
}

func printFlash(e *env) {
	if msg, ok := e.sess.Flash.Current(); ok {
		fmt.Fprintln(stdout, msg.Text)
	}
}
