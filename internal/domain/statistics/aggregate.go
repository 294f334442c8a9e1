package statistics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Sample un movimiento visto por las estadísticas.
type Sample struct {
	At        time.Time
	Quantity  int
	UnitPrice *decimal.Decimal // nil: movimiento sin precio, ingreso cero
}

func (s Sample) revenue() decimal.Decimal {
	if s.UnitPrice == nil {
		return decimal.Zero
	}
	return s.UnitPrice.Mul(decimal.NewFromInt(int64(s.Quantity)))
}

// Totals agregados sobre todas las muestras del período.
type Totals struct {
	Count    int
	Quantity int64
	Revenue  decimal.Decimal
}

// Result período con buckets llenos y totales.
type Result struct {
	Period
	Totals Totals
}

// Aggregate reparte las muestras en los buckets del período. Cada muestra cae en
// exactamente un bucket por test semiabierto [Start, End); las que quedan fuera
// de [p.Start, p.End) se ignoran, también en los totales.
func Aggregate(p Period, samples []Sample) Result {
	buckets := make([]Bucket, len(p.Buckets))
	for i, b := range p.Buckets {
		buckets[i] = Bucket{Label: b.Label, Start: b.Start, End: b.End, Revenue: decimal.Zero}
	}
	res := Result{Period: p, Totals: Totals{Revenue: decimal.Zero}}
	res.Buckets = buckets

	for _, s := range samples {
		if s.At.Before(p.Start) || !s.At.Before(p.End) {
			continue
		}
		// buckets contiguos y ordenados: el primero cuyo End es posterior a At contiene a At
		i := sort.Search(len(buckets), func(i int) bool { return s.At.Before(buckets[i].End) })
		if i == len(buckets) {
			continue
		}
		rev := s.revenue()
		b := &buckets[i]
		b.Count++
		b.Quantity += int64(s.Quantity)
		b.Revenue = b.Revenue.Add(rev)

		res.Totals.Count++
		res.Totals.Quantity += int64(s.Quantity)
		res.Totals.Revenue = res.Totals.Revenue.Add(rev)
	}
	return res
}
