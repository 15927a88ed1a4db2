package cache

import (
	"sort"

	"github.com/goodnatureofminers/stas-toolkit/internal/model"
)

// selectExact picks outputs covering amount:
// an exact match alone, else the largest-first run of outputs below amount that
// reaches it, else the smallest output above amount.
func selectExact(candidates []model.OutPoint, amount uint64) ([]model.OutPoint, error) {
	if amount == 0 {
		return nil, ErrZeroAmount
	}
	sorted := append([]model.OutPoint(nil), candidates...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Satoshis < sorted[j].Satoshis })

	total := model.SumSatoshis(sorted)
	if total < amount {
		return nil, &model.NotEnoughFundsError{Requested: amount, Available: total}
	}

	below := 0
	for below < len(sorted) && sorted[below].Satoshis < amount {
		below++
	}
	if below < len(sorted) && sorted[below].Satoshis == amount {
		return []model.OutPoint{sorted[below]}, nil
	}

	var acc uint64
	for i := below - 1; i >= 0; i-- {
		acc += sorted[i].Satoshis
		if acc >= amount {
			return append([]model.OutPoint(nil), sorted[i:below]...), nil
		}
	}

	return []model.OutPoint{sorted[below]}, nil
}
