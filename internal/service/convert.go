package service

import (
	"math"

	"github.com/mmynk/billsplit/internal/editor"
	"github.com/mmynk/billsplit/internal/models"
	"github.com/mmynk/billsplit/pkg/api"
	"github.com/mmynk/billsplit/pkg/money"
)

func billToAPI(b models.Bill) api.Bill {
	out := api.Bill{
		ID:        b.ID,
		Name:      b.Name,
		People:    make([]api.Person, len(b.People)),
		Items:     make([]api.Item, len(b.Items)),
		Tax:       api.Adjustment{Mode: string(b.Tax.Mode), Value: b.Tax.Value},
		Tip:       api.Adjustment{Mode: string(b.Tip.Mode), Value: b.Tip.Value},
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
	for i, p := range b.People {
		out.People[i] = api.Person{ID: p.ID, Name: p.Name}
	}
	for i, it := range b.Items {
		splits := make([]api.Split, len(it.Splits))
		for j, s := range it.Splits {
			splits[j] = api.Split{PersonID: s.PersonID, Ratio: s.Ratio}
		}
		out.Items[i] = api.Item{
			ID:             it.ID,
			Name:           it.Name,
			Cost:           it.Cost,
			CostExpression: it.CostExpression,
			Splits:         splits,
		}
	}
	return out
}

func billFromAPI(b api.Bill) models.Bill {
	out := models.Bill{
		ID:     b.ID,
		Name:   b.Name,
		People: make([]models.Person, len(b.People)),
		Items:  make([]models.Item, len(b.Items)),
		Tax:    models.Adjustment{Mode: models.AdjustmentMode(b.Tax.Mode), Value: b.Tax.Value},
		Tip:    models.Adjustment{Mode: models.AdjustmentMode(b.Tip.Mode), Value: b.Tip.Value},
	}
	people := make(map[string]bool, len(b.People))
	for i, p := range b.People {
		out.People[i] = models.Person{ID: p.ID, Name: p.Name}
		people[p.ID] = true
	}
	for i, it := range b.Items {
		out.Items[i] = models.Item{
			ID:             it.ID,
			Name:           it.Name,
			Cost:           it.Cost,
			CostExpression: it.CostExpression,
			Splits:         splitsFromAPI(it.Splits, people),
		}
	}
	return out
}

// splitsFromAPI keeps one split per person on the bill. Repeated entries for a
// person are summed into the first; non-positive or non-finite ratios are the
// same as no split.
func splitsFromAPI(in []api.Split, people map[string]bool) []models.Split {
	out := make([]models.Split, 0, len(in))
	index := make(map[string]int, len(in))
	for _, s := range in {
		if !people[s.PersonID] || !(s.Ratio > 0) || math.IsInf(s.Ratio, 0) {
			continue
		}
		if j, ok := index[s.PersonID]; ok {
			out[j].Ratio += s.Ratio
			continue
		}
		index[s.PersonID] = len(out)
		out = append(out, models.Split{PersonID: s.PersonID, Ratio: s.Ratio})
	}
	return out
}

func summaryToAPI(s models.BillSummary) api.Summary {
	out := api.Summary{
		Subtotal:   money.NewAmount(s.Subtotal),
		Tax:        money.NewAmount(s.Tax),
		Tip:        money.NewAmount(s.Tip),
		GrandTotal: money.NewAmount(s.GrandTotal),
		People:     make([]api.PersonSplit, len(s.People)),
	}
	for i, p := range s.People {
		items := make([]api.PersonItem, len(p.Items))
		for j, it := range p.Items {
			items[j] = api.PersonItem{
				ItemID:     it.ItemID,
				Name:       it.Name,
				ItemCost:   money.NewAmount(it.ItemCost),
				Ratio:      it.Ratio,
				TotalRatio: it.TotalRatio,
				Amount:     money.NewAmount(it.Amount),
			}
		}
		out.People[i] = api.PersonSplit{
			PersonID:   p.PersonID,
			Name:       p.Name,
			Subtotal:   money.NewAmount(p.Subtotal),
			ShareRatio: p.ShareRatio,
			Tax:        money.NewAmount(p.Tax),
			Tip:        money.NewAmount(p.Tip),
			Total:      money.NewAmount(p.Total),
			Items:      items,
		}
	}
	return out
}

func editsFromAPI(edits []api.Edit) []editor.Edit {
	out := make([]editor.Edit, len(edits))
	for i, e := range edits {
		out[i] = editor.Edit{
			Op:       editor.Op(e.Op),
			PersonID: e.PersonID,
			ItemID:   e.ItemID,
			Name:     e.Name,
			Text:     e.Text,
			Mode:     e.Mode,
			Ratio:    e.Ratio,
		}
	}
	return out
}
