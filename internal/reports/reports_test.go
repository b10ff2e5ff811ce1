package reports

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ygglist/ygglist/internal/domain"
)

func purchase(dateISO, store string, items ...domain.Item) domain.Purchase {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return domain.Purchase{ID: dateISO + store, DateISO: dateISO, Store: store, Items: items, Total: total}
}

func item(name, category, price string) domain.Item {
	return domain.Item{
		Name:     name,
		Qty:      decimal.NewFromInt(1),
		Unit:     "un",
		Price:    decimal.RequireFromString(price),
		Category: category,
	}
}

func TestBuild_Totals(t *testing.T) {
	history := []domain.Purchase{
		purchase("2026-03-01", "Mercado",
			item("Arroz", "Mercearia", "25.00"),
			item("Banana", "Hortifruti", "5.00")),
		purchase("2026-03-03", "Feira",
			item("Alface", "Hortifruti", "3.50")),
		purchase("2026-02-28", "Mercado", // outside the range
			item("Café", "Mercearia", "19.90")),
	}

	r, err := Build(history, "2026-03-01", "2026-03-03")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if want := decimal.RequireFromString("33.5"); !r.Total.Equal(want) {
		t.Errorf("Total = %s, want %s", r.Total, want)
	}

	if len(r.ByCategory) != 2 {
		t.Fatalf("ByCategory has %d rows, want 2", len(r.ByCategory))
	}
	if r.ByCategory[0].Label != "Mercearia" {
		t.Errorf("Top category = %s, want Mercearia", r.ByCategory[0].Label)
	}
	if want := decimal.RequireFromString("74.63"); !r.ByCategory[0].Pct.Equal(want) {
		t.Errorf("Top category pct = %s, want %s", r.ByCategory[0].Pct, want)
	}

	if len(r.ByStore) != 2 {
		t.Fatalf("ByStore has %d rows, want 2", len(r.ByStore))
	}
	if r.ByStore[0].Label != "Mercado" {
		t.Errorf("Top store = %s, want Mercado", r.ByStore[0].Label)
	}
}

func TestBuild_DailySeriesZeroFilled(t *testing.T) {
	history := []domain.Purchase{
		purchase("2026-03-02", "Mercado", item("Arroz", "Mercearia", "25.00")),
	}

	r, err := Build(history, "2026-03-01", "2026-03-04")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if len(r.Daily) != 4 {
		t.Fatalf("Daily has %d points, want 4", len(r.Daily))
	}
	wantDates := []string{"2026-03-01", "2026-03-02", "2026-03-03", "2026-03-04"}
	for i, p := range r.Daily {
		if p.DateISO != wantDates[i] {
			t.Errorf("Daily[%d].DateISO = %s, want %s", i, p.DateISO, wantDates[i])
		}
	}
	if !r.Daily[0].Amount.IsZero() || !r.Daily[2].Amount.IsZero() {
		t.Error("Expected zero amounts on days without purchases")
	}
	if want := decimal.RequireFromString("25"); !r.Daily[1].Amount.Equal(want) {
		t.Errorf("Daily[1].Amount = %s, want %s", r.Daily[1].Amount, want)
	}
}

func TestBuild_EmptyRange(t *testing.T) {
	r, err := Build(nil, "2026-03-01", "2026-03-03")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !r.Total.IsZero() {
		t.Errorf("Total = %s, want 0", r.Total)
	}
	if len(r.ByCategory) != 0 || len(r.ByStore) != 0 {
		t.Error("Expected no breakdown rows")
	}
	if len(r.Daily) != 3 {
		t.Fatalf("Daily has %d points, want 3", len(r.Daily))
	}
	for _, p := range r.Daily {
		if !p.Amount.IsZero() {
			t.Errorf("Daily[%s] = %s, want 0", p.DateISO, p.Amount)
		}
	}
}

func TestBuild_BadDates(t *testing.T) {
	if _, err := Build(nil, "01/03/2026", "2026-03-03"); err == nil {
		t.Error("Expected error for non-ISO from date")
	}
	if _, err := Build(nil, "2026-03-01", "março"); err == nil {
		t.Error("Expected error for non-ISO to date")
	}
}

func TestBuild_ItemStoreOverride(t *testing.T) {
	withOverride := item("Picanha", "Carnes", "89.90")
	withOverride.Store = "Açougue do Zé"

	history := []domain.Purchase{
		purchase("2026-03-01", "Mercado",
			item("Arroz", "Mercearia", "25.00"),
			withOverride),
	}

	r, err := Build(history, "2026-03-01", "2026-03-01")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(r.ByStore) != 2 {
		t.Fatalf("ByStore has %d rows, want 2", len(r.ByStore))
	}
	if r.ByStore[0].Label != "Açougue do Zé" {
		t.Errorf("Top store = %s, want Açougue do Zé", r.ByStore[0].Label)
	}
}

func TestBuildMonth_Comparison(t *testing.T) {
	history := []domain.Purchase{
		purchase("2026-02-10", "Mercado", item("Arroz", "Mercearia", "100.00")),
		purchase("2026-03-05", "Mercado", item("Arroz", "Mercearia", "150.00")),
	}

	r, err := BuildMonth(history, "2026-03")
	if err != nil {
		t.Fatalf("BuildMonth: %v", err)
	}
	if r.FromISO != "2026-03-01" || r.ToISO != "2026-03-31" {
		t.Errorf("Range = [%s, %s], want [2026-03-01, 2026-03-31]", r.FromISO, r.ToISO)
	}
	if r.Comparison == nil {
		t.Fatal("Expected comparison block")
	}
	if r.Comparison.PrevFromISO != "2026-02-01" || r.Comparison.PrevToISO != "2026-02-28" {
		t.Errorf("Prev range = [%s, %s], want [2026-02-01, 2026-02-28]",
			r.Comparison.PrevFromISO, r.Comparison.PrevToISO)
	}
	if r.Comparison.ChangePct == nil {
		t.Fatal("Expected change percentage")
	}
	if want := decimal.RequireFromString("50"); !r.Comparison.ChangePct.Equal(want) {
		t.Errorf("ChangePct = %s, want %s", r.Comparison.ChangePct, want)
	}
}

func TestBuildMonth_NoPreviousSpending(t *testing.T) {
	history := []domain.Purchase{
		purchase("2026-03-05", "Mercado", item("Arroz", "Mercearia", "150.00")),
	}

	r, err := BuildMonth(history, "2026-03")
	if err != nil {
		t.Fatalf("BuildMonth: %v", err)
	}
	if r.Comparison == nil {
		t.Fatal("Expected comparison block")
	}
	if !r.Comparison.PrevTotal.IsZero() {
		t.Errorf("PrevTotal = %s, want 0", r.Comparison.PrevTotal)
	}
	if r.Comparison.ChangePct != nil {
		t.Errorf("ChangePct = %s, want nil against an empty month", r.Comparison.ChangePct)
	}
}

func TestMonthly_TotalsPerMonth(t *testing.T) {
	history := []domain.Purchase{
		purchase("2026-03-05", "Mercado", item("Arroz", "Mercearia", "150.00")),
		purchase("2026-01-10", "Feira", item("Alface", "Hortifruti", "3.50")),
		purchase("2026-03-20", "Feira", item("Tomate", "Hortifruti", "8.00")),
		purchase("2026-01-28", "Mercado", item("Café", "Mercearia", "19.90")),
	}

	totals := Monthly(history)
	if len(totals) != 2 {
		t.Fatalf("Monthly has %d rows, want 2", len(totals))
	}
	if totals[0].MonthISO != "2026-01" || totals[1].MonthISO != "2026-03" {
		t.Errorf("Months = [%s, %s], want [2026-01, 2026-03]", totals[0].MonthISO, totals[1].MonthISO)
	}
	if want := decimal.RequireFromString("23.4"); !totals[0].Amount.Equal(want) {
		t.Errorf("2026-01 total = %s, want %s", totals[0].Amount, want)
	}
	if want := decimal.RequireFromString("158"); !totals[1].Amount.Equal(want) {
		t.Errorf("2026-03 total = %s, want %s", totals[1].Amount, want)
	}
}

func TestMonthly_SkipsMalformedDates(t *testing.T) {
	history := []domain.Purchase{
		purchase("2026-03-05", "Mercado", item("Arroz", "Mercearia", "25.00")),
		purchase("bad", "Mercado", item("Café", "Mercearia", "19.90")),
	}

	totals := Monthly(history)
	if len(totals) != 1 {
		t.Fatalf("Monthly has %d rows, want 1", len(totals))
	}
	if totals[0].MonthISO != "2026-03" {
		t.Errorf("MonthISO = %s, want 2026-03", totals[0].MonthISO)
	}
}

func TestBuildMonth_BadMonth(t *testing.T) {
	if _, err := BuildMonth(nil, "03/2026"); err == nil {
		t.Error("Expected error for bad month format")
	}
}
