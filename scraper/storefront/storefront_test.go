package storefront

import (
	"reflect"
	"strings"
	"testing"

	"iphone-catalog/models"
	"iphone-catalog/utils"
)

// catalogHTML mirrors the storefront's card markup: one fully populated
// card, one card without an identifier, and one card with a broken price
// and relative URLs.
const catalogHTML = `
<!DOCTYPE html>
<html><body>
<div class="catalog">

  <div class="card" id="card_c_15">
    <a class="card_name" href="/product/15">iPhone 15 Pro Max 256GB</a>
    <span class="card_price">129 990 руб.</span>
    <strike>139 990 руб.</strike>
    <small class="act_color_name">Титановый</small>
    <button class="multi_color" data-name-color="Титановый"></button>
    <button class="multi_color" data-name-color="Синий"></button>
    <button class="multi_color" data-name-color="Титановый"></button>
    <button class="multi_color" title="Чёрный"></button>
    <div class="multi_txt" id="two_15_1">256GB</div>
    <div class="multi_txt multi_txt_act" id="two_15_2">512GB</div>
    <div class="multi_txt" id="three_15_1">1 SIM</div>
    <div class="multi_txt multi_txt_act" id="three_15_2">2 SIM</div>
    <img class="card_photo_img" src="/img/iphone15promax.jpg" alt="iPhone 15 Pro Max">
    <a class="card_btn" href="/product/15">Подробнее</a>
  </div>

  <div class="card">
    <a class="card_name">iPhone without identity</a>
    <span class="card_price">99 990 руб.</span>
  </div>

  <div class="card" id="card_c_8">
    <a class="card_name" href="/product/8">iPhone 13 Б/У</a>
    <span class="card_price">по запросу</span>
    <img class="card_photo_img" src="https://cdn.edwardpnz.ru/img/iphone13.jpg">
    <a class="card_btn" href="/product/8">Подробнее</a>
  </div>

</div>
</body></html>`

func newTestParser() *Parser {
	return NewParser("https://edwardpnz.ru", utils.NewLogger())
}

func TestParseCatalogCounts(t *testing.T) {
	result, err := newTestParser().ParseCatalog(strings.NewReader(catalogHTML))
	if err != nil {
		t.Fatalf("ParseCatalog: %v", err)
	}

	if result.Cards != 3 {
		t.Errorf("Cards: got %d, want 3", result.Cards)
	}
	if len(result.Products) != 2 {
		t.Fatalf("Products: got %d, want 2", len(result.Products))
	}
	if result.Skipped != 1 {
		t.Errorf("Skipped: got %d, want 1", result.Skipped)
	}
}

func TestParseCatalogFullCard(t *testing.T) {
	result, err := newTestParser().ParseCatalog(strings.NewReader(catalogHTML))
	if err != nil {
		t.Fatalf("ParseCatalog: %v", err)
	}

	p := result.Products[0]
	if p.ProductID != "15" {
		t.Errorf("ProductID: got %q, want %q", p.ProductID, "15")
	}
	if p.Model != "iPhone 15 Pro Max 256GB" {
		t.Errorf("Model: got %q", p.Model)
	}
	if p.Price != 129990 {
		t.Errorf("Price: got %d, want 129990", p.Price)
	}
	if p.OldPrice != "139 990 руб." {
		t.Errorf("OldPrice: got %q", p.OldPrice)
	}
	if p.CurrentColor != "Титановый" {
		t.Errorf("CurrentColor: got %q", p.CurrentColor)
	}
	if p.ImageURL != "https://edwardpnz.ru/img/iphone15promax.jpg" {
		t.Errorf("ImageURL: got %q", p.ImageURL)
	}
	if p.ProductURL != "https://edwardpnz.ru/product/15" {
		t.Errorf("ProductURL: got %q", p.ProductURL)
	}
}

func TestParseCatalogVariantGroups(t *testing.T) {
	result, err := newTestParser().ParseCatalog(strings.NewReader(catalogHTML))
	if err != nil {
		t.Fatalf("ParseCatalog: %v", err)
	}

	p := result.Products[0]

	wantColors := []string{"Титановый", "Синий", "Чёрный"}
	if !reflect.DeepEqual(p.Colors, wantColors) {
		t.Errorf("Colors: got %v, want %v", p.Colors, wantColors)
	}

	wantMemory := []string{"256GB", "512GB"}
	if !reflect.DeepEqual(p.MemoryOptions, wantMemory) {
		t.Errorf("MemoryOptions: got %v, want %v", p.MemoryOptions, wantMemory)
	}
	if p.CurrentMemory != "512GB" {
		t.Errorf("CurrentMemory: got %q, want %q", p.CurrentMemory, "512GB")
	}

	wantSIM := []string{"1 SIM", "2 SIM"}
	if !reflect.DeepEqual(p.SIMOptions, wantSIM) {
		t.Errorf("SIMOptions: got %v, want %v", p.SIMOptions, wantSIM)
	}
	if p.CurrentSIM != "2 SIM" {
		t.Errorf("CurrentSIM: got %q, want %q", p.CurrentSIM, "2 SIM")
	}
}

func TestParseCatalogBrokenCardDegradesToSentinels(t *testing.T) {
	result, err := newTestParser().ParseCatalog(strings.NewReader(catalogHTML))
	if err != nil {
		t.Fatalf("ParseCatalog: %v", err)
	}

	p := result.Products[1]
	if p.ProductID != "8" {
		t.Fatalf("ProductID: got %q, want %q", p.ProductID, "8")
	}
	if p.Price != 0 {
		t.Errorf("unparseable price should yield 0, got %d", p.Price)
	}
	if p.CurrentColor != models.NoColor {
		t.Errorf("CurrentColor: got %q, want sentinel %q", p.CurrentColor, models.NoColor)
	}
	if p.CurrentMemory != models.NoMemory {
		t.Errorf("CurrentMemory: got %q, want sentinel %q", p.CurrentMemory, models.NoMemory)
	}
	if len(p.Colors) != 0 {
		t.Errorf("Colors: got %v, want empty", p.Colors)
	}
	// Already-absolute URL must pass through untouched.
	if p.ImageURL != "https://cdn.edwardpnz.ru/img/iphone13.jpg" {
		t.Errorf("ImageURL: got %q", p.ImageURL)
	}
}

func TestParseCatalogIdempotent(t *testing.T) {
	parser := newTestParser()

	first, err := parser.ParseCatalog(strings.NewReader(catalogHTML))
	if err != nil {
		t.Fatalf("first parse: %v", err)
	}
	second, err := parser.ParseCatalog(strings.NewReader(catalogHTML))
	if err != nil {
		t.Fatalf("second parse: %v", err)
	}

	if len(first.Products) != len(second.Products) {
		t.Fatalf("product counts differ: %d vs %d", len(first.Products), len(second.Products))
	}
	for i := range first.Products {
		a, b := *first.Products[i], *second.Products[i]
		a.ParsedAt = b.ParsedAt
		if !reflect.DeepEqual(a, b) {
			t.Errorf("product %d differs between runs:\n%+v\n%+v", i, a, b)
		}
	}
}

func TestParseCatalogEmptyDocument(t *testing.T) {
	_, err := newTestParser().ParseCatalog(strings.NewReader("   "))
	if err != ErrEmptyDocument {
		t.Errorf("expected ErrEmptyDocument, got %v", err)
	}
}

func TestParseCatalogNoCards(t *testing.T) {
	page := "<html><body><div class='content'>" + strings.Repeat("<p>приветствуем в магазине</p>", 10) + "</div></body></html>"

	result, err := newTestParser().ParseCatalog(strings.NewReader(page))
	if err != nil {
		t.Fatalf("ParseCatalog: %v", err)
	}
	if result.Cards != 0 || len(result.Products) != 0 {
		t.Errorf("expected zero cards and products, got %d/%d", result.Cards, len(result.Products))
	}
}
