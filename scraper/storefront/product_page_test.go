package storefront

import (
	"reflect"
	"strings"
	"testing"
)

const productPageHTML = `
<!DOCTYPE html>
<html><body>
  <h1 class="show_h1">iPhone 15 Pro 256GB</h1>
  <span id="show_price">109 990</span>
  <small class="act_color_name_show">Синий титан</small>
  <a class="multi_color" data-name-color="Синий титан"></a>
  <a class="multi_color" data-name-color="Белый титан"></a>
  <a class="multi_color" title="Синий титан"></a>
  <img class="slider_photo_img" src="/img/show/iphone15pro.jpg">
</body></html>`

func TestParseProductPage(t *testing.T) {
	page, err := newTestParser().ParseProductPage(strings.NewReader(productPageHTML))
	if err != nil {
		t.Fatalf("ParseProductPage: %v", err)
	}

	if page.Title != "iPhone 15 Pro 256GB" {
		t.Errorf("Title: got %q", page.Title)
	}
	if page.PriceText != "109 990" {
		t.Errorf("PriceText: got %q", page.PriceText)
	}
	if page.Price != 109990 {
		t.Errorf("Price: got %d, want 109990", page.Price)
	}
	if page.CurrentColor != "Синий титан" {
		t.Errorf("CurrentColor: got %q", page.CurrentColor)
	}

	wantColors := []string{"Синий титан", "Белый титан"}
	if !reflect.DeepEqual(page.Colors, wantColors) {
		t.Errorf("Colors: got %v, want %v", page.Colors, wantColors)
	}
	if page.ImageURL != "https://edwardpnz.ru/img/show/iphone15pro.jpg" {
		t.Errorf("ImageURL: got %q", page.ImageURL)
	}
}

func TestParseProductPageEmpty(t *testing.T) {
	if _, err := newTestParser().ParseProductPage(strings.NewReader("")); err != ErrEmptyDocument {
		t.Errorf("expected ErrEmptyDocument, got %v", err)
	}
}
