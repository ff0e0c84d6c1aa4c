package storefront

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"iphone-catalog/models"
	"iphone-catalog/services"
)

// ProductPage holds the key fields of a single product detail page.
// Detail pages carry no product identifier, so this is a quick-look
// record, not something the store persists.
type ProductPage struct {
	Title        string
	PriceText    string
	Price        int64
	CurrentColor string
	Colors       []string
	ImageURL     string
}

// ParseProductPage extracts the headline data from one product detail
// page. Detail pages use their own element classes (show_*, slider_*)
// but the same variant conventions as catalog cards.
func (p *Parser) ParseProductPage(r io.Reader) (*ProductPage, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("storefront: read product page: %w", err)
	}
	if len(bytes.TrimSpace(raw)) < minDocumentSize {
		return nil, ErrEmptyDocument
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("storefront: parse product page: %w", err)
	}

	page := &ProductPage{
		Title:        models.UnknownModel,
		CurrentColor: models.NoColor,
	}

	if title := strings.TrimSpace(doc.Find("h1.show_h1").First().Text()); title != "" {
		page.Title = title
	}

	page.PriceText = strings.TrimSpace(doc.Find("span#show_price").First().Text())
	page.Price = services.ParsePrice(page.PriceText)

	if color := strings.TrimSpace(doc.Find("small.act_color_name_show").First().Text()); color != "" {
		page.CurrentColor = color
	}

	var colors []string
	doc.Find("a.multi_color").Each(func(_ int, el *goquery.Selection) {
		name := el.AttrOr("data-name-color", "")
		if name == "" {
			name = el.AttrOr("title", "")
		}
		colors = append(colors, name)
	})
	page.Colors = services.Dedupe(colors)

	page.ImageURL = services.AbsoluteURL(p.baseURL, doc.Find("img.slider_photo_img").First().AttrOr("src", ""))

	return page, nil
}
