package storefront

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"iphone-catalog/models"
	"iphone-catalog/services"
	"iphone-catalog/utils"
)

const (
	// cardIDPrefix namespaces the product identifier inside a card's id
	// attribute ("card_c_15" -> product 15).
	cardIDPrefix = "card_c_"

	// multi_txt option groups are told apart by a positional token
	// embedded in their element ids.
	memoryToken = "two_"
	simToken    = "three_"

	// activeClass marks the option the storefront currently shows.
	activeClass = "multi_txt_act"

	// minDocumentSize guards against truncated or empty responses.
	minDocumentSize = 100
)

// ErrEmptyDocument is returned when the input is too short to be a
// catalog page at all.
var ErrEmptyDocument = errors.New("storefront: document empty or too short")

// Parser extracts normalized product records from catalog HTML. It is a
// pure function of its input: no network, no storage.
type Parser struct {
	baseURL string
	logger  *utils.Logger
}

// NewParser creates a Parser that absolutizes relative resource URLs
// against baseURL.
func NewParser(baseURL string, logger *utils.Logger) *Parser {
	return &Parser{baseURL: strings.TrimSuffix(baseURL, "/"), logger: logger}
}

// ParseCatalog extracts every product card from one catalog document.
// A card that cannot yield a record is counted and skipped; it never
// aborts the rest of the document.
func (p *Parser) ParseCatalog(r io.Reader) (*models.ParseResult, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("storefront: read document: %w", err)
	}
	if len(bytes.TrimSpace(raw)) < minDocumentSize {
		return nil, ErrEmptyDocument
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("storefront: parse document: %w", err)
	}

	result := &models.ParseResult{ParsedAt: time.Now()}
	cards := doc.Find("div.card")
	result.Cards = cards.Length()

	cards.Each(func(i int, card *goquery.Selection) {
		product := p.parseCard(card)
		if product == nil {
			result.Skipped++
			return
		}
		product.ParsedAt = result.ParsedAt
		result.Products = append(result.Products, product)
	})

	p.logger.Info("[storefront] Extracted %d of %d product cards (%d skipped)",
		len(result.Products), result.Cards, result.Skipped)
	return result, nil
}

// parseCard turns one card node into a Product, or nil when no product
// identifier can be recovered. Every other field degrades to its
// sentinel instead of failing the card.
func (p *Parser) parseCard(card *goquery.Selection) *models.Product {
	cardID := card.AttrOr("id", "")
	if !strings.Contains(cardID, cardIDPrefix) {
		p.logger.Warn("[storefront] Card without a %q identifier — skipping", cardIDPrefix)
		return nil
	}

	product := &models.Product{
		ProductID:     strings.Replace(cardID, cardIDPrefix, "", 1),
		Model:         models.UnknownModel,
		CurrentColor:  models.NoColor,
		CurrentMemory: models.NoMemory,
		CurrentSIM:    models.NoSIM,
	}

	if name := strings.TrimSpace(card.Find("a.card_name").First().Text()); name != "" {
		product.Model = name
	}

	priceText := strings.TrimSpace(card.Find("span.card_price").First().Text())
	product.Price = services.ParsePrice(priceText)
	if priceText != "" && product.Price == 0 {
		p.logger.Warn("[storefront] Product %s: unparseable price %q", product.ProductID, priceText)
	}

	product.OldPrice = strings.TrimSpace(card.Find("strike").First().Text())

	if color := strings.TrimSpace(card.Find("small.act_color_name").First().Text()); color != "" {
		product.CurrentColor = color
	}

	var colors []string
	card.Find("button.multi_color").Each(func(_ int, el *goquery.Selection) {
		name := el.AttrOr("data-name-color", "")
		if name == "" {
			name = el.AttrOr("title", "")
		}
		colors = append(colors, name)
	})
	product.Colors = services.Dedupe(colors)

	var memory, sims []string
	card.Find("div.multi_txt").Each(func(_ int, el *goquery.Selection) {
		text := strings.TrimSpace(el.Text())
		if text == "" {
			return
		}
		switch id := el.AttrOr("id", ""); {
		case strings.Contains(id, memoryToken):
			memory = append(memory, text)
			if el.HasClass(activeClass) {
				product.CurrentMemory = text
			}
		case strings.Contains(id, simToken):
			sims = append(sims, text)
			if el.HasClass(activeClass) {
				product.CurrentSIM = text
			}
		}
	})
	product.MemoryOptions = services.Dedupe(memory)
	product.SIMOptions = services.Dedupe(sims)

	product.ImageURL = services.AbsoluteURL(p.baseURL, card.Find("img.card_photo_img").First().AttrOr("src", ""))
	product.ProductURL = services.AbsoluteURL(p.baseURL, card.Find("a.card_btn").First().AttrOr("href", ""))

	return product
}
