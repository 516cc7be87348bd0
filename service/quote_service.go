package service

import (
	"bytes"
	"context"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"art-customizer/catalog"
	"art-customizer/models"
	"art-customizer/utils"
)

//go:embed templates/quote.html
var templatesFS embed.FS

var quoteTemplate = template.Must(template.ParseFS(templatesFS, "templates/quote.html"))

// QuoteService renders printable quotes for a customization
type QuoteService struct {
	catalog    *catalog.Catalog
	chromePath string
	timeout    time.Duration
	now        func() time.Time
}

// NewQuoteService creates a QuoteService. chromePath may be empty to auto-detect.
func NewQuoteService(cat *catalog.Catalog, chromePath string) *QuoteService {
	return &QuoteService{
		catalog:    cat,
		chromePath: chromePath,
		timeout:    30 * time.Second,
		now:        time.Now,
	}
}

// detectChromePath returns configured if it exists, else the first common
// Chrome/Chromium installation found
func detectChromePath(configured string) string {
	if configured != "" {
		if _, err := os.Stat(configured); err == nil {
			return configured
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

type quoteRow struct {
	Label string
	Value string
}

type quoteLine struct {
	Label  string
	Amount string
}

type quoteData struct {
	Artwork        models.Artwork
	Name           string
	PreviewDataURI template.URL
	Options        []quoteRow
	Lines          []quoteLine
	Currency       string
	Total          string
	GeneratedAt    string
}

// RenderQuoteHTML renders the quote page. previewJPEG may be nil.
func (s *QuoteService) RenderQuoteHTML(artwork models.Artwork, opts models.CustomizationOptions, priced models.PricedConfiguration, previewJPEG []byte) (string, error) {
	data := quoteData{
		Artwork:     artwork,
		Name:        s.catalog.DisplayName(priced.SizeCategory, opts),
		Options:     s.optionRows(opts),
		Currency:    priced.Currency,
		Total:       utils.FormatUSD(priced.FinalPrice),
		GeneratedAt: s.now().Format("January 2, 2006"),
	}
	for _, l := range priced.Breakdown {
		data.Lines = append(data.Lines, quoteLine{Label: l.Label, Amount: utils.FormatUSD(l.Amount)})
	}
	if len(previewJPEG) > 0 {
		data.PreviewDataURI = template.URL("data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(previewJPEG))
	}

	var buf bytes.Buffer
	if err := quoteTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

func (s *QuoteService) optionRows(opts models.CustomizationOptions) []quoteRow {
	name := func(dim catalog.Dimension, key string) string {
		o, _ := s.catalog.Resolve(dim, key)
		return o.Name
	}

	frame := name(catalog.DimensionFrameStyle, opts.Frame.Style)
	if opts.Frame.Style != "noFrame" {
		frame = fmt.Sprintf("%s, %s, %s", frame, name(catalog.DimensionFrameColor, opts.Frame.Color), opts.Frame.Width)
	}
	mat := "None"
	if opts.Mat.Enabled {
		mat = fmt.Sprintf("%s, %s", name(catalog.DimensionMatColor, opts.Mat.Color), opts.Mat.Width)
	}
	glass := name(catalog.DimensionGlassType, opts.Glass.Type)
	if opts.Glass.GlareReduction {
		glass += ", glare reduction"
	}

	return []quoteRow{
		{"Material", name(catalog.DimensionMaterial, opts.Material.Type)},
		{"Size", strconv.Itoa(opts.Size.Scale) + "% (" + name(catalog.DimensionAspectRatio, opts.Size.AspectRatio) + ")"},
		{"Frame", frame},
		{"Mat", mat},
		{"Glass", glass},
		{"Mounting", fmt.Sprintf("%s, %s hardware", name(catalog.DimensionMounting, opts.Mounting.Type), opts.Mounting.Hardware)},
	}
}

// GeneratePDF prints htmlContent to a Letter-sized PDF with headless Chrome
func (s *QuoteService) GeneratePDF(ctx context.Context, htmlContent string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if chromePath := detectChromePath(s.chromePath); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.5).
				WithPaperHeight(11).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	log.Printf("🧾 Quote PDF generated (%d bytes)", len(pdfBuf))
	return pdfBuf, nil
}
