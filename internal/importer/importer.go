// Package importer loads catalog products from xlsx or csv spreadsheets and
// generates the downloadable templates.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/rogerio-castellano/promo-quoter/internal/apperr"
	"github.com/rogerio-castellano/promo-quoter/internal/metrics"
	"github.com/rogerio-castellano/promo-quoter/internal/models"
	"github.com/rogerio-castellano/promo-quoter/internal/repo"
)

const (
	DefaultName     = "Sin nombre"
	DefaultCategory = "General"

	maxErrorsInMessage = 3
)

// Result describes an import. ColumnsMapped maps each target field to the
// header it was read from, or nil when no column matched.
type Result struct {
	Message       string         `json:"message"`
	Count         int            `json:"count"`
	ColumnsFound  []string       `json:"columns_found"`
	ColumnsMapped map[string]any `json:"columns_mapped"`
	Scheme        Scheme         `json:"scheme"`
	Errors        []string       `json:"errors"`
}

type Importer struct {
	products repo.ProductRepository
}

func New(products repo.ProductRepository) *Importer {
	return &Importer{products: products}
}

// Import parses the spreadsheet and stores every valid row for userID in one
// batch. Rows that fail are reported in Result.Errors and skipped.
func (im *Importer) Import(ctx context.Context, userID, filename string, r io.Reader) (Result, error) {
	products, res, err := Parse(filename, r)
	if err != nil {
		return Result{}, err
	}
	for i := range products {
		products[i].UserID = userID
	}

	n, err := im.products.CreateMany(ctx, products)
	if err != nil {
		return Result{}, fmt.Errorf("store imported products: %w", err)
	}

	metrics.ImportedRows.WithLabelValues("imported").Add(float64(n))
	metrics.ImportedRows.WithLabelValues("rejected").Add(float64(len(res.Errors)))

	res.Count = n
	res.Message = summary(n, res.Errors)
	zap.L().Info("catalog imported",
		zap.String("user_id", userID),
		zap.String("file", filename),
		zap.String("scheme", string(res.Scheme)),
		zap.Int("count", n),
		zap.Int("errors", len(res.Errors)),
	)
	return res, nil
}

// Parse reads the spreadsheet into products without storing them. The
// returned products carry no owner.
func Parse(filename string, r io.Reader) ([]models.Product, Result, error) {
	header, rows, err := readTable(filename, r)
	if err != nil {
		return nil, Result{}, apperr.Upstream("error processing spreadsheet", err)
	}

	normalized := make([]string, len(header))
	for i, h := range header {
		normalized[i] = NormalizeHeader(h)
	}
	cols := detectColumns(normalized)
	if !cols.has(FieldName) && !cols.has(FieldPrice) && len(cols.volumes) == 0 {
		return nil, Result{}, apperr.Upstream("error processing spreadsheet",
			fmt.Errorf("no name or price column found in %v", header))
	}

	res := Result{
		ColumnsFound:  header,
		ColumnsMapped: mappedColumns(cols, header),
		Scheme:        cols.scheme,
		Errors:        []string{},
	}

	products := make([]models.Product, 0, len(rows))
	for _, row := range rows {
		p, err := buildProduct(cols, header, normalized, row.cells)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("row %d: %v", row.line, err))
			continue
		}
		products = append(products, p)
	}
	return products, res, nil
}

func mappedColumns(cols columnMap, header []string) map[string]any {
	mapped := map[string]any{}
	fields := genericFields
	if cols.scheme == SchemeVendor {
		fields = append(append([]string{}, genericFields...), printingFields...)
	}
	for _, f := range fields {
		if idx, ok := cols.fields[f]; ok {
			mapped[f] = header[idx]
		} else {
			mapped[f] = nil
		}
	}
	if cols.scheme == SchemeVendor {
		volumes := make([]string, len(cols.volumes))
		for i, v := range cols.volumes {
			volumes[i] = header[v.index]
		}
		mapped[models.KeyVolumePrices] = volumes
	}
	return mapped
}

func buildProduct(cols columnMap, header, normalized, cells []string) (models.Product, error) {
	cell := func(i int) string {
		if i < len(cells) {
			return strings.TrimSpace(cells[i])
		}
		return ""
	}
	field := func(name string) string {
		if idx, ok := cols.fields[name]; ok {
			return cell(idx)
		}
		return ""
	}

	p := models.Product{
		Name:            field(FieldName),
		Description:     field(FieldDescription),
		Category:        field(FieldCategory),
		Characteristics: models.Characteristics{},
	}
	if p.Name == "" {
		p.Name = DefaultName
	}
	if p.Category == "" {
		p.Category = DefaultCategory
	}

	price, err := checkedPrice(field(FieldPrice))
	if err != nil {
		return models.Product{}, err
	}
	p.BasePrice = price

	// Vendor columns are written after the free-form cell so they win on
	// precios_volumen and impresion.
	if raw := field(FieldCharacteristics); raw != "" {
		var parsed map[string]any
		if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
			for k, v := range parsed {
				p.Characteristics[k] = v
			}
		} else {
			p.Characteristics[models.KeyFreeText] = raw
		}
	}

	if cols.scheme == SchemeVendor {
		breaks := make([]models.VolumePrice, 0, len(cols.volumes))
		for _, v := range cols.volumes {
			raw := cell(v.index)
			if raw == "" {
				continue
			}
			vp, err := checkedPrice(raw)
			if err != nil {
				return models.Product{}, fmt.Errorf("%s: %w", header[v.index], err)
			}
			breaks = append(breaks, models.VolumePrice{Quantity: v.quantity, Price: vp})
		}
		if len(breaks) > 0 {
			p.Characteristics[models.KeyVolumePrices] = breaks
			if field(FieldPrice) == "" {
				p.BasePrice = breaks[0].Price
			}
		}
		if printing := printingInfo(field); len(printing) > 0 {
			p.Characteristics[models.KeyPrinting] = printing
		}
	}

	for i, key := range normalized {
		if cols.consumed[i] || key == "" {
			continue
		}
		value := cell(i)
		if value == "" {
			continue
		}
		key = strings.ReplaceAll(key, " ", "_")
		if _, taken := p.Characteristics[key]; !taken {
			p.Characteristics[key] = value
		}
	}
	return p, nil
}

func checkedPrice(raw string) (decimal.Decimal, error) {
	price, err := ParsePrice(raw)
	if err != nil {
		return decimal.Zero, err
	}
	if price.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative price %s", price)
	}
	return price, nil
}

func printingInfo(field func(string) string) map[string]any {
	info := map[string]any{}
	if v := field(FieldPrintingTechnique); v != "" {
		info[models.KeyPrintingTechnique] = v
	}
	if v := field(FieldPrintingArea); v != "" {
		info[models.KeyPrintingArea] = v
	}
	if v := field(FieldPrintingColors); v != "" {
		if n, err := cast.ToIntE(v); err == nil {
			info[models.KeyPrintingColors] = n
		} else {
			info[models.KeyPrintingColors] = v
		}
	}
	return info
}

func summary(count int, errs []string) string {
	msg := fmt.Sprintf("Successfully uploaded %d products", count)
	if len(errs) == 0 {
		return msg
	}
	shown := errs
	if len(shown) > maxErrorsInMessage {
		shown = shown[:maxErrorsInMessage]
	}
	msg += fmt.Sprintf(". %d errors occurred: %s", len(errs), strings.Join(shown, "; "))
	if len(errs) > maxErrorsInMessage {
		msg += fmt.Sprintf(" and %d more errors.", len(errs)-maxErrorsInMessage)
	}
	return msg
}
