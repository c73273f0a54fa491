package export

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mlindemann/menucard-importer/internal/common"
	"github.com/mlindemann/menucard-importer/internal/menu"
)

// The point-of-sale import template is a 36-column semicolon CSV. Column
// order is a hard contract: the importer reads positionally and a reordered
// file imports garbage without any error.
const templateColumns = 36

// Renderer merges structured records into the fixed POS import template.
type Renderer struct {
	templatePath string
	logger       *slog.Logger
}

func NewRenderer(templatePath string, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{templatePath: templatePath, logger: logger}
}

// RenderCSV reads the template, copies its first three lines (header plus two
// fixed metadata rows) verbatim, and appends one row per item. A missing or
// malformed template is a configuration error, not a data error.
func (r *Renderer) RenderCSV(items []menu.ItemRecord) (string, error) {
	start := time.Now()

	raw, err := os.ReadFile(r.templatePath)
	if err != nil {
		return "", common.NewAppError("CONFIG_ERROR",
			fmt.Sprintf("csv template not readable: %s", r.templatePath),
			fmt.Errorf("%w: %w", common.ErrConfiguration, err))
	}

	lines := strings.Split(string(raw), "\n")
	if len(lines) < 3 {
		return "", common.NewAppError("CONFIG_ERROR",
			fmt.Sprintf("csv template %s must have a header and two fixed rows", r.templatePath),
			common.ErrConfiguration)
	}

	var b strings.Builder
	for _, ln := range lines[:3] {
		b.WriteString(ln)
		b.WriteString("\n")
	}

	w := csv.NewWriter(&b)
	w.Comma = ';'
	for _, item := range items {
		if err := w.Write(itemRow(item)); err != nil {
			return "", fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}

	r.logger.Info("export.csv.ok",
		"rows", len(items),
		"template", r.templatePath,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return b.String(), nil
}

// itemRow maps one record onto the 36-column schema. Most columns are
// sentinels the importer expects; only name, ausser_haus, warengruppe,
// ordergruppe, steuersatz and price vary per row.
func itemRow(item menu.ItemRecord) []string {
	row := []string{
		item.Name,                      // 1  NAME
		"1",                            // 2  NACHLASS ERLAUBT
		strconv.Itoa(item.AusserHaus),  // 3  AUSSER HAUS
		"1",                            // 4  FREIE PREISEINGABE
		"1",                            // 5  0 PREIS VERBOTEN
		"1",                            // 6  MEHRFACHNACHLASS VERBOTEN
		"0",                            // 7  MAX BETRAG
		"",                             // 8  BUCHUNGSTEXT
		"71x57_yellow.bmp",             // 9  BILDNAME
		"",                             // 10 SCHRIFTGROESSE
		"",                             // 11 SCHRIFTFARBE
		"",                             // 12 HINTERGRUNDFARBE
		"",                             // 13 X/Y
		"0",                            // 14 MINUSPREIS
		"0",                            // 15 VERSTECKEN
		item.Warengruppe,               // 16 WARENGRUPPE
		"",                             // 17 PFANDBETRAG
		"0",                            // 18 UNTERARTIKEL
		"0",                            // 19 FOLGT WG
		"",                             // 20 ORDERTEXT
		"0",                            // 21 NUR GANZE MENGEN
		"",                             // 22 UWG
		"",                             // 23 TASTENTEXT
		"0",                            // 24 MINDESTMENGE
		"0",                            // 25 GESPERRT
		"0",                            // 26 HAUPTMENUE
		"0",                            // 27 PROVISION
		"0",                            // 28 NEGATIVBESTAND
		"0",                            // 29 MINIMALBESTAND
		"",                             // 30 BESTANDSWARNFARBE
		"0",                            // 31 ARTIKELEBENE
		"",                             // 32 STARTZEIT/ENDZEIT
		"0",                            // 33 EINKAUFSPREIS
		item.Ordergruppe,               // 34 ORDERGRUPPE
		strconv.Itoa(item.Steuersatz),  // 35 STEUERSATZ
		strconv.Itoa(item.Price),       // 36 PREIS1
	}
	return row
}
