package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/diillson/commerce-analytics-go/internal/domain/entity"
	"github.com/diillson/commerce-analytics-go/internal/domain/repository"
	"github.com/jung-kurt/gofpdf"
)

// pdfMaxRows limita as linhas de cada tabela no PDF; o CSV leva tudo.
const pdfMaxRows = 60

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

// ExportReportToCSV grava um CSV por tabela do relatório, usando o nome da
// tabela como sufixo do arquivo.
func (r *ExportRepositoryImpl) ExportReportToCSV(report entity.Report, filename, outputDir string) ([]string, error) {
	var generatedFiles []string

	for _, section := range report.Sections {
		if section.Table == nil {
			continue
		}
		outputFilename, err := generateFilename(filename+"_"+slug(section.Table.Name), outputDir, "csv")
		if err != nil {
			return generatedFiles, err
		}
		if err := writeCSV(outputFilename, section.Table); err != nil {
			return generatedFiles, err
		}
		abs, err := filepath.Abs(outputFilename)
		if err != nil {
			abs = outputFilename
		}
		generatedFiles = append(generatedFiles, abs)
	}

	return generatedFiles, nil
}

func writeCSV(path string, table *entity.Table) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(table.Columns); err != nil {
		return fmt.Errorf("error writing CSV header: %w", err)
	}
	for _, row := range table.Rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = cleanRichTags(c)
		}
		if err := writer.Write(cells); err != nil {
			return fmt.Errorf("error writing CSV row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

type jsonSection struct {
	Title   string              `json:"title"`
	Lines   []string            `json:"lines,omitempty"`
	Table   string              `json:"table,omitempty"`
	Columns []string            `json:"columns,omitempty"`
	Records []map[string]string `json:"records,omitempty"`
}

type jsonReport struct {
	RunID       string        `json:"run_id"`
	Name        string        `json:"name"`
	Title       string        `json:"title"`
	GeneratedAt time.Time     `json:"generated_at"`
	Sections    []jsonSection `json:"sections"`
}

// ExportReportToJSON gera um único JSON com todas as seções; tabelas viram
// listas de registros chaveados pelo nome da coluna.
func (r *ExportRepositoryImpl) ExportReportToJSON(report entity.Report, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	out := jsonReport{
		RunID:       report.RunID,
		Name:        report.Name,
		Title:       report.Title,
		GeneratedAt: report.GeneratedAt,
		Sections:    make([]jsonSection, 0, len(report.Sections)),
	}
	for _, s := range report.Sections {
		js := jsonSection{Title: s.Title}
		for _, line := range s.Lines {
			js.Lines = append(js.Lines, cleanRichTags(line))
		}
		if s.Table != nil {
			js.Table = s.Table.Name
			js.Columns = s.Table.Columns
			js.Records = s.Table.Records()
		}
		out.Sections = append(out.Sections, js)
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(out); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// ExportReportToPDF gera um PDF com capa e uma seção por bloco do relatório.
func (r *ExportRepositoryImpl) ExportReportToPDF(report entity.Report, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	sectionTitleColor := [3]int{0, 0, 0}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}

	generated := report.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		footerText := fmt.Sprintf("Generated by Commerce Analytics (Go) | %s", generated.Format("2006-01-02"))
		pdf.CellFormat(0, 10, tr(footerText), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Page %d", pdf.PageNo())), "", 0, "R", false, 0, "")
	})

	sectionTitle := func(title string) {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
		pdf.Cell(0, 8, tr(title))
		pdf.Ln(7)

		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
		pdf.Ln(4)
	}

	drawLines := func(lines []string) {
		content := cleanRichTags(strings.Join(lines, "\n"))
		if strings.TrimSpace(content) == "" {
			return
		}
		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		pdf.MultiCell(190, 5, tr(content), "", "L", false)
		pdf.Ln(4)
	}

	drawTable := func(table *entity.Table) {
		if len(table.Columns) == 0 {
			return
		}
		width := 190.0 / float64(len(table.Columns))
		fontSize := 8.0
		if len(table.Columns) > 8 {
			fontSize = 6.5
		}

		pdf.SetFont("Arial", "B", fontSize)
		pdf.SetFillColor(230, 230, 230)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		for _, col := range table.Columns {
			pdf.CellFormat(width, 6, tr(fitText(pdf, col, width)), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", fontSize)
		for i, row := range table.Rows {
			if i == pdfMaxRows {
				pdf.SetFont("Arial", "I", fontSize)
				pdf.CellFormat(190, 6, tr(fmt.Sprintf("... %d more rows (see CSV export)", len(table.Rows)-pdfMaxRows)), "", 1, "L", false, 0, "")
				break
			}
			for j := range table.Columns {
				cell := ""
				if j < len(row) {
					cell = cleanRichTags(row[j])
				}
				pdf.CellFormat(width, 5, tr(fitText(pdf, cell, width)), "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(6)
	}

	// --- Capa ---
	pdf.AddPage()
	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	title := report.Title
	if len(title) > 80 {
		title = title[:77] + "..."
	}
	pdf.CellFormat(0, 12, tr(fmt.Sprintf("  %s", title)), "", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("  Run ID: %s", report.RunID)), "", 1, "L", true, 0, "")
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("  Generated on: %s", generated.Format("2006-01-02 15:04:05"))), "", 1, "L", true, 0, "")
	pdf.Ln(10)

	for _, section := range report.Sections {
		if len(section.Lines) == 0 && section.Table == nil {
			continue
		}
		sectionTitle(section.Title)
		drawLines(section.Lines)
		if section.Table != nil {
			drawTable(section.Table)
		}
	}

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// fitText corta o texto para caber na largura da célula.
func fitText(pdf *gofpdf.Fpdf, text string, width float64) string {
	limit := width - 2
	if pdf.GetStringWidth(text) <= limit {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"..") > limit {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + ".."
}

func generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}

var slugRegex = regexp.MustCompile(`[^a-z0-9]+`)

func slug(name string) string {
	s := slugRegex.ReplaceAllString(strings.ToLower(name), "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return "table"
	}
	return s
}

// Regex para limpar formatação pterm (rich tags) e sequências ANSI de cor/estilo.
var richTagRegex = regexp.MustCompile(`\[/?([a-zA-Z]+|#[0-9a-fA-F]{6})\]`)
var ansiRegex = regexp.MustCompile(`\x1B\[[0-9;]*[A-Za-z]`)

// cleanRichTags remove tags de formatação do pterm e sequências ANSI.
func cleanRichTags(text string) string {
	text = richTagRegex.ReplaceAllString(text, "")
	text = ansiRegex.ReplaceAllString(text, "")
	return text
}
