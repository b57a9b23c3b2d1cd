package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/diillson/commerce-analytics-go/internal/domain/entity"
	"github.com/diillson/commerce-analytics-go/internal/domain/repository"
	"github.com/diillson/commerce-analytics-go/internal/shared/types"
)

type fakeConsole struct {
	mu    sync.Mutex
	lines []string
	bars  int
}

func (c *fakeConsole) add(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, s)
}

func (c *fakeConsole) Print(a ...interface{})                 { c.add(fmt.Sprint(a...)) }
func (c *fakeConsole) Printf(format string, a ...interface{}) { c.add(fmt.Sprintf(format, a...)) }
func (c *fakeConsole) Println(a ...interface{})               { c.add(fmt.Sprint(a...)) }
func (c *fakeConsole) LogInfo(format string, a ...interface{}) {
	c.add("INFO " + fmt.Sprintf(format, a...))
}
func (c *fakeConsole) LogWarning(format string, a ...interface{}) {
	c.add("WARN " + fmt.Sprintf(format, a...))
}
func (c *fakeConsole) LogError(format string, a ...interface{}) {
	c.add("ERROR " + fmt.Sprintf(format, a...))
}
func (c *fakeConsole) LogSuccess(format string, a ...interface{}) {
	c.add("OK " + fmt.Sprintf(format, a...))
}
func (c *fakeConsole) Header(title string)                      { c.add("== " + title) }
func (c *fakeConsole) Status(message string) types.StatusHandle { return noopStatus{} }
func (c *fakeConsole) CreateTable() types.TableInterface        { return &fakeTable{} }
func (c *fakeConsole) DisplayTrendBars(title string, monthly []types.MonthlyValue) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bars += len(monthly)
}

func (c *fakeConsole) contains(sub string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, l := range c.lines {
		if strings.Contains(l, sub) {
			return true
		}
	}
	return false
}

type noopStatus struct{}

func (noopStatus) Update(string) {}
func (noopStatus) Stop()         {}

type fakeTable struct {
	rows []string
}

func (t *fakeTable) AddColumn(name string, options ...interface{}) { t.rows = append(t.rows, name) }
func (t *fakeTable) AddRow(cells ...interface{})                   { t.rows = append(t.rows, fmt.Sprint(cells...)) }
func (t *fakeTable) Render() string                                { return strings.Join(t.rows, "\n") }

// fakeDataset guarda as entradas em memória e as tabelas gravadas por caminho.
type fakeDataset struct {
	txs     []entity.Transaction
	sales   []entity.SalesRecord
	written map[string]*entity.Table
}

func newFakeDataset() *fakeDataset {
	return &fakeDataset{written: make(map[string]*entity.Table)}
}

func (d *fakeDataset) Exists(path string) bool {
	switch filepath.Base(path) {
	case TransactionsFile:
		return d.txs != nil
	case SalesHistoryFile:
		return d.sales != nil
	}
	return false
}

func (d *fakeDataset) LoadTransactions(path string) ([]entity.Transaction, error) {
	return d.txs, nil
}

func (d *fakeDataset) LoadSales(path string) ([]entity.SalesRecord, error) {
	return d.sales, nil
}

func (d *fakeDataset) WriteTable(path string, table *entity.Table) (string, error) {
	d.written[filepath.Base(path)] = table
	return path, nil
}

type fakeEngine struct {
	loaded   int
	queries  []string
	segments []entity.RFMSegmentSummary
	asOf     time.Time
	closed   bool
}

func (e *fakeEngine) LoadTransactions(ctx context.Context, txs []entity.Transaction) (int64, error) {
	e.loaded = len(txs)
	return int64(len(txs)), nil
}

func (e *fakeEngine) Query(ctx context.Context, query string) (*entity.Table, error) {
	e.queries = append(e.queries, query)
	t := entity.NewTable("query", "customer_id", "order_count", "total_spent")
	t.Append("CUST001", "3", "1200")
	return t, nil
}

func (e *fakeEngine) RFMSegments(ctx context.Context, asOf time.Time) ([]entity.RFMSegmentSummary, error) {
	e.asOf = asOf
	return e.segments, nil
}

func (e *fakeEngine) Close() error {
	e.closed = true
	return nil
}

func (e *fakeEngine) factory() repository.SQLEngineFactory {
	return func() (repository.SQLEngine, error) { return e, nil }
}

type fakeChart struct {
	paths []string
}

func (c *fakeChart) RenderForecastChart(result entity.ForecastResult, path string) (string, error) {
	c.paths = append(c.paths, path)
	return path, nil
}

type fakeExport struct {
	calls []string
}

func (e *fakeExport) ExportReportToCSV(report entity.Report, filename, outputDir string) ([]string, error) {
	e.calls = append(e.calls, "csv:"+filename)
	return []string{filepath.Join(outputDir, filename+".csv")}, nil
}

func (e *fakeExport) ExportReportToJSON(report entity.Report, filename, outputDir string) (string, error) {
	e.calls = append(e.calls, "json:"+filename)
	return filepath.Join(outputDir, filename+".json"), nil
}

func (e *fakeExport) ExportReportToPDF(report entity.Report, filename, outputDir string) (string, error) {
	e.calls = append(e.calls, "pdf:"+filename)
	return "", os.ErrPermission
}

type fakePublish struct {
	target repository.PublishTarget
	paths  []string
}

func (p *fakePublish) CallerIdentity(ctx context.Context, target repository.PublishTarget) (string, error) {
	return "arn:aws:iam::123456789012:user/test", nil
}

func (p *fakePublish) Publish(ctx context.Context, target repository.PublishTarget, paths []string) ([]string, error) {
	p.target = target
	p.paths = append(p.paths, paths...)
	uris := make([]string, len(paths))
	for i, path := range paths {
		uris[i] = "s3://" + target.Bucket + "/" + filepath.Base(path)
	}
	return uris, nil
}

type harness struct {
	uc      *AnalyticsUseCase
	console *fakeConsole
	data    *fakeDataset
	engine  *fakeEngine
	chart   *fakeChart
	export  *fakeExport
	publish *fakePublish
}

func newHarness() *harness {
	h := &harness{
		console: &fakeConsole{},
		data:    newFakeDataset(),
		engine:  &fakeEngine{},
		chart:   &fakeChart{},
		export:  &fakeExport{},
		publish: &fakePublish{},
	}
	h.uc = NewAnalyticsUseCase(h.data, h.engine.factory(), h.chart, h.export, h.publish, h.console)
	h.uc.newRunID = func() string { return "run-test" }
	return h
}
