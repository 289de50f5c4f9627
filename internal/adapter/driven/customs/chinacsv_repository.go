package customs

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"

	"github.com/dysin/market-insights-go/internal/domain/entity"
	"github.com/dysin/market-insights-go/internal/domain/repository"
	"github.com/dysin/market-insights-go/internal/shared/types"
)

// ColumnMap names the source columns of a China customs export. The
// defaults match the headers of the official single-file CSV download.
type ColumnMap struct {
	Period   string
	Partner  string
	Province string
	Mode     string
	Product  string
	CmdCode  string
	Value    string
}

func DefaultColumnMap() ColumnMap {
	return ColumnMap{
		Period:   "数据年月",
		Partner:  "贸易伙伴名称",
		Province: "注册地名称",
		Mode:     "贸易方式名称",
		Product:  "商品名称",
		CmdCode:  "商品编码",
		Value:    "人民币",
	}
}

// ChinaCSVRepositoryImpl implements repository.CustomsTableRepository for
// China customs CSV exports. Files may be GBK or UTF-8 encoded; values may
// carry thousands separators.
type ChinaCSVRepositoryImpl struct {
	Columns ColumnMap
	console types.ConsoleInterface
}

var _ repository.CustomsTableRepository = (*ChinaCSVRepositoryImpl)(nil)

func NewChinaCSVRepository(console types.ConsoleInterface) *ChinaCSVRepositoryImpl {
	return &ChinaCSVRepositoryImpl{Columns: DefaultColumnMap(), console: console}
}

var digitsRe = regexp.MustCompile(`\d+`)

// Load reads and normalizes one exported table. A required column missing
// from the header is a types.ErrSchemaViolation; the CmdCode column is
// optional.
func (r *ChinaCSVRepositoryImpl) Load(path string) ([]entity.TradeRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading customs table: %w", err)
	}

	text, err := decodeTable(raw)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error parsing customs table %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("customs table %s is empty", path)
	}

	header := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		header[strings.TrimSpace(name)] = i
	}

	col := func(name string) (int, error) {
		i, ok := header[name]
		if !ok {
			return 0, fmt.Errorf("%w: %s", types.ErrSchemaViolation, name)
		}
		return i, nil
	}

	var idx struct{ period, partner, province, mode, product, value int }
	if idx.period, err = col(r.Columns.Period); err != nil {
		return nil, err
	}
	if idx.partner, err = col(r.Columns.Partner); err != nil {
		return nil, err
	}
	if idx.province, err = col(r.Columns.Province); err != nil {
		return nil, err
	}
	if idx.mode, err = col(r.Columns.Mode); err != nil {
		return nil, err
	}
	if idx.product, err = col(r.Columns.Product); err != nil {
		return nil, err
	}
	if idx.value, err = col(r.Columns.Value); err != nil {
		return nil, err
	}
	cmdIdx, hasCmd := header[r.Columns.CmdCode]

	records := make([]entity.TradeRecord, 0, len(rows)-1)
	for n, row := range rows[1:] {
		get := func(i int) string {
			if i < len(row) {
				return strings.TrimSpace(row[i])
			}
			return ""
		}

		period, ok := parsePeriod(get(idx.period))
		if !ok {
			r.console.LogWarning("row %d: unparseable period %q, skipping", n+2, get(idx.period))
			continue
		}
		value, err := parseAmount(get(idx.value))
		if err != nil {
			r.console.LogWarning("row %d: unparseable value %q, skipping", n+2, get(idx.value))
			continue
		}

		rec := entity.TradeRecord{
			Provider: "china-customs",
			Reporter: "China",
			Partner:  get(idx.partner),
			Period:   period,
			Product:  get(idx.product),
			Mode:     get(idx.mode),
			Province: get(idx.province),
			Value:    value,
			Currency: "CNY",
		}
		if hasCmd {
			rec.CmdCode = get(cmdIdx)
		}
		records = append(records, rec)
	}
	return records, nil
}

// decodeTable returns the file as UTF-8 text, transcoding from GBK when
// the raw bytes are not valid UTF-8. A UTF-8 BOM is dropped.
func decodeTable(raw []byte) (string, error) {
	raw = bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF})
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	decoded, _, err := transform.Bytes(simplifiedchinese.GBK.NewDecoder(), raw)
	if err != nil {
		return "", fmt.Errorf("table is neither UTF-8 nor GBK: %w", err)
	}
	return string(decoded), nil
}

// parsePeriod extracts YYYYMM from values like "202501" or "2025年1月".
func parsePeriod(s string) (int, bool) {
	digits := digitsRe.FindAllString(s, -1)
	switch len(digits) {
	case 1:
		if len(digits[0]) == 6 {
			v, err := strconv.Atoi(digits[0])
			return v, err == nil
		}
	case 2:
		year, err1 := strconv.Atoi(digits[0])
		month, err2 := strconv.Atoi(digits[1])
		if err1 == nil && err2 == nil && month >= 1 && month <= 12 {
			return year*100 + month, true
		}
	}
	return 0, false
}

// parseAmount parses a numeric cell that may carry thousands separators.
func parseAmount(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" || s == "-" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
