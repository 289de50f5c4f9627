package customs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"

	"github.com/dysin/market-insights-go/internal/shared/types"
)

const chinaCSV = `数据年月,贸易伙伴名称,注册地名称,贸易方式名称,商品编码,商品名称,人民币
202501,美国,浙江省,一般贸易,85444219,电线电缆,"1,234,567.89"
202501,日本,广东省,加工贸易,85444219,电线电缆,987654
2025年2月,美国,浙江省,一般贸易,85444219,电线电缆,500000
202501,德国,江苏省,一般贸易,85444219,电线电缆,not-a-number
`

func writeTable(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "customs.csv")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoadUTF8(t *testing.T) {
	repo := NewChinaCSVRepository(quiet())
	records, err := repo.Load(writeTable(t, []byte(chinaCSV)))
	require.NoError(t, err)

	// the unparseable value row is skipped
	require.Len(t, records, 3)

	rec := records[0]
	assert.Equal(t, "china-customs", rec.Provider)
	assert.Equal(t, "China", rec.Reporter)
	assert.Equal(t, "美国", rec.Partner)
	assert.Equal(t, "浙江省", rec.Province)
	assert.Equal(t, "一般贸易", rec.Mode)
	assert.Equal(t, "85444219", rec.CmdCode)
	assert.Equal(t, 202501, rec.Period)
	assert.Equal(t, "CNY", rec.Currency)
	assert.InDelta(t, 1234567.89, rec.Value, 1e-6)

	// the Chinese date format resolves to the same YYYYMM shape
	assert.Equal(t, 202502, records[2].Period)
}

func TestLoadGBK(t *testing.T) {
	gbk, _, err := transform.Bytes(simplifiedchinese.GBK.NewEncoder(), []byte(chinaCSV))
	require.NoError(t, err)

	repo := NewChinaCSVRepository(quiet())
	records, err := repo.Load(writeTable(t, gbk))
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "美国", records[0].Partner)
}

func TestLoadUTF8BOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte(chinaCSV)...)
	repo := NewChinaCSVRepository(quiet())
	records, err := repo.Load(writeTable(t, data))
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestLoadMissingColumn(t *testing.T) {
	broken := `数据年月,贸易伙伴名称,注册地名称,商品名称,人民币
202501,美国,浙江省,电线电缆,100
`
	repo := NewChinaCSVRepository(quiet())
	_, err := repo.Load(writeTable(t, []byte(broken)))
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrSchemaViolation))
	assert.Contains(t, err.Error(), "贸易方式名称")
}

func TestLoadMissingFile(t *testing.T) {
	repo := NewChinaCSVRepository(quiet())
	_, err := repo.Load(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"202501", 202501, true},
		{"2025年12月", 202512, true},
		{"2025年1月", 202501, true},
		{"garbage", 0, false},
		{"2025", 0, false},
	}
	for _, tt := range tests {
		got, ok := parsePeriod(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got, tt.in)
		}
	}
}
