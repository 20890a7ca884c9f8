package hexfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTempHex(t *testing.T, lines []string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "image.hex")
	content := ""
	for _, l := range lines {
		content += l + "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseCoalescesContiguousRecords(t *testing.T) {
	// Two contiguous 4-byte data records at 0x0000 and 0x0004, then EOF.
	path := writeTempHex(t, []string{
		":0400000001020304F2",
		":0400040005060708DE",
		":00000001FF",
	})

	records, err := IntelHexParser{}.Parse(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.EqualValues(t, 0x0000, records[0].Address)
	require.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, records[0].Data)
}

func TestParseKeepsNonContiguousRecordsSeparate(t *testing.T) {
	path := writeTempHex(t, []string{
		":0400000001020304F2",
		":0400100005060708D2",
		":00000001FF",
	})

	records, err := IntelHexParser{}.Parse(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.EqualValues(t, 0x0000, records[0].Address)
	require.EqualValues(t, 0x0010, records[1].Address)
}

func TestParseRejectsBadChecksum(t *testing.T) {
	path := writeTempHex(t, []string{
		":0400000001020304FF",
	})
	_, err := IntelHexParser{}.Parse(path)
	require.Error(t, err)
}
