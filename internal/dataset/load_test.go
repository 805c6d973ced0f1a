package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadAllSlots(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "imf_indicators.csv", "id,indicator_name_fr,country\n1,PIB,France\n")
	writeFile(t, dir, "wb_indicators.csv", "id,indicator_name_fr,country_name\n2,Inflation,Germany\n")
	writeFile(t, dir, "market_data_2024-01-15.csv", "ticker,timestamp,close_price\nAAPL,2024-01-15,180\n")
	writeFile(t, dir, "corp_info_2024-01-15.csv", "ticker,company_name\nAAPL,Apple Inc.\n")

	snap := Load(dir)
	require.NotNil(t, snap.IMF)
	require.NotNil(t, snap.WorldBank)
	require.NotNil(t, snap.Market)
	require.NotNil(t, snap.Companies)

	assert.Equal(t, "PIB", snap.IMF.Field(0, "indicator_name_fr"))
	assert.Equal(t, "Germany", snap.WorldBank.Field(0, "country_name"))
	assert.Equal(t, "AAPL", snap.Market.Field(0, "ticker"))
	assert.Equal(t, "Apple Inc.", snap.Companies.Field(0, "company_name"))
}

func TestLoadMissingFiles(t *testing.T) {
	snap := Load(t.TempDir())

	assert.Nil(t, snap.IMF)
	assert.Nil(t, snap.WorldBank)
	assert.Nil(t, snap.Market)
	assert.Nil(t, snap.Companies)
}

func TestLoadPicksLatestDatedFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "market_data_2024-01-15.csv", "ticker,close_price\nAAPL,180\n")
	writeFile(t, dir, "market_data_2024-03-01.csv", "ticker,close_price\nAAPL,195\n")

	snap := Load(dir)
	require.NotNil(t, snap.Market)
	assert.Equal(t, "195", snap.Market.Field(0, "close_price"))
}

func TestLoadIgnoresNonMatchingFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "market_data_2024-01-15.txt", "not a csv")
	writeFile(t, dir, "other_market_data_2024-01-15.csv", "ticker\nAAPL\n")

	snap := Load(dir)
	assert.Nil(t, snap.Market)
}

func TestLoadBadFileLeavesOnlyItsSlotEmpty(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "imf_indicators.csv", "")
	writeFile(t, dir, "wb_indicators.csv", "id,indicator_name_fr\n7,Chomage\n")

	snap := Load(dir)
	assert.Nil(t, snap.IMF)
	require.NotNil(t, snap.WorldBank)
	assert.Equal(t, "Chomage", snap.WorldBank.Field(0, "indicator_name_fr"))
}
