package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	imfFile       = "imf_indicators.csv"
	worldBankFile = "wb_indicators.csv"

	marketPrefix  = "market_data_"
	companyPrefix = "corp_info_"
	csvExt        = ".csv"
)

// Snapshot holds every table the service answers from. Slots are nil
// when the backing file is absent or unreadable; queries treat a nil
// slot as an empty dataset.
type Snapshot struct {
	IMF       *Table
	WorldBank *Table
	Market    *Table
	Companies *Table
}

// Load reads the dataset directory once. A file that fails to load is
// logged and leaves its slot empty; Load itself never fails.
func Load(dir string) *Snapshot {
	return &Snapshot{
		IMF:       loadFile(filepath.Join(dir, imfFile)),
		WorldBank: loadFile(filepath.Join(dir, worldBankFile)),
		Market:    loadLatest(dir, marketPrefix),
		Companies: loadLatest(dir, companyPrefix),
	}
}

func loadFile(path string) *Table {
	table, err := readTable(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("dataset file not loaded")
		return nil
	}
	log.Info().Str("path", path).Int("rows", table.Len()).Msg("dataset file loaded")
	return table
}

func loadLatest(dir, prefix string) *Table {
	path, err := latestDatedFile(dir, prefix)
	if err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("dataset file not found")
		return nil
	}
	return loadFile(path)
}

// latestDatedFile picks the most recent file matching prefix*.csv. The
// names carry ISO dates, so descending name order is descending date
// order regardless of directory enumeration order.
func latestDatedFile(dir, prefix string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	names := make([]string, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, prefix) && strings.HasSuffix(name, csvExt) {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "", fmt.Errorf("dataset: no %s*%s in %s", prefix, csvExt, dir)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return filepath.Join(dir, names[0]), nil
}

func readTable(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ParseTable(file)
}
