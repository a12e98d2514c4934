package finlogic

import (
	"fmt"
	"net/http"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/brfin/finlogic/date"
)

// DatasetInfo summarizes the loaded dataset.
type DatasetInfo struct {
	SourceURL         string
	AccountingEntries int
	Reports           int // distinct (company, report kind, period) statements
	Companies         int
	FirstReport       date.Date
	LastReport        date.Date
	MemoryUsage       int64 // approximate bytes held by the tables
}

// Info returns a purely local summary of the dataset. The remote
// publication timestamp is available separately from LastPublished.
func (ds *Dataset) Info() (DatasetInfo, error) {
	if len(ds.entries) == 0 {
		return DatasetInfo{}, ErrEmptyDataset
	}

	type reportKey struct {
		cvmID     uint32
		isAnnual  bool
		periodEnd date.Date
	}
	reports := make(map[reportKey]bool)
	var memory int64
	for _, e := range ds.entries {
		reports[reportKey{e.CVMID, e.IsAnnual, e.PeriodEnd}] = true
		memory += entryFootprint(e)
	}
	first, last := ds.reportBounds()

	info := DatasetInfo{
		SourceURL:         ds.sourceURL,
		AccountingEntries: len(ds.entries),
		Reports:           len(reports),
		Companies:         len(ds.companyIdx),
		FirstReport:       first,
		LastReport:        last,
		MemoryUsage:       memory,
	}
	return info, nil
}

// LastPublished fetches the time the dataset files were last rebuilt,
// read from the dataset repository's commits API.
func (ds *Dataset) LastPublished() (time.Time, error) {
	return fetchLastUpdate(daily(), datasetCommitsURL)
}

// entryFootprint approximates the bytes held by one entry: the struct
// itself plus its string payloads.
func entryFootprint(e AccountingEntry) int64 {
	const structSize = 96
	return structSize + int64(len(e.Name)+len(e.TaxID)+len(e.AccCode)+len(e.AccName))
}

// fetchLastUpdate reads the dataset's last publication time from the
// repository commits API.
func fetchLastUpdate(client *http.Client, addr string) (time.Time, error) {
	var payload any
	if err := jwget(client, addr, &payload); err != nil {
		return time.Time{}, err
	}
	// The response is a list of commits; pick the committer date of the
	// most recent one.
	value, err := jsonpath.Get("$[0].commit.committer.date", payload)
	if err != nil {
		return time.Time{}, err
	}
	str, ok := value.(string)
	if !ok {
		return time.Time{}, fmt.Errorf("unexpected commit date payload %v", value)
	}
	return time.Parse(time.RFC3339, str)
}
