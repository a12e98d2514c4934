package finlogic

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"sort"

	"github.com/brfin/finlogic/date"
)

// Default locations of the published dataset files. The files are
// rebuilt daily by the data pipeline; this library only consumes them.
const (
	DefaultTradesURL             = "https://raw.githubusercontent.com/brfin/finlogic-data/main/data/trades.csv.gz"
	DefaultFinancialsURL         = "https://raw.githubusercontent.com/brfin/finlogic-data/main/data/traded_companies_financials.csv.gz"
	DefaultNotTradedURL          = "https://raw.githubusercontent.com/brfin/finlogic-data/main/data/not_traded_companies_financials.csv.gz"
	DefaultTranslationsURL       = "https://raw.githubusercontent.com/brfin/finlogic-data/main/data/pten.csv.gz"
	datasetCommitsURL            = "https://api.github.com/repos/brfin/finlogic-data/commits?path=data&per_page=1"
	// DefaultMinVolume is the default liquidity floor: companies whose
	// median daily traded volume is below R$ 100k are dropped, which
	// removes extremely illiquid stocks from the dataset.
	DefaultMinVolume = 100_000
)

// LoadOptions configures Load. The zero value loads every traded
// company with no liquidity floor from the default URLs.
type LoadOptions struct {
	// MinVolume drops companies whose median daily traded volume in BRL
	// is below the threshold. Zero keeps everything.
	MinVolume float64
	// IncludeNotTraded also loads the financials of companies that are
	// no longer traded (delisted or never listed).
	IncludeNotTraded bool

	// Overrides for the published file locations. Empty means default.
	TradesURL       string
	FinancialsURL   string
	NotTradedURL    string
	TranslationsURL string

	// Client used for the fetches. Defaults to a client with a
	// daily-expiring disk cache.
	Client *http.Client
}

// Dataset is the in-memory, read-only view of the published accounting
// data: the raw accounting entries, one trading profile per company,
// the account-name translations, and the derived indicators table.
type Dataset struct {
	entries      []AccountingEntry
	profiles     map[uint32]TradingProfile
	translations map[string]string
	indicators   []IndicatorRow

	sourceURL string

	// entries index ranges per company, entries are sorted by CVMID.
	companyIdx map[uint32]span
}

// span is a [from,to) index range into the entries slice.
type span struct{ from, to int }

// Load fetches the dataset files and assembles the in-memory Dataset.
// Fetches go through a daily-expiring disk cache, so calling Load
// twice on the same day does not hit the network again.
func Load(opts LoadOptions) (*Dataset, error) {
	client := opts.Client
	if client == nil {
		client = daily()
	}
	urlOr := func(url, def string) string {
		if url == "" {
			return def
		}
		return url
	}

	log.Println("Loading translations data...")
	translations, err := loadTranslations(client, urlOr(opts.TranslationsURL, DefaultTranslationsURL))
	if err != nil {
		return nil, err
	}

	log.Println("Loading trading data...")
	profiles, err := loadTrades(client, urlOr(opts.TradesURL, DefaultTradesURL))
	if err != nil {
		return nil, err
	}

	log.Println("Loading financials data...")
	financialsURL := urlOr(opts.FinancialsURL, DefaultFinancialsURL)
	entries, err := loadFinancials(client, financialsURL)
	if err != nil {
		return nil, err
	}
	if opts.IncludeNotTraded {
		more, err := loadFinancials(client, urlOr(opts.NotTradedURL, DefaultNotTradedURL))
		if err != nil {
			return nil, err
		}
		entries = append(entries, more...)
	}

	ds := newDataset(entries, profiles, translations, opts.MinVolume)
	ds.sourceURL = financialsURL

	log.Println("Building indicators data...")
	ds.indicators = buildIndicators(ds)
	return ds, nil
}

// newDataset assembles and indexes a dataset from already-decoded
// tables, applying the liquidity floor.
func newDataset(entries []AccountingEntry, profiles []TradingProfile, translations map[string]string, minVolume float64) *Dataset {
	ds := &Dataset{
		profiles:     make(map[uint32]TradingProfile, len(profiles)),
		translations: translations,
		companyIdx:   make(map[uint32]span),
	}
	if ds.translations == nil {
		ds.translations = map[string]string{}
	}
	for _, p := range profiles {
		if p.Volume < minVolume {
			continue
		}
		ds.profiles[p.CVMID] = p
	}

	// Keep only entries of companies that pass the liquidity floor,
	// translating account names on the way in.
	ds.entries = make([]AccountingEntry, 0, len(entries))
	for _, e := range entries {
		if _, ok := ds.profiles[e.CVMID]; !ok {
			continue
		}
		if en, ok := ds.translations[e.AccName]; ok {
			e.AccName = en
		}
		ds.entries = append(ds.entries, e)
	}

	// Group entries per company so that company views are cheap slices.
	sort.SliceStable(ds.entries, func(i, j int) bool {
		a, b := ds.entries[i], ds.entries[j]
		if a.CVMID != b.CVMID {
			return a.CVMID < b.CVMID
		}
		return a.AccCode < b.AccCode
	})
	for i, e := range ds.entries {
		s, ok := ds.companyIdx[e.CVMID]
		if !ok {
			s = span{from: i}
		}
		s.to = i + 1
		ds.companyIdx[e.CVMID] = s
	}
	return ds
}

// Entries returns the accounting entries of the dataset. The returned
// slice is shared and must not be mutated.
func (ds *Dataset) Entries() []AccountingEntry { return ds.entries }

// Profile returns the trading profile of a company.
func (ds *Dataset) Profile(cvmID uint32) (TradingProfile, bool) {
	p, ok := ds.profiles[cvmID]
	return p, ok
}

// companyEntries returns the entries of one company, sorted by account code.
func (ds *Dataset) companyEntries(cvmID uint32) []AccountingEntry {
	s, ok := ds.companyIdx[cvmID]
	if !ok {
		return nil
	}
	return ds.entries[s.from:s.to]
}

func loadFinancials(client *http.Client, addr string) ([]AccountingEntry, error) {
	body, err := fetch(client, addr)
	if err != nil {
		return nil, fmt.Errorf("cannot fetch financials: %w", err)
	}
	defer body.Close()
	entries, err := decodeFinancials(body)
	if err != nil {
		return nil, fmt.Errorf("cannot decode financials from %v: %w", addr, err)
	}
	return entries, nil
}

func loadTrades(client *http.Client, addr string) ([]TradingProfile, error) {
	body, err := fetch(client, addr)
	if err != nil {
		return nil, fmt.Errorf("cannot fetch trades: %w", err)
	}
	defer body.Close()
	profiles, err := decodeTrades(body)
	if err != nil {
		return nil, fmt.Errorf("cannot decode trades from %v: %w", addr, err)
	}
	return profiles, nil
}

func loadTranslations(client *http.Client, addr string) (map[string]string, error) {
	body, err := fetch(client, addr)
	if err != nil {
		return nil, fmt.Errorf("cannot fetch translations: %w", err)
	}
	defer body.Close()
	translations, err := decodeTranslations(body)
	if err != nil {
		return nil, fmt.Errorf("cannot decode translations from %v: %w", addr, err)
	}
	return translations, nil
}

// lastAnnualEnd and friends compute dataset-wide reporting bounds.
func (ds *Dataset) reportBounds() (first, last date.Date) {
	for _, e := range ds.entries {
		if first.IsZero() || e.PeriodEnd.Before(first) {
			first = e.PeriodEnd
		}
		if e.PeriodEnd.After(last) {
			last = e.PeriodEnd
		}
	}
	return first, last
}

// ErrEmptyDataset is returned by queries on a dataset with no entries.
var ErrEmptyDataset = errors.New("dataset is empty")
