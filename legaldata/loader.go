package legaldata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"nyaya-backend/models"
	"nyaya-backend/storage"
)

var (
	ErrNoDatasets          = errors.New("no law datasets loaded")
	ErrUnknownJurisdiction = errors.New("unknown jurisdiction")
)

// Loader holds all jurisdiction datasets in memory.
// Everything is loaded once at startup and read-only afterwards.
type Loader struct {
	domainMaps map[models.Jurisdiction]*DomainMap
	indian     *IndianDataset
	uae        *UAEDataset
	uk         *UKDataset
	procedures map[models.Jurisdiction]map[models.Domain][]models.RouteStep
}

// NewLoader reads every dataset file from storage. Individual missing
// files are logged and skipped so a partial deployment still serves the
// jurisdictions it has data for; loading fails only if nothing loads.
func NewLoader(ctx context.Context, store storage.Storage) (*Loader, error) {
	l := &Loader{
		domainMaps: make(map[models.Jurisdiction]*DomainMap),
		procedures: make(map[models.Jurisdiction]map[models.Domain][]models.RouteStep),
	}

	domainFiles := map[models.Jurisdiction]string{
		models.JurisdictionIndia: FileIndianDomainMap,
		models.JurisdictionUAE:   FileUAEDomainMap,
		models.JurisdictionUK:    FileUKDomainMap,
	}
	for jurisdiction, name := range domainFiles {
		var m DomainMap
		if err := readJSON(ctx, store, name, &m); err != nil {
			log.Printf("Warning: domain map not loaded for %s: %v", jurisdiction, err)
			continue
		}
		l.domainMaps[jurisdiction] = &m
	}

	var indian IndianDataset
	if err := readJSON(ctx, store, FileIndianLawDataset, &indian); err != nil {
		log.Printf("Warning: Indian law dataset not loaded: %v", err)
	} else {
		l.indian = &indian
	}

	var uae UAEDataset
	if err := readJSON(ctx, store, FileUAELawDataset, &uae); err != nil {
		log.Printf("Warning: UAE law dataset not loaded: %v", err)
	} else {
		l.uae = &uae
	}

	var uk UKDataset
	if err := readJSON(ctx, store, FileUKLawDataset, &uk); err != nil {
		log.Printf("Warning: UK law dataset not loaded: %v", err)
	} else {
		l.uk = &uk
	}

	procedureFiles := map[models.Jurisdiction]string{
		models.JurisdictionIndia: FileIndianProcedures,
		models.JurisdictionUAE:   FileUAEProcedures,
		models.JurisdictionUK:    FileUKProcedures,
	}
	for jurisdiction, name := range procedureFiles {
		var f ProcedureFile
		if err := readJSON(ctx, store, name, &f); err != nil {
			log.Printf("Warning: procedures not loaded for %s: %v", jurisdiction, err)
			continue
		}
		routes := make(map[models.Domain][]models.RouteStep, len(f.Procedures))
		for domain, steps := range f.Procedures {
			routes[models.Domain(domain)] = steps
		}
		l.procedures[jurisdiction] = routes
	}

	if l.indian == nil && l.uae == nil && l.uk == nil {
		return nil, ErrNoDatasets
	}

	return l, nil
}

func readJSON(ctx context.Context, store storage.Storage, name string, v interface{}) error {
	rc, err := store.Download(ctx, name)
	if err != nil {
		return err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

// LoadedDatasets lists the jurisdictions a law dataset was loaded for
func (l *Loader) LoadedDatasets() []models.Jurisdiction {
	var loaded []models.Jurisdiction
	if l.indian != nil {
		loaded = append(loaded, models.JurisdictionIndia)
	}
	if l.uae != nil {
		loaded = append(loaded, models.JurisdictionUAE)
	}
	if l.uk != nil {
		loaded = append(loaded, models.JurisdictionUK)
	}
	return loaded
}

// DomainMapFor returns the domain map for a jurisdiction, if loaded
func (l *Loader) DomainMapFor(jurisdiction models.Jurisdiction) (*DomainMap, bool) {
	m, ok := l.domainMaps[jurisdiction]
	return m, ok
}

// GlossaryTerms returns glossary entries whose term appears in the query
func (l *Loader) GlossaryTerms(query string, jurisdiction models.Jurisdiction) map[string]string {
	terms := make(map[string]string)
	m, ok := l.domainMaps[jurisdiction]
	if !ok {
		return terms
	}
	queryLower := strings.ToLower(query)
	for term, definition := range m.Glossary {
		if strings.Contains(queryLower, strings.ToLower(term)) {
			terms[term] = definition
		}
	}
	return terms
}
