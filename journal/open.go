package journal

import (
	"github.com/rotisserie/eris"

	"github.com/jhizzard/Strata/config"
)

// Open returns the journal selected by cfg.
func Open(cfg config.JournalConfig) (Journal, error) {
	switch cfg.Type {
	case "", "none":
		return Noop{}, nil
	case "csv":
		j, err := NewCSV(cfg.RunsFile, cfg.ValuationsFile)
		if err != nil {
			return nil, err
		}
		return j, nil
	case "sqlite":
		j, err := NewSQLite(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		return j, nil
	}
	return nil, eris.Errorf("journal: unknown type %q", cfg.Type)
}
