package survey

import (
	"go.uber.org/zap"

	"github.com/dhunton/nsfg"
)

// ReadFemResp reads and cleans the respondent table.  At most nrows
// records are read; a negative nrows reads them all.
func ReadFemResp(dctFile, datFile string, nrows int, logger *zap.Logger) (*nsfg.Dataset, error) {

	if logger == nil {
		logger = zap.NewNop()
	}

	ds, err := nsfg.ReadFixedWidth(dctFile, datFile, nrows)
	if err != nil {
		return nil, err
	}
	logger.Info("read respondent table",
		zap.String("file", datFile),
		zap.Int("rows", ds.NumRows()),
		zap.Int("columns", ds.NumCols()))

	return CleanFemResp(ds)
}

// ReadFemPreg reads the pregnancy table and cleans it with the given
// rules.
func ReadFemPreg(dctFile, datFile string, rules PregRules, logger *zap.Logger) (*nsfg.Dataset, error) {

	if logger == nil {
		logger = zap.NewNop()
	}

	ds, err := nsfg.ReadFixedWidth(dctFile, datFile, -1)
	if err != nil {
		return nil, err
	}
	logger.Info("read pregnancy table",
		zap.String("file", datFile),
		zap.Int("rows", ds.NumRows()),
		zap.Int("columns", ds.NumCols()))

	return CleanFemPreg(ds, rules, logger)
}
