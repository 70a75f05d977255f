package main

import (
	"io"

	"go.uber.org/zap"

	"github.com/dhunton/nsfg/internal/config"
	"github.com/dhunton/nsfg/internal/report"
	"github.com/dhunton/nsfg/internal/survey"
)

// run executes the pipeline: read and clean both tables, run the
// checks, then write the report to w.
func run(w io.Writer, cfg *config.Config, logger *zap.Logger, checks []survey.Check) error {

	resp, err := survey.ReadFemResp(cfg.Data.RespDictPath(), cfg.Data.RespDataPath(), cfg.Data.MaxRows, logger)
	if err != nil {
		return err
	}

	preg, err := survey.ReadFemPreg(cfg.Data.PregDictPath(), cfg.Data.PregDataPath(), cfg.Cleaning.PregRules(), logger)
	if err != nil {
		return err
	}

	rep := report.New(w, cfg.Report)
	if err := rep.Shape(preg); err != nil {
		return err
	}

	if err := survey.RunChecks(checks, resp, preg); err != nil {
		return err
	}
	logger.Info("checks passed", zap.Int("checks", len(checks)))
	if err := rep.Passed(); err != nil {
		return err
	}

	if err := rep.Exercise11(resp, preg); err != nil {
		return err
	}
	return rep.Exercise24(preg)
}
