package parser

import (
	"go.uber.org/zap"

	"github.com/hernandezlab/toolrep/internal/domain"
)

// Matches reports whether a log file and a timing file belong to the same
// participant and task condition. Task conditions map onto timing-file codes
// (passive_viewing -> PV, imagined/active grasp -> IG, clench -> clench).
func Matches(lf *LogFile, tf *TimingFile) bool {
	if lf.ParticipantID != tf.ParticipantID {
		return false
	}
	return domain.ConditionCode(lf.Condition) == tf.ConditionCode
}

// Combine joins a parsed log with a matching timing file into trial records,
// pairing stimulus presentation events with trials by position.
func Combine(lf *LogFile, tf *TimingFile) []domain.Trial {
	trials := make([]domain.Trial, 0, len(lf.Trials))
	for i, lt := range lf.Trials {
		tr := domain.Trial{
			ParticipantID:     lf.ParticipantID,
			Condition:         lf.Condition,
			StimulusType:      tf.StimulusType,
			TrialNumber:       i + 1,
			TrialTimestamp:    lt.Timestamp,
			ImageFile:         lt.ImageFile,
			ScanStart:         lf.ScanStart,
			ScanEnd:           lf.ScanEnd,
			TimingPoints:      tf.Onsets,
			ConditionDuration: tf.Duration,
		}
		if i < len(lf.Stimuli) {
			onset := lf.Stimuli[i].Onset
			tr.StimulusOnset = &onset
			tr.StimulusName = lf.Stimuli[i].Stimulus
		}
		trials = append(trials, tr)
	}
	return trials
}

// Builder assembles trial tables from a data root. Parse failures are
// logged and skipped; the builder always returns whatever it could read.
type Builder struct {
	data   *DataRoot
	logger *zap.Logger

	// Counters for pipeline metrics.
	FilesParsed int
	ParseErrors int
}

// NewBuilder creates a trial table builder over a data root.
func NewBuilder(data *DataRoot, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{data: data, logger: logger}
}

// BuildTable reconciles logs and timing files into a trial table. When
// participantID is empty every participant directory is processed. S01 has
// the complete three-run design and is handled run by run.
func (b *Builder) BuildTable(participantID string) *domain.Table {
	participants := []string{participantID}
	if participantID == "" {
		participants = b.data.Participants()
	}

	var all []domain.Trial
	for _, pid := range participants {
		b.logger.Info("processing participant", zap.String("participant", pid))
		if pid == "S01" {
			all = append(all, b.buildS01()...)
			continue
		}
		all = append(all, b.buildStandard(pid)...)
	}
	return domain.NewTable(all)
}

// buildStandard pairs every log against every matching condition file in the
// participant directory.
func (b *Builder) buildStandard(pid string) []domain.Trial {
	var out []domain.Trial

	var timings []*TimingFile
	for _, path := range b.data.ConditionFiles(pid) {
		tf, err := ParseTiming(path)
		if err != nil {
			b.ParseErrors++
			b.logger.Warn("skipping condition file", zap.String("path", path), zap.Error(err))
			continue
		}
		b.FilesParsed++
		timings = append(timings, tf)
	}

	for _, path := range b.data.LogFiles(pid) {
		lf, err := ParseLog(path)
		if err != nil {
			b.ParseErrors++
			b.logger.Warn("skipping log file", zap.String("path", path), zap.Error(err))
			continue
		}
		b.FilesParsed++
		b.logger.Debug("parsed log",
			zap.String("path", path),
			zap.Int("trials", len(lf.Trials)))

		for _, tf := range timings {
			if Matches(lf, tf) {
				out = append(out, Combine(lf, tf)...)
			}
		}
	}
	return out
}

// buildS01 processes the complete S01 design: one log per run combined with
// the run's fixed timing-file set, stamped with run metadata.
func (b *Builder) buildS01() []domain.Trial {
	var out []domain.Trial
	for _, run := range s01Runs {
		logPath := b.data.s01RunLog(run)
		if logPath == "" {
			b.logger.Warn("S01 run log not found", zap.String("run", run.dir))
			continue
		}
		lf, err := ParseLog(logPath)
		if err != nil {
			b.ParseErrors++
			b.logger.Warn("skipping S01 run log", zap.String("path", logPath), zap.Error(err))
			continue
		}
		b.FilesParsed++
		b.logger.Info("processing S01 run",
			zap.Int("run", run.number),
			zap.String("label", run.label),
			zap.Int("trials", len(lf.Trials)))

		for _, path := range b.data.s01TimingFiles(run) {
			tf, err := ParseTiming(path)
			if err != nil {
				b.ParseErrors++
				b.logger.Warn("skipping condition file", zap.String("path", path), zap.Error(err))
				continue
			}
			b.FilesParsed++
			trials := Combine(lf, tf)
			for i := range trials {
				trials[i].ParticipantID = "S01"
				trials[i].Condition = run.condition
				trials[i].RunNumber = run.number
				trials[i].RunLabel = run.label
			}
			out = append(out, trials...)
		}
	}
	return out
}
