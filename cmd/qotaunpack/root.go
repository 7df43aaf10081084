package main

import (
	"io"
	"os"

	"github.com/apex/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"qotaunpack/internal/config"
	"qotaunpack/internal/output"
	"qotaunpack/internal/qota"
	"qotaunpack/internal/report"
)

type flags struct {
	configPath string
	key        string
	from       string
	cipher     string
	verbose    bool

	to            string
	disableChecks bool
	removeHeader  bool
	checkSize     bool
	report        string
}

func newRootCmd(logger *log.Logger, stdin io.Reader, stdout io.Writer, stderr io.Writer) *cobra.Command {
	var f flags

	root := &cobra.Command{
		Use:   "qotaunpack",
		Short: "Decrypt and verify QOTA firmware packs",
		Long: `Decrypt a QOTA firmware pack with its AES-128 key, verify the embedded
CRC-16 and write the firmware image.

Nothing is written unless every enabled check passes.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if f.verbose {
				logger.Level = log.DebugLevel
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUnpack(cmd, &f, logger, stdin, stderr)
		},
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "YAML config file providing defaults for these flags")
	pf.StringVarP(&f.key, "key", "k", "", "AES-128 key in hex, or - to read it from the terminal")
	pf.StringVarP(&f.from, "from", "f", "", "encrypted firmware file")
	pf.StringVar(&f.cipher, "cipher", "inverse", "block permutation: inverse or forward")
	pf.BoolVarP(&f.verbose, "verbose", "V", false, "debug logging")

	lf := root.Flags()
	lf.StringVarP(&f.to, "to", "t", "", "decrypted firmware file")
	lf.BoolVar(&f.disableChecks, "disable-checks", false, "disable version and checksum checks, and decrypt in any case")
	lf.BoolVar(&f.removeHeader, "remove-header", false, "remove the 16-byte header added by qotapack")
	lf.BoolVar(&f.checkSize, "check-size", false, "also require the header data size to match the payload length")
	lf.StringVar(&f.report, "report", "", "write a YAML report of the unpacked image to this path")

	root.AddCommand(newInspectCmd(&f, logger, stdin, stdout, stderr))
	return root
}

// loadConfig layers explicitly set flags over the config file (or the
// defaults when no file is given).
func loadConfig(cmd *cobra.Command, f *flags) (config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		c, err := config.Load(f.configPath)
		if err != nil {
			return config.Config{}, errors.Wrapf(err, "failed to load config %s", f.configPath)
		}
		cfg = c
	}

	fs := cmd.Flags()
	if fs.Changed("key") {
		cfg.Key = f.key
	}
	if fs.Changed("cipher") {
		cfg.Cipher = f.cipher
	}
	if fs.Changed("disable-checks") {
		cfg.Checks.Disable = f.disableChecks
	}
	if fs.Changed("check-size") {
		cfg.Checks.DataSize = f.checkSize
	}
	if fs.Changed("remove-header") {
		cfg.Output.RemoveHeader = f.removeHeader
	}
	if fs.Changed("report") {
		cfg.Output.Report = f.report
	}

	if err := cfg.Normalize(); err != nil {
		return config.Config{}, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

func runUnpack(cmd *cobra.Command, f *flags, logger *log.Logger, stdin io.Reader, stderr io.Writer) error {
	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return err
	}
	if f.from == "" {
		return errors.New("you must supply an encrypted file with --from")
	}
	if f.to == "" {
		return errors.New("you must supply a destination with --to")
	}

	key, err := resolveKey(cfg.Key, stdin, stderr)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(f.from)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", f.from)
	}

	opts := cfg.Options()
	logger.WithFields(log.Fields{
		"input":  f.from,
		"size":   len(data),
		"cipher": opts.Cipher,
	}).Debug("unpacking")

	res, err := qota.Unpack(key, data, opts)
	if err != nil {
		return errors.Wrapf(err, "failed to unpack %s", f.from)
	}
	if res.Frame != nil {
		logger.WithFields(log.Fields{
			"format_version":   res.FormatVersion,
			"firmware_version": res.Frame.FirmwareVersion,
			"data_size":        res.Frame.DataSize,
			"crc":              res.Frame.CRC,
		}).Debug("frame verified")
	} else {
		logger.WithField("format_version", res.FormatVersion).Warn("version and checksum checks disabled")
	}

	// Stage every file before committing any, so a failure leaves nothing.
	img, err := output.Stage(f.to, res.Output, cfg.FileMode())
	if err != nil {
		return errors.Wrapf(err, "failed to write %s", f.to)
	}
	defer img.Discard()

	var rep *output.Pending
	if cfg.Output.Report != "" {
		r, err := report.New(f.from, f.to, opts, res)
		if err != nil {
			return errors.Wrap(err, "failed to build report")
		}
		rep, err = report.Stage(cfg.Output.Report, r)
		if err != nil {
			return errors.Wrapf(err, "failed to write report %s", cfg.Output.Report)
		}
		defer rep.Discard()
	}

	if err := img.Commit(); err != nil {
		return errors.Wrapf(err, "failed to write %s", f.to)
	}
	if rep != nil {
		if err := rep.Commit(); err != nil {
			_ = os.Remove(f.to)
			return errors.Wrapf(err, "failed to write report %s", rep.Path())
		}
	}

	logger.WithFields(log.Fields{
		"output": f.to,
		"size":   len(res.Output),
	}).Info("firmware unpacked")
	if rep != nil {
		logger.WithField("report", rep.Path()).Info("report written")
	}
	return nil
}
