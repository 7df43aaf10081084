package main

import (
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"qotaunpack/internal/qota"
)

func newInspectCmd(f *flags, logger *log.Logger, stdin io.Reader, stdout io.Writer, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Decrypt a pack and print its header without writing anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			if f.from == "" {
				return errors.New("you must supply an encrypted file with --from")
			}
			key, err := resolveKey(cfg.Key, stdin, stderr)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(f.from)
			if err != nil {
				return errors.Wrapf(err, "failed to read %s", f.from)
			}

			in, err := qota.Inspect(key, data, cfg.Options().Cipher)
			if err != nil {
				return errors.Wrapf(err, "failed to decrypt %s", f.from)
			}
			logger.WithField("input", f.from).Debug("inspected")

			printInspection(stdout, f.from, in)
			return nil
		},
	}
}

func printInspection(w io.Writer, path string, in qota.Inspection) {
	fmt.Fprintf(w, "path: %s\n", path)
	fmt.Fprintf(w, "format_version: 0x%04X (%s)\n", in.FormatVersion, verdict(in.VersionSupported, "supported", "unsupported"))
	fmt.Fprintf(w, "ciphertext_size: %d\n", in.CiphertextSize)
	fmt.Fprintf(w, "firmware_version: 0x%04X\n", in.Frame.FirmwareVersion)
	if in.DataSizeOK {
		fmt.Fprintf(w, "data_size: %d (ok)\n", in.Frame.DataSize)
	} else {
		fmt.Fprintf(w, "data_size: %d (payload is %d)\n", in.Frame.DataSize, len(in.Frame.Data))
	}
	if in.ChecksumOK {
		fmt.Fprintf(w, "crc: 0x%04X (ok)\n", in.Frame.CRC)
	} else {
		fmt.Fprintf(w, "crc: 0x%04X (computed 0x%04X)\n", in.Frame.CRC, in.ComputedCRC)
	}
}

func verdict(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}
