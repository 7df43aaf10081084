// Package report describes a finished unpack run as a YAML document.
package report

import (
	"fmt"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
	"gopkg.in/yaml.v3"

	"qotaunpack/internal/output"
	"qotaunpack/internal/qota"
)

type Header struct {
	FirmwareVersion string `yaml:"firmware_version"`
	DataSize        int    `yaml:"data_size"`
	CRC             string `yaml:"crc"`
}

type Report struct {
	Input         string  `yaml:"input"`
	Output        string  `yaml:"output"`
	FormatVersion string  `yaml:"format_version"`
	Cipher        string  `yaml:"cipher"`
	Checks        bool    `yaml:"checks"`
	HeaderRemoved bool    `yaml:"header_removed"`
	Header        *Header `yaml:"header,omitempty"`
	OutputSize    int     `yaml:"output_size"`
	OutputCID     string  `yaml:"output_cid"`
}

// New builds the report for a successful qota.Unpack.
func New(input, out string, opts qota.Options, res qota.Result) (Report, error) {
	id, err := ContentID(res.Output)
	if err != nil {
		return Report{}, err
	}

	r := Report{
		Input:         input,
		Output:        out,
		FormatVersion: hex16(res.FormatVersion),
		Cipher:        opts.Cipher.String(),
		Checks:        !opts.DisableChecks,
		HeaderRemoved: opts.RemoveHeader,
		OutputSize:    len(res.Output),
		OutputCID:     id.String(),
	}
	if res.Frame != nil {
		r.Header = &Header{
			FirmwareVersion: hex16(res.Frame.FirmwareVersion),
			DataSize:        int(res.Frame.DataSize),
			CRC:             hex16(res.Frame.CRC),
		}
	}
	return r, nil
}

// ContentID returns a CIDv1 with the raw codec over a sha2-256 multihash of
// data.
func ContentID(data []byte) (cid.Cid, error) {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, sum), nil
}

func (r Report) Marshal() ([]byte, error) {
	return yaml.Marshal(r)
}

// Stage marshals the report into a pending write so it can be committed
// together with the unpacked image.
func Stage(path string, r Report) (*output.Pending, error) {
	b, err := r.Marshal()
	if err != nil {
		return nil, err
	}
	return output.Stage(path, b, 0o644)
}

// Write stores the report at path with the same all-or-nothing guarantee as
// the unpacked image.
func Write(path string, r Report) error {
	p, err := Stage(path, r)
	if err != nil {
		return err
	}
	return p.Commit()
}

func hex16(v uint16) string {
	return fmt.Sprintf("0x%04X", v)
}
