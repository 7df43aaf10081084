package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
	"gopkg.in/yaml.v3"

	"qotaunpack/internal/qota"
)

func TestContentID_KnownValues(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want string
	}{
		{name: "empty", data: nil, want: "bafkreihdwdcefgh4dqkjv67uzcmw7ojee6xedzdetojuzjevtenxquvyku"},
		{name: "four bytes", data: []byte{0x01, 0x02, 0x03, 0x04}, want: "bafkreie7mstupynzp4jr7k5wwrdss3e3n4badz47wpctk3tmo7ujw2uani"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := ContentID(tc.data)
			if err != nil {
				t.Fatalf("ContentID() error: %v", err)
			}
			if id.String() != tc.want {
				t.Fatalf("cid=%s want %s", id, tc.want)
			}

			parsed, err := cid.Decode(tc.want)
			if err != nil {
				t.Fatalf("Decode() error: %v", err)
			}
			p := parsed.Prefix()
			if p.Codec != cid.Raw || p.MhType != multihash.SHA2_256 || p.Version != 1 {
				t.Fatalf("prefix=%+v", p)
			}
		})
	}
}

func TestNew_WithFrame(t *testing.T) {
	res := qota.Result{
		FormatVersion: 0x10,
		Frame:         &qota.Frame{FirmwareVersion: 0x0102, DataSize: 4, CRC: 0x0D03},
		Output:        []byte{0x01, 0x02, 0x03, 0x04},
	}
	opts := qota.Options{RemoveHeader: true, Cipher: qota.CipherForward}

	r, err := New("in.qota", "out.bin", opts, res)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if r.FormatVersion != "0x0010" || r.Cipher != "forward" || !r.Checks || !r.HeaderRemoved {
		t.Fatalf("report=%+v", r)
	}
	if r.Header == nil || r.Header.FirmwareVersion != "0x0102" || r.Header.DataSize != 4 || r.Header.CRC != "0x0D03" {
		t.Fatalf("header=%+v", r.Header)
	}
	if r.OutputSize != 4 || r.OutputCID != "bafkreie7mstupynzp4jr7k5wwrdss3e3n4badz47wpctk3tmo7ujw2uani" {
		t.Fatalf("size=%d cid=%s", r.OutputSize, r.OutputCID)
	}
}

func TestWrite_OmitsHeaderWhenChecksDisabled(t *testing.T) {
	res := qota.Result{FormatVersion: 0x11, Output: []byte{}}
	r, err := New("in", "out", qota.Options{DisableChecks: true}, res)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	path := filepath.Join(t.TempDir(), "report.yaml")
	if err := Write(path, r); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(b, &doc); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if _, ok := doc["header"]; ok {
		t.Fatalf("header present in %s", b)
	}
	if doc["checks"] != false || doc["format_version"] != "0x0011" || doc["cipher"] != "inverse" {
		t.Fatalf("doc=%v", doc)
	}
}

func TestStage_NotVisibleUntilCommit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	p, err := Stage(path, Report{Input: "in", Output: "out"})
	if err != nil {
		t.Fatalf("Stage() error: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("report visible before Commit: %v", err)
	}
	if err := p.Commit(); err != nil {
		t.Fatalf("Commit() error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Stat() error: %v", err)
	}
}
