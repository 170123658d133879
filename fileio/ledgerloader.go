package fileio

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/lodestone-launcher/lodestone/core"
)

// LoadLedger reads the instance artifact ledger. A missing file yields a
// fresh empty ledger rather than an error; the first sync writes it.
func LoadLedger(ledgerFile string) (core.Ledger, error) {
	var rep core.LedgerTomlRepresentation
	raw, err := os.ReadFile(ledgerFile)
	if err != nil {
		if os.IsNotExist(err) {
			return core.NewLedger(filepath.Dir(ledgerFile)), nil
		}
		return core.Ledger{}, err
	}
	if err := toml.Unmarshal(raw, &rep); err != nil {
		return core.Ledger{}, err
	}
	rep.SetFilePath(ledgerFile)

	return core.NewLedgerFromTomlRepr(rep), nil
}

// WriteLedger persists the ledger back to its instance.
func WriteLedger(ledger *core.Ledger) error {
	writable := ledger.ToWritable()
	_, _, err := NewMetaWriter().Write(&writable)
	return err
}
