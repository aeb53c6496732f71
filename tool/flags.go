package tool

import (
	"github.com/spf13/pflag"

	"github.com/moyoez/configd/types"
)

// Flags holds runtime overrides from CLI flags.
type Flags struct {
	ConfigPath string
	Log        string
	Listen     string
	Storage    string // overrides storage.driver
	Socket     string // overrides notifySocket
}

// BindFlags registers the overrides on fs.
func BindFlags(fs *pflag.FlagSet, f *Flags) {
	fs.StringVar(&f.ConfigPath, "config", "", "override daemon config file path (default ./configd.yaml)")
	fs.StringVar(&f.Log, "log", "", "log mode: dev|prod|none (default from config file)")
	fs.StringVar(&f.Listen, "listen", "", "override API listen address")
	fs.StringVar(&f.Storage, "storage", "", "override storage driver: file|sqlite|memory")
	fs.StringVar(&f.Socket, "notify-socket", "", "forward presentation changes to this Unix socket")
}

// Apply copies the overrides that were set onto cfg. Flags win over the file.
func (f Flags) Apply(cfg *types.DaemonConfig) {
	if f.Log != "" {
		cfg.Log = f.Log
	}
	if f.Listen != "" {
		cfg.Listen = f.Listen
	}
	if f.Storage != "" {
		cfg.Storage.Driver = f.Storage
		FixStoragePath(&cfg.Storage)
	}
	if f.Socket != "" {
		cfg.NotifySocket = f.Socket
	}
}
