// Package launcher re-exports the pieces needed to embed the launcher core
// in another frontend, so a GUI can drive instances through a single import
// without touching the internal package layout.
package launcher

import (
	"github.com/lodestone-launcher/lodestone/accounts"
	"github.com/lodestone-launcher/lodestone/config"
	"github.com/lodestone-launcher/lodestone/core"
	"github.com/lodestone-launcher/lodestone/download"
	"github.com/lodestone-launcher/lodestone/fileio"
	"github.com/lodestone-launcher/lodestone/launch"
	"github.com/lodestone-launcher/lodestone/sources"
)

type (
	Distribution = core.Distribution
	ServerEntry  = core.ServerEntry
	Module       = core.Module
	LocalMod     = core.LocalMod
	Session      = core.Session
	Layout       = config.Layout
	MemorySize   = config.MemorySize
	Account      = accounts.Account
	AccountStore = accounts.Store
	Options      = launch.Options
	Spec         = launch.Spec
	Process      = launch.Process
	Downloader   = download.Downloader
	Item         = download.Item
	Report       = download.Report
)

var (
	DefaultInstanceDir = config.DefaultInstanceDir
	NewLayout          = config.NewLayout
	ParseMemorySize    = config.ParseMemorySize

	FetchDistribution    = fileio.FetchDistribution
	LoadDistributionFile = fileio.LoadDistributionFile
	FetchVersionManifest = fileio.FetchVersionManifest
	LoadAllLocalMods     = fileio.LoadAllLocalMods
	LoadModConfig        = fileio.LoadModConfig
	SaveModConfig        = fileio.SaveModConfig
	LoadLedger           = fileio.LoadLedger
	WriteLedger          = fileio.WriteLedger
	WriteLocalMod        = fileio.WriteLocalMod

	LoadAccounts      = accounts.Load
	NewOfflineAccount = accounts.NewOfflineAccount

	ResolveModules   = core.ResolveModules
	EnabledLocalMods = launch.EnabledLocalMods
	GetUpdatableMods = core.GetUpdatableMods
	UpdateSingleMod  = core.UpdateSingleMod
	UpdateMods       = core.UpdateMods

	ManifestPlan = download.ManifestPlan
	ModulePlan   = download.ModulePlan
	LocalModPlan = download.LocalModPlan
	AssetPlan    = download.AssetPlan

	NewGitHubLocalMod   = sources.NewGitHubLocalMod
	NewModrinthLocalMod = sources.NewModrinthLocalMod
	NewURLLocalMod      = sources.NewURLLocalMod

	Launch = launch.Launch
)
