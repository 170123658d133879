package core

// updaters stores all the update sources the launcher can check local mods
// against, keyed by the name used in each mod's update table.
var updaters = make(map[string]Updater)

func AddUpdater(updater Updater) {
	updaters[updater.GetName()] = updater
}

func GetUpdater(name string) (Updater, bool) {
	updater, ok := updaters[name]
	return updater, ok
}

// UpdateContext carries the game facts an update source needs to pick
// compatible files: the server's Minecraft version and its loaders.
type UpdateContext struct {
	MinecraftVersion string
	Loaders          []string
}

// Updater is used to process updates on local mods
type Updater interface {
	GetName() string
	// ParseUpdate takes an unparsed interface{} (as a map[string]interface{}), and returns the typed update data for a mod.
	// This can be done using the mapstructure library or your own parsing methods.
	ParseUpdate(map[string]interface{}) (interface{}, error)
	// CheckUpdate checks whether there is an update for each of the mods in the given slice,
	// called for all of the mods that this updater handles
	CheckUpdate([]*LocalMod, UpdateContext) ([]UpdateCheck, error)
	// DoUpdate carries out the update previously queried in CheckUpdate, on each mod's metadata,
	// given pointers to LocalMods and the value of CachedState for each mod
	DoUpdate([]*LocalMod, []interface{}) error
}

// UpdateCheck represents the data returned from CheckUpdate for each mod
type UpdateCheck struct {
	// UpdateAvailable is true if an update is available for this mod
	UpdateAvailable bool
	// UpdateString is a string that details the update in some way to the user. Usually this will be in the form of
	// a version change (1.0.0 -> 1.0.1), or a file name change (thanos-skin-1.0.0.jar -> thanos-skin-1.0.1.jar).
	UpdateString string
	// CachedState can be used to preserve per-mod state between CheckUpdate and DoUpdate (e.g. file metadata)
	CachedState interface{}
	// Error stores an error for this specific mod
	// Errors can also be returned from CheckUpdate directly, if the whole operation failed completely (so only 1 error is printed)
	// If an error is returned for a mod, or from CheckUpdate, DoUpdate is not called on that mod / at all
	Error error
}

type MarshalResult struct {
	Value      []byte
	HashFormat string
	Hash       string
}

func (m MarshalResult) String() string {
	return string(m.Value)
}

type HashableObject interface {
	Marshal() (MarshalResult, error)
}
