package sources

import (
	"errors"
	"fmt"

	"github.com/dlclark/regexp2"
	"github.com/mitchellh/mapstructure"

	"github.com/lodestone-launcher/lodestone/core"
)

func init() {
	core.AddUpdater(ghUpdater{})
}

type ghUpdateData struct {
	Slug   string `mapstructure:"slug"`
	Tag    string `mapstructure:"tag"`
	Branch string `mapstructure:"branch"`
	Regex  string `mapstructure:"regex"`
}

func (u ghUpdateData) ToMap() (map[string]interface{}, error) {
	newMap := make(map[string]interface{})
	err := mapstructure.Decode(u, &newMap)
	return newMap, err
}

type ghUpdater struct{}

func (u ghUpdater) GetName() string {
	return "github"
}

func (u ghUpdater) ParseUpdate(updateUnparsed map[string]interface{}) (interface{}, error) {
	var updateData ghUpdateData
	err := mapstructure.Decode(updateUnparsed, &updateData)
	return updateData, err
}

type ghCachedStateStore struct {
	Slug    string
	Release Release
	Asset   Asset
}

func (u ghUpdater) CheckUpdate(mods []*core.LocalMod, _ core.UpdateContext) ([]core.UpdateCheck, error) {
	results := make([]core.UpdateCheck, len(mods))

	for i, mod := range mods {
		var data ghUpdateData
		err := mod.DecodeNamedSourceData("github", &data)
		if err != nil {
			results[i] = core.UpdateCheck{Error: errors.New("failed to parse update metadata")}
			continue
		}

		newRelease, err := getLatestRelease(data.Slug, data.Branch)
		if err != nil {
			results[i] = core.UpdateCheck{Error: fmt.Errorf("failed to get latest release: %v", err)}
			continue
		}

		if newRelease.TagName == data.Tag { // The latest release is the same as the installed one
			results[i] = core.UpdateCheck{UpdateAvailable: false}
			continue
		}

		if len(newRelease.Assets) == 0 {
			results[i] = core.UpdateCheck{Error: errors.New("new release doesn't have any assets")}
			continue
		}

		expr := regexp2.MustCompile(data.Regex, 0)

		var newFiles []Asset
		for _, v := range newRelease.Assets {
			bl, _ := expr.MatchString(v.Name)
			if bl {
				newFiles = append(newFiles, v)
			}
		}

		if len(newFiles) == 0 {
			results[i] = core.UpdateCheck{Error: errors.New("new release doesn't have any assets matching regex")}
			continue
		}
		if len(newFiles) > 1 {
			results[i] = core.UpdateCheck{Error: errors.New("new release has more than one asset matching regex")}
			continue
		}

		newFile := newFiles[0]

		results[i] = core.UpdateCheck{
			UpdateAvailable: true,
			UpdateString:    mod.FileName + " -> " + newFile.Name,
			CachedState:     ghCachedStateStore{data.Slug, newRelease, newFile},
		}
	}

	return results, nil
}

func (u ghUpdater) DoUpdate(mods []*core.LocalMod, cachedState []interface{}) error {
	for i, mod := range mods {
		modState := cachedState[i].(ghCachedStateStore)

		hash, err := modState.Asset.getSha256()
		if err != nil {
			return err
		}

		mod.FileName = modState.Asset.Name
		mod.Download = core.ModDownload{
			URL:        modState.Asset.BrowserDownloadURL,
			HashFormat: "sha256",
			Hash:       hash,
		}
		mod.Update["github"]["tag"] = modState.Release.TagName
	}

	return nil
}
