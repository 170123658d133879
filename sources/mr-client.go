package sources

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"

	modrinthApi "codeberg.org/jmansfield/go-modrinth/modrinth"
	"github.com/unascribed/FlexVer/go/flexver"

	"github.com/lodestone-launcher/lodestone/core"
)

var mrDefaultClient = modrinthApi.NewClient(&http.Client{})

func init() {
	mrDefaultClient.UserAgent = core.UserAgent
}

func GetModrinthClient() *modrinthApi.Client {
	return mrDefaultClient
}

var mrUrlRegexes = [...]*regexp.Regexp{
	// Project and version pages
	regexp.MustCompile(`^https?://(?:www\.)?modrinth\.com/(?P<urlCategory>[^/]+)/(?P<slug>[^/]+)(?:/version/(?P<version>[^/]+))?(?:/.*)?$`),
	// CDN file URLs
	regexp.MustCompile(`^https?://cdn\.modrinth\.com/data/(?P<slug>[^/]+)/versions/(?P<versionID>[^/]+)/(?P<filename>[^/]+)$`),
	// Bare slugs / project IDs
	regexp.MustCompile(`^(?P<slug>[a-zA-Z0-9\-_]{1,64})$`),
}

func mrParseField(input string, field string) string {
	for _, r := range mrUrlRegexes {
		matches := r.FindStringSubmatch(input)
		if matches == nil {
			continue
		}
		i := r.SubexpIndex(field)
		if i < 0 {
			return ""
		}
		return matches[i]
	}
	return ""
}

// ParseAsModrinthSlug extracts a project slug or ID from a URL, or returns
// the input unchanged when it already looks like one. Empty when the input
// is neither.
func ParseAsModrinthSlug(input string) string {
	return mrParseField(input, "slug")
}

func ParseAsModrinthVersion(input string) string {
	return mrParseField(input, "version")
}

func ParseAsModrinthVersionID(input string) string {
	return mrParseField(input, "versionID")
}

func ParseAsModrinthFilename(input string) string {
	return mrParseField(input, "filename")
}

// ModrinthProjectFromVersionID looks up a version by ID and then the project
// it belongs to.
func ModrinthProjectFromVersionID(versionID string) (*modrinthApi.Project, *modrinthApi.Version, error) {
	version, err := GetModrinthClient().Versions.Get(versionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch version %s: %v", versionID, err)
	}

	project, err := GetModrinthClient().Projects.Get(*version.ProjectID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch project %s: %v", *version.ProjectID, err)
	}

	return project, version, nil
}

// ModrinthSearchForProjects queries the search endpoint, constrained to the
// server's game version, and resolves the hits into full projects.
func ModrinthSearchForProjects(query string, ctx core.UpdateContext) ([]*modrinthApi.Project, error) {
	facets := make([]string, 0, 1)
	if ctx.MinecraftVersion != "" {
		facets = append(facets, "versions:"+ctx.MinecraftVersion)
	}

	res, err := GetModrinthClient().Projects.Search(&modrinthApi.SearchOptions{
		Limit:  5,
		Index:  "relevance",
		Facets: [][]string{facets},
		Query:  query,
	})
	if err != nil {
		return nil, err
	}

	if len(res.Hits) == 0 {
		return nil, errors.New("no projects found")
	}

	ids := make([]string, len(res.Hits))
	for i, hit := range res.Hits {
		ids[i] = *hit.ProjectID
	}

	projects, err := GetModrinthClient().Projects.GetMultiple(ids)
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, errors.New("no projects found")
	}

	return projects, nil
}

// GetModrinthLatestVersion returns the newest version of a project that is
// compatible with the game version and loaders in ctx, comparing version
// numbers with FlexVer and falling back to publish dates.
func GetModrinthLatestVersion(projectID string, name string, ctx core.UpdateContext) (*modrinthApi.Version, error) {
	result, err := GetModrinthClient().Versions.ListVersions(projectID, modrinthApi.ListVersionsOptions{
		GameVersions: []string{ctx.MinecraftVersion},
		Loaders:      ctx.Loaders,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch versions of %s: %v", name, err)
	}

	if len(result) == 0 {
		return nil, fmt.Errorf("no versions of %s compatible with Minecraft %s (%v)", name, ctx.MinecraftVersion, ctx.Loaders)
	}

	var latestValidVersion *modrinthApi.Version
	for _, v := range result {
		if latestValidVersion == nil {
			latestValidVersion = v
			continue
		}

		compare := flexver.Compare(*v.VersionNumber, *latestValidVersion.VersionNumber)
		if compare == 0 {
			// Equal version numbers, prefer the later publish
			if v.DatePublished != nil && latestValidVersion.DatePublished != nil &&
				v.DatePublished.After(*latestValidVersion.DatePublished) {
				latestValidVersion = v
			}
		} else if compare > 0 {
			latestValidVersion = v
		}
	}

	return latestValidVersion, nil
}

// ResolveModrinthVersion finds a specific version of a project by its
// version number (e.g. taken from a version page URL).
func ResolveModrinthVersion(project *modrinthApi.Project, version string) (*modrinthApi.Version, error) {
	versions, err := GetModrinthClient().Versions.ListVersions(*project.ID, modrinthApi.ListVersionsOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch versions of %s: %v", *project.Title, err)
	}

	for _, v := range versions {
		if v.VersionNumber != nil && *v.VersionNumber == version {
			return v, nil
		}
	}

	return nil, fmt.Errorf("unable to find version %s of %s", version, *project.Title)
}

func mrGetBestHash(file *modrinthApi.File) (string, string) {
	// sha1 first, to line up with the hash format manifests and the ledger
	// default to
	val, exists := file.Hashes["sha1"]
	if exists {
		return "sha1", val
	}
	val, exists = file.Hashes["sha512"]
	if exists {
		return "sha512", val
	}
	val, exists = file.Hashes["sha256"]
	if exists {
		return "sha256", val
	}

	// None of the preferred hashes are present, take any
	for key, val := range file.Hashes {
		return key, val
	}

	return "", ""
}

func mrGetSide(project *modrinthApi.Project) core.ModSide {
	server := mrShouldDownloadOnSide(*project.ServerSide)
	client := mrShouldDownloadOnSide(*project.ClientSide)

	if server && client {
		return core.UniversalSide
	} else if server {
		return core.ServerSide
	} else if client {
		return core.ClientSide
	}
	return core.EmptySide
}

func mrShouldDownloadOnSide(side string) bool {
	return side == "required" || side == "optional"
}

// mrMapDepOverride swaps Fabric ecosystem dependencies for their Quilt
// equivalents when the server runs Quilt.
func mrMapDepOverride(depID string, isQuilt bool, mcVersion string) string {
	if isQuilt && (depID == "P7dR8mSH" || depID == "fabric-api") {
		// Fabric API -> Quilted Fabric API
		return "qvIfYCYJ"
	}
	if isQuilt && (depID == "Ha28R6CL" || depID == "fabric-language-kotlin") && flexver.Less(mcVersion, "1.19.2") {
		// Fabric Language Kotlin -> Quilt Kotlin Libraries, below the oldest
		// QKL-supported game version
		return "lwVhp9o5"
	}
	return depID
}
